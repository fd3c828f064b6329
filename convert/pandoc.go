package convert

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Pandoc transforms Markdown to a LaTeX body by invoking the pandoc binary,
// matching the behavior of installations that already standardize on pandoc
// for document conversion. Use Goldmark when no external binary is wanted.
type Pandoc struct {
	// Binary is the pandoc executable; empty means "pandoc" on PATH.
	Binary string
}

func (p Pandoc) Name() string { return "pandoc" }

func (p Pandoc) ToLaTeX(ctx context.Context, markup string) (string, error) {
	binary := p.Binary
	if binary == "" {
		binary = "pandoc"
	}
	cmd := exec.CommandContext(ctx, binary, "-f", "markdown", "-t", "latex")
	cmd.Stdin = strings.NewReader(markup)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("pandoc: %s: %w", msg, err)
		}
		return "", fmt.Errorf("pandoc: %w", err)
	}
	return out.String(), nil
}
