package rasterize

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

const defaultDPI = 144

// Poppler rasterizes PDF documents by invoking the pdftoppm and pdfinfo
// binaries. Pages render in parallel, one pdftoppm invocation per page,
// bounded by Workers; the first render failure cancels the remaining
// renders, since a run cannot proceed with a missing page.
type Poppler struct {
	// Binary is the pdftoppm executable; empty means "pdftoppm" on PATH.
	Binary string
	// InfoBinary is the pdfinfo executable; empty means "pdfinfo" on PATH.
	InfoBinary string
	// DPI is the render resolution; zero means 144.
	DPI int
	// Workers bounds concurrent page renders; zero derives a limit from
	// the CPU count.
	Workers int
	// UserPassword unlocks password-protected documents (-upw).
	UserPassword string
}

func (p *Poppler) binary() string {
	if p.Binary != "" {
		return p.Binary
	}
	return "pdftoppm"
}

func (p *Poppler) infoBinary() string {
	if p.InfoBinary != "" {
		return p.InfoBinary
	}
	return "pdfinfo"
}

func (p *Poppler) dpi() int {
	if p.DPI > 0 {
		return p.DPI
	}
	return defaultDPI
}

func (p *Poppler) workers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	n := runtime.NumCPU()
	if n < 2 {
		n = 2
	}
	if n > 8 {
		n = 8
	}
	return n
}

// Rasterize renders every page of the PDF document to a PNG image and
// returns the pages in index order.
func (p *Poppler) Rasterize(ctx context.Context, doc []byte) ([]Page, error) {
	if len(doc) == 0 {
		return nil, &RasterizationError{Reason: "empty document"}
	}
	workDir, err := os.MkdirTemp("", "notekit-raster-")
	if err != nil {
		return nil, &RasterizationError{Reason: "create work dir", Err: err}
	}
	defer os.RemoveAll(workDir)

	pdfPath := filepath.Join(workDir, "input.pdf")
	if err := os.WriteFile(pdfPath, doc, 0o600); err != nil {
		return nil, &RasterizationError{Reason: "write document", Err: err}
	}

	total, err := p.countPages(ctx, pdfPath)
	if err != nil {
		return nil, err
	}

	pages := make([]Page, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())
	for page := 1; page <= total; page++ {
		g.Go(func() error {
			data, renderErr := p.renderPage(gctx, workDir, pdfPath, page)
			if renderErr != nil {
				return renderErr
			}
			pages[page-1] = Page{Index: page - 1, Image: data, MIME: "image/png"}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var rerr *RasterizationError
		if errors.As(err, &rerr) {
			return nil, err
		}
		return nil, &RasterizationError{Reason: "render pages", Err: err}
	}
	return pages, nil
}

func (p *Poppler) countPages(ctx context.Context, pdfPath string) (int, error) {
	args := p.withPassword([]string{pdfPath})
	output, err := exec.CommandContext(ctx, p.infoBinary(), args...).Output()
	if err != nil {
		return 0, &RasterizationError{Reason: "pdfinfo failed", Err: err}
	}
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "Pages:") {
			parts := strings.Fields(line)
			if len(parts) >= 2 {
				if total, convErr := strconv.Atoi(parts[1]); convErr == nil {
					return total, nil
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, &RasterizationError{Reason: "read pdfinfo output", Err: err}
	}
	return 0, &RasterizationError{Reason: "page count missing from pdfinfo output"}
}

func (p *Poppler) renderPage(ctx context.Context, workDir, pdfPath string, page int) ([]byte, error) {
	prefix := filepath.Join(workDir, fmt.Sprintf("page-%d", page))
	args := []string{
		"-png",
		"-r", strconv.Itoa(p.dpi()),
		"-f", strconv.Itoa(page),
		"-l", strconv.Itoa(page),
	}
	args = p.withPassword(args)
	args = append(args, pdfPath, prefix)
	if err := exec.CommandContext(ctx, p.binary(), args...).Run(); err != nil {
		return nil, &RasterizationError{Reason: fmt.Sprintf("pdftoppm failed on page %d", page), Err: err}
	}
	path, err := findRenderedImage(prefix, page)
	if err != nil {
		return nil, &RasterizationError{Reason: fmt.Sprintf("locate rendered page %d", page), Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &RasterizationError{Reason: fmt.Sprintf("read rendered page %d", page), Err: err}
	}
	return data, nil
}

func (p *Poppler) withPassword(args []string) []string {
	if p.UserPassword == "" {
		return args
	}
	return append(args, "-upw", p.UserPassword)
}

// pdftoppm zero-pads the page number in the output name depending on the
// total page count, so probe the plausible widths before falling back to a
// glob.
func findRenderedImage(prefix string, page int) (string, error) {
	candidates := []string{
		fmt.Sprintf("%s-%d.png", prefix, page),
		fmt.Sprintf("%s-%02d.png", prefix, page),
		fmt.Sprintf("%s-%03d.png", prefix, page),
		fmt.Sprintf("%s-%04d.png", prefix, page),
		fmt.Sprintf("%s-%05d.png", prefix, page),
		fmt.Sprintf("%s-%06d.png", prefix, page),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return "", err
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	return "", fmt.Errorf("rendered image not found for page %d", page)
}
