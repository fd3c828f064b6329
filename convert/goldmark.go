package convert

import (
	"context"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// Goldmark is the in-process markup transformer. It parses the transcript
// as Markdown with goldmark and renders the AST to a LaTeX body, so the
// LaTeX path has no external binary dependency.
type Goldmark struct{}

func (Goldmark) Name() string { return "goldmark" }

func (Goldmark) ToLaTeX(ctx context.Context, markup string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	src := []byte(markup)
	doc := goldmark.New().Parser().Parse(gmtext.NewReader(src))
	var b strings.Builder
	r := latexRenderer{source: src}
	r.blocks(&b, doc)
	return b.String(), nil
}

type latexRenderer struct {
	source []byte
}

func (r latexRenderer) blocks(w *strings.Builder, parent ast.Node) {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		r.block(w, child)
		if child.NextSibling() != nil {
			w.WriteString("\n")
		}
	}
}

func (r latexRenderer) block(w *strings.Builder, node ast.Node) {
	switch n := node.(type) {
	case *ast.Heading:
		w.WriteString("\\" + sectionCommand(n.Level) + "{")
		r.inlines(w, n)
		w.WriteString("}\n")
	case *ast.Paragraph:
		r.inlines(w, n)
		w.WriteString("\n")
	case *ast.TextBlock:
		r.inlines(w, n)
		w.WriteString("\n")
	case *ast.Blockquote:
		w.WriteString("\\begin{quote}\n")
		r.blocks(w, n)
		w.WriteString("\\end{quote}\n")
	case *ast.List:
		env := "itemize"
		if n.IsOrdered() {
			env = "enumerate"
		}
		w.WriteString("\\begin{" + env + "}\n")
		r.blocks(w, n)
		w.WriteString("\\end{" + env + "}\n")
	case *ast.ListItem:
		w.WriteString("\\item ")
		r.listItemContent(w, n)
	case *ast.FencedCodeBlock:
		r.verbatim(w, n)
	case *ast.CodeBlock:
		r.verbatim(w, n)
	case *ast.ThematicBreak:
		w.WriteString("\\noindent\\rule{\\linewidth}{0.4pt}\n")
	case *ast.HTMLBlock:
		// Raw HTML has no LaTeX counterpart here.
	default:
		r.inlines(w, node)
		w.WriteString("\n")
	}
}

// List items hold a TextBlock or Paragraph first; nested lists follow as
// sibling blocks.
func (r latexRenderer) listItemContent(w *strings.Builder, item ast.Node) {
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.TextBlock, *ast.Paragraph:
			r.inlines(w, c)
			w.WriteString("\n")
		default:
			r.block(w, c)
		}
	}
}

func (r latexRenderer) verbatim(w *strings.Builder, node ast.Node) {
	w.WriteString("\\begin{verbatim}\n")
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		w.Write(seg.Value(r.source))
	}
	w.WriteString("\\end{verbatim}\n")
}

func (r latexRenderer) inlines(w *strings.Builder, parent ast.Node) {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			w.WriteString(escapeLaTeX(string(n.Segment.Value(r.source))))
			if n.HardLineBreak() {
				w.WriteString("\\\\\n")
			} else if n.SoftLineBreak() {
				w.WriteString(" ")
			}
		case *ast.String:
			w.WriteString(escapeLaTeX(string(n.Value)))
		case *ast.CodeSpan:
			w.WriteString("\\texttt{")
			r.inlines(w, n)
			w.WriteString("}")
		case *ast.Emphasis:
			if n.Level >= 2 {
				w.WriteString("\\textbf{")
			} else {
				w.WriteString("\\emph{")
			}
			r.inlines(w, n)
			w.WriteString("}")
		case *ast.Link:
			r.inlines(w, n)
			if dest := string(n.Destination); dest != "" {
				w.WriteString(" (\\texttt{" + escapeLaTeX(dest) + "})")
			}
		case *ast.AutoLink:
			w.WriteString("\\texttt{" + escapeLaTeX(string(n.URL(r.source))) + "}")
		case *ast.Image:
			// Keep the alt text; the image itself is not embeddable.
			r.inlines(w, n)
		case *ast.RawHTML:
			// Dropped, as with HTML blocks.
		default:
			r.inlines(w, child)
		}
	}
}

func sectionCommand(level int) string {
	switch level {
	case 1:
		return "section"
	case 2:
		return "subsection"
	case 3:
		return "subsubsection"
	case 4:
		return "paragraph"
	}
	return "subparagraph"
}

func escapeLaTeX(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString("\\textbackslash{}")
		case '~':
			b.WriteString("\\textasciitilde{}")
		case '^':
			b.WriteString("\\textasciicircum{}")
		case '&', '%', '$', '#', '_', '{', '}':
			b.WriteRune('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
