package convert

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type staticTransformer struct {
	body string
	err  error
}

func (s staticTransformer) Name() string { return "static" }

func (s staticTransformer) ToLaTeX(ctx context.Context, markup string) (string, error) {
	return s.body, s.err
}

func TestConvertIdentityFormats(t *testing.T) {
	for _, f := range []Format{PlainText, Markdown} {
		out, err := Convert(context.Background(), "hello\n\nworld", f, nil)
		if err != nil {
			t.Fatalf("Convert(%v) error = %v", f, err)
		}
		if out != "hello\n\nworld" {
			t.Fatalf("Convert(%v) = %q, want identity", f, out)
		}
	}
}

func TestConvertLaTeXWrapsBody(t *testing.T) {
	out, err := Convert(context.Background(), "# Title", LaTeX, staticTransformer{body: "\\section{Title}\n"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	for _, marker := range []string{
		"\\documentclass[a4paper]{article}",
		"\\geometry{margin=1in}",
		"\\title{Digitalized Notes}",
		"\\maketitle",
		"\\section{Title}",
		"\\end{document}",
	} {
		if !strings.Contains(out, marker) {
			t.Fatalf("output missing %q:\n%s", marker, out)
		}
	}
	if strings.Index(out, "\\maketitle") > strings.Index(out, "\\section{Title}") {
		t.Fatal("body must come after the preamble")
	}
}

func TestConvertLaTeXTransformerFailure(t *testing.T) {
	_, err := Convert(context.Background(), "bad", LaTeX, staticTransformer{err: fmt.Errorf("malformed markup")})
	var cerr *ConversionError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
	if cerr.Transformer != "static" {
		t.Fatalf("unexpected transformer %q", cerr.Transformer)
	}
}

func TestConvertLaTeXWithoutTransformer(t *testing.T) {
	_, err := Convert(context.Background(), "text", LaTeX, nil)
	var cerr *ConversionError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
}

func TestFormatMapping(t *testing.T) {
	cases := []struct {
		format   Format
		name     string
		filename string
		mime     string
	}{
		{PlainText, "Plain Text", "converted_notes.txt", "text/plain"},
		{Markdown, "Markdown", "converted_notes.md", "text/markdown"},
		{LaTeX, "LaTeX", "converted_notes.tex", "application/x-tex"},
	}
	for _, tc := range cases {
		if tc.format.String() != tc.name {
			t.Fatalf("String() = %q, want %q", tc.format.String(), tc.name)
		}
		if tc.format.Filename() != tc.filename {
			t.Fatalf("Filename() = %q, want %q", tc.format.Filename(), tc.filename)
		}
		if tc.format.MIME() != tc.mime {
			t.Fatalf("MIME() = %q, want %q", tc.format.MIME(), tc.mime)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{
		"text": PlainText, "plain": PlainText, "md": Markdown,
		"markdown": Markdown, "latex": LaTeX, "tex": LaTeX,
	} {
		got, err := ParseFormat(name)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseFormat("docx"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
