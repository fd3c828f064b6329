package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/wudi/notekit/convert"
	"github.com/wudi/notekit/ocr"
	"github.com/wudi/notekit/rasterize"
	"github.com/wudi/notekit/scripting"
)

// fakeRasterizer emits one page per input byte.
type fakeRasterizer struct {
	err error
}

func (f fakeRasterizer) Rasterize(ctx context.Context, doc []byte) ([]rasterize.Page, error) {
	if f.err != nil {
		return nil, f.err
	}
	pages := make([]rasterize.Page, len(doc))
	for i := range doc {
		pages[i] = rasterize.Page{Index: i, Image: []byte{doc[i]}, MIME: "image/png"}
	}
	return pages, nil
}

type echoEngine struct {
	failAt int
}

func (e echoEngine) Name() string { return "echo" }

func (e echoEngine) Transcribe(ctx context.Context, in ocr.Input) (ocr.Result, error) {
	if in.PageIndex == e.failAt {
		return ocr.Result{}, errors.New("unreadable page")
	}
	return ocr.Result{PageIndex: in.PageIndex, Text: fmt.Sprintf("notes %d", in.PageIndex)}, nil
}

func TestRunPlainText(t *testing.T) {
	r := &Runner{
		Rasterizer: fakeRasterizer{},
		Engine:     echoEngine{failAt: -1},
	}
	out, err := r.Run(context.Background(), []byte{1, 2, 3}, convert.PlainText)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Text != "notes 0\n\nnotes 1\n\nnotes 2" {
		t.Fatalf("unexpected text %q", out.Text)
	}
	if out.Filename != "converted_notes.txt" || out.MIME != "text/plain" {
		t.Fatalf("unexpected filename/mime %q %q", out.Filename, out.MIME)
	}
	if out.PageCount != 3 {
		t.Fatalf("PageCount = %d, want 3", out.PageCount)
	}
	if len(out.Frequencies) == 0 {
		t.Fatal("expected frequency table")
	}
	// 'n' appears in every "notes" plus "n" nowhere else: top entry should
	// be one of the repeated letters, never a digit that occurs once.
	if out.Frequencies[0].Count < 3 {
		t.Fatalf("unexpected top frequency %+v", out.Frequencies[0])
	}
}

func TestRunFailsFastOnPageError(t *testing.T) {
	r := &Runner{
		Rasterizer: fakeRasterizer{},
		Engine:     echoEngine{failAt: 1},
	}
	out, err := r.Run(context.Background(), []byte{1, 2, 3}, convert.PlainText)
	if out != nil {
		t.Fatalf("expected no output, got %+v", out)
	}
	var terr *ocr.TranscriptionError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TranscriptionError, got %v", err)
	}
	if terr.PageIndex != 1 {
		t.Fatalf("unexpected page index %d", terr.PageIndex)
	}
}

func TestRunPropagatesRasterizationError(t *testing.T) {
	rerr := &rasterize.RasterizationError{Reason: "broken"}
	r := &Runner{Rasterizer: fakeRasterizer{err: rerr}, Engine: echoEngine{failAt: -1}}
	_, err := r.Run(context.Background(), []byte{1}, convert.PlainText)
	var got *rasterize.RasterizationError
	if !errors.As(err, &got) {
		t.Fatalf("expected RasterizationError, got %v", err)
	}
}

func TestRunLaTeX(t *testing.T) {
	r := &Runner{
		Rasterizer: fakeRasterizer{},
		Engine:     markdownEngine{},
	}
	out, err := r.Run(context.Background(), []byte{1}, convert.LaTeX)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, marker := range []string{
		"\\documentclass[a4paper]{article}",
		"\\maketitle",
		"\\section{Title}",
		"\\end{document}",
	} {
		if !strings.Contains(out.Text, marker) {
			t.Fatalf("missing %q in output:\n%s", marker, out.Text)
		}
	}
	if out.Filename != "converted_notes.tex" || out.MIME != "application/x-tex" {
		t.Fatalf("unexpected filename/mime %q %q", out.Filename, out.MIME)
	}
}

type markdownEngine struct{}

func (markdownEngine) Name() string { return "markdown" }

func (markdownEngine) Transcribe(ctx context.Context, in ocr.Input) (ocr.Result, error) {
	return ocr.Result{PageIndex: in.PageIndex, Text: "# Title"}, nil
}

func TestRunAppliesScriptHook(t *testing.T) {
	script, err := scripting.NewGojaEngine(`function transform(page, text) { return text.toUpperCase(); }`)
	if err != nil {
		t.Fatalf("NewGojaEngine() error = %v", err)
	}
	r := &Runner{
		Rasterizer: fakeRasterizer{},
		Engine:     echoEngine{failAt: -1},
		Script:     script,
	}
	out, err := r.Run(context.Background(), []byte{1, 2}, convert.PlainText)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Text != "NOTES 0\n\nNOTES 1" {
		t.Fatalf("script not applied: %q", out.Text)
	}
}

func TestRunScriptFailureAbortsRun(t *testing.T) {
	script, err := scripting.NewGojaEngine(`function transform(page, text) { throw new Error("nope"); }`)
	if err != nil {
		t.Fatalf("NewGojaEngine() error = %v", err)
	}
	r := &Runner{
		Rasterizer: fakeRasterizer{},
		Engine:     echoEngine{failAt: -1},
		Script:     script,
	}
	if _, err := r.Run(context.Background(), []byte{1}, convert.PlainText); err == nil {
		t.Fatal("expected script failure to abort the run")
	}
}

func TestRunEmptyDocumentYieldsEmptyOutput(t *testing.T) {
	r := &Runner{Rasterizer: fakeRasterizer{}, Engine: echoEngine{failAt: -1}}
	out, err := r.Run(context.Background(), nil, convert.PlainText)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Text != "" || out.PageCount != 0 || len(out.Frequencies) != 0 {
		t.Fatalf("expected empty output, got %+v", out)
	}
}
