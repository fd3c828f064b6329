package ocr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/wudi/notekit/rasterize"
)

type fakeEngine struct {
	failAt int
}

func (f fakeEngine) Name() string { return "fake" }

func (f fakeEngine) Transcribe(ctx context.Context, in Input) (Result, error) {
	if in.PageIndex == f.failAt {
		return Result{}, errors.New("boom")
	}
	return Result{PageIndex: in.PageIndex, Text: fmt.Sprintf("text %d", in.PageIndex)}, nil
}

func TestTranscribePages(t *testing.T) {
	pages := []rasterize.Page{
		{Index: 0, Image: []byte{1}, MIME: "image/png"},
		{Index: 1, Image: []byte{2}, MIME: "image/png"},
	}
	results, err := TranscribePages(context.Background(), fakeEngine{failAt: -1}, pages, "p")
	if err != nil {
		t.Fatalf("TranscribePages() error = %v", err)
	}
	if len(results) != 2 || results[1].Text != "text 1" {
		t.Fatalf("unexpected results %v", results)
	}
}

func TestTranscribePagesWrapsError(t *testing.T) {
	pages := []rasterize.Page{{Index: 0, Image: []byte{1}, MIME: "image/png"}}
	_, err := TranscribePages(context.Background(), fakeEngine{failAt: 0}, pages, "p")
	var terr *TranscriptionError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TranscriptionError, got %v", err)
	}
	if terr.PageIndex != 0 || terr.Engine != "fake" {
		t.Fatalf("unexpected error payload %+v", terr)
	}
}

func TestTranscribePagesHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := TranscribePages(ctx, fakeEngine{failAt: -1}, []rasterize.Page{{Index: 0}}, "p")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
