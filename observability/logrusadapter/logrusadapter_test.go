package logrusadapter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/wudi/notekit/observability"
)

func TestAdapterCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)

	log := New(logger).With(observability.String("run_id", "abc"))
	log.Info("pages rasterized", observability.Int("pages", 4))

	out := buf.String()
	if !strings.Contains(out, "pages rasterized") {
		t.Fatalf("missing message in output: %q", out)
	}
	if !strings.Contains(out, "run_id=abc") || !strings.Contains(out, "pages=4") {
		t.Fatalf("missing fields in output: %q", out)
	}
}

func TestNilLoggerUsesStandard(t *testing.T) {
	if New(nil) == nil {
		t.Fatal("expected a logger")
	}
}
