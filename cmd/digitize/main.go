// Command digitize converts a scanned notes document into a digital text
// artifact: it rasterizes the document, transcribes every page through the
// configured engine and writes the converted output next to a character
// frequency summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/wudi/notekit/convert"
	"github.com/wudi/notekit/observability/logrusadapter"
	"github.com/wudi/notekit/ocr"
	"github.com/wudi/notekit/ocr/llm"
	"github.com/wudi/notekit/ocr/tesseract"
	"github.com/wudi/notekit/pipeline"
	"github.com/wudi/notekit/rasterize"
	"github.com/wudi/notekit/scripting"
)

func main() {
	var (
		in          = flag.String("in", "", "input document (PDF, or a page image with -image)")
		formatName  = flag.String("format", "text", "output format: text, markdown or latex")
		engineName  = flag.String("engine", "llm", "transcription engine: llm or tesseract")
		provider    = flag.String("provider", "openai", "vision LLM provider: openai, ollama, mistral or anthropic")
		model       = flag.String("model", "gpt-4o", "vision LLM model identifier")
		concurrency = flag.Int("concurrency", pipeline.DefaultConcurrency, "max transcription requests in flight")
		dpi         = flag.Int("dpi", 0, "render resolution for PDF pages (0 = default)")
		stillImage  = flag.Bool("image", false, "treat the input as a single page image instead of a PDF")
		scriptPath  = flag.String("script", "", "JavaScript file with a transform(page, text) cleanup hook")
		langs       = flag.String("langs", "", "comma-separated language hints (tesseract)")
		latexVia    = flag.String("latex-transformer", "goldmark", "markdown-to-latex transformer: goldmark or pandoc")
		outDir      = flag.String("out", ".", "output directory")
		topN        = flag.Int("top", 10, "frequency table rows to print (0 = none)")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using system environment")
	}

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: digitize -in notes.pdf [-format text|markdown|latex]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	format, err := convert.ParseFormat(*formatName)
	if err != nil {
		logger.Fatal(err)
	}
	doc, err := os.ReadFile(*in)
	if err != nil {
		logger.Fatalf("read input: %v", err)
	}

	runner := &pipeline.Runner{
		Concurrency: *concurrency,
		Log:         logrusadapter.New(logger),
	}

	switch *engineName {
	case "llm":
		engine, err := llm.New(llm.Config{Provider: *provider, Model: *model})
		if err != nil {
			logger.Fatalf("create engine: %v", err)
		}
		runner.Engine = engine
	case "tesseract":
		runner.Engine = tesseract.NewEngine()
	default:
		logger.Fatalf("unknown engine %q", *engineName)
	}

	if *stillImage {
		runner.Rasterizer = rasterize.StillImage{}
	} else {
		runner.Rasterizer = &rasterize.Poppler{DPI: *dpi}
	}

	if *langs != "" {
		runner.InputOptions = append(runner.InputOptions,
			ocr.WithLanguages(strings.Split(*langs, ",")...))
	}

	switch *latexVia {
	case "goldmark":
		runner.Transformer = convert.Goldmark{}
	case "pandoc":
		runner.Transformer = convert.Pandoc{}
	default:
		logger.Fatalf("unknown latex transformer %q", *latexVia)
	}

	if *scriptPath != "" {
		src, err := os.ReadFile(*scriptPath)
		if err != nil {
			logger.Fatalf("read script: %v", err)
		}
		script, err := scripting.NewGojaEngine(string(src))
		if err != nil {
			logger.Fatalf("load script: %v", err)
		}
		runner.Script = script
	}

	out, err := runner.Run(context.Background(), doc, format)
	if err != nil {
		logger.Fatalf("run failed: %v", err)
	}

	target := filepath.Join(*outDir, out.Filename)
	if err := os.WriteFile(target, []byte(out.Text), 0o644); err != nil {
		logger.Fatalf("write output: %v", err)
	}

	fmt.Printf("Transcribed %d page(s) to %s (%s)\n", out.PageCount, target, out.MIME)
	if *topN > 0 && len(out.Frequencies) > 0 {
		fmt.Println("Character frequency:")
		for i, entry := range out.Frequencies {
			if i >= *topN {
				break
			}
			fmt.Printf("  %c  %d\n", entry.Char, entry.Count)
		}
	}
}
