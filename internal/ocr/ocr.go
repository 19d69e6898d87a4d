package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/docsort/constants"
	"github.com/joseph-ayodele/docsort/internal/common"
)

type Config struct {
	Engine    string // constants.EnginePdftotext (default) | constants.EngineNative
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Layout    bool   // pass -layout to pdftotext
	MaxPages  int    // 0 = no limit
}

type ExtractionResult struct {
	Text     string
	Lines    []string
	Pages    int
	Method   string // "pdftotext" | "native"
	Duration time.Duration
	Warnings []string
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Engine == "" {
		cfg.Engine = constants.EnginePdftotext
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// WithRunner swaps the command runner; tests use it to stub pdftotext.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

// Extract converts the PDF at path to text lines using the configured engine.
// Any failure is returned as an ErrExtraction AppError.
func (e *Extractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	start := time.Now()
	e.logger.Debug("starting text extraction", "path", path, "engine", e.cfg.Engine)

	var (
		text  string
		pages int
		warns []string
		err   error
	)
	switch e.cfg.Engine {
	case constants.EnginePdftotext:
		text, pages, warns, err = e.pdfToText(ctx, path)
	case constants.EngineNative:
		text, pages, warns, err = e.nativeText(path)
	default:
		err = fmt.Errorf("unsupported engine: %q", e.cfg.Engine)
	}
	res := ExtractionResult{Pages: pages, Method: e.cfg.Engine, Warnings: warns}
	if err != nil {
		res.Duration = time.Since(start)
		e.logger.Warn("text extraction failed", "path", path, "engine", e.cfg.Engine, "error", err)
		return res, common.NewAppError(common.CodeExtraction, "could not read "+path, err)
	}

	res.Text = Normalize(text)
	res.Lines = SplitLines(res.Text)
	res.Duration = time.Since(start)
	e.logger.Debug("text extraction ok",
		"path", path,
		"engine", e.cfg.Engine,
		"pages", res.Pages,
		"lines", len(res.Lines),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
