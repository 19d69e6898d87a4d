package extract

import (
	"context"
	"time"
)

// TextExtractor turns a PDF into the ordered text lines the classifier scans.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Lines    []string
	Pages    int
	Method   string // "pdftotext" | "native"
	Duration time.Duration
	Warnings []string
}
