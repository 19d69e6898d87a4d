package ingest

import (
	"context"
	"time"

	"github.com/joseph-ayodele/docsort/internal/entity"
)

// Reporter receives the human-facing progress of a run.
type Reporter interface {
	Directory(path string)
	Renamed(source, target string)
	Quarantined(path string)
	ExtractionFailed(name string)
}

// Recorder persists per-file outcomes. Failures are logged, never fatal.
type Recorder interface {
	RecordOutcome(ctx context.Context, o entity.Outcome) error
}

// Summary is the result of sorting one tree.
type Summary struct {
	Root     string
	Stats    entity.RunStats
	Outcomes []entity.Outcome
	Elapsed  time.Duration
}

// Sorter is the behavior the command depends on.
type Sorter interface {
	// SortDirectory classifies and renames every PDF under root.
	SortDirectory(ctx context.Context, root string) (Summary, error)
}
