package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/docsort/constants"
	"github.com/joseph-ayodele/docsort/internal/classify"
	"github.com/joseph-ayodele/docsort/internal/entity"
	"github.com/joseph-ayodele/docsort/internal/extract"
	"github.com/joseph-ayodele/docsort/internal/rename"
)

// FSSorter walks a local directory tree one file at a time.
type FSSorter struct {
	extractor  extract.TextExtractor
	classifier *classify.Classifier
	renamer    *rename.Renamer
	reporter   Reporter
	recorder   Recorder
	logger     *slog.Logger
}

func NewFSSorter(
	x extract.TextExtractor,
	c *classify.Classifier,
	r *rename.Renamer,
	rep Reporter,
	logger *slog.Logger,
) *FSSorter {
	if logger == nil {
		logger = slog.Default()
	}
	return &FSSorter{
		extractor:  x,
		classifier: c,
		renamer:    r,
		reporter:   rep,
		logger:     logger,
	}
}

// WithRecorder attaches an outcome recorder (the run journal).
func (s *FSSorter) WithRecorder(r Recorder) *FSSorter {
	s.recorder = r
	return s
}

// SortDirectory walks root top-down. Each directory's own PDFs are handled
// before its subdirectories are entered.
func (s *FSSorter) SortDirectory(ctx context.Context, root string) (Summary, error) {
	if strings.TrimSpace(root) == "" {
		return Summary{}, errors.New("root path is required")
	}
	start := time.Now()
	sum := Summary{Root: root, Stats: entity.NewRunStats()}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			s.logger.Warn("skipping unreadable path", "path", path, "error", walkErr)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return s.sortDir(ctx, path, &sum)
	})
	sum.Elapsed = time.Since(start)
	if err != nil {
		return sum, fmt.Errorf("walk: %w", err)
	}

	s.logger.Info("tree sorted",
		"root", root,
		"dirs", sum.Stats.Dirs,
		"entries", sum.Stats.Entries,
		"ok", sum.Stats.OK,
		"quarantined", sum.Stats.Quarantined(),
		"failed", sum.Stats.Failed,
		"elapsed_ms", sum.Elapsed.Milliseconds(),
	)
	return sum, nil
}

func (s *FSSorter) sortDir(ctx context.Context, path string, sum *Summary) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("abs path: %w", err)
	}
	sum.Stats.Dirs++
	s.reporter.Directory(dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Warn("could not list directory", "dir", dir, "error", err)
		return nil
	}
	for _, e := range entries {
		if !IsCandidate(e) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		o := s.SortFile(ctx, dir, e.Name(), &sum.Stats)
		sum.Outcomes = append(sum.Outcomes, o)
		if s.recorder != nil {
			if err := s.recorder.RecordOutcome(ctx, o); err != nil {
				s.logger.Error("failed to record outcome", "path", filepath.Join(dir, o.SourceName), "error", err)
			}
		}
	}
	return nil
}

// SortFile extracts, classifies and renames dir/name, updating stats.
// Extraction failures leave the file untouched and do not count as entries.
func (s *FSSorter) SortFile(ctx context.Context, dir, name string, stats *entity.RunStats) entity.Outcome {
	full := filepath.Join(dir, name)
	o := entity.Outcome{ID: uuid.New(), Dir: dir, SourceName: name}

	text, err := s.extractor.Extract(ctx, full)
	if err != nil {
		stats.Failed++
		s.reporter.ExtractionFailed(name)
		o.Status = constants.OutcomeExtractionFailed
		o.Err = err.Error()
		o.RecordedAt = time.Now().UTC()
		return o
	}

	res := s.classifier.Classify(text.Lines)
	d := rename.Plan(res, stats.NextFixID)
	o.DocType, o.Issuer, o.Mark = res.DocType, res.Issuer, res.Mark
	o.TargetName = d.Target

	if d.Quarantined {
		stats.NextFixID++
		o.Status = constants.OutcomeQuarantined
		s.reporter.Quarantined(full)
	} else {
		o.Status = constants.OutcomeResolved
		s.reporter.Renamed(name, d.Target)
	}

	if _, err := s.renamer.Apply(dir, name, d); err != nil {
		o.Err = err.Error()
	} else if !d.Quarantined {
		stats.OK++
	}
	stats.Entries++
	o.RecordedAt = time.Now().UTC()

	s.logger.Debug("file sorted",
		"path", full,
		"status", o.Status,
		"target", o.TargetName,
		"lines", len(text.Lines),
		"scanned", res.Scanned,
	)
	return o
}
