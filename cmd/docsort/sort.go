package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/docsort/internal/common"
	"github.com/joseph-ayodele/docsort/internal/export"
	"github.com/joseph-ayodele/docsort/internal/ingest"
	"github.com/joseph-ayodele/docsort/internal/rename"
	repo "github.com/joseph-ayodele/docsort/internal/repository"
)

type sortOptions struct {
	input   string
	report  string
	journal string
	dryRun  bool
}

// runSort validates the input tree and the configuration, then classifies and
// renames every PDF below it.
func runSort(ctx context.Context, g globalOptions, opts sortOptions, stdout, stderr io.Writer) error {
	root, err := common.ValidateInputDir(opts.input)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	if opts.report != "" {
		cfg.Report.Path = opts.report
	}
	if opts.journal != "" {
		cfg.Journal.DSN = opts.journal
	}
	a, err := bootstrap(cfg, g, stdout, stderr)
	if err != nil {
		return err
	}
	logger := a.logger

	sorter := ingest.NewFSSorter(
		a.extractor,
		a.classifier,
		rename.NewRenamer(opts.dryRun, logger),
		a.console,
		logger,
	)

	var sum ingest.Summary
	if cfg.Journal.DSN != "" {
		journal, runID, closeJournal := openJournal(ctx, cfg.Journal.DSN, root, opts.dryRun, logger)
		if journal != nil {
			defer closeJournal()
			ctx = common.WithRunID(ctx, runID)
			sorter.WithRecorder(journal)
			defer func() {
				// the run context may already be cancelled
				if err := journal.FinishRun(context.WithoutCancel(ctx), runID, sum.Stats); err != nil {
					logger.Error("failed to finish journal run", "run_id", runID, "error", err)
				}
			}()
		}
	}

	if opts.dryRun {
		a.console.DryRun()
	}

	sum, err = sorter.SortDirectory(ctx, root)
	a.console.Summary(sum.Stats, sum.Elapsed)
	if err != nil {
		return common.NewAppError(common.CodeIO, "run aborted", err)
	}

	if cfg.Report.Path != "" {
		if err := export.NewService(logger).WriteRunXLSX(cfg.Report.Path, sum); err != nil {
			return common.NewAppError(common.CodeIO, "could not write the report "+cfg.Report.Path, err)
		}
		logger.Info("report written", "path", cfg.Report.Path)
	}
	return nil
}

// openJournal opens the journal and starts a run. A journal that cannot be
// opened is logged and the run continues without it.
func openJournal(ctx context.Context, dsn, root string, dryRun bool, logger *slog.Logger) (repo.JournalRepository, uuid.UUID, func()) {
	db, err := repo.Open(ctx, repo.Config{DSN: dsn}, logger)
	if err != nil {
		logger.Error("journal disabled", "error", err)
		return nil, uuid.Nil, nil
	}
	journal := repo.NewJournalRepository(db, logger)
	r, err := journal.StartRun(ctx, root, dryRun)
	if err != nil {
		db.Close(logger)
		logger.Error("journal disabled", "error", err)
		return nil, uuid.Nil, nil
	}
	logger.Info("journal run started", "run_id", r.ID)
	return journal, r.ID, func() { db.Close(logger) }
}
