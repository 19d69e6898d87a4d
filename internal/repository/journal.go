package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/docsort/constants"
	"github.com/joseph-ayodele/docsort/internal/common"
	"github.com/joseph-ayodele/docsort/internal/entity"
)

const (
	tableRuns     = "runs"
	tableOutcomes = "outcomes"
)

// ErrNoRun is returned when an outcome is recorded outside of a started run.
var ErrNoRun = errors.New("no run id in context")

// JournalRepository defines the interface for run journal operations.
type JournalRepository interface {
	StartRun(ctx context.Context, root string, dryRun bool) (*entity.Run, error)
	RecordOutcome(ctx context.Context, o entity.Outcome) error
	FinishRun(ctx context.Context, runID uuid.UUID, stats entity.RunStats) error
	GetRun(ctx context.Context, runID uuid.UUID) (*entity.Run, error)
	LatestRunID(ctx context.Context) (uuid.UUID, error)
	ListOutcomes(ctx context.Context, runID uuid.UUID, status constants.OutcomeStatus) ([]entity.Outcome, error)
}

type journalRepository struct {
	db     *DB
	logger *slog.Logger
}

// NewJournalRepository creates a new journal repository.
func NewJournalRepository(db *DB, logger *slog.Logger) JournalRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &journalRepository{db: db, logger: logger}
}

func (r *journalRepository) builder() *entsql.DialectBuilder {
	return entsql.Dialect(r.db.Dialect)
}

func (r *journalRepository) StartRun(ctx context.Context, root string, dryRun bool) (*entity.Run, error) {
	run := &entity.Run{
		ID:        uuid.New(),
		Root:      root,
		DryRun:    dryRun,
		StartedAt: time.Now().UTC(),
		Stats:     entity.NewRunStats(),
	}
	q, args := r.builder().Insert(tableRuns).
		Columns("id", "root", "dry_run", "started_at").
		Values(run.ID, run.Root, run.DryRun, run.StartedAt).
		Query()
	if err := r.db.Driver.Exec(ctx, q, args, nil); err != nil {
		r.logger.Error("failed to start run", "root", root, "error", err)
		return nil, fmt.Errorf("insert run: %w", err)
	}
	r.logger.Debug("run started", "run_id", run.ID, "root", root)
	return run, nil
}

// RecordOutcome stores o under the run carried by ctx.
func (r *journalRepository) RecordOutcome(ctx context.Context, o entity.Outcome) error {
	runID := common.RunIDFromContext(ctx)
	if runID == uuid.Nil {
		return ErrNoRun
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.RecordedAt.IsZero() {
		o.RecordedAt = time.Now().UTC()
	}
	q, args := r.builder().Insert(tableOutcomes).
		Columns("id", "run_id", "dir", "source_name", "target_name", "status",
			"doctype", "issuer", "mark", "error", "recorded_at").
		Values(o.ID, runID, o.Dir, o.SourceName, o.TargetName, string(o.Status),
			o.DocType, o.Issuer, o.Mark, o.Err, o.RecordedAt).
		Query()
	if err := r.db.Driver.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("insert outcome: %w", err)
	}
	return nil
}

func (r *journalRepository) FinishRun(ctx context.Context, runID uuid.UUID, stats entity.RunStats) error {
	q, args := r.builder().Update(tableRuns).
		Set("finished_at", time.Now().UTC()).
		Set("dirs", int64(stats.Dirs)).
		Set("entries", int64(stats.Entries)).
		Set("ok_entries", int64(stats.OK)).
		Set("failed", int64(stats.Failed)).
		Set("quarantined", int64(stats.Quarantined())).
		Where(entsql.EQ("id", runID)).
		Query()
	var res entsql.Result
	if err := r.db.Driver.Exec(ctx, q, args, &res); err != nil {
		r.logger.Error("failed to finish run", "run_id", runID, "error", err)
		return fmt.Errorf("update run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run %s not found", runID)
	}
	return nil
}

func (r *journalRepository) GetRun(ctx context.Context, runID uuid.UUID) (*entity.Run, error) {
	q, args := r.builder().
		Select("root", "dry_run", "started_at", "finished_at", "dirs", "entries", "ok_entries", "failed", "quarantined").
		From(entsql.Table(tableRuns)).
		Where(entsql.EQ("id", runID)).
		Query()
	var rows entsql.Rows
	if err := r.db.Driver.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("run %s not found", runID)
	}

	var (
		run         = entity.Run{ID: runID}
		finished    sql.NullTime
		quarantined int64
	)
	if err := rows.Scan(&run.Root, &run.DryRun, &run.StartedAt, &finished,
		&run.Stats.Dirs, &run.Stats.Entries, &run.Stats.OK, &run.Stats.Failed, &quarantined); err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	run.Stats.NextFixID = uint32(quarantined) + 1
	return &run, nil
}

// LatestRunID returns the most recently started run, or uuid.Nil when the
// journal is empty.
func (r *journalRepository) LatestRunID(ctx context.Context) (uuid.UUID, error) {
	q, args := r.builder().
		Select("id").
		From(entsql.Table(tableRuns)).
		OrderBy(entsql.Desc("started_at")).
		Limit(1).
		Query()
	var rows entsql.Rows
	if err := r.db.Driver.Query(ctx, q, args, &rows); err != nil {
		return uuid.Nil, fmt.Errorf("query latest run: %w", err)
	}
	defer rows.Close()
	var id uuid.UUID
	if rows.Next() {
		if err := rows.Scan(&id); err != nil {
			return uuid.Nil, fmt.Errorf("scan run id: %w", err)
		}
	}
	return id, rows.Err()
}

// ListOutcomes returns the outcomes of a run in recording order. An empty
// status selects all of them.
func (r *journalRepository) ListOutcomes(ctx context.Context, runID uuid.UUID, status constants.OutcomeStatus) ([]entity.Outcome, error) {
	sel := r.builder().
		Select("id", "dir", "source_name", "target_name", "status", "doctype", "issuer", "mark", "error", "recorded_at").
		From(entsql.Table(tableOutcomes))
	pred := entsql.EQ("run_id", runID)
	if status != "" {
		pred = entsql.And(pred, entsql.EQ("status", string(status)))
	}
	q, args := sel.Where(pred).OrderBy("recorded_at", "source_name").Query()

	var rows entsql.Rows
	if err := r.db.Driver.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var out []entity.Outcome
	for rows.Next() {
		var (
			o  entity.Outcome
			st string
		)
		if err := rows.Scan(&o.ID, &o.Dir, &o.SourceName, &o.TargetName, &st,
			&o.DocType, &o.Issuer, &o.Mark, &o.Err, &o.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		o.Status = constants.OutcomeStatus(st)
		out = append(out, o)
	}
	return out, rows.Err()
}
