package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/docsort/constants"
	"github.com/joseph-ayodele/docsort/internal/common"
	"github.com/joseph-ayodele/docsort/internal/entity"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), Config{DSN: ":memory:"}, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close(nil) })
	return db
}

func TestIsPostgres(t *testing.T) {
	cases := map[string]bool{
		"postgres://u:p@localhost/db":  true,
		"postgresql://localhost/db":    true,
		"journal.db":                   false,
		":memory:":                     false,
		"/var/lib/docsort/postgres.db": false,
	}
	for dsn, want := range cases {
		if got := IsPostgres(dsn); got != want {
			t.Errorf("IsPostgres(%q) = %v, want %v", dsn, got, want)
		}
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	if err := migrate(context.Background(), db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestJournalRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewJournalRepository(openTestDB(t), nil)

	run, err := repo.StartRun(ctx, "/data/in", true)
	if err != nil {
		t.Fatalf("StartRun: %v", err)
	}
	ctx = common.WithRunID(ctx, run.ID)

	outcomes := []entity.Outcome{
		{Dir: "/data/in", SourceName: "a.pdf", TargetName: "ep_OSBA1_Ex 12/2020.pdf",
			Status: constants.OutcomeResolved, DocType: "ep", Issuer: "OSBA1", Mark: "Ex 12/2020"},
		{Dir: "/data/in", SourceName: "b.pdf", TargetName: "FIX_ME1___.pdf",
			Status: constants.OutcomeQuarantined},
		{Dir: "/data/in/sub", SourceName: "c.pdf",
			Status: constants.OutcomeExtractionFailed, Err: "pdftotext: exit status 1"},
	}
	for _, o := range outcomes {
		if err := repo.RecordOutcome(ctx, o); err != nil {
			t.Fatalf("RecordOutcome(%s): %v", o.SourceName, err)
		}
	}

	stats := entity.RunStats{Dirs: 2, Entries: 2, OK: 1, Failed: 1, NextFixID: 2}
	if err := repo.FinishRun(ctx, run.ID, stats); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	latest, err := repo.LatestRunID(ctx)
	if err != nil || latest != run.ID {
		t.Fatalf("LatestRunID = %v, %v; want %v", latest, err, run.ID)
	}

	got, err := repo.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Root != "/data/in" || !got.DryRun {
		t.Errorf("run = %+v", got)
	}
	if got.FinishedAt == nil {
		t.Error("FinishedAt not set")
	}
	if got.Stats != stats {
		t.Errorf("stats = %+v, want %+v", got.Stats, stats)
	}

	all, err := repo.ListOutcomes(ctx, run.ID, "")
	if err != nil {
		t.Fatalf("ListOutcomes: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(all))
	}

	failed, err := repo.ListOutcomes(ctx, run.ID, constants.OutcomeExtractionFailed)
	if err != nil {
		t.Fatalf("ListOutcomes(failed): %v", err)
	}
	if len(failed) != 1 || failed[0].SourceName != "c.pdf" || failed[0].Err == "" {
		t.Errorf("failed outcomes = %+v", failed)
	}
}

func TestLatestRunIDEmpty(t *testing.T) {
	db := openTestDB(t)
	if err := HealthCheck(context.Background(), db, time.Second); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
	id, err := NewJournalRepository(db, nil).LatestRunID(context.Background())
	if err != nil || id != uuid.Nil {
		t.Fatalf("LatestRunID = %v, %v; want nil id", id, err)
	}
}

func TestRecordOutcomeWithoutRun(t *testing.T) {
	repo := NewJournalRepository(openTestDB(t), nil)
	err := repo.RecordOutcome(context.Background(), entity.Outcome{SourceName: "a.pdf"})
	if !errors.Is(err, ErrNoRun) {
		t.Fatalf("err = %v, want ErrNoRun", err)
	}
}

func TestFinishUnknownRun(t *testing.T) {
	repo := NewJournalRepository(openTestDB(t), nil)
	if err := repo.FinishRun(context.Background(), uuid.New(), entity.NewRunStats()); err == nil {
		t.Fatal("expected error for unknown run")
	}
}
