package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docsort/constants"
	"github.com/joseph-ayodele/docsort/internal/common"
	repo "github.com/joseph-ayodele/docsort/internal/repository"
)

func newJournalCmd(g *globalOptions, stdout, stderr io.Writer) *cobra.Command {
	var (
		dsn    string
		runArg string
		status string
	)
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Check the run journal and list the outcomes of a run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if dsn == "" {
				cfg, err := loadConfig(*g)
				if err != nil {
					return err
				}
				dsn = cfg.Journal.DSN
			}
			if dsn == "" {
				return common.NewAppError(common.CodeConfig, "no journal configured; pass --journal or set journal.dsn", nil)
			}
			logger, err := newLogger(firstNonEmpty(g.logLevel, "warn"), stderr)
			if err != nil {
				return err
			}

			db, err := repo.Open(ctx, repo.Config{DSN: dsn, DialTimeout: 3 * time.Second}, logger)
			if err != nil {
				return common.NewAppError(common.CodeIO, "could not open the journal", err)
			}
			defer db.Close(logger)
			if err := repo.HealthCheck(ctx, db, time.Second); err != nil {
				return common.NewAppError(common.CodeIO, "journal health check failed", err)
			}
			fmt.Fprintf(stdout, "journal (%s): OK\n", db.Dialect)

			journal := repo.NewJournalRepository(db, logger)
			runID := uuid.Nil
			if runArg != "" {
				if runID, err = uuid.Parse(runArg); err != nil {
					return common.NewAppError(common.CodeConfig, fmt.Sprintf("invalid run id %q", runArg), err)
				}
			} else if runID, err = journal.LatestRunID(ctx); err != nil {
				return common.NewAppError(common.CodeIO, "could not read the journal", err)
			}
			if runID == uuid.Nil {
				fmt.Fprintln(stdout, "no runs recorded")
				return nil
			}

			run, err := journal.GetRun(ctx, runID)
			if err != nil {
				return common.NewAppError(common.CodeIO, "could not read the run", err)
			}
			finished := "unfinished"
			if run.FinishedAt != nil {
				finished = run.FinishedAt.Format(time.RFC3339)
			}
			fmt.Fprintf(stdout, "run %s  root=%s  started=%s  finished=%s  dry-run=%t\n",
				run.ID, run.Root, run.StartedAt.Format(time.RFC3339), finished, run.DryRun)
			fmt.Fprintf(stdout, "dirs=%d entries=%d ok=%d quarantined=%d failed=%d\n",
				run.Stats.Dirs, run.Stats.Entries, run.Stats.OK, run.Stats.Quarantined(), run.Stats.Failed)

			outcomes, err := journal.ListOutcomes(ctx, runID, constants.OutcomeStatus(status))
			if err != nil {
				return common.NewAppError(common.CodeIO, "could not list outcomes", err)
			}
			tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "STATUS\tDIR\tSOURCE\tTARGET\tERROR")
			for _, o := range outcomes {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", o.Status, o.Dir, o.SourceName, o.TargetName, o.Err)
			}
			return tw.Flush()
		},
	}
	f := cmd.Flags()
	f.StringVar(&dsn, "journal", "", "journal DSN (default: journal.dsn from the configuration)")
	f.StringVar(&runArg, "run", "", "run id (default: the latest run)")
	f.StringVar(&status, "status", "", "only outcomes with this status (RESOLVED|QUARANTINED|EXTRACTION_FAILED)")
	return cmd
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
