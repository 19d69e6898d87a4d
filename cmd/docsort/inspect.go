package main

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docsort/internal/entity"
	"github.com/joseph-ayodele/docsort/internal/rename"
)

func newInspectCmd(g *globalOptions, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE.pdf...",
		Short: "Show how documents would be classified, without renaming them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*g)
			if err != nil {
				return err
			}
			a, err := bootstrap(cfg, *g, stdout, stderr)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FILE\tDOCTYPE\tISSUER\tMARK\tLINES\tTARGET")
			stats := entity.NewRunStats()
			for _, p := range args {
				abs, err := filepath.Abs(p)
				if err != nil {
					return err
				}
				text, err := a.extractor.Extract(cmd.Context(), abs)
				if err != nil {
					a.console.ExtractionFailed(filepath.Base(abs))
					a.logger.Debug("inspect extraction failed", "path", abs, "error", err)
					continue
				}
				res := a.classifier.Classify(text.Lines)
				d := rename.Plan(res, stats.NextFixID)
				if d.Quarantined {
					stats.NextFixID++
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d/%d\t%s\n",
					filepath.Base(abs), res.DocType, res.Issuer, res.Mark, res.Scanned, len(text.Lines), d.Target)
			}
			return tw.Flush()
		},
	}
}
