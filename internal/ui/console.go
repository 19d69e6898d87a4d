// Package ui prints run progress for a person watching the terminal.
package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/joseph-ayodele/docsort/internal/entity"
)

// Console implements ingest.Reporter on a terminal.
type Console struct {
	out    io.Writer
	green  *color.Color
	yellow *color.Color
	red    *color.Color
}

// NewConsole writes to out. Colors follow fatih/color's terminal detection
// unless noColor forces them off.
func NewConsole(out io.Writer, noColor bool) *Console {
	c := &Console{
		out:    out,
		green:  color.New(color.FgHiGreen),
		yellow: color.New(color.FgHiYellow),
		red:    color.New(color.FgHiRed),
	}
	if noColor {
		for _, col := range []*color.Color{c.green, c.yellow, c.red} {
			col.DisableColor()
		}
	}
	return c
}

func (c *Console) Directory(path string) {
	c.green.Fprintf(c.out, "DIR: %s\n", path)
}

func (c *Console) Renamed(source, target string) {
	c.yellow.Fprintf(c.out, "Renaming %s to -> %s\n", source, target)
}

func (c *Console) Quarantined(path string) {
	c.red.Fprintf(c.out, "Could not transform the document %s, please update manually.\n", path)
}

func (c *Console) ExtractionFailed(name string) {
	c.red.Fprintf(c.out, "FATAL: could not read the file '%s'.\n", name)
}

// Summary prints the success ratio and the elapsed time.
func (c *Console) Summary(stats entity.RunStats, elapsed time.Duration) {
	fmt.Fprintf(c.out, "There are %d entries out of %d which were processed.\n", stats.OK, stats.Entries)
	if stats.Failed > 0 {
		c.red.Fprintf(c.out, "%d file(s) could not be read.\n", stats.Failed)
	}
	c.green.Fprintf(c.out, "Finished: %.3f s\n", elapsed.Seconds())
}

// DryRun announces that no file will be renamed.
func (c *Console) DryRun() {
	c.yellow.Fprintln(c.out, "Dry run: files will not be renamed.")
}

// Fatal prints a startup or run error.
func (c *Console) Fatal(err error) {
	c.red.Fprintf(c.out, "%v\n", err)
}
