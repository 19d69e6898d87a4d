package rename

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joseph-ayodele/docsort/internal/common"
)

// Renamer executes decisions on the filesystem.
type Renamer struct {
	dryRun bool
	logger *slog.Logger
}

func NewRenamer(dryRun bool, logger *slog.Logger) *Renamer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renamer{dryRun: dryRun, logger: logger}
}

// Apply renames dir/source to dir/d.Target and returns the new path. The
// rename is an atomic replace: an existing file with the target name is
// overwritten without warning, so two documents that classify identically
// in the same directory leave only the last one.
func (r *Renamer) Apply(dir, source string, d Decision) (string, error) {
	from := filepath.Join(dir, source)
	to := filepath.Join(dir, d.Target)
	if r.dryRun {
		r.logger.Debug("dry run: rename skipped", "from", from, "to", to)
		return to, nil
	}
	if from != to {
		if _, err := os.Lstat(to); err == nil {
			r.logger.Warn("rename target exists and will be replaced", "from", from, "to", to)
		}
	}
	if err := os.Rename(from, to); err != nil {
		r.logger.Error("rename failed", "from", from, "to", to, "error", err)
		return "", common.NewAppError(common.CodeIO, "rename "+from, err)
	}
	r.logger.Debug("renamed", "from", from, "to", to, "quarantined", d.Quarantined)
	return to, nil
}
