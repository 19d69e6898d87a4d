package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/docsort/constants"
)

// Outcome is the per-file result of a run, for data transfer between the
// orchestrator, the journal and the report.
type Outcome struct {
	ID         uuid.UUID               `json:"id"`
	Dir        string                  `json:"dir"`
	SourceName string                  `json:"source_name"`
	TargetName string                  `json:"target_name,omitempty"`
	Status     constants.OutcomeStatus `json:"status"`
	DocType    string                  `json:"doctype,omitempty"`
	Issuer     string                  `json:"issuer,omitempty"`
	Mark       string                  `json:"mark,omitempty"`
	Err        string                  `json:"error,omitempty"`
	RecordedAt time.Time               `json:"recorded_at"`
}

// RunStats are the aggregate counters of one run.
type RunStats struct {
	Dirs      uint32 // directories visited
	Entries   uint32 // files whose text was extracted
	OK        uint32 // files renamed to their canonical name
	Failed    uint32 // files whose extraction failed
	NextFixID uint32 // next quarantine id, starts at 1
}

// NewRunStats returns counters with the quarantine sequence at 1.
func NewRunStats() RunStats {
	return RunStats{NextFixID: 1}
}

// Quarantined is the number of quarantine ids handed out so far.
func (s RunStats) Quarantined() uint32 {
	if s.NextFixID == 0 {
		return 0
	}
	return s.NextFixID - 1
}

// Run describes one invocation for the journal.
type Run struct {
	ID         uuid.UUID  `json:"id"`
	Root       string     `json:"root"`
	DryRun     bool       `json:"dry_run"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Stats      RunStats   `json:"stats"`
}
