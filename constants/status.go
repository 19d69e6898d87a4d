package constants

// OutcomeStatus is the terminal state of a single file in a run.
type OutcomeStatus string

// Stable values (stored as-is in the journal and the XLSX report).
const (
	OutcomeResolved         OutcomeStatus = "RESOLVED"          // renamed to doctype_issuer_mark.pdf
	OutcomeQuarantined      OutcomeStatus = "QUARANTINED"       // renamed to FIX_ME<n>_...
	OutcomeExtractionFailed OutcomeStatus = "EXTRACTION_FAILED" // file left untouched
)
