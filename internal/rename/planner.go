// Package rename decides the target name of a classified document and
// performs the in-place rename.
package rename

import (
	"strconv"
	"strings"

	"github.com/joseph-ayodele/docsort/constants"
	"github.com/joseph-ayodele/docsort/internal/classify"
)

// Decision is the rename plan for one document.
type Decision struct {
	Target      string // base name inside the document's directory
	Quarantined bool
	FixID       uint32 // quarantine id used, 0 when resolved
}

// CanonicalName is doctype_issuer_mark.pdf.
func CanonicalName(doctype, issuer, mark string) string {
	return strings.Join([]string{doctype, issuer, mark}, "_") + constants.PDFSuffix
}

// QuarantineName is FIX_ME<id>_doctype_issuer_mark.pdf. Missing fields stay
// as empty segments, so a document with only a doctype becomes
// FIX_ME1_ep__.pdf.
func QuarantineName(id uint32, doctype, issuer, mark string) string {
	return constants.QuarantinePrefix + strconv.FormatUint(uint64(id), 10) + "_" +
		strings.Join([]string{doctype, issuer, mark}, "_") + constants.PDFSuffix
}

// Plan picks the canonical name for a complete result and a quarantine name
// using nextFixID otherwise. The caller advances its quarantine counter
// when the decision is quarantined.
func Plan(res classify.Result, nextFixID uint32) Decision {
	if res.Complete() {
		return Decision{Target: CanonicalName(res.DocType, res.Issuer, res.Mark)}
	}
	return Decision{
		Target:      QuarantineName(nextFixID, res.DocType, res.Issuer, res.Mark),
		Quarantined: true,
		FixID:       nextFixID,
	}
}
