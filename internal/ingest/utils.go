package ingest

import (
	"io/fs"

	"github.com/joseph-ayodele/docsort/constants"
)

// IsCandidate reports whether a directory entry is a regular file with the
// exact ".pdf" suffix.
func IsCandidate(d fs.DirEntry) bool {
	return d.Type().IsRegular() && constants.IsPDFName(d.Name())
}
