package constants

import "strings"

// PDFSuffix is the case-sensitive suffix of files picked up by a run.
const PDFSuffix = ".pdf"

// IsPDFName reports whether name ends in the exact ".pdf" suffix.
// "REPORT.PDF" does not qualify.
func IsPDFName(name string) bool {
	return strings.HasSuffix(name, PDFSuffix)
}

// QuarantinePrefix starts every file name that needs manual follow-up.
const QuarantinePrefix = "FIX_ME"

// Extraction engines understood by the ocr package.
const (
	EnginePdftotext = "pdftotext"
	EngineNative    = "native"
)
