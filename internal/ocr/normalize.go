package ocr

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Normalize repairs invalid UTF-8 and composes the text to NFC so that
// diacritics compare equal whether the PDF stored them precomposed or as
// combining marks. Line content is otherwise left as extracted.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "\uFFFD")
	}
	return norm.NFC.String(s)
}

// SplitLines splits on line feeds only. Carriage returns and form feeds stay
// part of the line.
func SplitLines(s string) []string {
	return strings.Split(s, "\n")
}
