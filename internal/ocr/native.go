package ocr

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rotisserie/eris"
)

// nativeText reads the embedded text layer without any external binary.
// Scanned (image-only) PDFs come back empty and end up quarantined.
func (e *Extractor) nativeText(path string) (text string, pages int, warnings []string, err error) {
	defer func() {
		// the parser panics on some malformed files
		if r := recover(); r != nil {
			err = eris.Errorf("parse %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", 0, nil, eris.Wrapf(err, "open pdf %s", path)
	}
	defer func() { _ = f.Close() }()

	pages = r.NumPage()
	limit := pages
	if e.cfg.MaxPages > 0 && limit > e.cfg.MaxPages {
		limit = e.cfg.MaxPages
	}

	fonts := make(map[string]*pdf.Font)
	var b strings.Builder
	for i := 1; i <= limit; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			warnings = append(warnings, fmt.Sprintf("page %d is empty", i))
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				f2 := p.Font(name)
				fonts[name] = &f2
			}
		}
		content, pageErr := p.GetPlainText(fonts)
		if pageErr != nil {
			warnings = append(warnings, fmt.Sprintf("page %d: %v", i, pageErr))
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(content)
	}
	return b.String(), pages, warnings, nil
}
