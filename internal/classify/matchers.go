package classify

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/docsort/constants"
	"github.com/joseph-ayodele/docsort/internal/entity"
)

const (
	// word mirrors a Unicode-aware \w: executor names carry diacritics.
	word = `[\p{L}\p{N}_]+`
	// space mirrors a Unicode-aware \s. Typeset text puts U+00A0 after
	// titles and between a case marker and its number.
	space = `[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`
)

var (
	reDocType  = compileDocTypes(constants.DocTypes)
	reCourt    = regexp.MustCompile(`:OS` + space + `*([\p{L}\p{N}_]{2}\d*):`)
	reExecutor = regexp.MustCompile(`JUDr\.` + space + `*(` + word + `)` + space + `(` + word + `)(,?` + space + `*.*)`)
	reExMark   = regexp.MustCompile(`(E[xX])` + space + `+(\d+/\d+)`)
	// An appendix is a bare digit group after a dash. A second D/DDDD
	// segment after the dash is not recognised.
	reErMark = regexp.MustCompile(`(\d+E[rR]/\d+/\d+)(` + space + `*[-–]` + space + `*)?(\d+)?`)
)

func compileDocTypes(types []constants.DocType) *regexp.Regexp {
	alts := make([]string, 0, len(types))
	for _, dt := range types {
		alts = append(alts, regexp.QuoteMeta(dt.Phrase))
	}
	return regexp.MustCompile("(" + strings.Join(alts, "|") + ")")
}

// MatchDocType returns the slug of the first title phrase on line. Lines
// carrying the exclusion boilerplate never match.
func MatchDocType(line string) (string, bool) {
	m := reDocType.FindStringSubmatch(line)
	if m == nil || strings.Contains(line, constants.DocTypeExclusion) {
		return "", false
	}
	return constants.SlugFor(m[1])
}

// MatchCourt returns the district code embedded as ":OS<code>:".
func MatchCourt(line string) (string, bool) {
	m := reCourt.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExecutorName is the name following a "JUDr." title, in text order.
type ExecutorName struct {
	Given   string
	Surname string
}

// Normalized returns "Surname Given" with hyphens removed, the form the
// executor table is keyed by.
func (n ExecutorName) Normalized() string {
	return strings.TrimSpace(strings.ReplaceAll(n.Surname, "-", "") + " " + strings.ReplaceAll(n.Given, "-", ""))
}

// MatchExecutor returns the two name tokens after a "JUDr." title.
func MatchExecutor(line string) (ExecutorName, bool) {
	m := reExecutor.FindStringSubmatch(line)
	if m == nil {
		return ExecutorName{}, false
	}
	return ExecutorName{Given: m[1], Surname: m[2]}, true
}

// MatchExMark returns an executor case mark: "Ex 123/2020" -> "Ex-123-2020".
func MatchExMark(line string) (string, bool) {
	m := reExMark.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return strings.ReplaceAll(m[1]+"/"+m[2], "/", "-"), true
}

// MatchErMark returns a court case mark: "456Er/78/2020-9" -> "456Er-78-2020-9".
// A dash with no digits after it still contributes a trailing hyphen.
func MatchErMark(line string) (string, bool) {
	idx := reErMark.FindStringSubmatchIndex(line)
	if idx == nil {
		return "", false
	}
	mark := line[idx[2]:idx[3]]
	if idx[4] >= 0 {
		mark += "-"
	}
	if idx[6] >= 0 {
		mark += line[idx[6]:idx[7]]
	}
	return strings.ReplaceAll(mark, "/", "-"), true
}

// ResolveCourt maps a district code to a court issuer ("BA1" -> "OSBA1").
func ResolveCourt(code string, districts entity.DistrictTable) (string, bool) {
	if !districts.Contains(code) {
		return "", false
	}
	return constants.CourtIssuerPrefix + code, true
}

// ResolveExecutor finds the first table row containing the normalized name
// and returns its nominative form with spaces replaced by hyphens.
func ResolveExecutor(name ExecutorName, executors entity.ExecutorTable) (string, bool) {
	key := name.Normalized()
	for i, rec := range executors {
		if !strings.Contains(rec.Name, key) {
			continue
		}
		nom, ok := executors.Nominative(i)
		if !ok {
			return "", false
		}
		return strings.ReplaceAll(nom.Name, " ", "-"), true
	}
	return "", false
}
