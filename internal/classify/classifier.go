// Package classify extracts the document type, the issuing court or
// executor, and the case mark from the text lines of a legal document.
package classify

import (
	"log/slog"

	"github.com/joseph-ayodele/docsort/internal/entity"
)

// Classifier matches text lines against the reference tables.
type Classifier struct {
	executors entity.ExecutorTable
	districts entity.DistrictTable
	logger    *slog.Logger
}

func New(executors entity.ExecutorTable, districts entity.DistrictTable, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{executors: executors, districts: districts, logger: logger}
}

// Classify is a convenience wrapper around New(...).Classify.
func Classify(lines []string, executors entity.ExecutorTable, districts entity.DistrictTable) Result {
	return New(executors, districts, nil).Classify(lines)
}

// Classify scans lines in order. Every line is tried against doctype, court,
// executor, Ex mark and Er mark, in that order. Scanning stops after the
// first line that leaves all three fields set.
func (c *Classifier) Classify(lines []string) Result {
	var res Result
	for i, line := range lines {
		res.Scanned = i + 1
		c.scanLine(line, &res)
		if res.Complete() {
			break
		}
	}
	c.logger.Debug("classified",
		"doctype", res.DocType,
		"issuer", res.Issuer,
		"mark", res.Mark,
		"lines", len(lines),
		"scanned", res.Scanned,
	)
	return res
}

func (c *Classifier) scanLine(line string, res *Result) {
	if slug, ok := MatchDocType(line); ok && res.DocType == "" {
		res.SetDocType(slug)
	}
	if code, ok := MatchCourt(line); ok && res.Issuer == "" {
		if issuer, ok := ResolveCourt(code, c.districts); ok {
			res.SetIssuer(issuer)
		}
	}
	if name, ok := MatchExecutor(line); ok && res.Issuer == "" {
		if issuer, ok := ResolveExecutor(name, c.executors); ok {
			res.SetIssuer(issuer)
		} else {
			c.logger.Debug("executor not in table", "name", name.Normalized())
		}
	}
	if mark, ok := MatchExMark(line); ok && res.Mark == "" {
		res.SetMark(mark)
	}
	if mark, ok := MatchErMark(line); ok && res.Mark == "" {
		res.SetMark(mark)
	}
}
