package refdata

import (
	"io"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/docsort/internal/entity"
)

// LoadExecutors reads the executor table. Names are stored surname first.
// A row may also be an inflected form of the previous nominative row, in
// which case it carries the backward offset to it:
//
//	Hojdová Soňa
//	Hojdovej Soni,1
//	Hojdovú Soňu,2
func (l *Loader) LoadExecutors(path string) (entity.ExecutorTable, error) {
	var table entity.ExecutorTable
	err := eachLine(path, func(n int, line string) error {
		rec, err := parseExecutor(path, n, line, len(table), table)
		if err != nil {
			return err
		}
		table = append(table, rec)
		return nil
	})
	if err != nil {
		l.logger.Error("failed to load executors", "path", path, "error", err)
		return nil, err
	}
	l.logger.Debug("executors loaded", "path", path, "records", len(table))
	return table, nil
}

// ParseExecutors is LoadExecutors over an arbitrary reader.
func ParseExecutors(r io.Reader, name string) (entity.ExecutorTable, error) {
	var table entity.ExecutorTable
	err := scanLines(r, name, func(n int, line string) error {
		rec, err := parseExecutor(name, n, line, len(table), table)
		if err != nil {
			return err
		}
		table = append(table, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

func parseExecutor(name string, n int, line string, index int, prev entity.ExecutorTable) (entity.ExecutorRecord, error) {
	fields := strings.Split(strings.TrimSpace(line), executorDelimiter)
	rec := entity.ExecutorRecord{Name: strings.TrimSpace(fields[0])}
	if rec.Name == "" {
		return rec, formatError(name, n, "empty executor name", nil)
	}
	switch len(fields) {
	case 1:
		return rec, nil
	case 2:
	default:
		return rec, formatError(name, n, "expected \"name\" or \"name,offset\"", nil)
	}

	off, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return rec, formatError(name, n, "case offset is not a number", err)
	}
	if off < 0 || off > index {
		return rec, formatError(name, n, "case offset "+strconv.Itoa(off)+" points outside the table", nil)
	}
	if off > 0 && !prev[index-off].IsNominative() {
		return rec, formatError(name, n, "case offset "+strconv.Itoa(off)+" does not point to a nominative row", nil)
	}
	rec.CaseOffset = off
	return rec, nil
}
