package refdata

import (
	"io"
	"strings"

	"github.com/joseph-ayodele/docsort/internal/entity"
)

// LoadDistricts reads the district table. The third comma-separated column
// holds the district's plate codes separated by ';' (a district may own more
// than one code).
func (l *Loader) LoadDistricts(path string) (entity.DistrictTable, error) {
	var table entity.DistrictTable
	err := eachLine(path, func(n int, line string) error {
		d, err := parseDistrict(path, n, line)
		if err != nil {
			return err
		}
		table = append(table, d)
		return nil
	})
	if err != nil {
		l.logger.Error("failed to load districts", "path", path, "error", err)
		return nil, err
	}
	l.logger.Debug("districts loaded", "path", path, "districts", len(table))
	return table, nil
}

// ParseDistricts is LoadDistricts over an arbitrary reader.
func ParseDistricts(r io.Reader, name string) (entity.DistrictTable, error) {
	var table entity.DistrictTable
	err := scanLines(r, name, func(n int, line string) error {
		d, err := parseDistrict(name, n, line)
		if err != nil {
			return err
		}
		table = append(table, d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

func parseDistrict(name string, n int, line string) (entity.District, error) {
	cols := strings.Split(line, districtDelimiter)
	if len(cols) <= districtCodeColumn {
		return nil, formatError(name, n, "missing abbreviation column", nil)
	}
	var codes []string
	for _, c := range strings.Split(cols[districtCodeColumn], districtCodeDelimiter) {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	if len(codes) == 0 {
		return nil, formatError(name, n, "empty abbreviation column", nil)
	}
	return entity.NewDistrict(codes...), nil
}
