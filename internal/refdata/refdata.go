// Package refdata loads the two reference tables the classifier matches
// against: the executor name table and the district plate-code table.
package refdata

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joseph-ayodele/docsort/internal/common"
)

const (
	executorDelimiter = ","

	districtDelimiter     = ","
	districtCodeDelimiter = ";"
	districtCodeColumn    = 2
)

// Loader reads reference tables from disk.
type Loader struct {
	logger *slog.Logger
}

func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// eachLine calls fn for every non-blank line of path with its 1-based number.
func eachLine(path string, fn func(n int, line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return common.NewAppError(common.CodeIO, "open "+path, err)
	}
	defer f.Close()
	return scanLines(f, path, fn)
}

func scanLines(r io.Reader, name string, fn func(n int, line string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	n := 0
	for sc.Scan() {
		n++
		line := sc.Text()
		if n == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := fn(n, line); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return common.NewAppError(common.CodeIO, "read "+name, err)
	}
	return nil
}

func formatError(name string, line int, msg string, cause error) error {
	return common.NewAppError(common.CodeFormat, fmt.Sprintf("%s:%d: %s", name, line, msg), cause)
}
