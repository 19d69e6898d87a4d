package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidationError represents validation failures
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// ValidateInputDir checks that root is an existing directory that is both
// readable and writable and returns its absolute path.
func ValidateInputDir(root string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", NewAppError(CodeInputPath, "input directory is required",
			ValidationError{Field: "input", Value: root, Message: "empty"})
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", NewAppError(CodeInputPath, fmt.Sprintf("'%s' is not a valid path", root), err)
	}
	st, err := os.Stat(abs)
	if err != nil || !st.IsDir() {
		return "", NewAppError(CodeInputPath, fmt.Sprintf("'%s' is not a valid path", root),
			ValidationError{Field: "input", Value: root, Message: "not a directory"})
	}
	if err := canReadWrite(abs, st); err != nil {
		return "", NewAppError(CodeInputPath, fmt.Sprintf("'%s' is not both a readable and writable directory", root), err)
	}
	return abs, nil
}
