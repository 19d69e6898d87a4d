package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"
)

// stderrLogLimit caps how much converter diagnostics end up in one log record.
const stderrLogLimit = 4 << 10

// Runner executes an external converter and returns what it wrote. Tests
// replace it to avoid needing pdftotext on the machine.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct {
	logger *slog.Logger
}

func (r execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var diag bytes.Buffer
	cmd.Stderr = &diag

	began := time.Now()
	out, err := cmd.Output()
	attrs := []slog.Attr{
		slog.String("converter", name),
		slog.String("input", inputArg(args)),
		slog.Int64("duration_ms", time.Since(began).Milliseconds()),
	}

	switch {
	case errors.Is(err, exec.ErrNotFound):
		err = fmt.Errorf("%s is not installed or not on PATH: %w", name, err)
		r.logger.LogAttrs(ctx, slog.LevelError, "converter missing", append(attrs, slog.Any("error", err))...)
	case err != nil:
		r.logger.LogAttrs(ctx, slog.LevelWarn, "converter failed", append(attrs,
			slog.Any("error", err),
			slog.String("stderr", clip(strings.TrimSpace(diag.String()), stderrLogLimit)),
		)...)
	default:
		r.logger.LogAttrs(ctx, slog.LevelDebug, "converter ok", append(attrs,
			slog.Int("stdout_bytes", len(out)),
			slog.Int("stderr_bytes", diag.Len()),
		)...)
	}
	return out, diag.Bytes(), err
}

// inputArg picks the document path out of a pdftotext argument list, which
// always ends with "<path> -".
func inputArg(args []string) string {
	if len(args) >= 2 && args[len(args)-1] == "-" {
		return args[len(args)-2]
	}
	return strings.Join(args, " ")
}

// clip shortens s to at most n bytes without splitting a UTF-8 sequence.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}
