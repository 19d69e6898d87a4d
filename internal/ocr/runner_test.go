package ocr

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExecRunnerMissingBinary(t *testing.T) {
	r := execRunner{logger: slog.Default()}
	_, _, err := r.Run(context.Background(), "docsort-no-such-converter", "/data/a.pdf", "-")
	if !errors.Is(err, exec.ErrNotFound) {
		t.Fatalf("err = %v, want exec.ErrNotFound", err)
	}
	if !strings.Contains(err.Error(), "not installed") {
		t.Fatalf("err = %q", err)
	}
}

func TestInputArg(t *testing.T) {
	if got := inputArg([]string{"-enc", "UTF-8", "/data/a b.pdf", "-"}); got != "/data/a b.pdf" {
		t.Fatalf("inputArg = %q", got)
	}
	if got := inputArg([]string{"-v"}); got != "-v" {
		t.Fatalf("inputArg = %q", got)
	}
}

func TestClip(t *testing.T) {
	if got := clip("short", 10); got != "short" {
		t.Fatalf("clip = %q", got)
	}
	// "Syntax Error: Žiadosť", byte 15 falls inside "Ž"
	got := clip("Syntax Error: Žiadosť", 15)
	if !utf8.ValidString(got) || got != "Syntax Error: …" {
		t.Fatalf("clip = %q", got)
	}
}
