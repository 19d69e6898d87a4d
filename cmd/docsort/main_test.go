package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/docsort/internal/common"
)

// pdfStub answers pdftotext calls with canned text keyed by file base name.
type pdfStub struct {
	docs map[string]string
}

func (s pdfStub) Run(_ context.Context, _ string, args ...string) ([]byte, []byte, error) {
	// pdftotext ... <path> -
	path := args[len(args)-2]
	text, ok := s.docs[filepath.Base(path)]
	if !ok {
		return nil, []byte("Syntax Error: Couldn't read xref table"), errors.New("exit status 1")
	}
	return []byte(text), nil, nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func setup(t *testing.T) (root, config string) {
	t.Helper()
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "data", "executors.csv"),
		"Novák Peter\nHojdová Soňa\nHojdovej Soni,1\n")
	writeFile(t, filepath.Join(base, "data", "districts.csv"),
		"Bratislava I,Bratislavský,BA1;BA\n")
	config = filepath.Join(base, "config.json")
	writeFile(t, config, `{"sources": {"executors": "data/executors.csv", "districts": "data/districts.csv"}}`)

	root = filepath.Join(base, "docs")
	writeFile(t, filepath.Join(root, "scan1.pdf"), "%PDF")
	writeFile(t, filepath.Join(root, "notes.txt"), "not a pdf")
	writeFile(t, filepath.Join(root, "sub", "scan2.pdf"), "%PDF")
	writeFile(t, filepath.Join(root, "sub", "broken.pdf"), "%PDF")
	return root, config
}

var docs = map[string]string{
	"scan1.pdf": "JUDr. Soni Hojdovej, súdny exekútor\nEXEKUČNÝ PRÍKAZ\nEx 12/2020\n",
	"scan2.pdf": "UZNESENIE\nnic dalsie\n",
}

func TestRunSortsTree(t *testing.T) {
	root, config := setup(t)
	report := filepath.Join(t.TempDir(), "run.xlsx")
	journal := filepath.Join(t.TempDir(), "journal.db")

	var stdout, stderr bytes.Buffer
	err := runSort(context.Background(),
		globalOptions{config: config, noColor: true, runner: pdfStub{docs: docs}},
		sortOptions{input: root, report: report, journal: journal},
		&stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, stderr.String())
	}

	for _, name := range []string{
		filepath.Join(root, "ep_Hojdová-Soňa_Ex-12-2020.pdf"),
		filepath.Join(root, "notes.txt"),
		filepath.Join(root, "sub", "FIX_ME1_uznesenie__.pdf"),
		filepath.Join(root, "sub", "broken.pdf"),
	} {
		if _, err := os.Stat(name); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}

	out := stdout.String()
	for _, want := range []string{
		"DIR: " + root,
		"Renaming scan1.pdf to -> ep_Hojdová-Soňa_Ex-12-2020.pdf",
		"Could not transform the document " + filepath.Join(root, "sub", "scan2.pdf"),
		"FATAL: could not read the file 'broken.pdf'.",
		"There are 1 entries out of 2 which were processed.",
		"Finished: ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout missing %q:\n%s", want, out)
		}
	}

	f, err := excelize.OpenFile(report)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	defer f.Close()
	rows, _ := f.GetRows("Outcomes")
	if len(rows) != 4 {
		t.Errorf("report rows = %d, want 4", len(rows))
	}
	if _, err := os.Stat(journal); err != nil {
		t.Errorf("journal not created: %v", err)
	}
}

func TestRunDryRunKeepsNames(t *testing.T) {
	root, config := setup(t)
	var stdout, stderr bytes.Buffer
	err := runSort(context.Background(),
		globalOptions{config: config, noColor: true, runner: pdfStub{docs: docs}},
		sortOptions{input: root, dryRun: true},
		&stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "scan1.pdf")); err != nil {
		t.Errorf("dry run renamed scan1.pdf: %v", err)
	}
	if !strings.Contains(stdout.String(), "Dry run") {
		t.Errorf("dry run not announced:\n%s", stdout.String())
	}
}

func TestRunFatalErrors(t *testing.T) {
	root, config := setup(t)
	missing := filepath.Join(t.TempDir(), "nope")

	badRef := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, filepath.Join(filepath.Dir(badRef), "ex.csv"), "Novák Peter,5\n")
	writeFile(t, filepath.Join(filepath.Dir(badRef), "di.csv"), "Bratislava I,Bratislavský,BA1\n")
	writeFile(t, badRef, `{"sources": {"executors": "ex.csv", "districts": "di.csv"}}`)

	tests := []struct {
		name  string
		g     globalOptions
		input string
		want  error
	}{
		{"missing input", globalOptions{config: config}, missing, common.ErrInvalidInput},
		{"missing config", globalOptions{config: missing}, root, common.ErrConfig},
		{"bad engine", globalOptions{config: config, engine: "tesseract"}, root, common.ErrConfig},
		{"bad log level", globalOptions{config: config, logLevel: "loud"}, root, common.ErrConfig},
		{"bad reference data", globalOptions{config: badRef}, root, common.ErrFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			tt.g.runner = pdfStub{docs: docs}
			err := runSort(context.Background(), tt.g, sortOptions{input: tt.input}, &stdout, &stderr)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if !common.IsFatal(err) {
				t.Fatalf("err %v is not fatal", err)
			}
			if _, statErr := os.Stat(filepath.Join(root, "scan1.pdf")); statErr != nil {
				t.Fatalf("files touched before a fatal error: %v", statErr)
			}
		})
	}
}

func TestRootCommandRequiresInput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr, pdfStub{docs: docs})
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestInspectCommand(t *testing.T) {
	root, config := setup(t)
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr, pdfStub{docs: docs})
	cmd.SetArgs([]string{"inspect", "--config", config, "--no-color",
		filepath.Join(root, "scan1.pdf"),
		filepath.Join(root, "sub", "scan2.pdf"),
		filepath.Join(root, "sub", "broken.pdf"),
	})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	out := stdout.String()
	for _, want := range []string{
		"ep_Hojdová-Soňa_Ex-12-2020.pdf",
		"FIX_ME1_uznesenie__.pdf",
		"FATAL: could not read the file 'broken.pdf'.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "scan1.pdf")); err != nil {
		t.Errorf("inspect renamed a file: %v", err)
	}
}

func TestJournalCommand(t *testing.T) {
	root, config := setup(t)
	journal := filepath.Join(t.TempDir(), "journal.db")
	var stdout, stderr bytes.Buffer
	err := runSort(context.Background(),
		globalOptions{config: config, noColor: true, runner: pdfStub{docs: docs}},
		sortOptions{input: root, journal: journal},
		&stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	stdout.Reset()
	cmd := newRootCmd(&stdout, &stderr, nil)
	cmd.SetArgs([]string{"journal", "--journal", journal, "--status", "EXTRACTION_FAILED"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("journal: %v", err)
	}
	out := stdout.String()
	for _, want := range []string{
		"journal (sqlite3): OK",
		"root=" + root,
		"dirs=2 entries=2 ok=1 quarantined=1 failed=1",
		"broken.pdf",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "scan1.pdf") {
		t.Errorf("status filter ignored:\n%s", out)
	}
}
