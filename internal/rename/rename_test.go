package rename

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joseph-ayodele/docsort/internal/classify"
)

func TestPlanResolved(t *testing.T) {
	d := Plan(classify.Result{DocType: "ep", Issuer: "OSBA1", Mark: "Ex-1-2020"}, 7)
	if d.Quarantined || d.Target != "ep_OSBA1_Ex-1-2020.pdf" || d.FixID != 0 {
		t.Fatalf("decision = %+v", d)
	}
}

func TestPlanQuarantine(t *testing.T) {
	cases := []struct {
		res  classify.Result
		id   uint32
		want string
	}{
		{classify.Result{DocType: "ep"}, 1, "FIX_ME1_ep__.pdf"},
		{classify.Result{DocType: "ep"}, 2, "FIX_ME2_ep__.pdf"},
		{classify.Result{Issuer: "OSKE", Mark: "Ex-1-2"}, 3, "FIX_ME3__OSKE_Ex-1-2.pdf"},
		{classify.Result{}, 10, "FIX_ME10___.pdf"},
	}
	for _, c := range cases {
		d := Plan(c.res, c.id)
		if !d.Quarantined || d.Target != c.want || d.FixID != c.id {
			t.Errorf("Plan(%+v, %d) = %+v, want %q", c.res, c.id, d, c.want)
		}
	}
}

func TestRenamerApply(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "scan.pdf"), []byte("new"), 0o644)
	os.WriteFile(filepath.Join(dir, "ep_OSBA1_Ex-1-2020.pdf"), []byte("old"), 0o644)

	got, err := NewRenamer(false, nil).Apply(dir, "scan.pdf", Decision{Target: "ep_OSBA1_Ex-1-2020.pdf"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got != filepath.Join(dir, "ep_OSBA1_Ex-1-2020.pdf") {
		t.Fatalf("path = %s", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "scan.pdf")); !os.IsNotExist(err) {
		t.Fatalf("source still present: %v", err)
	}
	b, _ := os.ReadFile(got)
	if string(b) != "new" {
		t.Fatalf("existing target was not replaced: %q", b)
	}
}

func TestRenamerDryRun(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "scan.pdf"), []byte("x"), 0o644)
	if _, err := NewRenamer(true, nil).Apply(dir, "scan.pdf", Decision{Target: "FIX_ME1___.pdf"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "scan.pdf")); err != nil {
		t.Fatalf("dry run touched the file: %v", err)
	}
}

func TestRenamerMissingSource(t *testing.T) {
	_, err := NewRenamer(false, nil).Apply(t.TempDir(), "gone.pdf", Decision{Target: "a.pdf"})
	if err == nil {
		t.Fatalf("expected error")
	}
}
