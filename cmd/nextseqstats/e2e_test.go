package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"nextseqstats/internal/fixture"
)

func TestE2EBinary(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary with go run")
	}
	base := t.TempDir()
	out := t.TempDir()
	fixture.WriteRun(t, base, "20200101_A", fixture.DefaultParams("20200101"), fixture.DefaultStatus())
	fixture.WriteRun(t, base, "20191231_B", fixture.DefaultParams("20191231"), fixture.DefaultStatus())
	tsv := filepath.Join(out, "runs.txt")
	html := filepath.Join(out, "runs.html")

	cmd := exec.Command("go", "run", ".", "--base", base, "--tsv", tsv, "--html", html, "--summary")
	got, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("e2e failed: %v\n%s", err, string(got))
	}
	if !strings.Contains(string(got), "Runs parsed: 2") {
		t.Fatalf("unexpected output: %s", string(got))
	}
	for _, p := range []string{tsv, html} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("missing output %s: %v", p, err)
		}
	}
}
