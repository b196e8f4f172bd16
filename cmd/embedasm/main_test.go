package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wippyai/embedasm/config"
	"github.com/wippyai/embedasm/embed"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"linux/amd64", []string{"linux/amd64"}},
		{" linux/amd64, darwin/arm64 ,,", []string{"linux/amd64", "darwin/arm64"}},
	}
	for _, tt := range tests {
		got := splitList(tt.in)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
			t.Errorf("splitList(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSymbolSummary(t *testing.T) {
	got := symbolSummary(&embed.Blob{Name: "b", Data: []byte{1}})
	if len(got) != 3 {
		t.Errorf("data only: got %v", got)
	}
	got = symbolSummary(&embed.Blob{Name: "b", Data: []byte{1}, Code: []byte{2}})
	if len(got) != 6 || got[3] != "b_code" {
		t.Errorf("with code: got %v", got)
	}
}

func TestApplyFlagsOverManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "embed.yaml")
	src := "name: from_manifest\ntargets: [linux/amd64]\nverify: true\nconcurrency: 2\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := newFlagSet("embedasm", flag.ContinueOnError)
	args := []string{"-config", path, "-blob", "snap.bin", "-target", "darwin/arm64, windows/amd64", "-j", "5", "-v"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m, err := manifest(stringFlag(fs, "config"))
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	applyFlags(m, fs)

	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if m.Blob != "snap.bin" {
		t.Errorf("Blob: got %q, want snap.bin", m.Blob)
	}
	if m.Name != "from_manifest" {
		t.Errorf("Name: got %q, want from_manifest", m.Name)
	}
	if strings.Join(m.Targets, "|") != "darwin/arm64|windows/amd64" {
		t.Errorf("Targets: got %v", m.Targets)
	}
	if !m.Verify {
		t.Error("Verify: manifest value lost")
	}
	if m.Concurrency != 5 {
		t.Errorf("Concurrency: got %d, want 5", m.Concurrency)
	}
	if m.Log.Level != "debug" {
		t.Errorf("Log.Level: got %q, want debug", m.Log.Level)
	}
}

func TestApplyFlagsWithoutManifest(t *testing.T) {
	fs := newFlagSet("embedasm", flag.ContinueOnError)
	if err := fs.Parse([]string{"-blob", "snap.bin", "-verify=false"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m, err := manifest("")
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	applyFlags(m, fs)
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if m.Name != config.DefaultName || m.Output != config.DefaultOutput || m.Verify {
		t.Errorf("defaults: got %+v", m)
	}
}
