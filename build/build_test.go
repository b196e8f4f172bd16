package build

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wippyai/embedasm/embed"
	"github.com/wippyai/embedasm/errors"
	"github.com/wippyai/embedasm/platform"
	"github.com/wippyai/embedasm/verify"
)

func testBlob() *embed.Blob {
	data := make([]byte, 300)
	for i := range data {
		data[i] = byte(i)
	}
	return &embed.Blob{
		Name: "blob",
		Data: data,
		Code: data[:64],
		Functions: []embed.Function{
			{Name: "Entry", Offset: 0, Size: 48},
		},
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		template string
		target   string
		want     string
	}{
		{"embedded_{target}{ext}", "linux/amd64", "embedded_linux_amd64.S"},
		{"embedded_{target}{ext}", "windows/amd64", "embedded_windows_amd64.asm"},
		{"embedded_{target}{ext}", "windows/arm64/gnu", "embedded_windows_arm64_gnu.S"},
		{"{os}/{arch}/blob{ext}", "aix/ppc64", "aix/ppc64/blob.s"},
		{"blob-{toolchain}.txt", "linux/arm", "blob-.txt"},
		{"fixed.S", "darwin/arm64", "fixed.S"},
	}
	for _, tt := range tests {
		got := OutputPath(tt.template, platform.MustParseTarget(tt.target))
		if got != tt.want {
			t.Errorf("OutputPath(%q, %s): got %q, want %q", tt.template, tt.target, got, tt.want)
		}
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	target := platform.MustParseTarget("darwin/arm64")
	path := filepath.Join(dir, "blob.S")
	b := testBlob()

	if err := WriteFile(context.Background(), Job{Target: target, Path: path}, b, WithVerify(true)); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	text, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if err := verify.Blob(string(text), target, b); err != nil {
		t.Errorf("verify: %v", err)
	}
	assertOnlyFiles(t, dir, "blob.S")
}

func TestWriteFileRemovesTempOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.S")
	job := Job{Target: platform.MustParseTarget("linux/amd64"), Path: path}

	err := WriteFile(context.Background(), job, &embed.Blob{Name: "bad name"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	assertOnlyFiles(t, dir)
}

func TestWriteFileCanceled(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	job := Job{Target: platform.MustParseTarget("linux/amd64"), Path: filepath.Join(dir, "blob.S")}
	if err := WriteFile(ctx, job, testBlob()); !stderrors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	assertOnlyFiles(t, dir)
}

func TestUndeterminedPointerWidthRejected(t *testing.T) {
	target := platform.Target{OS: platform.OSLinux, Arch: platform.ArchUnknown}
	_, err := Render(target, testBlob())
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindUnsupported {
		t.Errorf("got %v, want unsupported", err)
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	var targets []platform.Target
	for _, target := range platform.KnownTargets() {
		if target.PointerSize() > 0 {
			targets = append(targets, target)
		}
	}
	jobs := Jobs(filepath.Join(dir, "embedded_{target}{ext}"), targets)

	err := Generate(context.Background(), testBlob(), jobs, WithVerify(true), WithConcurrency(4))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, j := range jobs {
		if _, err := os.Stat(j.Path); err != nil {
			t.Errorf("%s: %v", j.Target, err)
		}
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != len(jobs) {
		t.Errorf("files: got %d, want %d", len(entries), len(jobs))
	}
}

func TestGenerateRejectsDuplicatePaths(t *testing.T) {
	dir := t.TempDir()
	jobs := Jobs(filepath.Join(dir, "same.S"), []platform.Target{
		platform.MustParseTarget("linux/amd64"),
		platform.MustParseTarget("linux/arm64"),
	})
	err := Generate(context.Background(), testBlob(), jobs)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidInput {
		t.Fatalf("got %v, want invalid input", err)
	}
	assertOnlyFiles(t, dir)
}

func TestRenderMatchesWriteFile(t *testing.T) {
	dir := t.TempDir()
	target := platform.MustParseTarget("windows/amd64")
	path := filepath.Join(dir, "blob.asm")
	b := testBlob()

	text, err := Render(target, b)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := WriteFile(context.Background(), Job{Target: target, Path: path}, b); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	onDisk, _ := os.ReadFile(path)
	if string(onDisk) != string(text) {
		t.Error("file contents differ from Render output")
	}
	if !strings.HasSuffix(string(text), "END\n") {
		t.Errorf("MASM output does not end with END: %q", text[len(text)-20:])
	}
}

type failingStream struct {
	closed bool
}

func (s *failingStream) Write(p []byte) (int, error) { return 0, stderrors.New("disk full") }
func (s *failingStream) Close() error {
	s.closed = true
	return stderrors.New("close failed")
}

func TestEmitToCombinesWriteAndCloseErrors(t *testing.T) {
	s := &failingStream{}
	err := emitTo(platform.New(platform.MustParseTarget("linux/amd64")), s, testBlob())
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"disk full", "close failed"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
	if !s.closed {
		t.Error("stream not closed")
	}
}

func assertOnlyFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, e := range entries {
		got = append(got, e.Name())
	}
	if strings.Join(got, ",") != strings.Join(names, ",") {
		t.Errorf("directory contents: got %v, want %v", got, names)
	}
}
