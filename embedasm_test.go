package embedasm

import (
	"bytes"
	"testing"

	"github.com/wippyai/embedasm/embed"
	"github.com/wippyai/embedasm/platform"
	"github.com/wippyai/embedasm/verify"
)

type closeTracker struct {
	bytes.Buffer
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestEmitLeavesStreamOpen(t *testing.T) {
	var out closeTracker
	target := platform.MustParseTarget("linux/arm64")
	b := &embed.Blob{Name: "blob", Data: []byte("hello, assembler")}

	if err := Emit(&out, target, b); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if out.closed {
		t.Error("Emit closed the output stream")
	}
	if err := verify.Blob(out.String(), target, b); err != nil {
		t.Errorf("verify: %v", err)
	}
}

func TestEmitRejectsUnknownArch(t *testing.T) {
	var out bytes.Buffer
	err := Emit(&out, platform.Target{OS: platform.OSLinux}, &embed.Blob{Name: "blob"})
	if err == nil {
		t.Fatal("expected error")
	}
	if out.Len() != 0 {
		t.Errorf("wrote %d bytes", out.Len())
	}
}
