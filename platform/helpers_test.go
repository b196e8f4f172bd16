package platform

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wippyai/embedasm/errors"
)

// emit runs fn between the prologue and epilogue of a fresh writer for
// target and returns the produced text.
func emit(t *testing.T, target string, fn func(w Writer)) string {
	t.Helper()
	var buf bytes.Buffer
	w := New(MustParseTarget(target))
	w.Open(&buf)
	w.FilePrologue()
	fn(w)
	w.FileEpilogue()
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return buf.String()
}

// emitBody is like emit but drops prologue and epilogue text.
func emitBody(t *testing.T, target string, fn func(w Writer)) string {
	t.Helper()
	var buf bytes.Buffer
	w := New(MustParseTarget(target))
	w.Open(&buf)
	w.FilePrologue()
	buf.Reset()
	fn(w)
	return buf.String()
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// expectFault asserts fn panics with an *errors.Error of the given kind.
func expectFault(t *testing.T, kind errors.Kind, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected %s fault, got none", kind)
		}
		e, ok := r.(*errors.Error)
		if !ok {
			t.Fatalf("expected *errors.Error panic, got %T: %v", r, r)
		}
		if e.Kind != kind {
			t.Fatalf("fault kind: got %s, want %s (%v)", e.Kind, kind, e)
		}
	}()
	fn()
}
