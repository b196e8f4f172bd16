package verify

import (
	"bytes"
	stderrors "errors"
	"strconv"
	"strings"
	"testing"

	"github.com/wippyai/embedasm/embed"
	"github.com/wippyai/embedasm/errors"
	"github.com/wippyai/embedasm/platform"
)

func render(t *testing.T, target platform.Target, b *embed.Blob) string {
	t.Helper()
	var buf bytes.Buffer
	w := platform.New(target)
	w.Open(&buf)
	if err := embed.Write(w, b); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return buf.String()
}

func pattern(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i*7 + 3)
	}
	return data
}

func TestRoundTripKnownTargets(t *testing.T) {
	sizes := []int{0, 1, 4, 7, 16, 17, 33, 257}
	for _, target := range platform.KnownTargets() {
		for _, n := range sizes {
			b := &embed.Blob{Name: "blob", Data: pattern(n)}
			text := render(t, target, b)

			got, err := Data(text, target, b.Symbols().DataLabel)
			if err != nil {
				t.Fatalf("%s/%d: Data: %v", target, n, err)
			}
			if !bytes.Equal(got, b.Data) {
				t.Errorf("%s/%d: got % x, want % x", target, n, got, b.Data)
			}
			if err := Blob(text, target, b); err != nil {
				t.Errorf("%s/%d: Blob: %v", target, n, err)
			}
		}
	}
}

func TestRoundTripCode(t *testing.T) {
	code := pattern(100)
	b := &embed.Blob{
		Name:  "snapshot",
		Data:  pattern(40),
		Code:  code,
		Files: []string{"builtins.cc"},
		Functions: []embed.Function{
			{Name: "Abort", Offset: 8, Size: 20, FileID: 1, Line: 3},
			{Name: "Call", Offset: 32, Size: 33},
			{Name: "Empty", Offset: 65, Size: 0},
		},
	}
	for _, target := range platform.KnownTargets() {
		text := render(t, target, b)
		got, err := Region(text, target, b.Symbols().CodeLabel, b.Symbols().Code)
		if err != nil {
			t.Fatalf("%s: Region: %v", target, err)
		}
		if !bytes.Equal(got, code) {
			t.Errorf("%s: code mismatch\ngot  % x\nwant % x", target, got, code)
		}
		if err := Blob(text, target, b); err != nil {
			t.Errorf("%s: Blob: %v", target, err)
		}
	}
}

func TestUint32(t *testing.T) {
	for _, target := range platform.KnownTargets() {
		var buf bytes.Buffer
		w := platform.New(target)
		w.Open(&buf)
		w.FilePrologue()
		w.SectionData()
		w.DeclareUint32("answer", 42)
		w.DeclareUint32("max", 1<<32-1)
		w.FileEpilogue()
		_ = w.Close()

		for name, want := range map[string]uint32{"answer": 42, "max": 1<<32 - 1} {
			got, err := Uint32(buf.String(), target, name)
			if err != nil {
				t.Errorf("%s: Uint32(%s): %v", target, name, err)
				continue
			}
			if got != want {
				t.Errorf("%s: Uint32(%s): got %d, want %d", target, name, got, want)
			}
		}
	}
}

func TestBlobDetectsMismatch(t *testing.T) {
	target := platform.MustParseTarget("linux/amd64")
	orig := &embed.Blob{Name: "blob", Data: pattern(64)}
	text := render(t, target, orig)

	changed := &embed.Blob{Name: "blob", Data: pattern(64)}
	changed.Data[10] ^= 0xff
	err := Blob(text, target, changed)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindMismatch {
		t.Fatalf("got %v, want mismatch", err)
	}
	if e.Value != 10 {
		t.Errorf("mismatch offset: got %v, want 10", e.Value)
	}

	shorter := &embed.Blob{Name: "blob", Data: pattern(63)}
	if err := Blob(text, target, shorter); !stderrors.As(err, &e) || e.Kind != errors.KindMismatch {
		t.Errorf("length change: got %v, want mismatch", err)
	}
}

func TestBlobDetectsTamperedHash(t *testing.T) {
	target := platform.MustParseTarget("darwin/arm64")
	b := &embed.Blob{Name: "blob", Data: pattern(8)}
	text := render(t, target, b)

	sum := embed.Checksum(b.Data)
	tampered := strings.Replace(text, formatUint(sum), formatUint(sum+1), 1)
	err := Blob(tampered, target, b)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindMismatch || e.Symbol != "blob_data_hash" {
		t.Errorf("got %v, want blob_data_hash mismatch", err)
	}
}

func TestMissingLabel(t *testing.T) {
	target := platform.MustParseTarget("linux/amd64")
	_, err := Data("", target, "nothing_here")
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindNotFound {
		t.Errorf("got %v, want not found", err)
	}
	if _, err := Region("start:\n  .byte 0x01\n", target, "start", "end"); err == nil {
		t.Error("Region without end label: expected error")
	}
}

func TestNumberFormats(t *testing.T) {
	gas := newParser(platform.MustParseTarget("linux/amd64"))
	masm := newParser(platform.MustParseTarget("windows/amd64"))
	tests := []struct {
		p      *parser
		op     string
		hi, lo uint64
		ok     bool
	}{
		{gas, "0x01", 0, 1, true},
		{gas, "42", 0, 42, true},
		{gas, "0x0102030405060708090a0b0c0d0e0f10", 0x0102030405060708, 0x090a0b0c0d0e0f10, true},
		{gas, "0xffffffffffffffff", 0, 0xffffffffffffffff, true},
		{gas, "blob_data_", 0, 0, false},
		{gas, ".f", 0, 0, false},
		{masm, "0deadbeefh", 0, 0xdeadbeef, true},
		{masm, "00ah", 0, 0x0a, true},
		{masm, "17", 0, 17, true},
		{masm, "blob_data_", 0, 0, false},
	}
	for _, tt := range tests {
		hi, lo, ok := tt.p.number(tt.op)
		if ok != tt.ok || hi != tt.hi || lo != tt.lo {
			t.Errorf("number(%q): got (%#x, %#x, %v), want (%#x, %#x, %v)", tt.op, hi, lo, ok, tt.hi, tt.lo, tt.ok)
		}
	}
}

func formatUint(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}

func TestAppendValueByteOrder(t *testing.T) {
	le := platform.ArchX64.ByteOrder()
	be := platform.ArchS390X.ByteOrder()
	tests := []struct {
		name   string
		order  platform.ByteOrder
		d      platform.DataDirective
		hi, lo uint64
		want   []byte
	}{
		{"byte", le, platform.Byte, 0, 0xab, []byte{0xab}},
		{"long le", le, platform.Long, 0, 0x01020304, []byte{4, 3, 2, 1}},
		{"long be", be, platform.Long, 0, 0x01020304, []byte{1, 2, 3, 4}},
		{"quad le", le, platform.Quad, 0, 0x0102030405060708, []byte{8, 7, 6, 5, 4, 3, 2, 1}},
		{"quad be", be, platform.Quad, 0, 0x0102030405060708, []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{"octa le", le, platform.Octa, 0x1112131415161718, 0x0102030405060708,
			[]byte{8, 7, 6, 5, 4, 3, 2, 1, 0x18, 0x17, 0x16, 0x15, 0x14, 0x13, 0x12, 0x11}},
		{"octa be", be, platform.Octa, 0x1112131415161718, 0x0102030405060708,
			[]byte{0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18, 1, 2, 3, 4, 5, 6, 7, 8}},
	}
	for _, tt := range tests {
		got := appendValue([]byte{0xee}, tt.order, tt.d, tt.hi, tt.lo)
		want := append([]byte{0xee}, tt.want...)
		if !bytes.Equal(got, want) {
			t.Errorf("%s: got % x, want % x", tt.name, got, want)
		}
	}
}
