package verify

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/wippyai/embedasm/embed"
	"github.com/wippyai/embedasm/errors"
	"github.com/wippyai/embedasm/platform"
)

// Data decodes the data directive lines that directly follow label back
// into bytes. Decoding stops at the first line that is not a numeric data
// directive.
func Data(text string, t platform.Target, label string) ([]byte, error) {
	return decode(text, t, label, "")
}

// Region decodes every numeric data directive between the start and end
// labels, skipping any other lines such as function markers.
func Region(text string, t platform.Target, start, end string) ([]byte, error) {
	return decode(text, t, start, end)
}

// Uint32 reads the value of a symbol declared with DeclareUint32.
func Uint32(text string, t platform.Target, name string) (uint32, error) {
	p := newParser(t)
	ls := strings.Split(text, "\n")
	i, err := p.findLabel(ls, name)
	if err != nil {
		return 0, err
	}
	if i+1 >= len(ls) {
		return 0, errors.NotFound(errors.PhaseVerify, "value of", name)
	}
	d, ops, ok := p.directive(ls[i+1])
	if !ok || d != platform.Long || len(ops) != 1 {
		return 0, errors.New(errors.PhaseVerify, errors.KindInvalidData).
			Symbol(name).
			Detail("expected one 32-bit operand, got %q", strings.TrimSpace(ls[i+1])).
			Build()
	}
	v, err := strconv.ParseUint(ops[0], 10, 32)
	if err != nil {
		return 0, errors.ParseFailed("uint32 operand of "+name, err)
	}
	return uint32(v), nil
}

// Blob checks that text embeds b: data bytes, size and hash, and the same
// for code when b has any.
func Blob(text string, t platform.Target, b *embed.Blob) error {
	sym := b.Symbols()
	data, err := Data(text, t, sym.DataLabel)
	if err != nil {
		return err
	}
	if err := compare(sym.DataLabel, data, b.Data); err != nil {
		return err
	}
	if err := checkUint32(text, t, sym.DataSize, uint32(len(b.Data))); err != nil {
		return err
	}
	if err := checkUint32(text, t, sym.DataHash, embed.Checksum(b.Data)); err != nil {
		return err
	}

	if len(b.Code) == 0 {
		return nil
	}
	// The code pointer lives in the data section that follows the code.
	code, err := Region(text, t, sym.CodeLabel, sym.Code)
	if err != nil {
		return err
	}
	if err := compare(sym.CodeLabel, code, b.Code); err != nil {
		return err
	}
	if err := checkUint32(text, t, sym.CodeSize, uint32(len(b.Code))); err != nil {
		return err
	}
	return checkUint32(text, t, sym.CodeHash, embed.Checksum(b.Code))
}

func checkUint32(text string, t platform.Target, name string, want uint32) error {
	got, err := Uint32(text, t, name)
	if err != nil {
		return err
	}
	if got != want {
		return errors.Mismatch(name, got, want)
	}
	return nil
}

func compare(name string, got, want []byte) error {
	if len(got) != len(want) {
		return errors.Mismatch(name, len(got), len(want))
	}
	if i := firstDiff(got, want); i >= 0 {
		return errors.New(errors.PhaseVerify, errors.KindMismatch).
			Symbol(name).
			Detail("byte %d: got 0x%02x, want 0x%02x", i, got[i], want[i]).
			Value(i).
			Build()
	}
	return nil
}

func firstDiff(a, b []byte) int {
	if bytes.Equal(a, b) {
		return -1
	}
	for i := range a {
		if a[i] != b[i] {
			return i
		}
	}
	return -1
}

func decode(text string, t platform.Target, start, end string) ([]byte, error) {
	p := newParser(t)
	ls := strings.Split(text, "\n")
	i, err := p.findLabel(ls, start)
	if err != nil {
		return nil, err
	}

	var out []byte
	for _, line := range ls[i+1:] {
		if end != "" && p.isLabel(line, end) {
			return out, nil
		}
		d, ops, ok := p.directive(line)
		if ok {
			var numeric bool
			out, numeric = p.appendOperands(out, d, ops)
			if numeric {
				continue
			}
		}
		if end == "" {
			return out, nil
		}
	}
	if end != "" {
		return nil, errors.NotFound(errors.PhaseVerify, "label", end)
	}
	return out, nil
}
