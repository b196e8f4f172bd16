package verify

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/wippyai/embedasm/errors"
	"github.com/wippyai/embedasm/platform"
)

// parser knows just enough of a dialect's syntax to find labels and read
// numeric data directives.
type parser struct {
	dialect  platform.Dialect
	keywords map[string]platform.DataDirective
}

func newParser(t platform.Target) *parser {
	d := platform.DialectFor(t)
	return &parser{dialect: d, keywords: d.Vocabulary.Reverse()}
}

func (p *parser) labelLine(name string) string {
	name = p.dialect.SymbolPrefix + name
	switch p.dialect.Kind {
	case platform.DialectMASM:
		return name + " LABEL BYTE"
	case platform.DialectARMASM:
		return name
	default:
		return name + ":"
	}
}

func (p *parser) isLabel(line, name string) bool {
	return strings.TrimRight(line, " \t\r") == p.labelLine(name)
}

func (p *parser) findLabel(ls []string, name string) (int, error) {
	for i, l := range ls {
		if p.isLabel(l, name) {
			return i, nil
		}
	}
	return 0, errors.NotFound(errors.PhaseVerify, "label", name)
}

// directive splits an indented data directive line into its width and raw
// operands.
func (p *parser) directive(line string) (platform.DataDirective, []string, bool) {
	if !strings.HasPrefix(line, "  ") {
		return 0, nil, false
	}
	kw, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	d, ok := p.keywords[kw]
	if !ok {
		return 0, nil, false
	}
	ops := strings.Split(rest, ",")
	for i := range ops {
		ops[i] = strings.TrimSpace(ops[i])
	}
	return d, ops, true
}

// appendOperands encodes each operand at d's width in the dialect's byte
// order. It reports false, leaving dst unchanged, if any operand is not a
// number.
func (p *parser) appendOperands(dst []byte, d platform.DataDirective, ops []string) ([]byte, bool) {
	start := len(dst)
	for _, op := range ops {
		hi, lo, ok := p.number(op)
		if !ok {
			return dst[:start], false
		}
		dst = appendValue(dst, p.dialect.ByteOrder, d, hi, lo)
	}
	return dst, true
}

// number parses a literal of up to 128 bits into its high and low halves.
func (p *parser) number(op string) (hi, lo uint64, ok bool) {
	digits, base := op, 10
	switch {
	case strings.HasPrefix(op, "0x") || strings.HasPrefix(op, "0X"):
		digits, base = op[2:], 16
	case p.dialect.HexSuffix != "" && strings.HasSuffix(op, p.dialect.HexSuffix):
		digits, base = strings.TrimSuffix(strings.TrimPrefix(op, p.dialect.HexPrefix), p.dialect.HexSuffix), 16
	}
	if digits == "" {
		return 0, 0, false
	}

	if base == 16 && len(digits) > 16 {
		split := len(digits) - 16
		var err error
		if hi, err = strconv.ParseUint(digits[:split], 16, 64); err != nil {
			return 0, 0, false
		}
		if lo, err = strconv.ParseUint(digits[split:], 16, 64); err != nil {
			return 0, 0, false
		}
		return hi, lo, true
	}
	lo, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, 0, false
	}
	return 0, lo, true
}

func appendValue(dst []byte, order platform.ByteOrder, d platform.DataDirective, hi, lo uint64) []byte {
	switch d {
	case platform.Byte:
		return append(dst, byte(lo))
	case platform.Long:
		return order.AppendUint32(dst, uint32(lo))
	case platform.Quad:
		return order.AppendUint64(dst, lo)
	default:
		if order == binary.BigEndian {
			return order.AppendUint64(order.AppendUint64(dst, hi), lo)
		}
		return order.AppendUint64(order.AppendUint64(dst, lo), hi)
	}
}
