package platform

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/wippyai/embedasm/errors"
)

// Writer emits one assembly source file in a platform's dialect.
//
// Every variant implements the same operations; they differ only in the
// literal text written. A Writer owns its output stream from Open until
// Close and is not safe for concurrent use.
//
// Operations invoked outside the emission protocol, directives of a width
// the dialect lacks, and pointer declarations on a target without a known
// pointer width are programming errors and panic with an *errors.Error.
// Output stream failures are sticky: the first one is kept, later writes are
// dropped, and it is reported by Err and Close.
type Writer interface {
	Target() Target
	Dialect() Dialect
	State() State

	// Open takes ownership of out and moves the writer to the prologue.
	Open(out io.Writer)
	// Close releases the stream, closing it if it is an io.Closer.
	Close() error
	// Err returns the first output stream failure, if any.
	Err() error

	SectionText()
	SectionData()
	SectionRoData()

	DeclareUint32(name string, value uint32)
	DeclarePointerToSymbol(name, target string)
	DeclareSymbolGlobal(name string)
	DeclareLabel(name string)

	AlignToCodeAlignment()
	AlignToDataAlignment()

	Comment(text string)
	SourceInfo(fileID int, filename string, line int)
	DeclareExternalFilename(fileID int, filename string)

	DeclareFunctionBegin(name string, size uint32)
	DeclareFunctionEnd(name string)

	FilePrologue()
	FileEpilogue()

	HexLiteral(value uint64) int
	IndentedDataDirective(d DataDirective) int
	ByteChunkDataDirective() DataDirective
	WriteByteChunk(data []byte) int

	Newline()
	WriteString(s string) int
}

// State is a writer's position in the emission protocol.
type State uint8

const (
	StateUnopened State = iota
	StatePrologue
	StateEmitting
	StateEpilogue
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnopened:
		return "unopened"
	case StatePrologue:
		return "prologue"
	case StateEmitting:
		return "emitting"
	case StateEpilogue:
		return "epilogue"
	case StateClosed:
		return "closed"
	default:
		return "invalid"
	}
}

// base carries the state every variant shares: the owned stream, the sticky
// error, the protocol state and the dialect constants.
type base struct {
	out     io.Writer
	err     error
	dialect Dialect
	target  Target
	state   State
}

func newBase(t Target) base {
	return base{target: t, dialect: DialectFor(t)}
}

func (b *base) Target() Target   { return b.target }
func (b *base) Dialect() Dialect { return b.dialect }
func (b *base) State() State     { return b.state }
func (b *base) Err() error       { return b.err }

func (b *base) Open(out io.Writer) {
	if b.state != StateUnopened {
		panic(errors.ProtocolMisuse("Open", b.state))
	}
	if out == nil {
		panic(errors.InvalidInput(errors.PhaseProtocol, "nil output stream"))
	}
	b.out = out
	b.state = StatePrologue
}

func (b *base) Close() error {
	switch b.state {
	case StateUnopened:
		panic(errors.ProtocolMisuse("Close", b.state))
	case StateClosed:
		return nil
	}
	err := b.err
	if c, ok := b.out.(io.Closer); ok {
		if cerr := c.Close(); cerr != nil {
			err = multierr.Append(err, errors.WriteFailed(cerr))
		}
	}
	b.out = nil
	b.state = StateClosed
	return err
}

// check panics unless the writer is emitting.
func (b *base) check(op string) {
	if b.state != StateEmitting {
		panic(errors.ProtocolMisuse(op, b.state))
	}
}

// beginFile performs the prologue transition.
func (b *base) beginFile() {
	if b.state != StatePrologue {
		panic(errors.ProtocolMisuse("FilePrologue", b.state))
	}
	b.state = StateEmitting
}

// endFile performs the epilogue transition. Variants write their trailer
// after calling it.
func (b *base) endFile() {
	b.check("FileEpilogue")
	b.state = StateEpilogue
}

func (b *base) printf(format string, args ...any) int {
	if b.err != nil {
		return 0
	}
	n, err := fmt.Fprintf(b.out, format, args...)
	if err != nil {
		b.err = errors.WriteFailed(err)
	}
	return n
}

func (b *base) sym(name string) string {
	return b.dialect.SymbolPrefix + name
}

// DirectiveAsString returns the dialect keyword for d, panicking when the
// dialect has none.
func (b *base) DirectiveAsString(d DataDirective) string {
	s, ok := b.dialect.Vocabulary.Lookup(d)
	if !ok {
		panic(errors.New(errors.PhaseEmit, errors.KindUnsupportedWidth).
			Target(b.target.String()).
			Dialect(b.dialect.Name()).
			Detail("no data directive for %v", d).
			Value(d).
			Build())
	}
	return s
}

// PointerSizeDirective returns the directive matching the pointer width.
func (b *base) PointerSizeDirective() DataDirective {
	switch b.dialect.PointerSize {
	case 4:
		return Long
	case 8:
		return Quad
	}
	panic(errors.New(errors.PhaseEmit, errors.KindUnsupported).
		Target(b.target.String()).
		Dialect(b.dialect.Name()).
		Detail("pointer width undetermined").
		Build())
}

func (b *base) Newline() {
	b.check("Newline")
	b.printf("\n")
}

func (b *base) WriteString(s string) int {
	b.check("WriteString")
	return b.printf("%s", s)
}

func (b *base) HexLiteral(value uint64) int {
	b.check("HexLiteral")
	return b.printf("%s%s%s", b.dialect.HexPrefix, hexDigits(value), b.dialect.HexSuffix)
}

func (b *base) IndentedDataDirective(d DataDirective) int {
	b.check("IndentedDataDirective")
	return b.printf("  %s ", b.DirectiveAsString(d))
}

func (b *base) ByteChunkDataDirective() DataDirective {
	return b.dialect.Chunk
}

func (b *base) WriteByteChunk(data []byte) int {
	b.check("WriteByteChunk")
	d := b.ByteChunkDataDirective()
	if len(data) < d.Size() {
		panic(errors.New(errors.PhaseEmit, errors.KindInvalidInput).
			Dialect(b.dialect.Name()).
			Detail("%v chunk needs %d bytes, got %d", d, d.Size(), len(data)).
			Build())
	}

	order := b.dialect.ByteOrder
	switch d {
	case Byte:
		return b.HexLiteral(uint64(data[0]))
	case Long:
		return b.HexLiteral(uint64(order.Uint32(data)))
	case Quad:
		return b.HexLiteral(order.Uint64(data))
	case Octa:
		hi, lo := order.Uint64(data[8:16]), order.Uint64(data[:8])
		if order == binary.BigEndian {
			hi, lo = lo, hi
		}
		if hi == 0 {
			return b.HexLiteral(lo)
		}
		return b.printf("%s%s%016x%s", b.dialect.HexPrefix, hexDigits(hi), lo, b.dialect.HexSuffix)
	}
	panic(errors.UnsupportedWidth(b.dialect.Name(), d))
}

// FilePrologue and FileEpilogue are empty on most dialects.
func (b *base) FilePrologue() { b.beginFile() }
func (b *base) FileEpilogue() { b.endFile() }

// hexDigits formats v in lowercase hex, zero-padded to whole bytes.
func hexDigits(v uint64) string {
	s := strconv.FormatUint(v, 16)
	if len(s)%2 == 1 {
		s = "0" + s
	}
	return s
}

// emitUint32 writes the visibility, label, 32-bit data sequence shared by
// most variants.
func emitUint32(w Writer, name string, value uint32) {
	w.DeclareSymbolGlobal(name)
	w.DeclareLabel(name)
	w.IndentedDataDirective(Long)
	w.WriteString(strconv.FormatUint(uint64(value), 10))
	w.Newline()
}

// quote wraps s in double quotes for a directive operand, escaping only the
// characters assemblers treat specially inside strings.
func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(s) + `"`
}
