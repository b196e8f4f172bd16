package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseSelect   Phase = "select"   // target and dialect selection
	PhaseEmit     Phase = "emit"     // assembly emission
	PhaseWrite    Phase = "write"    // output stream I/O
	PhaseProtocol Phase = "protocol" // writer state machine
	PhaseVerify   Phase = "verify"   // reassembly checks
	PhaseConfig   Phase = "config"   // manifest and flags
	PhaseParse    Phase = "parse"    // assembly text parsing
)

// Kind categorizes the error
type Kind string

const (
	KindUnsupportedWidth Kind = "unsupported_width"
	KindUnsupported      Kind = "unsupported"
	KindIO               Kind = "io"
	KindProtocol         Kind = "protocol_misuse"
	KindInvalidInput     Kind = "invalid_input"
	KindInvalidData      Kind = "invalid_data"
	KindNotFound         Kind = "not_found"
	KindMismatch         Kind = "mismatch"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	Target  string
	Dialect string
	Symbol  string
	Detail  string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Symbol != "" {
		b.WriteString(" at ")
		b.WriteString(e.Symbol)
	}

	if e.Target != "" || e.Dialect != "" {
		b.WriteString(": ")
		if e.Target != "" && e.Dialect != "" {
			b.WriteString("target ")
			b.WriteString(e.Target)
			b.WriteString(", dialect ")
			b.WriteString(e.Dialect)
		} else if e.Target != "" {
			b.WriteString("target ")
			b.WriteString(e.Target)
		} else {
			b.WriteString("dialect ")
			b.WriteString(e.Dialect)
		}
	}

	if e.Detail != "" {
		if e.Target != "" || e.Dialect != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Target sets the target name
func (b *Builder) Target(t string) *Builder {
	b.err.Target = t
	return b
}

// Dialect sets the assembler dialect name
func (b *Builder) Dialect(d string) *Builder {
	b.err.Dialect = d
	return b
}

// Symbol sets the symbol being emitted
func (b *Builder) Symbol(name string) *Builder {
	b.err.Symbol = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnsupportedWidth creates an error for a data width the dialect has no directive for
func UnsupportedWidth(dialect string, width any) *Error {
	return &Error{
		Phase:   PhaseEmit,
		Kind:    KindUnsupportedWidth,
		Dialect: dialect,
		Detail:  fmt.Sprintf("no data directive for %v", width),
		Value:   width,
	}
}

// ProtocolMisuse creates an error for an operation invoked in the wrong writer state
func ProtocolMisuse(op string, state any) *Error {
	return &Error{
		Phase:  PhaseProtocol,
		Kind:   KindProtocol,
		Detail: fmt.Sprintf("%s called in state %v", op, state),
		Value:  state,
	}
}

// WriteFailed wraps an output stream failure
func WriteFailed(cause error) *Error {
	return &Error{
		Phase:  PhaseWrite,
		Kind:   KindIO,
		Detail: "write assembly output",
		Cause:  cause,
	}
}

// UnknownTarget creates an error for an unrecognized target component
func UnknownTarget(what, name string) *Error {
	return &Error{
		Phase:  PhaseSelect,
		Kind:   KindNotFound,
		Target: name,
		Detail: fmt.Sprintf("unknown %s %q", what, name),
		Value:  name,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidSymbol creates an invalid input error for a symbol name
func InvalidSymbol(name, reason string) *Error {
	return &Error{
		Phase:  PhaseEmit,
		Kind:   KindInvalidInput,
		Symbol: name,
		Detail: reason,
		Value:  name,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Mismatch creates a verification mismatch error
func Mismatch(symbol string, got, want any) *Error {
	return &Error{
		Phase:  PhaseVerify,
		Kind:   KindMismatch,
		Symbol: symbol,
		Detail: fmt.Sprintf("got %v, want %v", got, want),
		Value:  got,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
