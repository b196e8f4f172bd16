// Package errors provides structured error types for the embedasm module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the target, dialect and symbol involved plus a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEmit, errors.KindInvalidInput).
//		Target("darwin/arm64").
//		Dialect("macho").
//		Symbol("blob_data_size").
//		Detail("symbol names must not contain spaces").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnsupportedWidth("aix", "octa")
//	err := errors.ProtocolMisuse("SectionText", "closed")
//
// Unsupported widths and protocol misuse are programming errors: the writers
// panic with an *Error carrying KindUnsupportedWidth or KindProtocol instead
// of returning them. Output stream failures are returned as KindIO.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
