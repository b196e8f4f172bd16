package embed

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/wippyai/embedasm/errors"
)

// Function is a named range of Blob.Code emitted as a function body.
type Function struct {
	Name   string
	Offset uint32
	Size   uint32
	// FileID indexes Blob.Files starting at 1; 0 means no source location.
	FileID int
	Line   int
}

// Blob is the data embedded into one assembly file.
type Blob struct {
	// Name is the stem every emitted symbol is derived from.
	Name string
	// Data is placed in the read-only data section.
	Data []byte
	// Code, when present, is placed in the text section.
	Code      []byte
	Functions []Function
	// Files are the source file names Function.FileID refers to.
	Files []string
}

// Symbols are the names a Blob is exposed under.
type Symbols struct {
	DataLabel string // local label at the first data byte
	Data      string // pointer to DataLabel
	DataSize  string
	DataHash  string

	CodeLabel string
	Code      string
	CodeSize  string
	CodeHash  string
}

// SymbolsFor derives the symbol names for a blob stem.
func SymbolsFor(name string) Symbols {
	return Symbols{
		DataLabel: name + "_data_",
		Data:      name + "_data",
		DataSize:  name + "_data_size",
		DataHash:  name + "_data_hash",
		CodeLabel: name + "_code_",
		Code:      name + "_code",
		CodeSize:  name + "_code_size",
		CodeHash:  name + "_code_hash",
	}
}

// Symbols returns the blob's symbol names.
func (b *Blob) Symbols() Symbols {
	return SymbolsFor(b.Name)
}

// Identifiers are restricted to what every supported assembler accepts.
var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidSymbol reports whether name can be emitted on every dialect.
func ValidSymbol(name string) bool {
	return identifier.MatchString(name)
}

// Validate checks names and function ranges.
func (b *Blob) Validate() error {
	if b == nil {
		return errors.InvalidInput(errors.PhaseEmit, "nil blob")
	}
	if !ValidSymbol(b.Name) {
		return errors.InvalidSymbol(b.Name, "blob name must be an identifier")
	}
	if uint64(len(b.Data)) > 1<<32-1 || uint64(len(b.Code)) > 1<<32-1 {
		return errors.InvalidInput(errors.PhaseEmit, "blob larger than 4 GiB")
	}
	if len(b.Functions) > 0 && len(b.Code) == 0 {
		return errors.InvalidInput(errors.PhaseEmit, "functions declared without code")
	}

	seen := make(map[string]bool, len(b.Functions))
	for _, f := range b.sortedFunctions() {
		if !ValidSymbol(f.Name) {
			return errors.InvalidSymbol(f.Name, "function name must be an identifier")
		}
		if seen[f.Name] {
			return errors.InvalidSymbol(f.Name, "duplicate function")
		}
		seen[f.Name] = true
		if uint64(f.Offset)+uint64(f.Size) > uint64(len(b.Code)) {
			return errors.New(errors.PhaseEmit, errors.KindInvalidInput).
				Symbol(f.Name).
				Detail("range [%d, %d) outside code of %d bytes", f.Offset, uint64(f.Offset)+uint64(f.Size), len(b.Code)).
				Build()
		}
		if f.FileID < 0 || f.FileID > len(b.Files) {
			return errors.New(errors.PhaseEmit, errors.KindInvalidInput).
				Symbol(f.Name).
				Detail("file id %d not in [0, %d]", f.FileID, len(b.Files)).
				Build()
		}
	}

	fns := b.sortedFunctions()
	for i := 1; i < len(fns); i++ {
		prev, cur := fns[i-1], fns[i]
		if prev.Offset+prev.Size > cur.Offset {
			return errors.InvalidSymbol(cur.Name, fmt.Sprintf("overlaps %s", prev.Name))
		}
	}
	return nil
}

func (b *Blob) sortedFunctions() []Function {
	fns := make([]Function, len(b.Functions))
	copy(fns, b.Functions)
	sort.SliceStable(fns, func(i, j int) bool { return fns[i].Offset < fns[j].Offset })
	return fns
}
