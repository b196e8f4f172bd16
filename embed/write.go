package embed

import (
	"github.com/wippyai/embedasm/platform"
)

// Write emits b through w. The writer must be open and still in its
// prologue; Write drives it through the epilogue but leaves closing to the
// caller. The returned error is either a validation failure or the writer's
// first output failure.
func Write(w platform.Writer, b *Blob) error {
	if err := b.Validate(); err != nil {
		return err
	}
	sym := b.Symbols()

	w.FilePrologue()
	w.Comment("Autogenerated file. Do not edit.")
	w.Comment("Target " + w.Target().String() + ", dialect " + w.Dialect().Name() + ".")
	for i, f := range b.Files {
		w.DeclareExternalFilename(i+1, f)
	}
	w.Newline()

	w.SectionRoData()
	w.AlignToDataAlignment()
	w.DeclareLabel(sym.DataLabel)
	platform.EmitBytes(w, b.Data)
	w.Newline()

	w.SectionData()
	w.AlignToDataAlignment()
	w.DeclarePointerToSymbol(sym.Data, sym.DataLabel)
	w.DeclareUint32(sym.DataSize, uint32(len(b.Data)))
	w.DeclareUint32(sym.DataHash, Checksum(b.Data))

	if len(b.Code) > 0 {
		w.Newline()
		writeCode(w, b, sym)
	}

	w.FileEpilogue()
	return w.Err()
}

func writeCode(w platform.Writer, b *Blob, sym Symbols) {
	w.SectionText()
	w.AlignToCodeAlignment()
	w.DeclareLabel(sym.CodeLabel)

	var off uint32
	for _, f := range b.sortedFunctions() {
		if f.Offset > off {
			platform.EmitBytes(w, b.Code[off:f.Offset])
		}
		w.DeclareFunctionBegin(f.Name, f.Size)
		if f.FileID > 0 {
			w.SourceInfo(f.FileID, b.Files[f.FileID-1], f.Line)
		}
		platform.EmitBytes(w, b.Code[f.Offset:f.Offset+f.Size])
		w.DeclareFunctionEnd(f.Name)
		off = f.Offset + f.Size
	}
	platform.EmitBytes(w, b.Code[off:])
	w.Newline()

	w.SectionData()
	w.AlignToDataAlignment()
	w.DeclarePointerToSymbol(sym.Code, sym.CodeLabel)
	w.DeclareUint32(sym.CodeSize, uint32(len(b.Code)))
	w.DeclareUint32(sym.CodeHash, Checksum(b.Code))
}
