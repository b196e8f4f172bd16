package platform

// armasmWriter emits syntax for armasm64.exe, Microsoft's ARM64 assembler.
// Labels start in column zero; everything else is indented.
type armasmWriter struct {
	base
}

func newARMASMWriter(t Target) *armasmWriter {
	return &armasmWriter{base: newBase(t)}
}

func (w *armasmWriter) SectionText() {
	w.check("SectionText")
	w.printf("  AREA |.text|, CODE, ALIGN=%d, READONLY\n", Log2(w.dialect.CodeAlignment))
}

func (w *armasmWriter) SectionData() {
	w.check("SectionData")
	w.printf("  AREA |.data|, DATA, ALIGN=%d, READWRITE\n", Log2(w.dialect.DataAlignment))
}

func (w *armasmWriter) SectionRoData() {
	w.check("SectionRoData")
	w.printf("  AREA |.rodata|, DATA, ALIGN=%d, READONLY\n", Log2(w.dialect.DataAlignment))
}

func (w *armasmWriter) DeclareUint32(name string, value uint32) {
	w.check("DeclareUint32")
	emitUint32(w, name, value)
}

func (w *armasmWriter) DeclarePointerToSymbol(name, target string) {
	w.check("DeclarePointerToSymbol")
	d := w.DirectiveAsString(w.PointerSizeDirective())
	w.DeclareSymbolGlobal(name)
	w.DeclareLabel(name)
	w.printf("  %s %s\n", d, w.sym(target))
}

func (w *armasmWriter) DeclareSymbolGlobal(name string) {
	w.check("DeclareSymbolGlobal")
	w.printf("  EXPORT %s\n", w.sym(name))
}

func (w *armasmWriter) AlignToCodeAlignment() {
	w.check("AlignToCodeAlignment")
	w.printf("  ALIGN %d\n", w.dialect.CodeAlignment)
}

func (w *armasmWriter) AlignToDataAlignment() {
	w.check("AlignToDataAlignment")
	w.printf("  ALIGN %d\n", w.dialect.DataAlignment)
}

func (w *armasmWriter) Comment(text string) {
	w.check("Comment")
	w.printf("%s %s\n", w.dialect.CommentLeader, text)
}

func (w *armasmWriter) DeclareLabel(name string) {
	w.check("DeclareLabel")
	w.printf("%s\n", w.sym(name))
}

// SourceInfo is a no-op: armasm64 has no line mapping directive.
func (w *armasmWriter) SourceInfo(fileID int, filename string, line int) {
	w.check("SourceInfo")
}

func (w *armasmWriter) DeclareExternalFilename(fileID int, filename string) {
	w.check("DeclareExternalFilename")
}

func (w *armasmWriter) DeclareFunctionBegin(name string, size uint32) {
	w.check("DeclareFunctionBegin")
	w.printf("%s FUNCTION\n", w.sym(name))
}

func (w *armasmWriter) DeclareFunctionEnd(name string) {
	w.check("DeclareFunctionEnd")
	w.printf("  ENDFUNC\n")
}

func (w *armasmWriter) FileEpilogue() {
	w.endFile()
	w.printf("  END\n")
}
