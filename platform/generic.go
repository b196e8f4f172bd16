package platform

// genericWriter emits plain GNU as syntax. It is the fallback for targets
// without a dedicated dialect and the base of the ELF writer.
type genericWriter struct {
	base
}

func newGenericWriter(t Target) *genericWriter {
	return &genericWriter{base: newBase(t)}
}

func (w *genericWriter) SectionText() {
	w.check("SectionText")
	w.printf(".text\n")
}

func (w *genericWriter) SectionData() {
	w.check("SectionData")
	w.printf(".data\n")
}

func (w *genericWriter) SectionRoData() {
	w.check("SectionRoData")
	w.printf(".section .rodata\n")
}

func (w *genericWriter) DeclareUint32(name string, value uint32) {
	w.check("DeclareUint32")
	emitUint32(w, name, value)
}

func (w *genericWriter) DeclarePointerToSymbol(name, target string) {
	w.check("DeclarePointerToSymbol")
	d := w.DirectiveAsString(w.PointerSizeDirective())
	w.DeclareSymbolGlobal(name)
	w.DeclareLabel(name)
	w.printf("  %s %s\n", d, w.sym(target))
}

// DeclareSymbolGlobal pairs .global with .hidden so the symbol resolves
// inside the linked image but cannot be interposed.
func (w *genericWriter) DeclareSymbolGlobal(name string) {
	w.check("DeclareSymbolGlobal")
	w.printf(".global %s\n", w.sym(name))
	w.printf(".hidden %s\n", w.sym(name))
}

func (w *genericWriter) AlignToCodeAlignment() {
	w.check("AlignToCodeAlignment")
	w.printf(".balign %d\n", w.dialect.CodeAlignment)
}

func (w *genericWriter) AlignToDataAlignment() {
	w.check("AlignToDataAlignment")
	w.printf(".balign %d\n", w.dialect.DataAlignment)
}

func (w *genericWriter) Comment(text string) {
	w.check("Comment")
	w.printf("%s %s\n", w.dialect.CommentLeader, text)
}

func (w *genericWriter) DeclareLabel(name string) {
	w.check("DeclareLabel")
	w.printf("%s:\n", w.sym(name))
}

func (w *genericWriter) SourceInfo(fileID int, filename string, line int) {
	w.check("SourceInfo")
	w.printf(".loc %d %d\n", fileID, line)
}

func (w *genericWriter) DeclareFunctionBegin(name string, size uint32) {
	w.check("DeclareFunctionBegin")
	w.DeclareLabel(name)
}

func (w *genericWriter) DeclareFunctionEnd(name string) {
	w.check("DeclareFunctionEnd")
}

func (w *genericWriter) DeclareExternalFilename(fileID int, filename string) {
	w.check("DeclareExternalFilename")
	w.printf(".file %d %s\n", fileID, quote(filename))
}
