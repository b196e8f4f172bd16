package platform

// aixWriter emits syntax for the AIX assembler. Sections are control
// sections (csects) and functions are reached through descriptors.
type aixWriter struct {
	base
}

func newAIXWriter(t Target) *aixWriter {
	return &aixWriter{base: newBase(t)}
}

func (w *aixWriter) SectionText() {
	w.check("SectionText")
	w.printf(".csect .text[PR], %d\n", Log2(w.dialect.CodeAlignment))
}

func (w *aixWriter) SectionData() {
	w.check("SectionData")
	w.printf(".csect .data[RW], %d\n", Log2(w.dialect.DataAlignment))
}

func (w *aixWriter) SectionRoData() {
	w.check("SectionRoData")
	w.printf(".csect .rodata[RO], %d\n", Log2(w.dialect.DataAlignment))
}

func (w *aixWriter) DeclareUint32(name string, value uint32) {
	w.check("DeclareUint32")
	w.printf(".align 2\n")
	w.DeclareSymbolGlobal(name)
	w.DeclareLabel(name)
	w.IndentedDataDirective(Long)
	w.printf("%d\n", value)
}

func (w *aixWriter) DeclarePointerToSymbol(name, target string) {
	w.check("DeclarePointerToSymbol")
	pd := w.PointerSizeDirective()
	w.printf(".align %d\n", Log2(pd.Size()))
	w.DeclareSymbolGlobal(name)
	w.DeclareLabel(name)
	w.printf("  %s %s\n", w.DirectiveAsString(pd), w.sym(target))
}

func (w *aixWriter) DeclareSymbolGlobal(name string) {
	w.check("DeclareSymbolGlobal")
	w.printf(".globl %s, hidden\n", w.sym(name))
}

func (w *aixWriter) AlignToCodeAlignment() {
	w.check("AlignToCodeAlignment")
	w.printf(".align %d\n", Log2(w.dialect.CodeAlignment))
}

func (w *aixWriter) AlignToDataAlignment() {
	w.check("AlignToDataAlignment")
	w.printf(".align %d\n", Log2(w.dialect.DataAlignment))
}

func (w *aixWriter) Comment(text string) {
	w.check("Comment")
	w.printf("%s %s\n", w.dialect.CommentLeader, text)
}

func (w *aixWriter) DeclareLabel(name string) {
	w.check("DeclareLabel")
	w.printf("%s:\n", w.sym(name))
}

func (w *aixWriter) SourceInfo(fileID int, filename string, line int) {
	w.check("SourceInfo")
	w.printf(".xline %d, %s\n", line, quote(filename))
}

// DeclareExternalFilename is a no-op: .xline names the file directly.
func (w *aixWriter) DeclareExternalFilename(fileID int, filename string) {
	w.check("DeclareExternalFilename")
}

// DeclareFunctionBegin emits the function descriptor csect, then switches
// back to text and labels the entry point with the dot-prefixed name.
func (w *aixWriter) DeclareFunctionBegin(name string, size uint32) {
	w.check("DeclareFunctionBegin")
	pd := w.DirectiveAsString(w.PointerSizeDirective())
	w.Newline()
	w.printf(".csect %s[DS]\n", w.sym(name))
	w.DeclareLabel(name)
	w.printf("  %s .%s, 0, 0\n", pd, w.sym(name))
	w.SectionText()
	w.printf(".%s:\n", w.sym(name))
}

func (w *aixWriter) DeclareFunctionEnd(name string) {
	w.check("DeclareFunctionEnd")
}
