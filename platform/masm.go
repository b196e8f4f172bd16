package platform

// masmWriter emits Microsoft Macro Assembler syntax for ml.exe and ml64.exe.
type masmWriter struct {
	base
}

func newMASMWriter(t Target) *masmWriter {
	return &masmWriter{base: newBase(t)}
}

func (w *masmWriter) SectionText() {
	w.check("SectionText")
	w.printf(".CODE\n")
}

func (w *masmWriter) SectionData() {
	w.check("SectionData")
	w.printf(".DATA\n")
}

func (w *masmWriter) SectionRoData() {
	w.check("SectionRoData")
	w.printf(".CONST\n")
}

func (w *masmWriter) DeclareUint32(name string, value uint32) {
	w.check("DeclareUint32")
	emitUint32(w, name, value)
}

func (w *masmWriter) DeclarePointerToSymbol(name, target string) {
	w.check("DeclarePointerToSymbol")
	d := w.DirectiveAsString(w.PointerSizeDirective())
	w.DeclareSymbolGlobal(name)
	w.DeclareLabel(name)
	w.printf("  %s %s\n", d, w.sym(target))
}

// DeclareSymbolGlobal emits PUBLIC, the only external linkage COFF offers.
func (w *masmWriter) DeclareSymbolGlobal(name string) {
	w.check("DeclareSymbolGlobal")
	w.printf("PUBLIC %s\n", w.sym(name))
}

func (w *masmWriter) AlignToCodeAlignment() {
	w.check("AlignToCodeAlignment")
	w.printf("ALIGN %d\n", w.dialect.CodeAlignment)
}

func (w *masmWriter) AlignToDataAlignment() {
	w.check("AlignToDataAlignment")
	w.printf("ALIGN %d\n", w.dialect.DataAlignment)
}

func (w *masmWriter) Comment(text string) {
	w.check("Comment")
	w.printf("%s %s\n", w.dialect.CommentLeader, text)
}

func (w *masmWriter) DeclareLabel(name string) {
	w.check("DeclareLabel")
	w.printf("%s LABEL BYTE\n", w.sym(name))
}

// SourceInfo is a no-op: MASM has no line mapping directive.
func (w *masmWriter) SourceInfo(fileID int, filename string, line int) {
	w.check("SourceInfo")
}

func (w *masmWriter) DeclareExternalFilename(fileID int, filename string) {
	w.check("DeclareExternalFilename")
}

func (w *masmWriter) DeclareFunctionBegin(name string, size uint32) {
	w.check("DeclareFunctionBegin")
	w.printf("%s PROC\n", w.sym(name))
}

func (w *masmWriter) DeclareFunctionEnd(name string) {
	w.check("DeclareFunctionEnd")
	w.printf("%s ENDP\n", w.sym(name))
}

func (w *masmWriter) FilePrologue() {
	w.beginFile()
	if w.target.Arch == ArchIA32 {
		w.printf(".MODEL FLAT\n")
	}
}

func (w *masmWriter) FileEpilogue() {
	w.endFile()
	w.printf("END\n")
}
