package platform

// macWriter emits Mach-O assembler syntax as accepted by Apple's as and
// clang. PowerPC targets follow the older cctools conventions.
type macWriter struct {
	base
}

func newMacWriter(t Target) *macWriter {
	return &macWriter{base: newBase(t)}
}

func (w *macWriter) ppc() bool {
	return isPPC(w.target.Arch)
}

func (w *macWriter) SectionText() {
	w.check("SectionText")
	w.printf(".text\n")
}

func (w *macWriter) SectionData() {
	w.check("SectionData")
	w.printf(".data\n")
}

func (w *macWriter) SectionRoData() {
	w.check("SectionRoData")
	w.printf(".const_data\n")
}

func (w *macWriter) DeclareUint32(name string, value uint32) {
	w.check("DeclareUint32")
	emitUint32(w, name, value)
}

func (w *macWriter) DeclarePointerToSymbol(name, target string) {
	w.check("DeclarePointerToSymbol")
	d := w.DirectiveAsString(w.PointerSizeDirective())
	w.DeclareSymbolGlobal(name)
	w.DeclareLabel(name)
	w.printf("  %s %s\n", d, w.sym(target))
}

// DeclareSymbolGlobal uses .private_extern: with .globl the linker is free to
// touch the symbol in ways that break blob hash verification at runtime.
func (w *macWriter) DeclareSymbolGlobal(name string) {
	w.check("DeclareSymbolGlobal")
	if w.ppc() {
		w.printf(".globl %s\n", w.sym(name))
		return
	}
	w.printf(".private_extern %s\n", w.sym(name))
}

func (w *macWriter) AlignToCodeAlignment() {
	w.check("AlignToCodeAlignment")
	if w.ppc() {
		w.printf(".align %d\n", Log2(w.dialect.CodeAlignment))
		return
	}
	w.printf(".balign %d\n", w.dialect.CodeAlignment)
}

func (w *macWriter) AlignToDataAlignment() {
	w.check("AlignToDataAlignment")
	if w.ppc() {
		w.printf(".align %d\n", Log2(w.dialect.DataAlignment))
		return
	}
	w.printf(".balign %d\n", w.dialect.DataAlignment)
}

func (w *macWriter) Comment(text string) {
	w.check("Comment")
	w.printf("%s %s\n", w.dialect.CommentLeader, text)
}

func (w *macWriter) DeclareLabel(name string) {
	w.check("DeclareLabel")
	w.printf("%s:\n", w.sym(name))
}

func (w *macWriter) SourceInfo(fileID int, filename string, line int) {
	w.check("SourceInfo")
	if w.ppc() {
		w.printf(".line %d, %s\n", line, quote(filename))
		return
	}
	w.printf(".loc %d %d\n", fileID, line)
}

// DeclareFunctionBegin only emits the label. Mach-O has no .type/.size.
func (w *macWriter) DeclareFunctionBegin(name string, size uint32) {
	w.check("DeclareFunctionBegin")
	w.DeclareLabel(name)
}

func (w *macWriter) DeclareFunctionEnd(name string) {
	w.check("DeclareFunctionEnd")
}

func (w *macWriter) DeclareExternalFilename(fileID int, filename string) {
	w.check("DeclareExternalFilename")
	w.printf(".file %d %s\n", fileID, quote(filename))
}
