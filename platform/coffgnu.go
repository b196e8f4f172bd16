package platform

// coffGNUWriter emits GNU as syntax for PE/COFF, as used by MinGW and clang
// targeting Windows. COFF has no hidden visibility.
type coffGNUWriter struct {
	genericWriter
}

func newCOFFGNUWriter(t Target) *coffGNUWriter {
	return &coffGNUWriter{genericWriter: genericWriter{base: newBase(t)}}
}

func (w *coffGNUWriter) SectionRoData() {
	w.check("SectionRoData")
	w.printf(".section .rdata,\"dr\"\n")
}

func (w *coffGNUWriter) DeclareUint32(name string, value uint32) {
	w.check("DeclareUint32")
	emitUint32(w, name, value)
}

func (w *coffGNUWriter) DeclarePointerToSymbol(name, target string) {
	w.check("DeclarePointerToSymbol")
	d := w.DirectiveAsString(w.PointerSizeDirective())
	w.DeclareSymbolGlobal(name)
	w.DeclareLabel(name)
	w.printf("  %s %s\n", d, w.sym(target))
}

func (w *coffGNUWriter) DeclareSymbolGlobal(name string) {
	w.check("DeclareSymbolGlobal")
	w.printf(".global %s\n", w.sym(name))
}

// DeclareFunctionBegin marks the symbol as an external function
// (storage class 2, complex type 32) before its label.
func (w *coffGNUWriter) DeclareFunctionBegin(name string, size uint32) {
	w.check("DeclareFunctionBegin")
	w.printf(".def %s; .scl 2; .type 32; .endef\n", w.sym(name))
	w.DeclareLabel(name)
}
