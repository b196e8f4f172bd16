package platform

// elfWriter emits GNU as syntax for ELF targets: the generic rules plus
// explicit sections, symbol typing and the non-executable stack note.
type elfWriter struct {
	genericWriter
}

func newELFWriter(t Target) *elfWriter {
	return &elfWriter{genericWriter: genericWriter{base: newBase(t)}}
}

func (w *elfWriter) SectionText() {
	w.check("SectionText")
	if w.target.OS == OSChromeOS {
		w.printf(".section .text.hot.embedded\n")
		return
	}
	w.printf(".section .text\n")
}

func (w *elfWriter) SectionData() {
	w.check("SectionData")
	w.printf(".section .data\n")
}

func (w *elfWriter) SectionRoData() {
	w.check("SectionRoData")
	w.printf(".section .rodata\n")
}

func (w *elfWriter) DeclareFunctionBegin(name string, size uint32) {
	w.check("DeclareFunctionBegin")
	w.DeclareLabel(name)
	// '@' starts a comment on 32-bit ARM.
	if w.target.Arch == ArchARM {
		w.printf(".type %s, %%function\n", w.sym(name))
	} else {
		w.printf(".type %s, @function\n", w.sym(name))
	}
	w.printf(".size %s, %d\n", w.sym(name), size)
}

// FileEpilogue marks the stack non-executable. Compilers add this note for C
// sources; hand-written assembly has to carry it explicitly.
func (w *elfWriter) FileEpilogue() {
	w.endFile()
	w.printf(".section .note.GNU-stack,\"\",%%progbits\n")
}
