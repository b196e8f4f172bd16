// Package platform writes assembly source that embeds binary data, in the
// syntax of each supported assembler.
//
// A Target (OS, architecture, toolchain) selects a Dialect: a table of the
// constants that vary between platforms, such as data directive keywords,
// symbol prefix, alignments and the byte order of inline hex literals. New
// returns the Writer variant for the dialect:
//
//	macho     Apple as / clang (darwin)
//	elf       GNU as for ELF (linux, android, *bsd, fuchsia, chromeos)
//	masm      ml.exe / ml64.exe (windows amd64, 386)
//	armasm    armasm64.exe (windows arm64)
//	coff-gnu  GNU as for PE/COFF (windows with the gnu toolchain)
//	aix       AIX as
//	generic   GNU as fallback for anything else
//
// Writers follow a fixed protocol:
//
//	w := platform.New(target)
//	w.Open(out)           // unopened -> prologue
//	w.FilePrologue()      // prologue -> emitting
//	w.SectionRoData()
//	w.AlignToDataAlignment()
//	w.DeclareLabel("blob_data_")
//	platform.EmitBytes(w, data)
//	w.FileEpilogue()      // emitting -> epilogue
//	err := w.Close()      // -> closed
//
// Calls outside this sequence panic. Symbols declared global keep restricted
// visibility wherever the object format has it (.private_extern, .hidden,
// ", hidden"): fully public symbols may be rewritten by the toolchain in ways
// that break the hash check performed on the embedded blob at startup.
package platform
