package platform

// DialectKind names an assembler syntax family.
type DialectKind uint8

const (
	DialectGeneric DialectKind = iota
	DialectMachO
	DialectELF
	DialectMASM
	DialectARMASM
	DialectCOFFGNU
	DialectAIX
)

func (k DialectKind) String() string {
	switch k {
	case DialectMachO:
		return "macho"
	case DialectELF:
		return "elf"
	case DialectMASM:
		return "masm"
	case DialectARMASM:
		return "armasm"
	case DialectCOFFGNU:
		return "coff-gnu"
	case DialectAIX:
		return "aix"
	default:
		return "generic"
	}
}

// Dialect holds the per-target constants a writer variant emits with.
// Everything that differs between architectures of one syntax family lives
// here rather than in the variant's code paths.
type Dialect struct {
	Kind       DialectKind
	Vocabulary Vocabulary
	// SymbolPrefix is prepended to every symbol name the writer emits.
	SymbolPrefix string
	// CodeAlignment and DataAlignment are byte boundaries, powers of two.
	CodeAlignment int
	DataAlignment int
	// CommentLeader starts a single-line comment.
	CommentLeader string
	// PointerSize is 0 when the target architecture is undetermined.
	PointerSize int
	// ByteOrder is the order inline hex literals are read in.
	ByteOrder ByteOrder
	// Chunk is the directive used for bulk byte emission.
	Chunk DataDirective
	// HexPrefix and HexSuffix wrap the digits of a hex literal.
	HexPrefix string
	HexSuffix string
	// Extension is the conventional source file extension.
	Extension string
}

// DialectFor returns the constants table for t.
func DialectFor(t Target) Dialect {
	d := Dialect{
		Kind:          DialectGeneric,
		Vocabulary:    gasVocabulary,
		CodeAlignment: 32,
		DataAlignment: 8,
		CommentLeader: "//",
		PointerSize:   t.Arch.PointerSize(),
		ByteOrder:     t.Arch.ByteOrder(),
		HexPrefix:     "0x",
		Extension:     ".S",
	}

	switch t.OS {
	case OSDarwin:
		d.Kind = DialectMachO
		d.SymbolPrefix = "_"
		if isPPC(t.Arch) {
			d.Vocabulary = gasVocabularyNoOcta
			d.CommentLeader = ";"
		}
	case OSLinux, OSAndroid, OSFreeBSD, OSOpenBSD, OSNetBSD, OSFuchsia, OSChromeOS:
		d.Kind = DialectELF
		if t.Arch == ArchX64 {
			// Leaves room for 64-byte loop header alignment inside the blob.
			d.CodeAlignment = 64
		}
		if t.Arch == ArchARM {
			d.CommentLeader = "@"
		}
	case OSWindows:
		switch {
		case t.Toolchain == ToolchainGNU:
			d.Kind = DialectCOFFGNU
			if t.Arch == ArchIA32 {
				d.SymbolPrefix = "_"
			}
		case t.Arch == ArchARM64:
			d.Kind = DialectARMASM
			d.Vocabulary = armasmVocabulary
			d.CommentLeader = ";"
			d.Extension = ".asm"
		default:
			d.Kind = DialectMASM
			d.Vocabulary = masmVocabulary
			d.CommentLeader = ";"
			d.Extension = ".asm"
			d.HexPrefix = "0"
			d.HexSuffix = "h"
			// ALIGN may not exceed the segment alignment of .CODE.
			d.CodeAlignment = 16
			if t.Arch == ArchIA32 {
				d.SymbolPrefix = "_"
			}
		}
	case OSAIX:
		d.Kind = DialectAIX
		d.Vocabulary = aixVocabulary
		d.CommentLeader = "#"
		d.Extension = ".s"
	}

	d.Chunk = d.Vocabulary.Widest(Octa.Size())
	if t.Arch.LongChunks() || d.Kind == DialectAIX {
		d.Chunk = Long
	}
	return d
}

// Name returns the dialect's short name.
func (d Dialect) Name() string {
	return d.Kind.String()
}

// Log2 returns the base-2 logarithm of a power-of-two alignment.
func Log2(n int) int {
	l := 0
	for n > 1 {
		n >>= 1
		l++
	}
	return l
}

func isPPC(a Arch) bool {
	return a == ArchPPC || a == ArchPPC64 || a == ArchPPC64LE
}
