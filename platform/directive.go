package platform

// DataDirective is an abstract data width an assembler directive can emit.
type DataDirective uint8

const (
	Byte DataDirective = iota // 8-bit
	Long                      // 32-bit
	Quad                      // 64-bit
	Octa                      // 128-bit, not every dialect has one

	numDirectives
)

var directiveNames = [numDirectives]string{
	Byte: "byte",
	Long: "long",
	Quad: "quad",
	Octa: "octa",
}

var directiveSizes = [numDirectives]int{
	Byte: 1,
	Long: 4,
	Quad: 8,
	Octa: 16,
}

// Directives lists every data directive from narrowest to widest.
func Directives() []DataDirective {
	return []DataDirective{Byte, Long, Quad, Octa}
}

// Size returns the directive's width in bytes, or 0 for an invalid directive.
func (d DataDirective) Size() int {
	if d >= numDirectives {
		return 0
	}
	return directiveSizes[d]
}

func (d DataDirective) String() string {
	if d >= numDirectives {
		return "invalid"
	}
	return directiveNames[d]
}

// Vocabulary maps each data directive to a dialect keyword.
// An empty entry means the dialect has no directive of that width.
type Vocabulary [numDirectives]string

// Lookup returns the keyword for d and whether the dialect supports it.
func (v Vocabulary) Lookup(d DataDirective) (string, bool) {
	if d >= numDirectives || v[d] == "" {
		return "", false
	}
	return v[d], true
}

// Widest returns the widest supported directive no wider than limit bytes.
func (v Vocabulary) Widest(limit int) DataDirective {
	best := Byte
	for _, d := range Directives() {
		if v[d] != "" && d.Size() <= limit {
			best = d
		}
	}
	return best
}

// Reverse maps keywords back to directives. Keywords are compared as written.
func (v Vocabulary) Reverse() map[string]DataDirective {
	m := make(map[string]DataDirective, numDirectives)
	for _, d := range Directives() {
		if v[d] != "" {
			m[v[d]] = d
		}
	}
	return m
}

var (
	gasVocabulary = Vocabulary{
		Byte: ".byte",
		Long: ".long",
		Quad: ".quad",
		Octa: ".octa",
	}

	// PPC Mach-O assemblers have no .octa.
	gasVocabularyNoOcta = Vocabulary{
		Byte: ".byte",
		Long: ".long",
		Quad: ".quad",
	}

	aixVocabulary = Vocabulary{
		Byte: ".byte",
		Long: ".long",
		Quad: ".llong",
	}

	masmVocabulary = Vocabulary{
		Byte: "BYTE",
		Long: "DWORD",
		Quad: "QWORD",
	}

	armasmVocabulary = Vocabulary{
		Byte: "DCB",
		Long: "DCDU",
		Quad: "DCQU",
	}
)
