package platform

// TextWidth is the column limit data lines are wrapped at.
const TextWidth = 100

// EmitBytes writes data as data directive lines. Whole chunks use the
// writer's ByteChunkDataDirective, comma separated and wrapped at TextWidth;
// the trailing bytes that do not fill a chunk are written with Byte
// directives. Empty data writes nothing.
func EmitBytes(w Writer, data []byte) {
	chunk := w.ByteChunkDataDirective()
	size := chunk.Size()

	i := 0
	col := 0
	for ; i+size <= len(data); i += size {
		col = directiveOrSeparator(w, col, chunk)
		col += w.WriteByteChunk(data[i : i+size])
		col = lineEndIfNeeded(w, col, size)
	}
	if col != 0 {
		w.Newline()
	}

	col = 0
	for ; i < len(data); i++ {
		col = directiveOrSeparator(w, col, Byte)
		col += w.HexLiteral(uint64(data[i]))
		col = lineEndIfNeeded(w, col, 1)
	}
	if col != 0 {
		w.Newline()
	}
}

func directiveOrSeparator(w Writer, col int, d DataDirective) int {
	if col == 0 {
		return w.IndentedDataDirective(d)
	}
	return col + w.WriteString(",")
}

// lineEndIfNeeded breaks the line when one more separator and a widest
// literal of chunkSize bytes would cross TextWidth.
func lineEndIfNeeded(w Writer, col, chunkSize int) int {
	const prefixAndSuffix = 3 // "0x" or "0...h", plus ','
	maxLiteral := prefixAndSuffix + 2*chunkSize
	if col+maxLiteral > TextWidth {
		w.Newline()
		return 0
	}
	return col
}
