package embed

import (
	"encoding/binary"

	"lukechampine.com/blake3"
)

// Checksum is the value stored in the hash symbols: the first four bytes of
// the BLAKE3-256 digest, little-endian.
func Checksum(data []byte) uint32 {
	sum := blake3.Sum256(data)
	return binary.LittleEndian.Uint32(sum[:4])
}
