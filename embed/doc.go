// Package embed lays out a Blob as an assembly file through a
// platform.Writer.
//
// For a blob named "snapshot" the emitted file exposes:
//
//	snapshot_data_       local label at the first byte of Data (read-only data)
//	snapshot_data        pointer to snapshot_data_
//	snapshot_data_size   uint32 byte count
//	snapshot_data_hash   uint32 Checksum of Data
//
// and, when Code is present, the same four symbols with a _code infix for
// the text section copy, with every Function bracketed as a function body.
package embed
