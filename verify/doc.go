// Package verify reads generated assembly text back into bytes.
//
// It understands the label and data directive syntax of every platform
// dialect, decodes hex and decimal operands in the target's byte order, and
// checks a file against the embed.Blob it was generated from. The build
// package runs it after writing each file when verification is enabled.
package verify
