// Package embedasm turns binary blobs into assembly source files that embed
// them, one file per target platform.
//
// Build systems use the generated file to link a blob, such as a VM
// snapshot or a block of pregenerated machine code, directly into a native
// binary. Each file exports a pointer to the bytes, their size and a
// checksum, under visibility restricted to the linked image.
//
// # Architecture Overview
//
//	embedasm/            Root package with the Emit convenience entry point
//	├── platform/        Target model, dialect table and assembly writers
//	├── embed/           Blob layout and the emission sequence
//	├── verify/          Reads generated assembly back into bytes
//	├── build/           Atomic, concurrent multi-target file generation
//	├── config/          YAML manifest loading
//	├── errors/          Structured error types for debugging
//	└── cmd/embedasm/    Command line tool and interactive previewer
//
// # Quick Start
//
// Write one file to a stream:
//
//	blob := &embed.Blob{Name: "v8_snapshot", Data: snapshot}
//	err := embedasm.Emit(os.Stdout, platform.MustParseTarget("linux/amd64"), blob)
//
// Generate every target, verifying each file:
//
//	jobs := build.Jobs("gen/embedded_{target}{ext}", targets)
//	err := build.Generate(ctx, blob, jobs, build.WithVerify(true))
//
// # Supported Dialects
//
//   - macho: Apple as and clang, including legacy PowerPC
//   - elf: GNU as on Linux, Android, the BSDs, Fuchsia and ChromeOS
//   - masm: ml.exe and ml64.exe
//   - armasm: armasm64.exe for Windows on ARM64
//   - coff-gnu: MinGW and clang targeting Windows
//   - aix: the AIX assembler
//   - generic: plain GNU as for anything else
//
// # Thread Safety
//
// A platform.Writer owns its output stream and must be used by a single
// goroutine. Everything else is safe for concurrent use; build.Generate
// gives every job its own writer.
package embedasm
