// Package build generates embedded-blob assembly files for many targets.
//
// Each job gets its own platform writer and output file, so jobs run
// concurrently without sharing state. Files are written under a temporary
// name and renamed into place once complete; optional verification reads
// the file back through package verify first.
//
//	jobs := build.Jobs("gen/embedded_{target}{ext}", targets)
//	err := build.Generate(ctx, blob, jobs, build.WithVerify(true))
package build
