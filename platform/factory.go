package platform

import (
	"go.uber.org/zap"
)

// New returns an unopened writer for t's dialect.
func New(t Target) Writer {
	d := DialectFor(t)
	Logger().Debug("selected assembly dialect",
		zap.Stringer("target", t),
		zap.String("dialect", d.Name()),
		zap.Stringer("chunk", d.Chunk))

	switch d.Kind {
	case DialectMachO:
		return newMacWriter(t)
	case DialectELF:
		return newELFWriter(t)
	case DialectMASM:
		return newMASMWriter(t)
	case DialectARMASM:
		return newARMASMWriter(t)
	case DialectCOFFGNU:
		return newCOFFGNUWriter(t)
	case DialectAIX:
		return newAIXWriter(t)
	default:
		return newGenericWriter(t)
	}
}
