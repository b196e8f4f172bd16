package embedasm

import (
	"io"

	"github.com/wippyai/embedasm/embed"
	"github.com/wippyai/embedasm/errors"
	"github.com/wippyai/embedasm/platform"
)

// Emit writes the assembly embedding b for t to out. Unlike a platform
// writer, Emit never closes out, so it is safe to use with os.Stdout.
func Emit(out io.Writer, t platform.Target, b *embed.Blob) (err error) {
	if t.PointerSize() == 0 {
		return errors.New(errors.PhaseSelect, errors.KindUnsupported).
			Target(t.String()).
			Detail("target architecture has no known pointer width").
			Build()
	}
	w := platform.New(t)
	w.Open(writerOnly{out})
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	return embed.Write(w, b)
}

// writerOnly hides any Close method of the wrapped writer.
type writerOnly struct {
	io.Writer
}
