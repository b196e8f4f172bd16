package build

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/embedasm/embed"
	"github.com/wippyai/embedasm/errors"
	"github.com/wippyai/embedasm/platform"
	"github.com/wippyai/embedasm/verify"
)

// Job is one assembly file to generate.
type Job struct {
	Target platform.Target
	Path   string
}

type options struct {
	verify      bool
	concurrency int
}

// Option configures WriteFile and Generate.
type Option func(*options)

// WithVerify reads every written file back and checks it against the blob
// before it is moved into place.
func WithVerify(enabled bool) Option {
	return func(o *options) { o.verify = enabled }
}

// WithConcurrency limits how many files Generate writes at once.
// Values below 1 mean GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = n }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.concurrency < 1 {
		o.concurrency = runtime.GOMAXPROCS(0)
	}
	return o
}

// Render emits b for t into memory.
func Render(t platform.Target, b *embed.Blob) ([]byte, error) {
	if err := checkTarget(t); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := emitTo(platform.New(t), &buf, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile generates job.Path. Output goes to a temporary file in the same
// directory that is renamed over job.Path only after the writer closed
// cleanly (and verification passed, if enabled); on every other path,
// including a panic from the writer, the temporary file is removed.
func WriteFile(ctx context.Context, job Job, b *embed.Blob, opts ...Option) error {
	o := newOptions(opts)
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkTarget(job.Target); err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(job.Path), "."+filepath.Base(job.Path)+".*")
	if err != nil {
		return errors.Wrap(errors.PhaseWrite, errors.KindIO, err, "create temporary output")
	}
	tmp := f.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmp)
		}
	}()
	if err := f.Chmod(0o644); err != nil {
		_ = f.Close()
		return errors.Wrap(errors.PhaseWrite, errors.KindIO, err, "chmod temporary output")
	}

	if err := emitTo(platform.New(job.Target), newFileStream(f), b); err != nil {
		return err
	}

	if o.verify {
		text, err := os.ReadFile(tmp)
		if err != nil {
			return errors.Wrap(errors.PhaseVerify, errors.KindIO, err, "read back "+tmp)
		}
		if err := verify.Blob(string(text), job.Target, b); err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Rename(tmp, job.Path); err != nil {
		return errors.Wrap(errors.PhaseWrite, errors.KindIO, err, "move output into place")
	}
	committed = true

	Logger().Info("wrote assembly",
		zap.String("path", job.Path),
		zap.Stringer("target", job.Target),
		zap.Bool("verified", o.verify))
	return nil
}

// Generate writes every job with its own writer. The first failure cancels
// the jobs that have not started yet and is returned.
func Generate(ctx context.Context, b *embed.Blob, jobs []Job, opts ...Option) error {
	if err := b.Validate(); err != nil {
		return err
	}
	seen := make(map[string]platform.Target, len(jobs))
	for _, j := range jobs {
		p := filepath.Clean(j.Path)
		if prev, ok := seen[p]; ok {
			return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
				Target(j.Target.String()).
				Detail("output %s already used by %s", p, prev).
				Build()
		}
		seen[p] = j.Target
	}

	o := newOptions(opts)
	Logger().Debug("generating",
		zap.String("blob", b.Name),
		zap.Int("jobs", len(jobs)),
		zap.Int("concurrency", o.concurrency))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			return WriteFile(ctx, job, b, opts...)
		})
	}
	return g.Wait()
}

// emitTo drives w over out and always closes it. Close repeats the writer's
// sticky error, so when one occurred the Close result replaces Write's.
func emitTo(w platform.Writer, out io.Writer, b *embed.Blob) (err error) {
	w.Open(out)
	defer func() {
		cerr := w.Close()
		switch {
		case cerr == nil:
		case w.Err() != nil:
			err = cerr
		default:
			err = multierr.Append(err, cerr)
		}
	}()
	return embed.Write(w, b)
}

// fileStream buffers writes to f. Closing flushes and closes the file.
type fileStream struct {
	*bufio.Writer
	f *os.File
}

func newFileStream(f *os.File) *fileStream {
	return &fileStream{Writer: bufio.NewWriter(f), f: f}
}

func (s *fileStream) Close() error {
	return multierr.Append(s.Flush(), s.f.Close())
}

func checkTarget(t platform.Target) error {
	if t.PointerSize() == 0 {
		return errors.New(errors.PhaseSelect, errors.KindUnsupported).
			Target(t.String()).
			Detail("target architecture has no known pointer width").
			Build()
	}
	return nil
}

// OutputPath expands the placeholders in template for t:
//
//	{target}     os_arch, plus _toolchain when one is set
//	{os}         operating system name
//	{arch}       architecture name
//	{toolchain}  toolchain name, empty for the default
//	{ext}        the dialect's source extension, with the dot
func OutputPath(template string, t platform.Target) string {
	return strings.NewReplacer(
		"{target}", strings.ReplaceAll(t.String(), "/", "_"),
		"{os}", t.OS.String(),
		"{arch}", t.Arch.String(),
		"{toolchain}", t.Toolchain.String(),
		"{ext}", platform.DialectFor(t).Extension,
	).Replace(template)
}

// Jobs builds one job per target from an output template.
func Jobs(template string, targets []platform.Target) []Job {
	jobs := make([]Job, 0, len(targets))
	for _, t := range targets {
		jobs = append(jobs, Job{Target: t, Path: OutputPath(template, t)})
	}
	return jobs
}
