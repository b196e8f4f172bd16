package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/term"

	"github.com/wippyai/embedasm"
	"github.com/wippyai/embedasm/build"
	"github.com/wippyai/embedasm/config"
	"github.com/wippyai/embedasm/embed"
	"github.com/wippyai/embedasm/platform"
)

func main() {
	fs := newFlagSet(os.Args[0], flag.ExitOnError)
	_ = fs.Parse(os.Args[1:])

	if boolFlag(fs, "list") {
		listTargets()
		return
	}

	m, err := manifest(stringFlag(fs, "config"))
	if err != nil {
		fail(err)
	}
	applyFlags(m, fs)

	if m.Blob == "" {
		fmt.Fprintln(os.Stderr, "Usage: embedasm -blob <file> [-code file] [-name stem] [-target os/arch,...] [-out template]")
		fmt.Fprintln(os.Stderr, "       embedasm -config embed.yaml")
		fmt.Fprintln(os.Stderr, "       embedasm -list")
		fmt.Fprintln(os.Stderr, "       embedasm -blob <file> -i  (interactive mode)")
		os.Exit(1)
	}
	if err := m.Validate(); err != nil {
		fail(err)
	}

	if err := setupLogging(m.Log); err != nil {
		fail(err)
	}

	if boolFlag(fs, "i") {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fail(fmt.Errorf("interactive mode needs a terminal"))
		}
		if err := runInteractive(m); err != nil {
			fail(err)
		}
		return
	}

	if err := run(m); err != nil {
		fail(err)
	}
}

func newFlagSet(name string, handling flag.ErrorHandling) *flag.FlagSet {
	fs := flag.NewFlagSet(name, handling)
	fs.String("config", "", "Path to a YAML manifest")
	fs.String("blob", "", "Path to the data blob to embed")
	fs.String("code", "", "Path to a code blob placed in the text section (optional)")
	fs.String("name", "", "Symbol name stem (default "+config.DefaultName+")")
	fs.String("target", "", "Targets, comma-separated os/arch[/toolchain] (default host)")
	fs.String("out", "", "Output path template, or - for stdout (default "+config.DefaultOutput+")")
	fs.Bool("verify", false, "Read every file back and check it against the blob")
	fs.Int("j", 0, "Files generated at once (default GOMAXPROCS)")
	fs.Bool("v", false, "Debug logging")
	fs.Bool("list", false, "List known targets and exit")
	fs.Bool("i", false, "Interactive previewer with TUI")
	return fs
}

// applyFlags overrides manifest keys with the flags set on the command line.
// Flags left at their defaults keep the manifest's values.
func applyFlags(m *config.Manifest, fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "blob":
			m.Blob = f.Value.String()
		case "code":
			m.Code = f.Value.String()
		case "name":
			m.Name = f.Value.String()
		case "target":
			if ts := splitList(f.Value.String()); len(ts) > 0 {
				m.Targets = ts
			}
		case "out":
			m.Output = f.Value.String()
		case "verify":
			m.Verify = boolFlag(fs, f.Name)
		case "j":
			m.Concurrency = fs.Lookup(f.Name).Value.(flag.Getter).Get().(int)
		case "v":
			if boolFlag(fs, f.Name) {
				m.Log.Level = "debug"
			}
		}
	})
}

func stringFlag(fs *flag.FlagSet, name string) string {
	return fs.Lookup(name).Value.String()
}

func boolFlag(fs *flag.FlagSet, name string) bool {
	return fs.Lookup(name).Value.(flag.Getter).Get().(bool)
}

func manifest(path string) (*config.Manifest, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func setupLogging(l config.Log) error {
	logger, err := l.Logger()
	if err != nil {
		return err
	}
	platform.SetLogger(logger)
	build.SetLogger(logger)
	return nil
}

func run(m *config.Manifest) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	blob, err := m.LoadBlob()
	if err != nil {
		return err
	}
	targets, err := m.ParsedTargets()
	if err != nil {
		return err
	}

	if m.Output == "-" {
		if len(targets) != 1 {
			return fmt.Errorf("-out - needs exactly one target, got %d", len(targets))
		}
		return embedasm.Emit(os.Stdout, targets[0], blob)
	}

	jobs := build.Jobs(m.Output, targets)
	if err := build.Generate(ctx, blob, jobs,
		build.WithVerify(m.Verify),
		build.WithConcurrency(m.Concurrency),
	); err != nil {
		return err
	}

	sym := blob.Symbols()
	fmt.Fprintf(os.Stderr, "Embedded %d data bytes as %s", len(blob.Data), sym.Data)
	if len(blob.Code) > 0 {
		fmt.Fprintf(os.Stderr, " and %d code bytes as %s", len(blob.Code), sym.Code)
	}
	fmt.Fprintln(os.Stderr)
	for _, j := range jobs {
		fmt.Fprintf(os.Stderr, "  %-20s %s\n", j.Target, j.Path)
	}
	return nil
}

func listTargets() {
	fmt.Printf("%-22s %-9s %-5s %-6s %s\n", "TARGET", "DIALECT", "EXT", "CHUNK", "POINTER")
	for _, t := range platform.KnownTargets() {
		d := platform.DialectFor(t)
		chunk, _ := d.Vocabulary.Lookup(d.Chunk)
		ptr := "-"
		if d.PointerSize > 0 {
			ptr = fmt.Sprintf("%d", d.PointerSize)
		}
		fmt.Printf("%-22s %-9s %-5s %-6s %s\n", t, d.Name(), d.Extension, chunk, ptr)
	}
}

// symbolSummary describes the symbols a blob is exported under.
func symbolSummary(b *embed.Blob) []string {
	sym := b.Symbols()
	names := []string{sym.Data, sym.DataSize, sym.DataHash}
	if len(b.Code) > 0 {
		names = append(names, sym.Code, sym.CodeSize, sym.CodeHash)
	}
	return names
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
