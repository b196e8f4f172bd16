package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/embedasm/embed"
	"github.com/wippyai/embedasm/errors"
	"github.com/wippyai/embedasm/platform"
)

const (
	DefaultName   = "embedded_blob"
	DefaultOutput = "embedded_{target}{ext}"
)

// Manifest describes one blob and the targets it is generated for.
//
//	name: v8_snapshot
//	blob: out/snapshot.bin
//	code: out/builtins.bin
//	output: gen/embedded_{target}{ext}
//	targets: [linux/amd64, darwin/arm64, windows/amd64]
//	files: [src/builtins/builtins.cc]
//	functions:
//	  - {name: Builtin_Abort, offset: 0, size: 64, file: 1, line: 12}
//	verify: true
//	concurrency: 4
//	log: {level: info, format: console}
type Manifest struct {
	Name        string     `yaml:"name"`
	Blob        string     `yaml:"blob"`
	Code        string     `yaml:"code"`
	Output      string     `yaml:"output"`
	Targets     []string   `yaml:"targets"`
	Files       []string   `yaml:"files"`
	Functions   []Function `yaml:"functions"`
	Verify      bool       `yaml:"verify"`
	Concurrency int        `yaml:"concurrency"`
	Log         Log        `yaml:"log"`
}

// Function names a range of the code blob.
type Function struct {
	Name   string `yaml:"name"`
	Offset uint32 `yaml:"offset"`
	Size   uint32 `yaml:"size"`
	File   int    `yaml:"file"`
	Line   int    `yaml:"line"`
}

// Log configures the CLI's logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads the manifest at path. Relative blob, code and output paths are
// resolved against the manifest's directory. Like Parse it leaves the
// completeness checks to Validate, so flags can still fill in missing keys.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindIO, err, "read manifest "+path)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	m.Blob = resolve(dir, m.Blob)
	m.Code = resolve(dir, m.Code)
	m.Output = resolve(dir, m.Output)
	return m, nil
}

// Parse decodes a manifest and applies defaults. Unknown keys and values
// that are wrong on their own (names, targets, log level) are rejected;
// keys that may come from elsewhere, such as the blob path, are not required
// until Validate.
func Parse(data []byte) (*Manifest, error) {
	m := &Manifest{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(m); err != nil && err != io.EOF {
		return nil, errors.ParseFailed("manifest", err)
	}
	m.applyDefaults()
	if err := m.check(); err != nil {
		return nil, err
	}
	return m, nil
}

// Default returns a manifest with every default applied and no blob set.
func Default() *Manifest {
	m := &Manifest{}
	m.applyDefaults()
	return m
}

func (m *Manifest) applyDefaults() {
	if m.Name == "" {
		m.Name = DefaultName
	}
	if m.Output == "" {
		m.Output = DefaultOutput
	}
	if len(m.Targets) == 0 {
		m.Targets = []string{"host"}
	}
}

// Validate checks everything that can be checked without reading the blobs.
func (m *Manifest) Validate() error {
	if m.Blob == "" {
		return errors.InvalidInput(errors.PhaseConfig, "blob path is required")
	}
	if len(m.Functions) > 0 && m.Code == "" {
		return errors.InvalidInput(errors.PhaseConfig, "functions require a code blob")
	}
	return m.check()
}

func (m *Manifest) check() error {
	if !embed.ValidSymbol(m.Name) {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Symbol(m.Name).
			Detail("name must be an identifier").
			Build()
	}
	if m.Concurrency < 0 {
		return errors.InvalidInput(errors.PhaseConfig, "concurrency must not be negative")
	}
	if _, err := m.ParsedTargets(); err != nil {
		return err
	}
	if _, err := m.Log.level(); err != nil {
		return err
	}
	return nil
}

// ParsedTargets resolves the target list.
func (m *Manifest) ParsedTargets() ([]platform.Target, error) {
	targets := make([]platform.Target, 0, len(m.Targets))
	for _, s := range m.Targets {
		t, err := platform.ParseTarget(s)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// LoadBlob reads the blob files the manifest names.
func (m *Manifest) LoadBlob() (*embed.Blob, error) {
	b := &embed.Blob{Name: m.Name, Files: m.Files}
	var err error
	if b.Data, err = os.ReadFile(m.Blob); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindIO, err, "read blob "+m.Blob)
	}
	if m.Code != "" {
		if b.Code, err = os.ReadFile(m.Code); err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindIO, err, "read code "+m.Code)
		}
	}
	for _, f := range m.Functions {
		b.Functions = append(b.Functions, embed.Function{
			Name:   f.Name,
			Offset: f.Offset,
			Size:   f.Size,
			FileID: f.File,
			Line:   f.Line,
		})
	}
	return b, nil
}

func (l Log) level() (zapcore.Level, error) {
	if l.Level == "" {
		return zapcore.WarnLevel, nil
	}
	lvl, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return lvl, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log level")
	}
	return lvl, nil
}

// Logger builds a logger writing to stderr. Format is "console" (default)
// or "json".
func (l Log) Logger() (*zap.Logger, error) {
	lvl, err := l.level()
	if err != nil {
		return nil, err
	}
	var cfg zap.Config
	switch l.Format {
	case "", "console":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Detail("unknown log format %q", l.Format).
			Build()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func resolve(dir, p string) string {
	if p == "" || p == "-" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
