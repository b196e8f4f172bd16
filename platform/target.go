package platform

import (
	"encoding/binary"
	"runtime"
	"strings"

	"github.com/wippyai/embedasm/errors"
)

// OS identifies the target operating system.
type OS uint8

const (
	OSUnknown OS = iota
	OSDarwin
	OSLinux
	OSAndroid
	OSFreeBSD
	OSOpenBSD
	OSNetBSD
	OSFuchsia
	OSChromeOS
	OSWindows
	OSAIX
)

var osNames = map[OS]string{
	OSUnknown:  "unknown",
	OSDarwin:   "darwin",
	OSLinux:    "linux",
	OSAndroid:  "android",
	OSFreeBSD:  "freebsd",
	OSOpenBSD:  "openbsd",
	OSNetBSD:   "netbsd",
	OSFuchsia:  "fuchsia",
	OSChromeOS: "chromeos",
	OSWindows:  "windows",
	OSAIX:      "aix",
}

var osAliases = map[string]OS{
	"mac":   OSDarwin,
	"macos": OSDarwin,
	"ios":   OSDarwin,
	"win":   OSWindows,
	"win32": OSWindows,
	"cros":  OSChromeOS,
}

func (o OS) String() string {
	if s, ok := osNames[o]; ok {
		return s
	}
	return "unknown"
}

// ParseOS resolves an OS name or alias.
func ParseOS(s string) (OS, error) {
	s = strings.ToLower(s)
	for o, name := range osNames {
		if name == s {
			return o, nil
		}
	}
	if o, ok := osAliases[s]; ok {
		return o, nil
	}
	return OSUnknown, errors.UnknownTarget("os", s)
}

// Arch identifies the target CPU architecture.
type Arch uint8

const (
	ArchUnknown Arch = iota
	ArchX64
	ArchIA32
	ArchARM64
	ArchARM
	ArchPPC
	ArchPPC64
	ArchPPC64LE
	ArchS390X
	ArchRISCV64
	ArchMIPS64LE
	ArchLoong64
)

// ByteOrder reads and appends fixed-width integers in one byte order.
// binary.LittleEndian and binary.BigEndian both implement it.
type ByteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

type archInfo struct {
	name        string
	pointerSize int
	order       ByteOrder
	// longChunks marks architectures whose embedded code is emitted in
	// 32-bit chunks so every directive starts on an instruction boundary.
	longChunks bool
}

var archTable = map[Arch]archInfo{
	ArchUnknown:  {name: "unknown", order: binary.LittleEndian},
	ArchX64:      {name: "amd64", pointerSize: 8, order: binary.LittleEndian},
	ArchIA32:     {name: "386", pointerSize: 4, order: binary.LittleEndian},
	ArchARM64:    {name: "arm64", pointerSize: 8, order: binary.LittleEndian},
	ArchARM:      {name: "arm", pointerSize: 4, order: binary.LittleEndian},
	ArchPPC:      {name: "ppc", pointerSize: 4, order: binary.BigEndian, longChunks: true},
	ArchPPC64:    {name: "ppc64", pointerSize: 8, order: binary.BigEndian, longChunks: true},
	ArchPPC64LE:  {name: "ppc64le", pointerSize: 8, order: binary.LittleEndian, longChunks: true},
	ArchS390X:    {name: "s390x", pointerSize: 8, order: binary.BigEndian},
	ArchRISCV64:  {name: "riscv64", pointerSize: 8, order: binary.LittleEndian},
	ArchMIPS64LE: {name: "mips64le", pointerSize: 8, order: binary.LittleEndian, longChunks: true},
	ArchLoong64:  {name: "loong64", pointerSize: 8, order: binary.LittleEndian, longChunks: true},
}

var archAliases = map[string]Arch{
	"x64":         ArchX64,
	"x86_64":      ArchX64,
	"x86-64":      ArchX64,
	"ia32":        ArchIA32,
	"x86":         ArchIA32,
	"i386":        ArchIA32,
	"i686":        ArchIA32,
	"aarch64":     ArchARM64,
	"armv7":       ArchARM,
	"powerpc":     ArchPPC,
	"powerpc64":   ArchPPC64,
	"powerpc64le": ArchPPC64LE,
	"s390":        ArchS390X,
	"riscv":       ArchRISCV64,
	"mips64el":    ArchMIPS64LE,
	"loongarch64": ArchLoong64,
}

func (a Arch) String() string {
	if info, ok := archTable[a]; ok {
		return info.name
	}
	return "unknown"
}

// PointerSize returns the native pointer width in bytes, 0 if undetermined.
func (a Arch) PointerSize() int {
	return archTable[a].pointerSize
}

// ByteOrder returns the architecture's memory byte order.
func (a Arch) ByteOrder() ByteOrder {
	if info, ok := archTable[a]; ok && info.order != nil {
		return info.order
	}
	return binary.LittleEndian
}

// LongChunks reports whether embedded code for a is emitted in 32-bit chunks.
// These are the word-aligned RISC architectures whose assemblers reject or
// misplace wider data inside the text section: PowerPC, MIPS64 and
// LoongArch. ARM64 assemblers accept .octa, so it is not among them.
func (a Arch) LongChunks() bool {
	return archTable[a].longChunks
}

// ParseArch resolves an architecture name or alias.
func ParseArch(s string) (Arch, error) {
	s = strings.ToLower(s)
	for a, info := range archTable {
		if info.name == s {
			return a, nil
		}
	}
	if a, ok := archAliases[s]; ok {
		return a, nil
	}
	return ArchUnknown, errors.UnknownTarget("arch", s)
}

// Toolchain distinguishes assembler conventions on platforms that have more
// than one. Only Windows currently does.
type Toolchain uint8

const (
	ToolchainDefault Toolchain = iota
	ToolchainMSVC
	ToolchainGNU
)

func (t Toolchain) String() string {
	switch t {
	case ToolchainMSVC:
		return "msvc"
	case ToolchainGNU:
		return "gnu"
	default:
		return ""
	}
}

// ParseToolchain resolves a toolchain name. The empty string is the default.
func ParseToolchain(s string) (Toolchain, error) {
	switch strings.ToLower(s) {
	case "", "default":
		return ToolchainDefault, nil
	case "msvc", "masm", "clang-cl":
		return ToolchainMSVC, nil
	case "gnu", "mingw", "clang":
		return ToolchainGNU, nil
	}
	return ToolchainDefault, errors.UnknownTarget("toolchain", s)
}

// Target is the platform an assembly file is generated for.
type Target struct {
	OS        OS
	Arch      Arch
	Toolchain Toolchain
}

// String formats the target as os/arch[/toolchain], the form ParseTarget accepts.
func (t Target) String() string {
	s := t.OS.String() + "/" + t.Arch.String()
	if tc := t.Toolchain.String(); tc != "" {
		s += "/" + tc
	}
	return s
}

// PointerSize returns the target's native pointer width in bytes.
func (t Target) PointerSize() int {
	return t.Arch.PointerSize()
}

// ParseTarget parses "os/arch[/toolchain]". A dash may be used instead of
// the slash, e.g. "linux-x64" or "windows-x86-64-gnu"; arch aliases that
// contain a dash are matched whole.
func ParseTarget(s string) (Target, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "host") {
		return Host(), nil
	}

	parts := strings.Split(s, "/")
	if len(parts) == 1 {
		parts = splitDashed(s)
	}
	if len(parts) < 2 || len(parts) > 3 {
		return Target{}, errors.New(errors.PhaseSelect, errors.KindInvalidInput).
			Target(s).
			Detail("expected os/arch[/toolchain]").
			Build()
	}

	os, err := ParseOS(parts[0])
	if err != nil {
		return Target{}, err
	}
	arch, err := ParseArch(parts[1])
	if err != nil {
		return Target{}, err
	}
	var tc Toolchain
	if len(parts) == 3 {
		if tc, err = ParseToolchain(parts[2]); err != nil {
			return Target{}, err
		}
	}
	return Target{OS: os, Arch: arch, Toolchain: tc}, nil
}

// splitDashed splits "os-arch[-toolchain]". The os ends at the first dash;
// the toolchain, if any, starts after the last one.
func splitDashed(s string) []string {
	os, rest, ok := strings.Cut(s, "-")
	if !ok {
		return []string{s}
	}
	if _, err := ParseArch(rest); err == nil {
		return []string{os, rest}
	}
	if i := strings.LastIndex(rest, "-"); i >= 0 {
		return []string{os, rest[:i], rest[i+1:]}
	}
	return []string{os, rest}
}

// MustParseTarget is like ParseTarget but panics on error.
func MustParseTarget(s string) Target {
	t, err := ParseTarget(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Host returns the target matching the running Go toolchain's GOOS/GOARCH.
func Host() Target {
	os, err := ParseOS(runtime.GOOS)
	if err != nil {
		os = OSUnknown
	}
	arch, err := ParseArch(runtime.GOARCH)
	if err != nil {
		arch = ArchUnknown
	}
	return Target{OS: os, Arch: arch}
}

// KnownTargets lists the targets every dialect is exercised with.
func KnownTargets() []Target {
	return []Target{
		{OS: OSDarwin, Arch: ArchX64},
		{OS: OSDarwin, Arch: ArchARM64},
		{OS: OSDarwin, Arch: ArchPPC},
		{OS: OSLinux, Arch: ArchX64},
		{OS: OSLinux, Arch: ArchIA32},
		{OS: OSLinux, Arch: ArchARM64},
		{OS: OSLinux, Arch: ArchARM},
		{OS: OSLinux, Arch: ArchPPC64LE},
		{OS: OSLinux, Arch: ArchS390X},
		{OS: OSLinux, Arch: ArchRISCV64},
		{OS: OSLinux, Arch: ArchMIPS64LE},
		{OS: OSLinux, Arch: ArchLoong64},
		{OS: OSAndroid, Arch: ArchARM64},
		{OS: OSFuchsia, Arch: ArchX64},
		{OS: OSChromeOS, Arch: ArchX64},
		{OS: OSFreeBSD, Arch: ArchX64},
		{OS: OSWindows, Arch: ArchX64},
		{OS: OSWindows, Arch: ArchIA32},
		{OS: OSWindows, Arch: ArchARM64},
		{OS: OSWindows, Arch: ArchX64, Toolchain: ToolchainGNU},
		{OS: OSWindows, Arch: ArchARM64, Toolchain: ToolchainGNU},
		{OS: OSAIX, Arch: ArchPPC64},
		{OS: OSUnknown, Arch: ArchX64},
	}
}
