package embed

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/embedasm/errors"
)

func TestSymbolsFor(t *testing.T) {
	s := SymbolsFor("v8_snapshot")
	tests := []struct {
		got, want string
	}{
		{s.DataLabel, "v8_snapshot_data_"},
		{s.Data, "v8_snapshot_data"},
		{s.DataSize, "v8_snapshot_data_size"},
		{s.DataHash, "v8_snapshot_data_hash"},
		{s.CodeLabel, "v8_snapshot_code_"},
		{s.Code, "v8_snapshot_code"},
		{s.CodeSize, "v8_snapshot_code_size"},
		{s.CodeHash, "v8_snapshot_code_hash"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestValidSymbol(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"blob", true},
		{"_blob", true},
		{"Builtin_Abort2", true},
		{"", false},
		{"2blob", false},
		{"blob.data", false},
		{"blob data", false},
		{"blob-data", false},
		{"blob$", false},
	}
	for _, tt := range tests {
		if got := ValidSymbol(tt.name); got != tt.want {
			t.Errorf("ValidSymbol(%q): got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	code := make([]byte, 32)
	tests := []struct {
		name string
		blob *Blob
		ok   bool
	}{
		{"nil", nil, false},
		{"empty data", &Blob{Name: "b"}, true},
		{"bad name", &Blob{Name: "b-1"}, false},
		{"data only", &Blob{Name: "b", Data: []byte{1, 2, 3}}, true},
		{"functions without code", &Blob{Name: "b", Functions: []Function{{Name: "f"}}}, false},
		{
			"functions in range",
			&Blob{Name: "b", Code: code, Functions: []Function{
				{Name: "f", Offset: 0, Size: 16},
				{Name: "g", Offset: 16, Size: 16},
			}},
			true,
		},
		{
			"function past end",
			&Blob{Name: "b", Code: code, Functions: []Function{{Name: "f", Offset: 24, Size: 16}}},
			false,
		},
		{
			"offset overflow",
			&Blob{Name: "b", Code: code, Functions: []Function{{Name: "f", Offset: 1<<32 - 1, Size: 2}}},
			false,
		},
		{
			"overlap",
			&Blob{Name: "b", Code: code, Functions: []Function{
				{Name: "g", Offset: 8, Size: 16},
				{Name: "f", Offset: 0, Size: 10},
			}},
			false,
		},
		{
			"duplicate",
			&Blob{Name: "b", Code: code, Functions: []Function{
				{Name: "f", Offset: 0, Size: 4},
				{Name: "f", Offset: 8, Size: 4},
			}},
			false,
		},
		{
			"bad function name",
			&Blob{Name: "b", Code: code, Functions: []Function{{Name: "f.g", Size: 4}}},
			false,
		},
		{
			"file id out of range",
			&Blob{Name: "b", Code: code, Files: []string{"a.cc"}, Functions: []Function{{Name: "f", Size: 4, FileID: 2}}},
			false,
		},
		{
			"file id in range",
			&Blob{Name: "b", Code: code, Files: []string{"a.cc"}, Functions: []Function{{Name: "f", Size: 4, FileID: 1, Line: 7}}},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.blob.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("expected error")
				}
				var e *errors.Error
				if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidInput {
					t.Errorf("got %v, want %s error", err, errors.KindInvalidInput)
				}
			}
		})
	}
}

func TestChecksum(t *testing.T) {
	a := Checksum([]byte("embedded"))
	if a != Checksum([]byte("embedded")) {
		t.Error("checksum is not deterministic")
	}
	if a == Checksum([]byte("embedded!")) {
		t.Error("checksum ignores trailing byte")
	}
	// BLAKE3 of the empty input starts af1349b9.
	if got, want := Checksum(nil), uint32(0xb94913af); got != want {
		t.Errorf("Checksum(nil): got %#x, want %#x", got, want)
	}
}
