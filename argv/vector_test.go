package argv

import (
	"strings"
	"testing"
	"testing/quick"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/pyembed/abi"
	"github.com/wippyai/pyembed/errors"
)

func TestEncode_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"empty placeholder", []string{""}},
		{"none", []string{}},
		{"plain", []string{"python", "-c", "import sys"}},
		{"utf8", []string{"naïve", "日本語"}},
		{"raw bytes", []string{"\xff\xfe", "\x80"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Encode(tt.args)
			if err != nil {
				t.Fatalf("Encode() = %v", err)
			}
			defer v.Free()

			if v.Len() != len(tt.args) {
				t.Fatalf("Len() = %d, want %d", v.Len(), len(tt.args))
			}
			if diff := cmp.Diff(tt.args, v.Strings()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncode_RoundTripProperty(t *testing.T) {
	f := func(raw []string) bool {
		args := make([]string, len(raw))
		for i, s := range raw {
			args[i] = strings.ReplaceAll(s, "\x00", "")
		}
		v, err := Encode(args)
		if err != nil {
			return false
		}
		defer v.Free()
		return cmp.Equal(args, v.Strings())
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestEncode_InteriorNUL(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		index  string
		offset string
	}{
		{"middle", []string{"ok", "a\x00b"}, "argv[1]", "offset 1"},
		{"leading", []string{"\x00"}, "argv[0]", "offset 0"},
		{"trailing", []string{"x", "y", "z\x00"}, "argv[2]", "offset 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Encode(tt.args)
			if v != nil {
				t.Fatal("Encode() should not return a vector on error")
			}
			if !errors.Is(err, errors.ErrEncoding) {
				t.Fatalf("Encode() = %v, want encoding error", err)
			}
			msg := err.Error()
			if !strings.Contains(msg, tt.index) || !strings.Contains(msg, tt.offset) {
				t.Errorf("error %q should mention %s and %s", msg, tt.index, tt.offset)
			}
		})
	}
}

func TestVector_Argv(t *testing.T) {
	v, err := Encode([]string{"a", "bc"})
	if err != nil {
		t.Fatal(err)
	}

	argv := v.Argv()
	if argv == nil {
		t.Fatal("Argv() = nil")
	}
	if argv != v.Argv() {
		t.Error("Argv() should be stable across calls")
	}
	if *argv != v.ptrs[0] {
		t.Error("Argv() does not point at the pointer array")
	}
	if got := abi.GoString(*argv); got != "a" {
		t.Errorf("first arg = %q", got)
	}

	v.Free()
	v.Free()
	if v.Argv() != nil || v.Strings() != nil {
		t.Error("freed vector should expose nothing")
	}
}

func TestVector_EmptyArgv(t *testing.T) {
	v, err := Encode(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer v.Free()
	if v.Argv() != nil {
		t.Error("empty vector should have nil argv")
	}
	if v.Len() != 0 {
		t.Errorf("Len() = %d", v.Len())
	}
}
