package abi

import (
	"testing"
	"unsafe"

	"github.com/wippyai/pyembed/errors"
)

func TestAudit(t *testing.T) {
	if err := Audit(); err != nil {
		t.Fatalf("Audit() = %v", err)
	}
}

func TestConfigLayout64(t *testing.T) {
	if unsafe.Sizeof(uintptr(0)) != 8 {
		t.Skip("layout constants are for 64-bit targets")
	}

	if got := unsafe.Sizeof(Config{}); got != 392 {
		t.Errorf("sizeof(PyConfig) = %d, want 392", got)
	}
	if got := unsafe.Sizeof(Status{}); got != 32 {
		t.Errorf("sizeof(PyStatus) = %d, want 32", got)
	}

	offsets := map[string]uintptr{
		"_config_init":            0,
		"hash_seed":               24,
		"faulthandler":            32,
		"filesystem_encoding":     64,
		"parse_argv":              88,
		"argv":                    96,
		"program_name":            112,
		"xoptions":                120,
		"warnoptions":             136,
		"site_import":             152,
		"buffered_stdio":          196,
		"stdio_encoding":          200,
		"pathconfig_warnings":     224,
		"pythonpath_env":          232,
		"module_search_paths_set": 248,
		"module_search_paths":     256,
		"platlibdir":              320,
		"skip_source_first_line":  328,
		"run_command":             336,
		"_isolated_interpreter":   368,
		"orig_argv":               376,
	}

	info := Calculate(ConfigFields())
	for name, want := range offsets {
		if got := info.FieldOffs[name]; got != want {
			t.Errorf("offsetof(%s) = %d, want %d", name, got, want)
		}
	}
}

func TestConfigFields(t *testing.T) {
	fields := ConfigFields()
	if len(fields) != 57 {
		t.Fatalf("len(ConfigFields()) = %d, want 57", len(fields))
	}

	first, last := fields[0], fields[len(fields)-1]
	if first.Name != "_config_init" || first.Kind != KindInt {
		t.Errorf("first field = %+v", first)
	}
	if last.Name != "orig_argv" || last.Kind != KindWideList {
		t.Errorf("last field = %+v", last)
	}

	seen := make(map[string]bool)
	for _, f := range fields {
		if seen[f.Name] {
			t.Errorf("duplicate field %s", f.Name)
		}
		seen[f.Name] = true
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
		size   uintptr
		align  uintptr
	}{
		{"empty", nil, 0, 1},
		{"single int", []Field{{Name: "a", Kind: KindInt}}, 4, 4},
		{"int then pointer pads", []Field{{Name: "a", Kind: KindInt}, {Name: "p", Kind: KindPointer}}, 2 * ptrSize, ptrSize},
		{"trailing int rounds up", []Field{{Name: "p", Kind: KindPointer}, {Name: "a", Kind: KindInt}}, 2 * ptrSize, ptrSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Calculate(tt.fields)
			if info.Size != tt.size {
				t.Errorf("Size = %d, want %d", info.Size, tt.size)
			}
			if info.Align != tt.align {
				t.Errorf("Align = %d, want %d", info.Align, tt.align)
			}
		})
	}
}

func TestAuditType_Mismatch(t *testing.T) {
	fields := []Field{
		{Name: "a", Kind: KindInt, Offset: 0},
		{Name: "p", Kind: KindPointer, Offset: 4},
	}
	err := auditType("broken", fields, 16)
	if !errors.Is(err, errors.ErrLayoutMismatch) {
		t.Fatalf("auditType() = %v, want layout mismatch", err)
	}
}

func TestAuditType_SizeMismatch(t *testing.T) {
	fields := []Field{{Name: "a", Kind: KindInt, Offset: 0}}
	if err := auditType("short", fields, 8); !errors.Is(err, errors.ErrLayoutMismatch) {
		t.Fatalf("auditType() = %v, want size mismatch", err)
	}
}

func TestAlignTo(t *testing.T) {
	tests := []struct{ off, align, want uintptr }{
		{0, 8, 0},
		{1, 8, 8},
		{60, 8, 64},
		{64, 8, 64},
		{5, 0, 5},
	}
	for _, tt := range tests {
		if got := AlignTo(tt.off, tt.align); got != tt.want {
			t.Errorf("AlignTo(%d, %d) = %d, want %d", tt.off, tt.align, got, tt.want)
		}
	}
}

func TestCKind_String(t *testing.T) {
	if KindWideList.String() != "PyWideStringList" {
		t.Errorf("KindWideList.String() = %q", KindWideList.String())
	}
	if CKind(200).String() != "unknown" {
		t.Errorf("CKind(200).String() = %q", CKind(200).String())
	}
}
