package abi

import (
	"reflect"
	"strings"
	"unsafe"

	"github.com/wippyai/pyembed/errors"
)

// CKind is the C-level category of a mirrored field.
type CKind uint8

const (
	KindInt      CKind = iota // int
	KindULong                 // unsigned long
	KindSSize                 // Py_ssize_t
	KindPointer               // any pointer
	KindWideList              // PyWideStringList
)

func (k CKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindULong:
		return "unsigned long"
	case KindSSize:
		return "Py_ssize_t"
	case KindPointer:
		return "pointer"
	case KindWideList:
		return "PyWideStringList"
	default:
		return "unknown"
	}
}

// Field describes one mirrored field.
type Field struct {
	Name   string // C field name
	GoName string
	Kind   CKind
	Offset uintptr // offset in the Go mirror
}

// Info is the C layout of a type: size, alignment and per-field offsets.
type Info struct {
	FieldOffs map[string]uintptr
	Size      uintptr
	Align     uintptr
}

var ptrSize = unsafe.Sizeof(uintptr(0))

// SizeAlign returns the C size and alignment of a kind on the running target.
func (k CKind) SizeAlign() (size, align uintptr) {
	switch k {
	case KindInt:
		return 4, 4
	case KindULong:
		return unsafe.Sizeof(CULong(0)), unsafe.Alignof(CULong(0))
	case KindSSize, KindPointer:
		return ptrSize, ptrSize
	case KindWideList:
		return 2 * ptrSize, ptrSize
	default:
		return 0, 1
	}
}

// AlignTo rounds offset up to a multiple of align.
func AlignTo(offset, align uintptr) uintptr {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// Calculate lays fields out with C struct rules, ignoring their Go offsets.
func Calculate(fields []Field) Info {
	if len(fields) == 0 {
		return Info{Size: 0, Align: 1}
	}

	offs := make(map[string]uintptr, len(fields))
	maxAlign := uintptr(1)
	offset := uintptr(0)

	for _, f := range fields {
		size, align := f.Kind.SizeAlign()
		offset = AlignTo(offset, align)
		offs[f.Name] = offset
		if align > maxAlign {
			maxAlign = align
		}
		offset += size
	}

	return Info{
		Size:      AlignTo(offset, maxAlign),
		Align:     maxAlign,
		FieldOffs: offs,
	}
}

// ConfigFields returns the field table of Config in declaration order.
func ConfigFields() []Field {
	return fieldsOf(reflect.TypeOf(Config{}))
}

// StatusFields returns the field table of Status in declaration order.
func StatusFields() []Field {
	return fieldsOf(reflect.TypeOf(Status{}))
}

func fieldsOf(t reflect.Type) []Field {
	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name, _, _ := strings.Cut(sf.Tag.Get("c"), ",")
		if name == "" {
			name = sf.Name
		}
		fields = append(fields, Field{
			Name:   name,
			GoName: sf.Name,
			Kind:   kindOf(sf.Type),
			Offset: sf.Offset,
		})
	}
	return fields
}

var wideListType = reflect.TypeOf(WideStringList{})

func kindOf(t reflect.Type) CKind {
	switch {
	case t == wideListType:
		return KindWideList
	case t.Kind() == reflect.Pointer || t.Kind() == reflect.UnsafePointer:
		return KindPointer
	case t.Kind() == reflect.Int32:
		return KindInt
	case t.Kind() == reflect.Uint64:
		return KindULong
	case t.Kind() == reflect.Int:
		return KindSSize
	default:
		return 255
	}
}

// Audit checks that the Go mirrors of PyConfig, PyStatus and
// PyWideStringList match C layout rules for the running target.
func Audit() error {
	if err := auditType("PyConfig", ConfigFields(), unsafe.Sizeof(Config{})); err != nil {
		return err
	}
	if err := auditType("PyStatus", StatusFields(), unsafe.Sizeof(Status{})); err != nil {
		return err
	}
	return auditType("PyWideStringList", fieldsOf(wideListType), unsafe.Sizeof(WideStringList{}))
}

func auditType(name string, fields []Field, goSize uintptr) error {
	info := Calculate(fields)
	for _, f := range fields {
		if f.Kind > KindWideList {
			return errors.New(errors.PhaseLayout, errors.KindLayoutMismatch).
				Path(name, f.Name).
				Detail("Go field %s has no C counterpart", f.GoName).
				Build()
		}
		if want := info.FieldOffs[f.Name]; want != f.Offset {
			e := errors.LayoutMismatch(f.Name, f.Offset, want)
			e.Path = []string{name, f.Name}
			return e
		}
	}
	if info.Size != goSize {
		return errors.New(errors.PhaseLayout, errors.KindLayoutMismatch).
			Path(name).
			Detail("Go size %d, C size %d", goSize, info.Size).
			Build()
	}
	return nil
}
