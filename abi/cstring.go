package abi

import (
	"unicode/utf8"
	"unsafe"
)

// MaxCString bounds scans for a terminator through foreign memory.
const MaxCString = 1 << 30

// CString returns a pointer to a NUL-terminated copy of s held in Go memory.
// Empty strings still get a terminator; callers wanting NULL pass nil.
func CString(s string) *byte {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return &buf[0]
}

// CStringLen returns the number of bytes before the terminator.
func CStringLen(p *byte) int {
	if p == nil {
		return 0
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
		if n >= MaxCString {
			break
		}
	}
	return n
}

// GoBytes copies the bytes of a NUL-terminated string, excluding the terminator.
func GoBytes(p *byte) []byte {
	if p == nil {
		return nil
	}
	n := CStringLen(p)
	out := make([]byte, n)
	copy(out, unsafe.Slice(p, n))
	return out
}

// GoString converts a NUL-terminated byte string. nil yields "".
func GoString(p *byte) string {
	if p == nil {
		return ""
	}
	return string(unsafe.Slice(p, CStringLen(p)))
}

// WideLen returns the number of wide characters before the terminator.
func WideLen(p *WChar) int {
	if p == nil {
		return 0
	}
	n := 0
	for *(*WChar)(unsafe.Add(unsafe.Pointer(p), uintptr(n)*unsafe.Sizeof(WChar(0)))) != 0 {
		n++
		if n >= MaxCString {
			break
		}
	}
	return n
}

// GoWideString converts a NUL-terminated wchar_t string to Go.
// Lone surrogates U+DC80..U+DCFF (surrogateescape) turn back into the raw
// bytes they stand for, so undecodable input round-trips.
func GoWideString(p *WChar) string {
	if p == nil {
		return ""
	}
	chars := unsafe.Slice(p, WideLen(p))
	buf := make([]byte, 0, len(chars))
	for _, c := range chars {
		if c >= 0xDC80 && c <= 0xDCFF {
			buf = append(buf, byte(c-0xDC00))
			continue
		}
		buf = utf8.AppendRune(buf, rune(c))
	}
	return string(buf)
}

// Slice returns the pointer array of a list as a slice. The slice aliases
// foreign memory and must not outlive the list.
func (l WideStringList) Slice() []*WChar {
	if l.Items == nil || l.Length <= 0 {
		return nil
	}
	return unsafe.Slice(l.Items, l.Length)
}

// Strings copies every element of the list into Go strings.
func (l WideStringList) Strings() []string {
	items := l.Slice()
	if items == nil {
		return nil
	}
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = GoWideString(p)
	}
	return out
}
