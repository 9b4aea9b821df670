package argv

import (
	"runtime"
	"strings"

	"github.com/wippyai/pyembed/abi"
	"github.com/wippyai/pyembed/errors"
)

// Vector is an argument vector in native form. It must not be used after Free.
type Vector struct {
	bufs   [][]byte
	ptrs   []*byte
	pinner runtime.Pinner
	pinned bool
	freed  bool
}

// Encode copies args into NUL-terminated buffers. An argument containing a
// NUL byte is rejected, since the runtime would silently truncate it.
func Encode(args []string) (*Vector, error) {
	for i, a := range args {
		if off := strings.IndexByte(a, 0); off >= 0 {
			return nil, errors.Encoding(i, off)
		}
	}

	v := &Vector{
		bufs: make([][]byte, len(args)),
		ptrs: make([]*byte, len(args)),
	}
	for i, a := range args {
		buf := make([]byte, len(a)+1)
		copy(buf, a)
		v.bufs[i] = buf
		v.ptrs[i] = &buf[0]
	}
	return v, nil
}

// Len returns the argument count.
func (v *Vector) Len() int {
	return len(v.ptrs)
}

// Argv pins the buffers and returns the pointer array, or nil for an empty
// vector. The result is valid until Free.
func (v *Vector) Argv() **byte {
	if v.freed || len(v.ptrs) == 0 {
		return nil
	}
	if !v.pinned {
		for _, p := range v.ptrs {
			v.pinner.Pin(p)
		}
		v.pinned = true
	}
	return &v.ptrs[0]
}

// Strings reads the arguments back through the pointer array.
func (v *Vector) Strings() []string {
	if v.freed {
		return nil
	}
	out := make([]string, len(v.ptrs))
	for i, p := range v.ptrs {
		out[i] = abi.GoString(p)
	}
	return out
}

// Free unpins and drops the buffers. Calling it twice is harmless.
func (v *Vector) Free() {
	if v.freed {
		return
	}
	if v.pinned {
		v.pinner.Unpin()
		v.pinned = false
	}
	v.freed = true
	v.bufs = nil
	v.ptrs = nil
}
