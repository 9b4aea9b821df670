package resource

import (
	"errors"
	"sync"
	"unsafe"
)

var (
	ErrClosed     = errors.New("arena closed")
	ErrDoubleFree = errors.New("pointer not allocated by this arena or already freed")
)

// Arena keeps Go-allocated buffers reachable on behalf of a foreign
// allocator and frees them by address.
type Arena struct {
	entries  []allocation
	byAddr   map[uintptr]Handle
	freeList []Handle
	mu       sync.RWMutex
	closed   bool
}

type allocation struct {
	backing any
	addr    uintptr
	size    uintptr
	valid   bool
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{
		entries:  make([]allocation, 0, 64),
		byAddr:   make(map[uintptr]Handle),
		freeList: make([]Handle, 0, 16),
	}
}

// Keep registers backing as the allocation that starts at ptr. backing must
// be the value that keeps ptr alive (typically the slice ptr points into).
func (a *Arena) Keep(ptr unsafe.Pointer, size uintptr, backing any) (Handle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return 0, ErrClosed
	}

	e := allocation{
		backing: backing,
		addr:    uintptr(ptr),
		size:    size,
		valid:   true,
	}

	var h Handle
	if len(a.freeList) > 0 {
		h = a.freeList[len(a.freeList)-1]
		a.freeList = a.freeList[:len(a.freeList)-1]
		a.entries[h-1] = e
	} else {
		a.entries = append(a.entries, e)
		h = Handle(len(a.entries))
	}
	a.byAddr[e.addr] = h
	return h, nil
}

// Owns reports whether ptr is a live allocation of this arena.
func (a *Arena) Owns(ptr unsafe.Pointer) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.byAddr[uintptr(ptr)]
	return ok
}

// Free releases the allocation starting at ptr. Freeing nil is a no-op.
func (a *Arena) Free(ptr unsafe.Pointer) error {
	if ptr == nil {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}

	h, ok := a.byAddr[uintptr(ptr)]
	if !ok {
		return ErrDoubleFree
	}
	delete(a.byAddr, uintptr(ptr))

	e := &a.entries[h-1]
	e.valid = false
	e.backing = nil
	e.addr = 0
	e.size = 0
	a.freeList = append(a.freeList, h)
	return nil
}

// Len returns the number of live allocations.
func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.byAddr)
}

// Bytes returns the total size of live allocations.
func (a *Arena) Bytes() uintptr {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var total uintptr
	for _, e := range a.entries {
		if e.valid {
			total += e.size
		}
	}
	return total
}

// Close drops every allocation. Further Keep and Free calls fail.
func (a *Arena) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true
	a.entries = nil
	a.byAddr = nil
	a.freeList = nil
	return nil
}
