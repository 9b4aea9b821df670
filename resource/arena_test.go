package resource

import (
	"errors"
	"testing"
	"unsafe"
)

func TestArena_KeepFree(t *testing.T) {
	a := NewArena()
	buf := make([]int32, 4)
	p := unsafe.Pointer(&buf[0])

	h, err := a.Keep(p, 16, buf)
	if err != nil || h == 0 {
		t.Fatalf("Keep() = %d, %v", h, err)
	}
	if !a.Owns(p) {
		t.Fatal("arena should own kept pointer")
	}
	if a.Len() != 1 || a.Bytes() != 16 {
		t.Fatalf("Len() = %d, Bytes() = %d", a.Len(), a.Bytes())
	}

	if err := a.Free(p); err != nil {
		t.Fatalf("Free() = %v", err)
	}
	if a.Owns(p) {
		t.Fatal("freed pointer still owned")
	}
	if err := a.Free(p); !errors.Is(err, ErrDoubleFree) {
		t.Fatalf("double Free() = %v, want ErrDoubleFree", err)
	}
	if err := a.Free(nil); err != nil {
		t.Fatalf("Free(nil) = %v", err)
	}
}

func TestArena_ReusesHandles(t *testing.T) {
	a := NewArena()
	b1 := make([]byte, 1)
	b2 := make([]byte, 1)

	h1, _ := a.Keep(unsafe.Pointer(&b1[0]), 1, b1)
	if err := a.Free(unsafe.Pointer(&b1[0])); err != nil {
		t.Fatal(err)
	}
	h2, _ := a.Keep(unsafe.Pointer(&b2[0]), 1, b2)
	if h1 != h2 {
		t.Fatalf("handle not reused: %d then %d", h1, h2)
	}
}

func TestArena_Close(t *testing.T) {
	a := NewArena()
	buf := make([]byte, 2)
	if _, err := a.Keep(unsafe.Pointer(&buf[0]), 2, buf); err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Fatal("second Close should be a no-op")
	}
	if _, err := a.Keep(unsafe.Pointer(&buf[0]), 2, buf); !errors.Is(err, ErrClosed) {
		t.Fatalf("Keep after Close = %v, want ErrClosed", err)
	}
	if err := a.Free(unsafe.Pointer(&buf[0])); !errors.Is(err, ErrClosed) {
		t.Fatalf("Free after Close = %v, want ErrClosed", err)
	}
}
