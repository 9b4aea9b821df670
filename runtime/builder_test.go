package runtime

import (
	"testing"

	"github.com/wippyai/pyembed/engine"
	"github.com/wippyai/pyembed/errors"
)

func TestBuilder_States(t *testing.T) {
	rt, ref := newTestRuntime(t)
	b := rt.NewBuilder()

	if b.State() != StateUninitialized {
		t.Fatalf("State() = %v", b.State())
	}
	if _, err := b.Build(); !errors.Is(err, errors.ErrInvalidState) {
		t.Fatalf("Build() before init = %v, want invalid state", err)
	}
	if err := b.SetArgv([]string{""}); !errors.Is(err, errors.ErrInvalidState) {
		t.Fatalf("SetArgv() before init = %v, want invalid state", err)
	}
	if ref.Calls(engine.EntrySetBytesArgv) != 0 {
		t.Fatal("argv setter reached before init")
	}

	if err := b.Initialize(); err != nil {
		t.Fatal(err)
	}
	if b.State() != StateRuntimeInitialized {
		t.Fatalf("State() = %v", b.State())
	}
	if err := b.Initialize(); !errors.Is(err, errors.ErrInvalidState) {
		t.Fatalf("second Initialize() = %v, want invalid state", err)
	}
	if _, err := b.Build(); !errors.Is(err, errors.ErrInvalidState) {
		t.Fatalf("Build() before argv = %v, want invalid state", err)
	}

	if err := b.SetArgv([]string{"one"}); err != nil {
		t.Fatal(err)
	}
	if err := b.SetArgv([]string{"two", "three"}); err != nil {
		t.Fatal(err)
	}
	if b.State() != StateArgvInstalled {
		t.Fatalf("State() = %v", b.State())
	}

	nc, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if got := nc.Argv(); len(got) != 2 || got[0] != "two" {
		t.Errorf("Argv() = %q", got)
	}
	if b.State() != StateReleased {
		t.Errorf("builder state after Build = %v", b.State())
	}
	if err := b.SetArgv([]string{"x"}); !errors.Is(err, errors.ErrInvalidState) {
		t.Errorf("SetArgv() after Build = %v, want invalid state", err)
	}

	nc.Close()
	if ref.Live() != 0 {
		t.Errorf("leaked %d allocations", ref.Live())
	}
}

func TestBuilder_FailedArgvKeepsState(t *testing.T) {
	rt, ref := newTestRuntime(t)
	b, err := rt.Initialize()
	if err != nil {
		t.Fatal(err)
	}

	if err := b.SetArgv([]string{"\x00"}); !errors.Is(err, errors.ErrEncoding) {
		t.Fatalf("SetArgv() = %v, want encoding error", err)
	}
	if b.State() != StateRuntimeInitialized {
		t.Errorf("State() = %v, want runtime-initialized", b.State())
	}

	b.Abort()
	b.Abort()
	if b.State() != StateReleased {
		t.Errorf("State() after Abort = %v", b.State())
	}
	if ref.Calls(engine.EntryClear) != 1 {
		t.Errorf("teardown called %d times, want 1", ref.Calls(engine.EntryClear))
	}
}

func TestState_String(t *testing.T) {
	tests := map[State]string{
		StateUninitialized:      "uninitialized",
		StateRuntimeInitialized: "runtime-initialized",
		StateArgvInstalled:      "argv-installed",
		StateReleased:           "released",
		State(9):                "unknown",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", s, s.String(), want)
		}
	}
}
