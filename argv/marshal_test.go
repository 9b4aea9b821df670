package argv

import (
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/pyembed/abi"
	"github.com/wippyai/pyembed/engine"
	"github.com/wippyai/pyembed/errors"
	"github.com/wippyai/pyembed/resource"
)

// spyEngine records what the runtime saw during SetBytesArgv.
type spyEngine struct {
	*engine.Reference
	seen   []string
	ledger *resource.Ledger
	owner  resource.Owner
}

func (s *spyEngine) SetBytesArgv(cfg *abi.Config, argc int, argv **byte) abi.Status {
	if argv != nil {
		for _, p := range unsafe.Slice(argv, argc) {
			s.seen = append(s.seen, abi.GoString(p))
		}
	}
	if s.ledger != nil {
		s.owner, _ = s.ledger.Owner(RegionBuffers)
	}
	return s.Reference.SetBytesArgv(cfg, argc, argv)
}

func newConfig(t *testing.T, e engine.Engine) *abi.Config {
	t.Helper()
	cfg := new(abi.Config)
	if err := engine.Check(e, errors.PhaseInit, e.InitIsolatedConfig(cfg)); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestSetArgv(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"placeholder", []string{""}},
		{"none", nil},
		{"many", []string{"prog", "--flag", "value", "ünïcode"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := engine.NewReference()
			cfg := newConfig(t, r)

			if err := SetArgv(r, cfg, tt.args); err != nil {
				t.Fatalf("SetArgv() = %v", err)
			}
			if cfg.Argv.Length != len(tt.args) {
				t.Fatalf("argv length = %d, want %d", cfg.Argv.Length, len(tt.args))
			}
			if diff := cmp.Diff(tt.args, cfg.Argv.Strings()); diff != "" {
				t.Errorf("argv mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSetArgv_EncodingErrorSkipsRuntime(t *testing.T) {
	r := engine.NewReference()
	cfg := newConfig(t, r)

	err := SetArgv(r, cfg, []string{"fine", "bro\x00ken"})
	if !errors.Is(err, errors.ErrEncoding) {
		t.Fatalf("SetArgv() = %v, want encoding error", err)
	}
	if n := r.Calls(engine.EntrySetBytesArgv); n != 0 {
		t.Fatalf("argv setter called %d times, want 0", n)
	}
	if cfg.Argv.Length != 0 {
		t.Error("argv modified despite encoding error")
	}
}

func TestSetArgv_StatusError(t *testing.T) {
	r := engine.NewReference(engine.WithFault(engine.EntrySetBytesArgv,
		abi.StatusErr("_PyArgv_AsWstrList", "cannot decode command line arguments")))
	cfg := newConfig(t, r)
	ledger := resource.NewLedger()

	m := Marshaler{Engine: r, Ledger: ledger}
	err := m.SetArgv(cfg, []string{"x"})

	var se *errors.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("SetArgv() = %v, want *StatusError", err)
	}
	if se.Phase != errors.PhaseArgv || se.Func != "_PyArgv_AsWstrList" {
		t.Errorf("StatusError = %+v", se)
	}
	if ledger.Len() != 0 {
		t.Errorf("ledger regions after failure = %v", ledger.Regions(resource.OwnerCaller))
	}
}

func TestMarshaler_Ownership(t *testing.T) {
	spy := &spyEngine{Reference: engine.NewReference()}
	cfg := newConfig(t, spy)
	ledger := resource.NewLedger()
	spy.ledger = ledger

	m := Marshaler{Engine: spy, Ledger: ledger}
	args := []string{"", "second"}
	if err := m.SetArgv(cfg, args); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(args, spy.seen); diff != "" {
		t.Errorf("runtime saw (-want +got):\n%s", diff)
	}
	if spy.owner != resource.OwnerCaller {
		t.Errorf("buffers owner during call = %v, want caller", spy.owner)
	}
	if _, ok := ledger.Owner(RegionBuffers); ok {
		t.Error("caller buffers still tracked after the call")
	}
	if owner, ok := ledger.Owner(RegionArgv); !ok || owner != resource.OwnerRuntime {
		t.Errorf("argv owner = %v, %v; want runtime", owner, ok)
	}
}
