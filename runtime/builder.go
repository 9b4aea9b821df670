package runtime

import (
	"go.uber.org/zap"

	"github.com/wippyai/pyembed/abi"
	"github.com/wippyai/pyembed/argv"
	"github.com/wippyai/pyembed/engine"
	"github.com/wippyai/pyembed/errors"
	"github.com/wippyai/pyembed/resource"
)

// Builder drives a single native config from zeroed memory to a usable
// value. It is not safe for concurrent use.
type Builder struct {
	engine engine.Engine
	ledger *resource.Ledger
	raw    *abi.Config
	log    *zap.Logger
	state  State
}

func newBuilder(e engine.Engine, log *zap.Logger) *Builder {
	return &Builder{
		engine: e,
		ledger: resource.NewLedger(),
		raw:    new(abi.Config),
		log:    log,
		state:  StateUninitialized,
	}
}

// State returns the current build state.
func (b *Builder) State() State {
	return b.state
}

// Ledger returns the ownership side-table of the config being built.
func (b *Builder) Ledger() *resource.Ledger {
	return b.ledger
}

// Initialize installs the runtime's isolated defaults.
func (b *Builder) Initialize() error {
	if b.state != StateUninitialized {
		return errors.InvalidState(errors.PhaseInit, b.state.String(), StateUninitialized.String())
	}

	st := b.engine.InitIsolatedConfig(b.raw)
	if err := engine.Check(b.engine, errors.PhaseInit, st); err != nil {
		b.log.Debug("isolated config init failed", zap.Error(err))
		return err
	}

	for _, f := range abi.ConfigFields() {
		if f.Kind == abi.KindPointer || f.Kind == abi.KindWideList {
			b.ledger.Track(f.Name, resource.OwnerRuntime, nil)
		}
	}

	b.state = StateRuntimeInitialized
	b.log.Debug("config initialized", zap.Stringer("state", b.state))
	return nil
}

// SetArgv installs args as the config's argument vector. It may be called
// again to replace a previously installed vector.
func (b *Builder) SetArgv(args []string) error {
	if b.state != StateRuntimeInitialized && b.state != StateArgvInstalled {
		return errors.InvalidState(errors.PhaseArgv, b.state.String(), StateRuntimeInitialized.String())
	}

	m := argv.Marshaler{Engine: b.engine, Ledger: b.ledger, Logger: b.log}
	if err := m.SetArgv(b.raw, args); err != nil {
		return err
	}

	b.state = StateArgvInstalled
	b.log.Debug("argv installed", zap.Int("argc", len(args)), zap.Stringer("state", b.state))
	return nil
}

// Build hands out the finished config. The builder must not be used
// afterwards.
func (b *Builder) Build() (*NativeConfig, error) {
	if b.state != StateArgvInstalled {
		return nil, errors.InvalidState(errors.PhaseResolve, b.state.String(), StateArgvInstalled.String())
	}

	nc := &NativeConfig{
		engine: b.engine,
		ledger: b.ledger,
		raw:    b.raw,
	}
	b.raw = nil
	b.state = StateReleased
	return nc, nil
}

// Abort releases everything the builder allocated so far.
func (b *Builder) Abort() {
	if b.state == StateReleased {
		return
	}
	release(b.engine, b.ledger, b.raw)
	b.raw = nil
	b.state = StateReleased
}

func release(e engine.Engine, ledger *resource.Ledger, raw *abi.Config) int {
	n := ledger.ReleaseOwner(resource.OwnerCaller, nil)
	n += ledger.ReleaseOwner(resource.OwnerRuntime, func() {
		e.ClearConfig(raw)
	})
	return n
}
