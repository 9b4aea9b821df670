package argv

import (
	"go.uber.org/zap"

	"github.com/wippyai/pyembed/abi"
	"github.com/wippyai/pyembed/engine"
	"github.com/wippyai/pyembed/errors"
	"github.com/wippyai/pyembed/resource"
)

// Ledger region names used by the marshaler.
const (
	RegionArgv    = "argv"         // runtime-owned list installed in the config
	RegionBuffers = "argv.buffers" // caller-owned buffers, live for one call
)

// Marshaler installs argument vectors through an engine.
type Marshaler struct {
	Engine engine.Engine
	Ledger *resource.Ledger // optional
	Logger *zap.Logger      // optional
}

// SetArgv encodes args and installs them into cfg with a single engine
// call. Encoding errors abort before the engine is called.
func SetArgv(e engine.Engine, cfg *abi.Config, args []string) error {
	m := Marshaler{Engine: e}
	return m.SetArgv(cfg, args)
}

// SetArgv encodes args and installs them into cfg. The buffers are freed as
// soon as the call returns, whatever its status.
func (m *Marshaler) SetArgv(cfg *abi.Config, args []string) error {
	log := m.Logger
	if log == nil {
		log = engine.Logger()
	}

	vec, err := Encode(args)
	if err != nil {
		log.Debug("argv rejected", zap.Error(err))
		return err
	}

	if m.Ledger != nil {
		m.Ledger.Track(RegionBuffers, resource.OwnerCaller, vec.Free)
		defer m.Ledger.Release(RegionBuffers)
	} else {
		defer vec.Free()
	}

	st := m.Engine.SetBytesArgv(cfg, vec.Len(), vec.Argv())
	if err := engine.Check(m.Engine, errors.PhaseArgv, st); err != nil {
		log.Debug("argv setter failed", zap.String("engine", m.Engine.Name()), zap.Error(err))
		return err
	}

	if m.Ledger != nil {
		m.Ledger.Track(RegionArgv, resource.OwnerRuntime, nil)
	}
	log.Debug("bytes argv set", zap.Int("argc", vec.Len()))
	return nil
}
