package engine

import (
	"sort"

	"github.com/wippyai/pyembed/abi"
	"github.com/wippyai/pyembed/errors"
)

// Engine names accepted by Open.
const (
	NameReference = "reference"
	NameCPython   = "cpython"
)

// Engine is the set of runtime entry points used by the bridge.
type Engine interface {
	// Name identifies the engine in logs.
	Name() string

	// InitIsolatedConfig fills a zeroed config with isolated defaults.
	// Engines whose C function returns void report success.
	InitIsolatedConfig(cfg *abi.Config) abi.Status

	// SetBytesArgv decodes argc NUL-terminated byte strings and installs them
	// as cfg.Argv. The engine must not retain argv after returning.
	SetBytesArgv(cfg *abi.Config, argc int, argv **byte) abi.Status

	// IsException reports whether st signals failure.
	IsException(st abi.Status) bool

	// ClearConfig releases every runtime-owned field of cfg.
	ClearConfig(cfg *abi.Config)
}

// IsFailure reports whether the call that produced st failed. Both the
// engine's own verdict and the status invariants are consulted.
func IsFailure(e Engine, st abi.Status) bool {
	return e.IsException(st) || st.IsFailure()
}

// Check converts a failed status into a *errors.StatusError.
func Check(e Engine, phase errors.Phase, st abi.Status) error {
	if !IsFailure(e, st) {
		return nil
	}
	return errors.Status(phase, st.FuncName(), st.Message(), int(st.ExitCode), st.IsExit())
}

var openers = map[string]func() (Engine, error){
	NameReference: func() (Engine, error) { return NewReference(), nil },
	NameCPython:   NewCPython,
}

// Open returns an engine by name.
func Open(name string) (Engine, error) {
	open, ok := openers[name]
	if !ok {
		return nil, errors.NotFound(errors.PhaseEngine, "engine", name)
	}
	return open()
}

// Names lists the engine names Open understands.
func Names() []string {
	names := make([]string, 0, len(openers))
	for n := range openers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
