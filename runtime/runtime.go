package runtime

import (
	"io"

	"go.uber.org/zap"

	"github.com/wippyai/pyembed/abi"
	"github.com/wippyai/pyembed/config"
	"github.com/wippyai/pyembed/engine"
	"github.com/wippyai/pyembed/errors"
)

// Runtime converts application configs with one engine.
type Runtime struct {
	engine engine.Engine
	log    *zap.Logger
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithEngine selects the engine. The default is the cgo CPython engine.
func WithEngine(e engine.Engine) Option {
	return func(r *Runtime) {
		r.engine = e
	}
}

// WithLogger sets the logger. The default is the engine package logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runtime) {
		r.log = l
	}
}

// New audits the ABI layout and returns a Runtime.
func New(opts ...Option) (*Runtime, error) {
	r := &Runtime{}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = engine.Logger()
	}

	if err := abi.Audit(); err != nil {
		return nil, err
	}

	if r.engine == nil {
		e, err := engine.NewCPython()
		if err != nil {
			return nil, err
		}
		r.engine = e
	}

	r.log = r.log.With(zap.String("engine", r.engine.Name()))
	return r, nil
}

// Engine returns the engine in use.
func (r *Runtime) Engine() engine.Engine {
	return r.engine
}

// Close releases engine resources, if the engine holds any. Every
// NativeConfig resolved by r must be closed first.
func (r *Runtime) Close() error {
	if c, ok := r.engine.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// NewBuilder returns a builder in the uninitialized state.
func (r *Runtime) NewBuilder() *Builder {
	return newBuilder(r.engine, r.log)
}

// Initialize returns a builder holding a config with the runtime's isolated
// defaults installed.
func (r *Runtime) Initialize() (*Builder, error) {
	b := r.NewBuilder()
	if err := b.Initialize(); err != nil {
		b.Abort()
		return nil, err
	}
	return b, nil
}

// Resolve converts cfg into a native config with its argument vector
// installed. Options without a native mapping yet are reported as
// unsupported rather than silently dropped.
func (r *Runtime) Resolve(cfg *config.Interpreter) (*NativeConfig, error) {
	if cfg == nil {
		return nil, errors.InvalidInput(errors.PhaseResolve, "nil interpreter config")
	}

	b, err := r.Initialize()
	if err != nil {
		return nil, err
	}

	if err := b.SetArgv(cfg.Args()); err != nil {
		b.Abort()
		return nil, err
	}

	if cfg.Placeholder != nil {
		b.Abort()
		err := errors.UnsupportedOption("placeholder")
		r.log.Debug("resolve rejected", zap.Error(err))
		return nil, err
	}

	nc, err := b.Build()
	if err != nil {
		b.Abort()
		return nil, err
	}
	r.log.Debug("config resolved", zap.Int("argc", nc.raw.Argv.Length))
	return nc, nil
}
