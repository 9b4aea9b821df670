package pyembed

import (
	"github.com/wippyai/pyembed/config"
	"github.com/wippyai/pyembed/runtime"
)

// Resolve converts cfg into a native config ready for interpreter startup.
// The caller must Close the result.
func Resolve(cfg *config.Interpreter, opts ...runtime.Option) (*runtime.NativeConfig, error) {
	rt, err := runtime.New(opts...)
	if err != nil {
		return nil, err
	}
	return rt.Resolve(cfg)
}

// ResolveFile loads a YAML or TOML config file and resolves it.
func ResolveFile(path string, opts ...runtime.Option) (*runtime.NativeConfig, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return Resolve(cfg, opts...)
}
