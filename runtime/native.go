package runtime

import (
	"github.com/wippyai/pyembed/abi"
	"github.com/wippyai/pyembed/engine"
	"github.com/wippyai/pyembed/resource"
)

// NativeConfig is a fully built PyConfig together with the ownership record
// of its pointer fields. It is not safe for concurrent use.
type NativeConfig struct {
	engine engine.Engine
	ledger *resource.Ledger
	raw    *abi.Config
	closed bool
}

// Raw returns the native struct to pass to the runtime, or nil once closed.
func (c *NativeConfig) Raw() *abi.Config {
	if c.closed {
		return nil
	}
	return c.raw
}

// Argv copies the installed argument vector.
func (c *NativeConfig) Argv() []string {
	if c.closed {
		return nil
	}
	return c.raw.Argv.Strings()
}

// Owner reports which allocator owns a pointer field, by C field name.
func (c *NativeConfig) Owner(field string) (resource.Owner, bool) {
	return c.ledger.Owner(field)
}

// Engine returns the engine that populated the config.
func (c *NativeConfig) Engine() engine.Engine {
	return c.engine
}

// Close releases the runtime-owned fields through the engine's teardown
// entry point. It is safe to call more than once.
func (c *NativeConfig) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	release(c.engine, c.ledger, c.raw)
	c.raw = nil
	return nil
}
