// Package pyembed converts an application-level interpreter configuration
// into the native PyConfig structure an embedded CPython 3.9 runtime is
// initialized from.
//
// The library mirrors the C structure bit for bit, drives the runtime's own
// initializer and argv setter through a small engine interface, and turns
// the runtime's PyStatus results into Go errors.
//
// # Architecture Overview
//
//	pyembed/             Root package with the Resolve entry points
//	├── runtime/         Staged builder, NativeConfig handle and teardown
//	├── config/          Application config and YAML/TOML loading
//	├── argv/            Argument vector marshaling across the C boundary
//	├── engine/          Engine interface, cgo CPython binding, reference engine
//	├── abi/             Go mirrors of PyConfig, PyStatus, PyWideStringList
//	├── resource/        Ownership ledger and allocation arena
//	└── errors/          Structured error types
//
// # Quick Start
//
//	cfg := &config.Interpreter{Argv: []string{"app"}}
//
//	nc, err := pyembed.Resolve(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer nc.Close()
//
//	// nc.Raw() is the *PyConfig to hand to Py_InitializeFromConfig.
//
// # Engines
//
// The default engine calls into libpython and is only available when built
// with the cgo and cpython tags:
//
//	go build -tags cpython ./...
//
// Without them, pass the pure-Go reference engine explicitly:
//
//	nc, err := pyembed.Resolve(cfg, runtime.WithEngine(engine.NewReference()))
//
// # Ownership
//
// Every pointer field of a NativeConfig is either owned by the runtime's raw
// allocator or by Go. Runtime-owned fields are released exactly once by
// NativeConfig.Close through PyConfig_Clear. Go-owned argv buffers never
// outlive the call that copies them.
//
// # Thread Safety
//
// A Runtime may be shared. Builder and NativeConfig are NOT thread-safe and
// should be used by a single goroutine.
package pyembed
