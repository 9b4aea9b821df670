// Package runtime turns application interpreter configs into native PyConfig
// values ready for the embedded runtime.
//
// # Quick Start
//
//	rt, err := runtime.New(runtime.WithEngine(eng))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	native, err := rt.Resolve(config.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer native.Close()
//
//	raw := native.Raw() // *abi.Config for Py_InitializeFromConfig
//
// # Build States
//
// A native config moves through three states, each gated by a status check
// on the engine call that produced it:
//
//	uninitialized       zeroed memory, never handed out
//	runtime-initialized isolated defaults installed
//	argv-installed      argument vector installed, ready to use
//
// Builder exposes the steps individually. A config in an earlier state is
// never returned as if it were ready.
//
// # Ownership
//
// Every pointer field is recorded in a resource.Ledger. Runtime-owned fields
// are released by Close through the engine's teardown entry point; the
// caller-owned argv buffers never outlive the call that used them.
package runtime
