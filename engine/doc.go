// Package engine is the foreign-call boundary to the embedded Python runtime.
//
// An Engine exposes the runtime entry points the bridge consumes:
//
//	PyConfig_InitIsolatedConfig -> InitIsolatedConfig
//	PyConfig_SetBytesArgv       -> SetBytesArgv
//	PyStatus_Exception          -> IsException
//	PyConfig_Clear              -> ClearConfig
//
// Two engines exist:
//
//	CPython    cgo binding to libpython (build with CGO_ENABLED=1 -tags cpython)
//	Reference  pure-Go engine reproducing CPython 3.9 config semantics
//
// Every status returned by an engine must go through Check (or IsFailure)
// before any field the call populated is trusted:
//
//	st := eng.SetBytesArgv(cfg, len(ptrs), &ptrs[0])
//	if err := engine.Check(eng, errors.PhaseArgv, st); err != nil {
//	    return err
//	}
//
// Engines are not reentrant with respect to the config being mutated. A
// config must be used by one goroutine at a time.
package engine
