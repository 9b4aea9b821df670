// Package abi mirrors the C structures of the embedded CPython runtime.
//
// Config, WideStringList and Status reproduce PyConfig, PyWideStringList and
// PyStatus of CPython 3.9 for 64-bit Linux and Darwin builds. The types store
// values only; they never interpret them.
//
// # Layout Rules
//
// The mirror follows the C rules of the targeted platform:
//   - int: 4 bytes, 4-byte aligned
//   - unsigned long: 8 bytes (LP64)
//   - wchar_t: 4 bytes, signed
//   - pointers: machine word
//   - PyWideStringList: (Py_ssize_t length, wchar_t **items)
//
// A mismatch with the real ABI is undefined behavior, not a detectable error.
// Fields and Calculate let the layout be audited whenever the target runtime
// changes:
//
//	if err := abi.Audit(); err != nil {
//	    // the Go mirror no longer matches the C rules
//	}
//
// # Ownership
//
// Every pointer field is either nil or points to a NUL-terminated buffer.
// Pointers written by the runtime belong to the runtime allocator and are
// released by PyConfig_Clear; the caller never frees them.
package abi
