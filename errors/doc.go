// Package errors provides structured error types for the pyembed bridge.
//
// Errors are categorized by Phase (which step of the conversion failed) and
// Kind (error category). The Error type carries the argument path, a detail
// message and an optional cause.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseArgv, errors.KindEncoding).
//		Path("argv", "2").
//		Detail("interior NUL byte at offset %d", 4).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Encoding(2, 4)
//	err := errors.UnsupportedOption("placeholder")
//
// Runtime calls that report failure through the PyStatus protocol surface as
// *StatusError, which carries the C function name, message and exit code.
//
// All errors implement the standard error interface and support errors.Is/As.
// Matching with errors.Is compares Kind, and Phase when the target sets one:
//
//	if errors.Is(err, errors.ErrEncoding) { ... }
package errors
