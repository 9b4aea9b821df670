package errors

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates which step of the conversion produced the error
type Phase string

const (
	PhaseLayout  Phase = "layout"  // ABI layout audit
	PhaseInit    Phase = "init"    // isolated config initialization
	PhaseArgv    Phase = "argv"    // argument vector marshaling
	PhaseResolve Phase = "resolve" // application config to native config
	PhaseRelease Phase = "release" // native config teardown
	PhaseLoad    Phase = "load"    // config file loading
	PhaseEngine  Phase = "engine"  // engine selection and binding
)

// Kind categorizes the error
type Kind string

const (
	KindEncoding          Kind = "encoding"
	KindStatus            Kind = "status"
	KindUnsupportedOption Kind = "unsupported_option"
	KindInvalidState      Kind = "invalid_state"
	KindLayoutMismatch    Kind = "layout_mismatch"
	KindUnavailable       Kind = "unavailable"
	KindInvalidInput      Kind = "invalid_input"
	KindNotFound          Kind = "not_found"
)

// Sentinels for errors.Is. They carry no Phase so they match any phase.
var (
	ErrEncoding          = &Error{Kind: KindEncoding}
	ErrStatus            = &Error{Kind: KindStatus}
	ErrUnsupportedOption = &Error{Kind: KindUnsupportedOption}
	ErrInvalidState      = &Error{Kind: KindInvalidState}
	ErrLayoutMismatch    = &Error{Kind: KindLayoutMismatch}
	ErrUnavailable       = &Error{Kind: KindUnavailable}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(formatPath(e.Path))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// formatPath renders ["argv", "2"] as argv[2] and other segments dotted.
func formatPath(path []string) string {
	var b strings.Builder
	for i, p := range path {
		if _, err := strconv.Atoi(p); err == nil && i > 0 {
			b.WriteByte('[')
			b.WriteString(p)
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// Kind must match; Phase must match only when the target sets one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Encoding reports an argument that cannot be represented as a
// NUL-terminated byte string.
func Encoding(index, offset int) *Error {
	return &Error{
		Phase:  PhaseArgv,
		Kind:   KindEncoding,
		Path:   []string{"argv", strconv.Itoa(index)},
		Detail: fmt.Sprintf("interior NUL byte at offset %d", offset),
		Value:  index,
	}
}

// UnsupportedOption reports an application option that has no native
// mapping yet.
func UnsupportedOption(option string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindUnsupportedOption,
		Path:   []string{option},
		Detail: fmt.Sprintf("option %q is not supported yet", option),
	}
}

// InvalidState reports use of a native config before it reached the
// required build state.
func InvalidState(phase Phase, have, want string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidState,
		Detail: fmt.Sprintf("config is %s, need %s", have, want),
	}
}

// LayoutMismatch reports a field whose Go offset differs from the C layout.
func LayoutMismatch(field string, goOffset, cOffset uintptr) *Error {
	return &Error{
		Phase:  PhaseLayout,
		Kind:   KindLayoutMismatch,
		Path:   []string{field},
		Detail: fmt.Sprintf("Go offset %d, C offset %d", goOffset, cOffset),
	}
}

// Unavailable reports an engine that was not compiled into this binary.
func Unavailable(engine, hint string) *Error {
	return &Error{
		Phase:  PhaseEngine,
		Kind:   KindUnavailable,
		Detail: fmt.Sprintf("engine %q unavailable: %s", engine, hint),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Load wraps a config file loading failure.
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}

// StatusError is returned when a runtime entry point reports failure
// through its status value.
type StatusError struct {
	Phase    Phase
	Func     string // C function that raised the status, may be empty
	Message  string
	ExitCode int
	Exit     bool // status requested process exit rather than an error
}

// Status creates a StatusError.
func Status(phase Phase, fn, msg string, exitCode int, exit bool) *StatusError {
	return &StatusError{
		Phase:    phase,
		Func:     fn,
		Message:  msg,
		ExitCode: exitCode,
		Exit:     exit,
	}
}

func (e *StatusError) Error() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] status")
	if e.Func != "" {
		b.WriteString(" in ")
		b.WriteString(e.Func)
	}
	switch {
	case e.Exit:
		b.WriteString(": exit code ")
		b.WriteString(strconv.Itoa(e.ExitCode))
	case e.Message != "":
		b.WriteString(": ")
		b.WriteString(e.Message)
	default:
		b.WriteString(": runtime reported failure")
	}
	return b.String()
}

// Is matches ErrStatus-style targets and other StatusErrors. A target
// Phase, when set, must match.
func (e *StatusError) Is(target error) bool {
	switch t := target.(type) {
	case *StatusError:
		return t.Phase == "" || t.Phase == e.Phase
	case *Error:
		if t.Phase != "" && t.Phase != e.Phase {
			return false
		}
		return t.Kind == KindStatus
	}
	return false
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
