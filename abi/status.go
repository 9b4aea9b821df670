package abi

// Status type discriminants (PyStatus._type).
const (
	StatusTypeOK    CInt = 0
	StatusTypeError CInt = 1
	StatusTypeExit  CInt = 2
)

// Status mirrors PyStatus. Func and ErrMsg point to static C strings owned
// by the runtime.
type Status struct {
	Type     CInt  `c:"_type"`
	Func     *byte `c:"func"`
	ErrMsg   *byte `c:"err_msg"`
	ExitCode CInt  `c:"exitcode"`
}

// IsError reports a runtime error status.
func (s Status) IsError() bool {
	return s.Type == StatusTypeError
}

// IsExit reports a status asking the process to exit.
func (s Status) IsExit() bool {
	return s.Type == StatusTypeExit
}

// IsFailure mirrors PyStatus_Exception: true when the call failed. A
// non-nil function name or error message also counts as failure.
func (s Status) IsFailure() bool {
	return s.Type != StatusTypeOK || s.Func != nil || s.ErrMsg != nil
}

// FuncName returns the name of the C function that produced the status.
func (s Status) FuncName() string {
	return GoString(s.Func)
}

// Message returns the status error message.
func (s Status) Message() string {
	return GoString(s.ErrMsg)
}

// StatusOK returns a success status.
func StatusOK() Status {
	return Status{Type: StatusTypeOK}
}

// StatusErr builds an error status. fn and msg are copied into
// NUL-terminated buffers kept alive by the returned value.
func StatusErr(fn, msg string) Status {
	return Status{
		Type:   StatusTypeError,
		Func:   CString(fn),
		ErrMsg: CString(msg),
	}
}

// StatusExit builds an exit status.
func StatusExit(code int) Status {
	return Status{Type: StatusTypeExit, ExitCode: CInt(code)}
}
