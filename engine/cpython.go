//go:build cgo && cpython

package engine

// #cgo pkg-config: python3-embed
// #define PY_SSIZE_T_CLEAN
// #include <Python.h>
import "C"

import (
	"runtime"
	"unsafe"

	"github.com/wippyai/pyembed/abi"
)

// Compile-time layout checks: both arrays have negative length if the Go
// mirror and the runtime header disagree in size.
var (
	_ [unsafe.Sizeof(C.PyConfig{}) - unsafe.Sizeof(abi.Config{})]struct{}
	_ [unsafe.Sizeof(abi.Config{}) - unsafe.Sizeof(C.PyConfig{})]struct{}
	_ [unsafe.Sizeof(C.PyStatus{}) - unsafe.Sizeof(abi.Status{})]struct{}
	_ [unsafe.Sizeof(abi.Status{}) - unsafe.Sizeof(C.PyStatus{})]struct{}
)

// cpythonEngine calls into the linked libpython.
type cpythonEngine struct{}

// NewCPython returns the engine backed by libpython.
func NewCPython() (Engine, error) {
	return cpythonEngine{}, nil
}

func (cpythonEngine) Name() string { return NameCPython }

func cConfig(cfg *abi.Config) *C.PyConfig {
	return (*C.PyConfig)(unsafe.Pointer(cfg))
}

func (cpythonEngine) InitIsolatedConfig(cfg *abi.Config) abi.Status {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	C.PyConfig_InitIsolatedConfig(cConfig(cfg))
	return abi.StatusOK()
}

func (cpythonEngine) SetBytesArgv(cfg *abi.Config, argc int, argv **byte) abi.Status {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	st := C.PyConfig_SetBytesArgv(cConfig(cfg), C.Py_ssize_t(argc), (**C.char)(unsafe.Pointer(argv)))
	return *(*abi.Status)(unsafe.Pointer(&st))
}

func (cpythonEngine) IsException(st abi.Status) bool {
	return C.PyStatus_Exception(*(*C.PyStatus)(unsafe.Pointer(&st))) != 0
}

func (cpythonEngine) ClearConfig(cfg *abi.Config) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	C.PyConfig_Clear(cConfig(cfg))
}
