//go:build !cgo || !cpython

package engine

import "github.com/wippyai/pyembed/errors"

// NewCPython fails: this binary was built without libpython.
func NewCPython() (Engine, error) {
	return nil, errors.Unavailable(NameCPython, "build with CGO_ENABLED=1 -tags cpython")
}
