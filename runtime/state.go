package runtime

// State is the build state of a native config.
type State uint8

const (
	StateUninitialized State = iota
	StateRuntimeInitialized
	StateArgvInstalled
	StateReleased
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRuntimeInitialized:
		return "runtime-initialized"
	case StateArgvInstalled:
		return "argv-installed"
	case StateReleased:
		return "released"
	default:
		return "unknown"
	}
}
