package resource

// Handle is an opaque reference to a tracked region or allocation.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Owner identifies which allocator a region belongs to.
type Owner uint8

const (
	OwnerRuntime Owner = iota + 1 // runtime allocator, freed by runtime teardown
	OwnerCaller                   // caller allocation, freed by its own release func
)

func (o Owner) String() string {
	switch o {
	case OwnerRuntime:
		return "runtime"
	case OwnerCaller:
		return "caller"
	default:
		return "unknown"
	}
}

// EventType enumerates region lifecycle notifications.
type EventType uint8

const (
	EventTracked EventType = iota
	EventReleased
)

func (t EventType) String() string {
	if t == EventTracked {
		return "tracked"
	}
	return "released"
}

// Event represents a region lifecycle event.
type Event struct {
	Region string
	Handle Handle
	Owner  Owner
	Type   EventType
}

// Observer receives notifications about region lifecycle events.
type Observer interface {
	OnRegionEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnRegionEvent(e Event) { f(e) }
