package resource

import (
	"sort"
	"sync"
)

type region struct {
	release func()
	handle  Handle
	owner   Owner
}

// Ledger records the owner of every pointer region of one native config.
type Ledger struct {
	regions   map[string]region
	observers []Observer
	next      Handle
	mu        sync.Mutex
	obsMu     sync.RWMutex
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		regions: make(map[string]region),
	}
}

// Track records a region and its owner. release is only used for
// caller-owned regions. Tracking a name again replaces the previous entry
// without releasing it; the caller decides whether the old memory is gone.
func (l *Ledger) Track(name string, owner Owner, release func()) Handle {
	l.mu.Lock()
	l.next++
	h := l.next
	l.regions[name] = region{owner: owner, release: release, handle: h}
	l.mu.Unlock()

	l.notify(Event{Type: EventTracked, Region: name, Owner: owner, Handle: h})
	return h
}

// Owner returns the owner of a region.
func (l *Ledger) Owner(name string) (Owner, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.regions[name]
	return r.owner, ok
}

// Release frees one caller-owned region through its release func.
// Runtime-owned regions are refused: only ReleaseOwner may hand them back.
// Returns false when the region is unknown, already released or not
// caller-owned.
func (l *Ledger) Release(name string) bool {
	l.mu.Lock()
	r, ok := l.regions[name]
	if !ok || r.owner != OwnerCaller {
		l.mu.Unlock()
		return false
	}
	delete(l.regions, name)
	l.mu.Unlock()

	if r.release != nil {
		r.release()
	}
	l.notify(Event{Type: EventReleased, Region: name, Owner: r.owner, Handle: r.handle})
	return true
}

// ReleaseOwner forgets every region of owner. For OwnerRuntime, teardown is
// called once if at least one region was tracked; for OwnerCaller each
// region's release func runs. Returns the number of regions released.
func (l *Ledger) ReleaseOwner(owner Owner, teardown func()) int {
	l.mu.Lock()
	var names []string
	released := make(map[string]region)
	for name, r := range l.regions {
		if r.owner == owner {
			names = append(names, name)
			released[name] = r
			delete(l.regions, name)
		}
	}
	l.mu.Unlock()

	if len(names) == 0 {
		return 0
	}
	sort.Strings(names)

	if owner == OwnerRuntime && teardown != nil {
		teardown()
	}
	for _, name := range names {
		r := released[name]
		if owner == OwnerCaller && r.release != nil {
			r.release()
		}
		l.notify(Event{Type: EventReleased, Region: name, Owner: owner, Handle: r.handle})
	}
	return len(names)
}

// Regions returns the names of regions held by owner, sorted.
func (l *Ledger) Regions(owner Owner) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var names []string
	for name, r := range l.regions {
		if r.owner == owner {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Len returns the number of tracked regions.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.regions)
}

// Subscribe adds an observer for lifecycle events.
func (l *Ledger) Subscribe(o Observer) {
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	l.observers = append(l.observers, o)
}

// Unsubscribe removes an observer.
func (l *Ledger) Unsubscribe(o Observer) {
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	for i, obs := range l.observers {
		if obs == o {
			l.observers = append(l.observers[:i], l.observers[i+1:]...)
			return
		}
	}
}

func (l *Ledger) notify(e Event) {
	l.obsMu.RLock()
	defer l.obsMu.RUnlock()
	for _, o := range l.observers {
		o.OnRegionEvent(e)
	}
}
