// Package resource tracks who owns the memory behind native config fields.
//
// Pointers inside a native config come from two places: the runtime
// allocator (persistent fields filled by PyConfig_InitIsolatedConfig and
// PyConfig_SetBytesArgv) and the caller (transient argv buffers that only
// live for one call). Freeing through the wrong path is a double free or a
// use after free, so every region is recorded with its Owner.
//
// # Ledger
//
// The Ledger is the side-table of owners:
//
//	ledger := resource.NewLedger()
//
//	// Runtime-owned regions are released together by the runtime teardown
//	ledger.Track("argv", resource.OwnerRuntime, nil)
//
//	// Caller-owned regions carry their own release path
//	ledger.Track("argv.buffers", resource.OwnerCaller, vec.Free)
//	ledger.Release("argv.buffers")
//
//	// One teardown call frees every runtime region
//	ledger.ReleaseOwner(resource.OwnerRuntime, func() { eng.ClearConfig(cfg) })
//
// # Observers
//
// Register observers to follow region lifecycle events:
//
//	ledger.Subscribe(observerFunc(func(e resource.Event) {
//	    log.Printf("%s %s (%s)", e.Type, e.Region, e.Owner)
//	}))
//
// # Arena
//
// Arena is a handle-indexed allocator used by engines implemented in Go to
// stand in for the runtime's raw allocator. It keeps allocations reachable
// until freed and rejects double frees.
package resource
