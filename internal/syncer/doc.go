// Package syncer reconciles discovered devices against the inventory.
//
// The Engine is the top-level entry point: one Sync call runs discovery,
// queries each discovered device for its authoritative identity over the
// control API, and upserts the results into the store, returning aggregate
// counts.
//
// # Single-Flight Execution
//
// Exactly one Sync per Engine may be in flight. A concurrent call fails
// immediately with ErrSyncInProgress - callers retry later rather than
// queue. The lock is held for the whole run and released on every exit
// path.
//
// # Failure Accounting
//
// Per-device failures (unreachable device, malformed identity, store write
// error) increment the Failed count and the batch continues. The returned
// Result always satisfies Discovered == Synced + Failed. Sync itself only
// fails for overlapping calls.
//
// # Usage Example
//
//	engine := syncer.New(aggregator, client, store, discovery.Options{
//	    EnableMulticast: true,
//	    ManualIPs:       settings.ManualIPs,
//	})
//	result, err := engine.Sync(ctx)
//	if errors.Is(err, syncer.ErrSyncInProgress) {
//	    // another run is active; try again later
//	}
package syncer
