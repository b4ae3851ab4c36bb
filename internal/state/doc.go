// Package state holds the light listing shown by the UI.
//
// # Overview
//
// The Store is the coordination point between bridge refreshes and
// rendering. A refresh marks the store as loading, then records either the
// new listing or the error that ended it. Brightness changes made by the user
// are applied to the stored listing straight away, ahead of the network
// update.
//
// # Core Types
//
// Store:
//   - Thread-safe container for the latest listing
//   - Uses sync.RWMutex for concurrent access
//   - Written by refresh completions and slider drags
//
// Snapshot:
//   - Copy of the state at a point in time
//   - Lights, loading flag, timestamps and error info
//   - Visible applies the reachable-only presentation filter
//
// # Failure Handling
//
// A failed refresh clears the rows, so the menu shows its empty state, and
// increments ConsecutiveFailures. IsOffline reports two or more failures in a
// row. The next successful refresh resets the counter.
//
// # Current Values
//
// Brightness returns the value the user last set for a light. The deferred
// brightness flush reads it when it fires, so the value sent is the latest
// one rather than the one seen when the flush was armed.
package state
