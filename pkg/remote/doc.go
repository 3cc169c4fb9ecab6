// Package remote provides the four-state remote-data value used by the store.
//
// A remote.Data[T] is NotRequested, Pending, Failed, or Available. The type
// carries the single de-duplication rule of the system: ShouldFetch is true
// only for NotRequested, so while a slot is Pending (or already resolved) no
// second request is issued for it. remote.Dict extends the same rule to
// per-key lazily-loaded resources.
package remote
