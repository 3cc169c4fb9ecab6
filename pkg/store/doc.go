// Package store implements the request-deduplicating cache of remote-API
// data at the heart of the application.
//
// The store tracks three resources: the posts collection, the users
// collection, and images loaded lazily by id. Each lives in a four-state
// remote.Data slot (NotRequested, Pending, Failed, Available). All state
// transitions happen inside Update, a pure reducer folding one Msg at a time
// into an immutable Store value; asynchronous work is described by Cmd values
// and executed by pkg/program against a Gateway.
//
// The only de-duplication rule in the system is the request gate: a fetch
// intent schedules a call only when its slot is NotRequested. While a slot is
// Pending no second call can be issued for it, and a Failed slot stays failed
// until a call site explicitly re-triggers it.
package store
