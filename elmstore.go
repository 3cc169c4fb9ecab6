// Package elmstore provides the public API for the remote data store.
//
// This is the recommended import for most applications:
//
//	import "github.com/erlandsona/elm-store-pattern"
//
// Usage:
//
//	client, _ := api.New("http://localhost:3000")
//	prog := elmstore.NewProgram(client)
//	go prog.Run(ctx)
//	prog.Dispatch(elmstore.FetchPosts{})
package elmstore

import (
	"github.com/erlandsona/elm-store-pattern/pkg/program"
	"github.com/erlandsona/elm-store-pattern/pkg/remote"
	"github.com/erlandsona/elm-store-pattern/pkg/store"
)

// =============================================================================
// Remote data (remote.Data exposed as elmstore.Data)
// =============================================================================

// Data tracks a remote value through its request lifecycle.
type Data[T any] = remote.Data[T]

// State identifies which lifecycle phase a Data value is in.
type State = remote.State

// State constants for Data.
const (
	StateNotRequested State = remote.StateNotRequested // Nothing asked for yet
	StatePending      State = remote.StatePending      // Request in flight
	StateFailed       State = remote.StateFailed       // Request failed
	StateAvailable    State = remote.StateAvailable    // Value cached
)

// NotRequested returns the initial lifecycle state.
func NotRequested[T any]() Data[T] { return remote.NotRequested[T]() }

// Pending marks a request as in flight.
func Pending[T any]() Data[T] { return remote.Pending[T]() }

// Failed records a failed request.
func Failed[T any](err error) Data[T] { return remote.Failed[T](err) }

// Available wraps a successfully fetched value.
func Available[T any](v T) Data[T] { return remote.Available(v) }

// Dict is a keyed collection of independently tracked Data values.
type Dict[K comparable, T any] = remote.Dict[K, T]

// =============================================================================
// Store and messages
// =============================================================================

// Store is the cache of remote resources.
type Store = store.Store

// Msg is a store message; Update folds messages into the store.
type Msg = store.Msg

// Fetch intents and results.
type (
	FetchPosts  = store.FetchPosts
	FetchUsers  = store.FetchUsers
	FetchImage  = store.FetchImage
	CreatePost  = store.CreatePost
	GotPosts    = store.GotPosts
	GotUsers    = store.GotUsers
	GotImage    = store.GotImage
	CreatedPost = store.CreatedPost
)

// Event is a notification emitted by Update.
type Event = store.Event

// Gateway performs the remote calls the store's commands describe.
type Gateway = store.Gateway

// NewStore returns an empty store with every resource not requested.
func NewStore() Store { return store.New() }

// Update folds a message into the store. It is pure: the returned commands
// describe work for the caller to run.
func Update(s Store, msg Msg) (Store, []store.Cmd, []Event) {
	return store.Update(s, msg)
}

// =============================================================================
// Program
// =============================================================================

// Program runs the store loop: messages in, commands out, store updated.
type Program = program.Program

// NewProgram creates a Program around a gateway.
func NewProgram(gateway Gateway, opts ...program.Option) *Program {
	return program.New(gateway, opts...)
}
