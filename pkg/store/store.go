package store

import (
	"context"

	"github.com/erlandsona/elm-store-pattern/pkg/data"
	"github.com/erlandsona/elm-store-pattern/pkg/remote"
)

// Store is the cache of remote-API data threaded through the reducer.
//
// A Store is a plain value: Update never mutates one in place, it returns the
// next snapshot. The application creates a single Store at start (everything
// NotRequested/empty) and folds messages into it for the rest of the session.
type Store struct {
	// Posts caches the full posts collection.
	Posts remote.Data[data.Collection[data.Post]]

	// Users caches the full users collection.
	Users remote.Data[data.Collection[data.User]]

	// Images caches images lazily, one slot per image id.
	Images remote.Dict[data.ImageID, data.Image]
}

// New returns a Store with nothing requested yet.
func New() Store {
	return Store{
		Images: remote.NewDict[data.ImageID, data.Image](),
	}
}

// Gateway is the remote API surface the store's commands run against.
// pkg/api provides the HTTP implementation; tests substitute fakes.
type Gateway interface {
	// FetchPosts loads every post. GET /api/posts.
	FetchPosts(ctx context.Context) ([]data.Post, error)

	// FetchUsers loads every user. GET /api/users.
	FetchUsers(ctx context.Context) ([]data.User, error)

	// FetchImage loads a single image by id. GET /api/images/{id}.
	FetchImage(ctx context.Context, id data.ImageID) (data.Image, error)

	// CreatePost persists a new post and returns it with its assigned id.
	// POST /api/posts.
	CreatePost(ctx context.Context, draft data.PostDraft) (data.Post, error)
}
