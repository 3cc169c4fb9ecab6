package store

import "github.com/erlandsona/elm-store-pattern/pkg/data"

// Msg is an event folded into the Store by Update. The set is closed: only
// the message types in this file satisfy the interface.
//
// Intents (FetchPosts, FetchUsers, FetchImage, CreatePost) come from the
// router or other call sites. Results (GotPosts, GotUsers, GotImage,
// CreatedPost) are produced by the commands the intents scheduled.
type Msg interface {
	isMsg()
}

// FetchPosts asks for the posts collection to be loaded.
type FetchPosts struct{}

// FetchUsers asks for the users collection to be loaded.
type FetchUsers struct{}

// FetchImage asks for one image to be loaded.
type FetchImage struct {
	ID data.ImageID
}

// CreatePost submits a new post. Creation is a mutation, not a cached
// resource, so it is never gated.
type CreatePost struct {
	Draft data.PostDraft
}

// GotPosts delivers the outcome of a posts fetch.
type GotPosts struct {
	Posts []data.Post
	Err   error
}

// GotUsers delivers the outcome of a users fetch.
type GotUsers struct {
	Users []data.User
	Err   error
}

// GotImage delivers the outcome of an image fetch.
type GotImage struct {
	ID    data.ImageID
	Image data.Image
	Err   error
}

// CreatedPost delivers the outcome of a post creation.
type CreatedPost struct {
	Post data.Post
	Err  error
}

func (FetchPosts) isMsg()  {}
func (FetchUsers) isMsg()  {}
func (FetchImage) isMsg()  {}
func (CreatePost) isMsg()  {}
func (GotPosts) isMsg()    {}
func (GotUsers) isMsg()    {}
func (GotImage) isMsg()    {}
func (CreatedPost) isMsg() {}

// Err returns the error carried by a result message, or nil for intents and
// successful results.
func Err(msg Msg) error {
	switch m := msg.(type) {
	case GotPosts:
		return m.Err
	case GotUsers:
		return m.Err
	case GotImage:
		return m.Err
	case CreatedPost:
		return m.Err
	default:
		return nil
	}
}

// IsFetchIntent reports whether msg is a gated fetch intent.
func IsFetchIntent(msg Msg) bool {
	switch msg.(type) {
	case FetchPosts, FetchUsers, FetchImage:
		return true
	default:
		return false
	}
}

// Name returns a stable identifier for a message, used in logs and metrics.
func Name(msg Msg) string {
	switch msg.(type) {
	case FetchPosts:
		return "fetch_posts"
	case FetchUsers:
		return "fetch_users"
	case FetchImage:
		return "fetch_image"
	case CreatePost:
		return "create_post"
	case GotPosts:
		return "got_posts"
	case GotUsers:
		return "got_users"
	case GotImage:
		return "got_image"
	case CreatedPost:
		return "created_post"
	default:
		return "unknown"
	}
}
