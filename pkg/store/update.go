package store

import (
	"fmt"

	"github.com/erlandsona/elm-store-pattern/pkg/data"
	"github.com/erlandsona/elm-store-pattern/pkg/remote"
)

// Update folds one message into the store and returns the next snapshot, the
// asynchronous calls to schedule, and the notifications to surface.
//
// Update is pure: it reads nothing but its arguments and performs no I/O.
// Fetch intents pass through the request gate, so dispatching the same intent
// twice without an intervening result schedules exactly one call. Results are
// applied independently per resource; arrival order across resources does not
// matter.
func Update(s Store, msg Msg) (Store, []Cmd, []Event) {
	switch m := msg.(type) {
	case FetchPosts:
		if !s.Posts.ShouldFetch() {
			return s, nil, nil
		}
		s.Posts = remote.Pending[data.Collection[data.Post]]()
		return s, cmds(fetchPostsCmd{}), events(progressEvent("Loading posts..."))

	case FetchUsers:
		if !s.Users.ShouldFetch() {
			return s, nil, nil
		}
		s.Users = remote.Pending[data.Collection[data.User]]()
		return s, cmds(fetchUsersCmd{}), events(progressEvent("Loading users..."))

	case FetchImage:
		if !s.Images.ShouldFetch(m.ID) {
			return s, nil, nil
		}
		s.Images = s.Images.With(m.ID, remote.Pending[data.Image]())
		return s, cmds(fetchImageCmd{id: m.ID}), nil

	case CreatePost:
		// Not gated: creation is a one-shot mutation, not a cached slot.
		return s, cmds(createPostCmd{draft: m.Draft}), events(progressEvent("Saving post..."))

	case GotPosts:
		if m.Err != nil {
			s.Posts = remote.Failed[data.Collection[data.Post]](m.Err)
			return s, nil, events(failureEvent("Failed to load posts", m.Err))
		}
		s.Posts = remote.Available(data.NewCollection(m.Posts...))
		return s, nil, nil

	case GotUsers:
		if m.Err != nil {
			s.Users = remote.Failed[data.Collection[data.User]](m.Err)
			return s, nil, events(failureEvent("Failed to load users", m.Err))
		}
		s.Users = remote.Available(data.NewCollection(m.Users...))
		return s, nil, nil

	case GotImage:
		if m.Err != nil {
			s.Images = s.Images.With(m.ID, remote.Failed[data.Image](m.Err))
			return s, nil, events(failureEvent(fmt.Sprintf("Failed to load image %s", m.ID), m.Err))
		}
		s.Images = s.Images.With(m.ID, remote.Available(m.Image))
		return s, nil, nil

	case CreatedPost:
		if m.Err != nil {
			// A failed creation does not poison the posts cache.
			return s, nil, events(failureEvent("Failed to save post", m.Err))
		}
		if posts, ok := s.Posts.Value(); ok {
			s.Posts = remote.Available(posts.Insert(m.Post))
		}
		return s, nil, events(successEvent(fmt.Sprintf("Created %q", m.Post.Title)))

	default:
		return s, nil, nil
	}
}

func cmds(cs ...Cmd) []Cmd       { return cs }
func events(es ...Event) []Event { return es }
