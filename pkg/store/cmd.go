package store

import (
	"context"

	"github.com/erlandsona/elm-store-pattern/pkg/data"
)

// Cmd describes one asynchronous call scheduled by Update. The runner
// executes it against the Gateway off the reducer loop and feeds the
// resulting Msg back in. Commands never touch the Store themselves.
type Cmd interface {
	// Name identifies the command in logs and metrics.
	Name() string

	// Run performs the call and returns the follow-up message.
	Run(ctx context.Context, g Gateway) Msg
}

type fetchPostsCmd struct{}

func (fetchPostsCmd) Name() string { return "fetch_posts" }

func (fetchPostsCmd) Run(ctx context.Context, g Gateway) Msg {
	posts, err := g.FetchPosts(ctx)
	return GotPosts{Posts: posts, Err: err}
}

type fetchUsersCmd struct{}

func (fetchUsersCmd) Name() string { return "fetch_users" }

func (fetchUsersCmd) Run(ctx context.Context, g Gateway) Msg {
	users, err := g.FetchUsers(ctx)
	return GotUsers{Users: users, Err: err}
}

type fetchImageCmd struct {
	id data.ImageID
}

func (fetchImageCmd) Name() string { return "fetch_image" }

func (c fetchImageCmd) Run(ctx context.Context, g Gateway) Msg {
	img, err := g.FetchImage(ctx, c.id)
	return GotImage{ID: c.id, Image: img, Err: err}
}

type createPostCmd struct {
	draft data.PostDraft
}

func (createPostCmd) Name() string { return "create_post" }

func (c createPostCmd) Run(ctx context.Context, g Gateway) Msg {
	post, err := g.CreatePost(ctx, c.draft)
	return CreatedPost{Post: post, Err: err}
}
