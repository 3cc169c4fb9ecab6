package program

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/erlandsona/elm-store-pattern/pkg/data"
	"github.com/erlandsona/elm-store-pattern/pkg/store"
	"github.com/erlandsona/elm-store-pattern/pkg/toast"
)

// fakeGateway counts calls and can hold fetches open until released.
type fakeGateway struct {
	postCalls  atomic.Int64
	userCalls  atomic.Int64
	imageCalls atomic.Int64

	release chan struct{} // when non-nil, FetchPosts blocks until closed
	postErr error
}

func (g *fakeGateway) FetchPosts(ctx context.Context) ([]data.Post, error) {
	g.postCalls.Add(1)
	if g.release != nil {
		select {
		case <-g.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if g.postErr != nil {
		return nil, g.postErr
	}
	return []data.Post{{ID: "p1", Title: "A"}, {ID: "p2", Title: "B"}}, nil
}

func (g *fakeGateway) FetchUsers(ctx context.Context) ([]data.User, error) {
	g.userCalls.Add(1)
	return []data.User{{ID: "u1", Name: "Ada"}}, nil
}

func (g *fakeGateway) FetchImage(ctx context.Context, id data.ImageID) (data.Image, error) {
	g.imageCalls.Add(1)
	return data.Image{ID: id, URL: "/img/" + id + ".png"}, nil
}

func (g *fakeGateway) CreatePost(ctx context.Context, draft data.PostDraft) (data.Post, error) {
	return data.Post{ID: "p99", Title: draft.Title}, nil
}

func startProgram(t *testing.T, g store.Gateway, opts ...Option) *Program {
	t.Helper()

	p := New(g, opts...)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Error("program did not shut down")
		}
	})
	return p
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("Timeout waiting for condition")
}

func TestFetchPostsResolvesStore(t *testing.T) {
	g := &fakeGateway{}
	p := startProgram(t, g)

	p.Dispatch(store.FetchPosts{})

	waitFor(t, func() bool { return p.Snapshot().Posts.IsAvailable() })

	posts, _ := p.Snapshot().Posts.Value()
	if posts.Len() != 2 {
		t.Errorf("Expected 2 posts, got %d", posts.Len())
	}
	if got := g.postCalls.Load(); got != 1 {
		t.Errorf("Expected 1 gateway call, got %d", got)
	}
}

func TestDoubleDispatchSchedulesOneCall(t *testing.T) {
	release := make(chan struct{})
	g := &fakeGateway{release: release}
	p := startProgram(t, g)

	p.Dispatch(store.FetchPosts{})
	waitFor(t, func() bool { return p.Snapshot().Posts.IsPending() })

	// Second intent while the first call is held open.
	p.Dispatch(store.FetchPosts{})
	waitFor(t, func() bool { return g.postCalls.Load() >= 1 })

	close(release)
	waitFor(t, func() bool { return p.Snapshot().Posts.IsAvailable() })

	if got := g.postCalls.Load(); got != 1 {
		t.Errorf("Expected exactly 1 gateway call, got %d", got)
	}
}

func TestFailureIsRecordedAndNotRetried(t *testing.T) {
	boom := errors.New("boom")
	g := &fakeGateway{postErr: boom}
	tray := toast.NewTray()
	p := startProgram(t, g, WithTray(tray))

	p.Dispatch(store.FetchPosts{})
	waitFor(t, func() bool { return p.Snapshot().Posts.IsFailed() })

	// A later intent must not reissue the call.
	p.Dispatch(store.FetchPosts{})
	waitFor(t, func() bool { return p.Snapshot().Users.IsNotRequested() }) // settle the queue
	time.Sleep(10 * time.Millisecond)

	if got := g.postCalls.Load(); got != 1 {
		t.Errorf("Failed resource was refetched: %d calls", got)
	}

	// The failure surfaced as a sticky toast.
	waitFor(t, func() bool {
		for _, tst := range tray.Active() {
			if tst.Level == toast.LevelError && tst.Sticky {
				return true
			}
		}
		return false
	})
}

func TestIndependentResources(t *testing.T) {
	g := &fakeGateway{}
	p := startProgram(t, g)

	p.Dispatch(store.FetchPosts{})
	p.Dispatch(store.FetchUsers{})
	p.Dispatch(store.FetchImage{ID: "img1"})
	p.Dispatch(store.FetchImage{ID: "img2"})

	waitFor(t, func() bool {
		s := p.Snapshot()
		return s.Posts.IsAvailable() && s.Users.IsAvailable() &&
			s.Images.Get("img1").IsAvailable() && s.Images.Get("img2").IsAvailable()
	})

	if got := g.imageCalls.Load(); got != 2 {
		t.Errorf("Expected 2 image calls, got %d", got)
	}
}

func TestCreatePostMergesAndToasts(t *testing.T) {
	g := &fakeGateway{}
	tray := toast.NewTray()
	p := startProgram(t, g, WithTray(tray))

	p.Dispatch(store.FetchPosts{})
	waitFor(t, func() bool { return p.Snapshot().Posts.IsAvailable() })

	p.Dispatch(store.CreatePost{Draft: data.PostDraft{Title: "New"}})
	waitFor(t, func() bool {
		posts, ok := p.Snapshot().Posts.Value()
		return ok && posts.Len() == 3
	})

	waitFor(t, func() bool {
		for _, tst := range tray.Active() {
			if tst.Level == toast.LevelSuccess {
				return true
			}
		}
		return false
	})
}

func TestOnChangeRunsPerTransition(t *testing.T) {
	g := &fakeGateway{}
	var changes atomic.Int64
	p := startProgram(t, g, OnChange(func(store.Store) {
		changes.Add(1)
	}))

	p.Dispatch(store.FetchUsers{})
	waitFor(t, func() bool { return p.Snapshot().Users.IsAvailable() })

	// At least the intent and the result transitions.
	if got := changes.Load(); got < 2 {
		t.Errorf("Expected at least 2 change callbacks, got %d", got)
	}
}

func TestDispatchAfterShutdownDoesNotBlock(t *testing.T) {
	g := &fakeGateway{}
	p := New(g)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Run(ctx)
	}()
	cancel()
	<-done

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		p.Dispatch(store.FetchPosts{})
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked after shutdown")
	}
}
