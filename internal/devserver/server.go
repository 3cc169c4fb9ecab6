// Package devserver is the development API server: an in-memory
// implementation of the content API the store consumes, plus the websocket
// event feed. It exists for local development, demos, and integration tests;
// production clients point at the real backend instead.
package devserver

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/erlandsona/elm-store-pattern/pkg/data"
	"github.com/erlandsona/elm-store-pattern/pkg/live"
)

// Server holds the fixtures and serves the API routes.
type Server struct {
	logger *slog.Logger
	images ImageSource
	hub    *Hub

	mu     sync.Mutex
	posts  map[data.PostID]data.Post
	users  map[data.UserID]data.User
	nextID int
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithImageSource replaces the in-memory image source.
func WithImageSource(src ImageSource) Option {
	return func(s *Server) {
		s.images = src
	}
}

// WithPosts replaces the seeded posts.
func WithPosts(posts ...data.Post) Option {
	return func(s *Server) {
		s.posts = make(map[data.PostID]data.Post, len(posts))
		for _, p := range posts {
			s.posts[p.ID] = p
		}
	}
}

// WithUsers replaces the seeded users.
func WithUsers(users ...data.User) Option {
	return func(s *Server) {
		s.users = make(map[data.UserID]data.User, len(users))
		for _, u := range users {
			s.users[u.ID] = u
		}
	}
}

// New creates a Server with a small seeded data set.
func New(opts ...Option) *Server {
	logger := slog.Default().With("component", "devserver")
	s := &Server{
		logger: logger,
		posts: map[data.PostID]data.Post{
			"p1": {ID: "p1", Title: "Hello, world", Body: "First post.", AuthorID: "u1"},
			"p2": {ID: "p2", Title: "Store pattern notes", Body: "Cache remote data by id.", AuthorID: "u2"},
		},
		users: map[data.UserID]data.User{
			"u1": {ID: "u1", Name: "Ada Lovelace", Email: "ada@example.com"},
			"u2": {ID: "u2", Name: "Grace Hopper", Email: "grace@example.com"},
		},
		images: NewMemorySource(
			data.Image{ID: "img1", URL: "/static/img1.png", Alt: "A diagram"},
			data.Image{ID: "img2", URL: "/static/img2.png", Alt: "A chart"},
		),
		nextID: 100,
	}
	s.hub = NewHub(logger)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/posts", s.listPosts)
		r.Post("/posts", s.createPost)
		r.Get("/users", s.listUsers)
		r.Get("/images/{id}", s.getImage)
	})

	r.Get("/live", s.hub.HandleWebSocket)

	return r
}

// Hub exposes the event feed hub, used by tests and shutdown.
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) listPosts(w http.ResponseWriter, req *http.Request) {
	s.mu.Lock()
	posts := make([]data.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, p)
	}
	s.mu.Unlock()

	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) listUsers(w http.ResponseWriter, req *http.Request) {
	s.mu.Lock()
	users := make([]data.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	s.mu.Unlock()

	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) getImage(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")

	img, err := s.images.Image(req.Context(), id)
	if err == ErrImageNotFound {
		http.Error(w, "image not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("image source failed", "id", id, "error", err)
		http.Error(w, "image source failed", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, img)
}

func (s *Server) createPost(w http.ResponseWriter, req *http.Request) {
	var draft data.PostDraft
	if err := json.NewDecoder(req.Body).Decode(&draft); err != nil {
		http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if draft.Title == "" {
		http.Error(w, "title is required", http.StatusUnprocessableEntity)
		return
	}

	s.mu.Lock()
	s.nextID++
	post := data.Post{
		ID:       fmt.Sprintf("p%d", s.nextID),
		Title:    draft.Title,
		Body:     draft.Body,
		AuthorID: draft.AuthorID,
	}
	s.posts[post.ID] = post
	s.mu.Unlock()

	s.logger.Info("post created", "id", post.ID, "title", post.Title)
	s.hub.Broadcast(live.Envelope{Event: live.EventPostCreated, Post: &post})

	writeJSON(w, http.StatusCreated, post)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
