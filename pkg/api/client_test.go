package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erlandsona/elm-store-pattern/pkg/data"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/posts", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]data.Post{
			{ID: "p1", Title: "A"},
			{ID: "p2", Title: "B"},
		})
	})
	mux.HandleFunc("GET /api/users", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]data.User{{ID: "u1", Name: "Ada"}})
	})
	mux.HandleFunc("GET /api/images/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == "missing" {
			http.Error(w, "no such image", http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(data.Image{ID: id, URL: "/img/" + id + ".png"})
	})
	mux.HandleFunc("POST /api/posts", func(w http.ResponseWriter, r *http.Request) {
		var draft data.PostDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(data.Post{ID: "p99", Title: draft.Title, Body: draft.Body})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New(baseURL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestFetchPosts(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv.URL)

	posts, err := c.FetchPosts(context.Background())
	if err != nil {
		t.Fatalf("FetchPosts: %v", err)
	}
	if len(posts) != 2 {
		t.Errorf("Expected 2 posts, got %d", len(posts))
	}
}

func TestFetchUsers(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv.URL)

	users, err := c.FetchUsers(context.Background())
	if err != nil {
		t.Fatalf("FetchUsers: %v", err)
	}
	if len(users) != 1 || users[0].Name != "Ada" {
		t.Errorf("Expected Ada, got %v", users)
	}
}

func TestFetchImage(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv.URL)

	img, err := c.FetchImage(context.Background(), "img1")
	if err != nil {
		t.Fatalf("FetchImage: %v", err)
	}
	if img.URL != "/img/img1.png" {
		t.Errorf("Expected image url, got %q", img.URL)
	}
}

func TestFetchImageNotFound(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv.URL)

	_, err := c.FetchImage(context.Background(), "missing")
	if err == nil {
		t.Fatal("Expected error for missing image")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *api.Error, got %T", err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", apiErr.Status)
	}
	if !StatusError(err, http.StatusNotFound) {
		t.Error("StatusError should match 404")
	}
}

func TestCreatePost(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv.URL)

	post, err := c.CreatePost(context.Background(), data.PostDraft{Title: "New", Body: "body"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if post.ID != "p99" || post.Title != "New" {
		t.Errorf("Unexpected post: %+v", post)
	}
}

func TestServerErrorIsOpaque(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database on fire", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	c := newTestClient(t, srv.URL)

	_, err := c.FetchPosts(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *api.Error, got %T", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", apiErr.Status)
	}
	if apiErr.Message != "database on fire" {
		t.Errorf("Expected body snippet in message, got %q", apiErr.Message)
	}
}

func TestTransportErrorIsOpaque(t *testing.T) {
	// Point at a closed server.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := newTestClient(t, base)
	_, err := c.FetchPosts(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *api.Error, got %T (%v)", err, err)
	}
	if apiErr.Status != 0 {
		t.Errorf("Transport error should have no status, got %d", apiErr.Status)
	}
}

func TestBadBaseURL(t *testing.T) {
	if _, err := New("http://%zz"); err == nil {
		t.Error("Expected error for malformed base url")
	}
}
