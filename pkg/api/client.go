package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/erlandsona/elm-store-pattern/pkg/data"
)

// Default tracer name for API client spans.
const defaultTracerName = "elmstore/api"

// defaultTimeout bounds a single API call when the caller's context has no
// deadline of its own.
const defaultTimeout = 30 * time.Second

// Client talks to the content API over HTTP and implements store.Gateway.
//
// Every call runs inside an OpenTelemetry span created from the global
// tracer provider; configure the provider in main() before issuing calls.
//
// Example:
//
//	client, err := api.New("http://localhost:3000",
//	    api.WithTracerName("my-app"),
//	)
//	posts, err := client.FetchPosts(ctx)
type Client struct {
	base   *url.URL
	http   *http.Client
	tracer trace.Tracer
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTracerName sets the tracer name for client spans.
func WithTracerName(name string) Option {
	return func(c *Client) {
		c.tracer = otel.Tracer(name)
	}
}

// WithLogger sets the logger for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}

	c := &Client{
		base:   base,
		http:   &http.Client{Timeout: defaultTimeout},
		tracer: otel.Tracer(defaultTracerName),
		logger: slog.Default().With("component", "api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchPosts loads every post. GET /api/posts.
func (c *Client) FetchPosts(ctx context.Context) ([]data.Post, error) {
	var posts []data.Post
	if err := c.get(ctx, "/api/posts", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// FetchUsers loads every user. GET /api/users.
func (c *Client) FetchUsers(ctx context.Context) ([]data.User, error) {
	var users []data.User
	if err := c.get(ctx, "/api/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FetchImage loads one image by id. GET /api/images/{id}.
func (c *Client) FetchImage(ctx context.Context, id data.ImageID) (data.Image, error) {
	var img data.Image
	if err := c.get(ctx, "/api/images/"+url.PathEscape(id), &img); err != nil {
		return data.Image{}, err
	}
	return img, nil
}

// CreatePost persists a new post. POST /api/posts.
func (c *Client) CreatePost(ctx context.Context, draft data.PostDraft) (data.Post, error) {
	var post data.Post
	if err := c.post(ctx, "/api/posts", draft, &post); err != nil {
		return data.Post{}, err
	}
	return post, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("api: encode body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, body, out)
}

// do performs one HTTP exchange inside a client span and decodes the JSON
// response into out.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	target := c.base.JoinPath(path).String()

	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("%s %s", method, path),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.url", target),
		),
	)
	defer span.End()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return &Error{Method: method, URL: target, Message: err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Warn("request failed", "method", method, "url", target, "error", err)
		return &Error{Method: method, URL: target, Message: err.Error()}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			Method:  method,
			URL:     target,
			Status:  resp.StatusCode,
			Message: snippet(resp.Body),
		}
		span.RecordError(apiErr)
		span.SetStatus(codes.Error, apiErr.Error())
		c.logger.Warn("request failed", "method", method, "url", target, "status", resp.StatusCode)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return &Error{Method: method, URL: target, Message: "decode response: " + err.Error()}
		}
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// snippet reads a short prefix of an error response body for the message.
func snippet(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 256))
	if err != nil || len(b) == 0 {
		return "request failed"
	}
	return strings.TrimSpace(string(b))
}
