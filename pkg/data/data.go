// Package data defines the entities served by the content API and the
// id-indexed collections the store caches them in.
package data

// PostID identifies a post.
type PostID = string

// UserID identifies a user.
type UserID = string

// ImageID identifies an image. Images are fetched lazily, one key at a time.
type ImageID = string

// Post is a published article.
type Post struct {
	ID       PostID `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body,omitempty"`
	AuthorID UserID `json:"authorId,omitempty"`
}

// EntityID implements Entity.
func (p Post) EntityID() string { return p.ID }

// PostDraft is the payload for creating a post. The server assigns the id.
type PostDraft struct {
	Title    string `json:"title"`
	Body     string `json:"body,omitempty"`
	AuthorID UserID `json:"authorId,omitempty"`
}

// User is an author account.
type User struct {
	ID    UserID `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// EntityID implements Entity.
func (u User) EntityID() string { return u.ID }

// Image is a media asset referenced by posts.
type Image struct {
	ID  ImageID `json:"id"`
	URL string  `json:"url"`
	Alt string  `json:"alt,omitempty"`
}

// EntityID implements Entity.
func (i Image) EntityID() string { return i.ID }

// Entity is anything with a unique string id.
type Entity interface {
	EntityID() string
}

// Collection is a set of entities indexed by id. Insertion order is not
// significant and duplicate ids resolve last-write-wins.
//
// Collections are treated as immutable: Insert returns a copy, so store
// snapshots taken before a merge stay valid.
type Collection[E Entity] map[string]E

// NewCollection indexes entities by id. Later duplicates win.
func NewCollection[E Entity](entities ...E) Collection[E] {
	c := make(Collection[E], len(entities))
	for _, e := range entities {
		c[e.EntityID()] = e
	}
	return c
}

// Get returns the entity with the given id.
func (c Collection[E]) Get(id string) (E, bool) {
	e, ok := c[id]
	return e, ok
}

// Insert returns a copy of the collection with the entity added or replaced.
func (c Collection[E]) Insert(e E) Collection[E] {
	next := make(Collection[E], len(c)+1)
	for id, v := range c {
		next[id] = v
	}
	next[e.EntityID()] = e
	return next
}

// Len returns the number of entities.
func (c Collection[E]) Len() int { return len(c) }

// IDs returns the ids present in the collection, in map order.
func (c Collection[E]) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	return ids
}

// All returns the entities in map order.
func (c Collection[E]) All() []E {
	all := make([]E, 0, len(c))
	for _, e := range c {
		all = append(all, e)
	}
	return all
}
