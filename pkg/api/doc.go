// Package api is the HTTP implementation of the store's Gateway contract:
// GET /api/posts, GET /api/users, GET /api/images/{id}, POST /api/posts.
//
// Failures collapse into a single opaque error kind (*Error); the store does
// not distinguish transport failures from HTTP status failures, and neither
// does this package beyond recording the status for logs.
package api
