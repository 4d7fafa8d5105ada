// Package session keeps server-side login state keyed by an opaque id
// carried in a cookie.
package session

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned by a Store when the session id is unknown.
var ErrNotFound = errors.New("session not found")

// Session is the server-held state of one client.
type Session struct {
	ID    string `json:"id"`
	Admin bool   `json:"admin"`
}

// Store persists sessions by id. Implementations must be safe for
// concurrent use.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
