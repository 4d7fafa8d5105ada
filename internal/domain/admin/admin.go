package admin

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned by a Repository when no administrator has the
// requested username.
var ErrNotFound = errors.New("administrator not found")

// Administrator is a back-office user allowed to view orders.
type Administrator struct {
	Username     string
	PasswordHash string
}

// Repository defines persistence operations for administrators.
type Repository interface {
	Create(ctx context.Context, admin *Administrator) error
	FindByUsername(ctx context.Context, username string) (*Administrator, error)
}
