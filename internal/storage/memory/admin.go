package memory

import (
	"context"

	"github.com/xenking/juicebar/internal/domain/admin"
)

var _ admin.Repository = (*AdminRepository)(nil)

type adminEntry struct {
	username     string
	passwordHash string
}

// AdminRepository implements admin.Repository over a Store.
type AdminRepository struct {
	s *Store
}

// Create appends an administrator. Duplicate usernames are allowed.
func (r *AdminRepository) Create(_ context.Context, a *admin.Administrator) error {
	r.s.mu.Lock()
	r.s.admins = append(r.s.admins, adminEntry{username: a.Username, passwordHash: a.PasswordHash})
	r.s.mu.Unlock()
	return nil
}

// FindByUsername returns the first administrator created with username.
func (r *AdminRepository) FindByUsername(_ context.Context, username string) (*admin.Administrator, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, e := range r.s.admins {
		if e.username == username {
			return &admin.Administrator{Username: e.username, PasswordHash: e.passwordHash}, nil
		}
	}
	return nil, admin.ErrNotFound
}
