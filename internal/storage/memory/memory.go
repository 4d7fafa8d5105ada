// Package memory is an in-process document store used for local runs and
// handler tests. Data is lost on restart.
package memory

import (
	"context"
	"sync"
)

// Store holds the administrators and orders collections.
type Store struct {
	mu     sync.RWMutex
	admins []adminEntry
	orders []orderEntry
	ids    map[string]struct{}
}

// New returns an empty Store.
func New() *Store {
	return &Store{ids: make(map[string]struct{})}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Admins returns the administrators repository.
func (s *Store) Admins() *AdminRepository { return &AdminRepository{s: s} }

// Orders returns the orders repository.
func (s *Store) Orders() *OrderRepository { return &OrderRepository{s: s} }
