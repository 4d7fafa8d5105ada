package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/xenking/juicebar/internal/domain/order"
)

var _ order.Repository = (*OrderRepository)(nil)

type orderEntry struct {
	seq   int
	order order.Order
}

// OrderRepository implements order.Repository over a Store.
type OrderRepository struct {
	s *Store
}

// Create stores a copy of o. Ids must be unique.
func (r *OrderRepository) Create(_ context.Context, o *order.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.insertOrder(*o)
}

// CreateMany stores orders in sequence and stops at the first duplicate
// id. Orders before it stay inserted.
func (r *OrderRepository) CreateMany(_ context.Context, orders []order.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, o := range orders {
		if err := r.s.insertOrder(o); err != nil {
			return err
		}
	}
	return nil
}

// List returns copies of all orders, oldest first.
func (r *OrderRepository) List(context.Context) ([]order.Order, error) {
	r.s.mu.RLock()
	entries := make([]orderEntry, len(r.s.orders))
	copy(entries, r.s.orders)
	r.s.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.order.CreatedAt.Equal(b.order.CreatedAt) {
			return a.order.CreatedAt.Before(b.order.CreatedAt)
		}
		return a.seq < b.seq
	})

	out := make([]order.Order, len(entries))
	for i, e := range entries {
		out[i] = e.order
	}
	return out, nil
}

// insertOrder requires s.mu to be held for writing.
func (s *Store) insertOrder(o order.Order) error {
	if _, ok := s.ids[o.ID]; ok {
		return fmt.Errorf("order %q already exists", o.ID)
	}
	s.ids[o.ID] = struct{}{}
	s.orders = append(s.orders, orderEntry{seq: len(s.orders), order: o})
	return nil
}
