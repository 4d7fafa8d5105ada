package order

import (
	"context"
	"time"
)

// Order is a customer juice order as stored in the orders collection.
type Order struct {
	ID          string
	Name        string
	Phone       string
	MangoJuices int
	BerryJuices int
	AppleJuices int
	CreatedAt   time.Time
}

// Quantities returns the ordered amounts of each juice.
func (o Order) Quantities() Quantities {
	return Quantities{
		Mango: o.MangoJuices,
		Berry: o.BerryJuices,
		Apple: o.AppleJuices,
	}
}

// Quote prices the order with the fixed price list.
func (o Order) Quote() Quote {
	return Price(o.Quantities())
}

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, order *Order) error
	CreateMany(ctx context.Context, orders []Order) error
	List(ctx context.Context) ([]Order, error)
}
