package seed

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/xenking/juicebar/internal/domain/admin"
	"github.com/xenking/juicebar/internal/domain/order"
)

// Config controls what Run inserts.
type Config struct {
	AdminUsername string
	AdminPassword string
	Orders        int
	BcryptCost    int
}

// Result summarizes a seeding run.
type Result struct {
	Admin  string
	Orders int
}

// Seeder inserts the configured administrator and a batch of generated
// orders. It is not idempotent: every run inserts new documents.
type Seeder struct {
	cfg    Config
	admins admin.Repository
	orders order.Repository
	gen    *Generator
	now    func() time.Time
}

// NewSeeder creates a Seeder writing to the given repositories.
func NewSeeder(cfg Config, admins admin.Repository, orders order.Repository, gen *Generator) *Seeder {
	return &Seeder{
		cfg:    cfg,
		admins: admins,
		orders: orders,
		gen:    gen,
		now:    time.Now,
	}
}

// Run inserts the administrator, then the generated orders.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	adm, err := admin.New(s.cfg.AdminUsername, s.cfg.AdminPassword, s.cfg.BcryptCost)
	if err != nil {
		return nil, errors.Wrap(err, "build administrator")
	}
	if err := s.admins.Create(ctx, adm); err != nil {
		return nil, errors.Wrap(err, "create administrator")
	}

	orders := s.gen.Orders(s.cfg.Orders)
	now := s.now().UTC()
	// Distinct timestamps keep generation order when a store sorts by
	// createdAt.
	for i := range orders {
		orders[i].ID = uuid.New().String()
		orders[i].CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
	}
	if err := s.orders.CreateMany(ctx, orders); err != nil {
		return nil, errors.Wrap(err, "create orders")
	}

	return &Result{
		Admin:  adm.Username,
		Orders: len(orders),
	}, nil
}
