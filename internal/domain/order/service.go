package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Receipt is the result of a successfully placed order.
type Receipt struct {
	Order *Order
	Quote Quote
}

// Service encapsulates order placement and listing.
type Service struct {
	orders    Repository
	validator *Validator
	placed    metric.Int64Counter
	juices    metric.Int64Counter
	now       func() time.Time
}

// NewService creates an order Service persisting to orders and recording
// placed orders on meter.
func NewService(orders Repository, meter metric.Meter) (*Service, error) {
	placed, err := meter.Int64Counter("orders.placed",
		metric.WithDescription("Number of orders persisted"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create orders.placed counter")
	}
	juices, err := meter.Int64Counter("juices.ordered",
		metric.WithDescription("Number of juice bottles ordered, by juice"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create juices.ordered counter")
	}
	return &Service{
		orders:    orders,
		validator: NewValidator(),
		placed:    placed,
		juices:    juices,
		now:       time.Now,
	}, nil
}

// Place validates the submitted form, prices it and persists the order.
// Validation failures are returned as *ValidationError.
func (s *Service) Place(ctx context.Context, f Form) (*Receipt, error) {
	q, err := s.validator.Validate(f)
	if err != nil {
		return nil, err
	}

	o := &Order{
		ID:          uuid.New().String(),
		Name:        f.Name,
		Phone:       f.Phone,
		MangoJuices: q.Mango,
		BerryJuices: q.Berry,
		AppleJuices: q.Apple,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}
	s.placed.Add(ctx, 1)
	s.recordJuices(ctx, q)

	return &Receipt{
		Order: o,
		Quote: Price(q),
	}, nil
}

var (
	mangoAttr = metric.WithAttributes(attribute.String("juice", "mango"))
	berryAttr = metric.WithAttributes(attribute.String("juice", "berry"))
	appleAttr = metric.WithAttributes(attribute.String("juice", "apple"))
)

func (s *Service) recordJuices(ctx context.Context, q Quantities) {
	s.juices.Add(ctx, int64(q.Mango), mangoAttr)
	s.juices.Add(ctx, int64(q.Berry), berryAttr)
	s.juices.Add(ctx, int64(q.Apple), appleAttr)
}

// List returns every stored order, oldest first.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return orders, nil
}
