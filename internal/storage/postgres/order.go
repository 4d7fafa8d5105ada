package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/juicebar/internal/domain/order"
)

const (
	createOrderSQL = `INSERT INTO orders (id, doc, created_at) VALUES ($1, $2, $3)`

	listOrdersSQL = `SELECT id, doc, created_at FROM orders ORDER BY created_at, id`
)

var _ order.Repository = (*OrderRepository)(nil)

// orderDoc is the JSONB document of an order.
type orderDoc struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	MangoJuices int    `json:"mangoJuices"`
	BerryJuices int    `json:"berryJuices"`
	AppleJuices int    `json:"appleJuices"`
}

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create inserts a single order document.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	doc, err := marshalOrder(o)
	if err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, createOrderSQL, o.ID, doc, o.CreatedAt); err != nil {
		return fmt.Errorf("creating order %q: %w", o.ID, err)
	}
	return nil
}

// CreateMany inserts orders in one batch round trip. The batch is not
// transactional: a failure may leave earlier documents inserted.
func (r *OrderRepository) CreateMany(ctx context.Context, orders []order.Order) error {
	if len(orders) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i := range orders {
		doc, err := marshalOrder(&orders[i])
		if err != nil {
			return err
		}
		batch.Queue(createOrderSQL, orders[i].ID, doc, orders[i].CreatedAt)
	}

	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("creating %d orders: %w", len(orders), err)
	}
	return nil
}

// List returns all orders, oldest first.
func (r *OrderRepository) List(ctx context.Context) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return pgx.CollectRows(rows, scanOrder)
}

func marshalOrder(o *order.Order) ([]byte, error) {
	doc, err := json.Marshal(orderDoc{
		Name:        o.Name,
		Phone:       o.Phone,
		MangoJuices: o.MangoJuices,
		BerryJuices: o.BerryJuices,
		AppleJuices: o.AppleJuices,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling order %q: %w", o.ID, err)
	}
	return doc, nil
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var (
		o         order.Order
		raw       []byte
		createdAt time.Time
	)
	if err := row.Scan(&o.ID, &raw, &createdAt); err != nil {
		return o, err
	}

	var doc orderDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return o, fmt.Errorf("unmarshaling order %q: %w", o.ID, err)
	}
	o.Name = doc.Name
	o.Phone = doc.Phone
	o.MangoJuices = doc.MangoJuices
	o.BerryJuices = doc.BerryJuices
	o.AppleJuices = doc.AppleJuices
	o.CreatedAt = createdAt.UTC()
	return o, nil
}
