package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xenking/juicebar/internal/domain/order"
)

var _ order.Repository = (*OrderRepository)(nil)

type orderDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Phone       string    `bson:"phone"`
	MangoJuices int       `bson:"mangoJuices"`
	BerryJuices int       `bson:"berryJuices"`
	AppleJuices int       `bson:"appleJuices"`
	CreatedAt   time.Time `bson:"createdAt"`
}

func toOrderDoc(o *order.Order) orderDoc {
	return orderDoc{
		ID:          o.ID,
		Name:        o.Name,
		Phone:       o.Phone,
		MangoJuices: o.MangoJuices,
		BerryJuices: o.BerryJuices,
		AppleJuices: o.AppleJuices,
		CreatedAt:   o.CreatedAt,
	}
}

// OrderRepository implements order.Repository on the orders collection.
type OrderRepository struct {
	coll *mongo.Collection
}

// Create inserts a single order document.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	if _, err := r.coll.InsertOne(ctx, toOrderDoc(o)); err != nil {
		return fmt.Errorf("creating order %q: %w", o.ID, err)
	}
	return nil
}

// CreateMany inserts orders with a single InsertMany.
func (r *OrderRepository) CreateMany(ctx context.Context, orders []order.Order) error {
	if len(orders) == 0 {
		return nil
	}
	docs := make([]any, len(orders))
	for i := range orders {
		docs[i] = toOrderDoc(&orders[i])
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("creating %d orders: %w", len(orders), err)
	}
	return nil
}

// List returns all orders, oldest first.
func (r *OrderRepository) List(ctx context.Context) ([]order.Order, error) {
	cur, err := r.coll.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}

	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding orders: %w", err)
	}

	out := make([]order.Order, len(docs))
	for i, d := range docs {
		out[i] = order.Order{
			ID:          d.ID,
			Name:        d.Name,
			Phone:       d.Phone,
			MangoJuices: d.MangoJuices,
			BerryJuices: d.BerryJuices,
			AppleJuices: d.AppleJuices,
			CreatedAt:   d.CreatedAt.UTC(),
		}
	}
	return out, nil
}
