package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xenking/juicebar/internal/domain/admin"
)

var _ admin.Repository = (*AdminRepository)(nil)

type adminDoc struct {
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
}

// AdminRepository implements admin.Repository on the administrators
// collection.
type AdminRepository struct {
	coll *mongo.Collection
}

// Create inserts an administrator document.
func (r *AdminRepository) Create(ctx context.Context, a *admin.Administrator) error {
	_, err := r.coll.InsertOne(ctx, adminDoc{
		Username:     a.Username,
		PasswordHash: a.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("creating administrator %q: %w", a.Username, err)
	}
	return nil
}

// FindByUsername returns the oldest administrator with username, or
// admin.ErrNotFound.
func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*admin.Administrator, error) {
	var doc adminDoc
	err := r.coll.FindOne(ctx,
		bson.M{"username": username},
		options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, admin.ErrNotFound
		}
		return nil, fmt.Errorf("finding administrator %q: %w", username, err)
	}
	return &admin.Administrator{Username: doc.Username, PasswordHash: doc.PasswordHash}, nil
}
