// Package mongo stores the administrators and orders collections in
// MongoDB.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	administratorsCollection = "administrators"
	ordersCollection         = "orders"
)

// Client is a connection to one MongoDB database.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client for uri and selects database.
func Connect(ctx context.Context, uri, database string) (*Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	return &Client{client: client, db: client.Database(database)}, nil
}

// Ping checks connectivity to the primary.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Admins returns the administrators repository.
func (c *Client) Admins() *AdminRepository {
	return &AdminRepository{coll: c.db.Collection(administratorsCollection)}
}

// Orders returns the orders repository.
func (c *Client) Orders() *OrderRepository {
	return &OrderRepository{coll: c.db.Collection(ordersCollection)}
}
