package app

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-redis/redis/v8"

	"github.com/xenking/juicebar/internal/domain/admin"
	"github.com/xenking/juicebar/internal/domain/order"
	"github.com/xenking/juicebar/internal/session"
	"github.com/xenking/juicebar/internal/storage/memory"
	"github.com/xenking/juicebar/internal/storage/mongo"
	"github.com/xenking/juicebar/internal/storage/postgres"
)

// Stores are the repositories of one document store backend.
type Stores struct {
	Admins admin.Repository
	Orders order.Repository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping checks connectivity to the backend.
func (s *Stores) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases the backend's connections.
func (s *Stores) Close(ctx context.Context) error {
	return s.close(ctx)
}

// OpenStores connects to the configured document store. PostgreSQL
// migrations are applied before it returns.
func OpenStores(ctx context.Context, cfg StoreConfig) (*Stores, error) {
	switch cfg.Driver {
	case DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, errors.Wrap(err, "create db pool")
		}
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, errors.Wrap(err, "run migrations")
		}
		return &Stores{
			Admins: postgres.NewAdminRepository(pool),
			Orders: postgres.NewOrderRepository(pool),
			ping:   pool.Ping,
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case DriverMongo:
		client, err := mongo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, errors.Wrap(err, "connect mongo")
		}
		return &Stores{
			Admins: client.Admins(),
			Orders: client.Orders(),
			ping:   client.Ping,
			close:  client.Close,
		}, nil

	case DriverMemory:
		store := memory.New()
		return &Stores{
			Admins: store.Admins(),
			Orders: store.Orders(),
			ping:   store.Ping,
			close:  func(context.Context) error { return nil },
		}, nil

	default:
		return nil, errors.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// openSessionStore returns the configured session store and a function
// releasing its connections.
func openSessionStore(cfg SessionConfig) (session.Store, func() error, error) {
	switch cfg.Driver {
	case SessionMemory:
		return session.NewMemoryStore(cfg.TTL), func() error { return nil }, nil

	case SessionRedis:
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}
		if cfg.RedisURL != "" {
			parsed, err := redis.ParseURL(cfg.RedisURL)
			if err != nil {
				return nil, nil, errors.Wrap(err, "parse redis url")
			}
			opts = parsed
		}
		client := redis.NewClient(opts)
		return session.NewRedisStore(client, cfg.TTL), client.Close, nil

	default:
		return nil, nil, errors.Errorf("unknown session driver %q", cfg.Driver)
	}
}
