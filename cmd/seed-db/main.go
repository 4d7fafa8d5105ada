package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/go-faster/errors"
	"golang.org/x/crypto/bcrypt"

	appkg "github.com/xenking/juicebar/internal/app"
	"github.com/xenking/juicebar/internal/domain/seed"
)

func main() {
	var (
		store     appkg.StoreConfig
		setup     seed.Config
		seedValue uint64
	)

	flag.StringVar(&store.Driver, "driver", appkg.DriverPostgres, "document store: postgres or mongo")
	flag.StringVar(&store.DatabaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&store.MongoURI, "mongo-uri", "", "MongoDB connection URI (or MONGODB_URI env)")
	flag.StringVar(&store.MongoDatabase, "mongo-database", "juicebar", "MongoDB database name")
	flag.StringVar(&setup.AdminUsername, "admin-username", "admin", "administrator to create")
	flag.StringVar(&setup.AdminPassword, "admin-password", "", "administrator password (or JUICEBAR_ADMIN_PASSWORD env, default admin)")
	flag.IntVar(&setup.Orders, "orders", 10, "number of random orders to create")
	flag.IntVar(&setup.BcryptCost, "bcrypt-cost", bcrypt.DefaultCost, "bcrypt cost for the administrator password")
	flag.Uint64Var(&seedValue, "seed", 0, "random seed for generated orders, 0 picks one")
	flag.Parse()

	if store.DatabaseURL == "" {
		store.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if store.MongoURI == "" {
		store.MongoURI = os.Getenv("MONGODB_URI")
	}
	if setup.AdminPassword == "" {
		setup.AdminPassword = os.Getenv("JUICEBAR_ADMIN_PASSWORD")
	}
	if setup.AdminPassword == "" {
		setup.AdminPassword = "admin"
	}

	switch {
	case store.Driver == appkg.DriverPostgres && store.DatabaseURL == "":
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	case store.Driver == appkg.DriverMongo && store.MongoURI == "":
		slog.Error("mongo URI is required: set --mongo-uri or MONGODB_URI")
		os.Exit(1)
	case store.Driver != appkg.DriverPostgres && store.Driver != appkg.DriverMongo:
		slog.Error("unsupported driver", slog.String("driver", store.Driver))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, store, setup, seedValue); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, storeCfg appkg.StoreConfig, setup seed.Config, seedValue uint64) error {
	slog.Info("connecting to store", slog.String("driver", storeCfg.Driver))

	stores, err := appkg.OpenStores(ctx, storeCfg)
	if err != nil {
		return errors.Wrap(err, "open store")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = stores.Close(closeCtx)
	}()

	if err := stores.Ping(ctx); err != nil {
		return errors.Wrap(err, "ping store")
	}

	if seedValue == 0 {
		seedValue = rand.Uint64()
	}
	slog.Info("seeding", slog.Int("orders", setup.Orders), slog.Uint64("seed", seedValue))

	seeder := seed.NewSeeder(setup, stores.Admins, stores.Orders,
		seed.NewGenerator(rand.NewPCG(seedValue, seedValue)),
	)
	res, err := seeder.Run(ctx)
	if err != nil {
		return err
	}

	slog.Info("seeded",
		slog.String("admin", res.Admin),
		slog.Int("orders", res.Orders),
	)
	return nil
}
