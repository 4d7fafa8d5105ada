//go:build integration

package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startContainer runs image exposing port and returns its host:port.
func startContainer(t *testing.T, image, port string, env map[string]string, waitFor wait.Strategy) string {
	t.Helper()
	ctx := context.Background()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{port},
			Env:          env,
			WaitingFor:   waitFor,
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })

	// Only one port is exposed, so the endpoint is that port's host:port.
	addr, err := ctr.Endpoint(ctx, "")
	require.NoError(t, err)
	return addr
}

func startRedisURL(t *testing.T) string {
	addr := startContainer(t, "redis:7-alpine", "6379/tcp", nil, wait.ForLog("Ready to accept connections"))
	return "redis://" + addr + "/0"
}

func TestStack_PostgresAndRedis(t *testing.T) {
	pgAddr := startContainer(t, "postgres:17-alpine", "5432/tcp",
		map[string]string{
			"POSTGRES_USER":     "juicebar",
			"POSTGRES_PASSWORD": "juicebar",
			"POSTGRES_DB":       "juicebar",
		},
		wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(time.Minute),
	)

	cfg := memoryConfig()
	cfg.Store = StoreConfig{
		Driver:      DriverPostgres,
		DatabaseURL: fmt.Sprintf("postgres://juicebar:juicebar@%s/juicebar?sslmode=disable", pgAddr),
	}
	cfg.Session.Driver = SessionRedis
	cfg.Session.RedisURL = startRedisURL(t)
	require.NoError(t, cfg.Validate())

	runOrderFlow(t, startStack(t, cfg))
}

func TestStack_Mongo(t *testing.T) {
	mongoAddr := startContainer(t, "mongo:7", "27017/tcp", nil,
		wait.ForListeningPort("27017/tcp").WithStartupTimeout(time.Minute),
	)

	cfg := memoryConfig()
	cfg.Store = StoreConfig{
		Driver:        DriverMongo,
		MongoURI:      "mongodb://" + mongoAddr,
		MongoDatabase: "juicebar_it",
	}
	require.NoError(t, cfg.Validate())

	runOrderFlow(t, startStack(t, cfg))
}
