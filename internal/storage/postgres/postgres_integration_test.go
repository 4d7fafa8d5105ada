//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/xenking/juicebar/internal/domain/admin"
	"github.com/xenking/juicebar/internal/domain/order"
)

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "juicebar",
				"POSTGRES_PASSWORD": "juicebar",
				"POSTGRES_DB":       "juicebar",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	pool, err := NewPool(ctx, fmt.Sprintf("postgres://juicebar:juicebar@%s:%s/juicebar?sslmode=disable", host, port.Port()))
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, RunMigrations(ctx, pool))
	require.NoError(t, RunMigrations(ctx, pool), "migrations must be re-runnable")
	return pool
}

func TestPostgres(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()

	t.Run("administrators", func(t *testing.T) {
		repo := NewAdminRepository(pool)

		_, err := repo.FindByUsername(ctx, "admin")
		require.ErrorIs(t, err, admin.ErrNotFound)

		require.NoError(t, repo.Create(ctx, &admin.Administrator{Username: "admin", PasswordHash: "first"}))
		require.NoError(t, repo.Create(ctx, &admin.Administrator{Username: "admin", PasswordHash: "second"}))

		got, err := repo.FindByUsername(ctx, "admin")
		require.NoError(t, err)
		assert.Equal(t, "first", got.PasswordHash)
	})

	t.Run("orders", func(t *testing.T) {
		repo := NewOrderRepository(pool)
		base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

		require.NoError(t, repo.Create(ctx, &order.Order{
			ID: "o-1", Name: "Jane Rees", Phone: "416-555-0199",
			MangoJuices: 1, BerryJuices: 2, AppleJuices: 3, CreatedAt: base,
		}))
		require.NoError(t, repo.CreateMany(ctx, []order.Order{
			{ID: "o-2", Name: "Tom Hill", Phone: "647-555-0100", CreatedAt: base.Add(time.Minute)},
			{ID: "o-3", Name: "Kris May", Phone: "905-555-0111", AppleJuices: 9, CreatedAt: base.Add(2 * time.Minute)},
		}))
		require.NoError(t, repo.CreateMany(ctx, nil))

		orders, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, orders, 3)
		assert.Equal(t, "o-1", orders[0].ID)
		assert.Equal(t, "Jane Rees", orders[0].Name)
		assert.Equal(t, 2, orders[0].BerryJuices)
		assert.True(t, base.Equal(orders[0].CreatedAt))
		assert.Equal(t, 9, orders[2].AppleJuices)
	})

	t.Run("duplicate order id", func(t *testing.T) {
		repo := NewOrderRepository(pool)
		err := repo.Create(ctx, &order.Order{ID: "o-1", CreatedAt: time.Now()})
		require.Error(t, err)
	})
}
