//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/xenking/shopdesk/internal/domain/client"
	"github.com/xenking/shopdesk/internal/domain/order"
	"github.com/xenking/shopdesk/internal/domain/product"
)

func startPostgres(t *testing.T) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "shop",
				"POSTGRES_PASSWORD": "shop",
				"POSTGRES_DB":       "shop",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })

	endpoint, err := ctr.PortEndpoint(ctx, "5432/tcp", "")
	require.NoError(t, err)

	store, err := Open(ctx, fmt.Sprintf("postgres://shop:shop@%s/shop?sslmode=disable", endpoint))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore(t *testing.T) {
	store := startPostgres(t)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))
	// Migrations must be re-runnable.
	require.NoError(t, RunMigrations(ctx, store.pool))

	t.Run("clients", func(t *testing.T) {
		batch := []*client.Client{
			client.New("A", "+1111111", "a@example.com"),
			client.New("B", "+2222222", "b@example.com"),
		}
		require.NoError(t, store.Clients().CreateBatch(ctx, batch))
		assert.True(t, batch[0].HasID())

		found, err := store.Clients().FindByEmail(ctx, "b@example.com")
		require.NoError(t, err)
		assert.Equal(t, "B", found.Name)

		_, err = store.Clients().GetByID(ctx, 424242)
		require.ErrorIs(t, err, client.ErrNotFound)
	})

	t.Run("orders", func(t *testing.T) {
		c := client.New("Anna", "+1234567891", "anna@example.com")
		require.NoError(t, store.Clients().Create(ctx, c))
		p := product.New("Item", "", decimal.RequireFromString("100.00"))
		require.NoError(t, store.Products().Create(ctx, p))

		o := order.NewSpecial(c, []order.Line{{Product: p, Quantity: 3}}, "2023-10-10 12:00:00", decimal.NewFromInt(10))
		require.NoError(t, store.Orders().Create(ctx, o))

		all, err := store.Orders().List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, order.KindSpecial, all[0].Kind())
		assert.True(t, decimal.NewFromInt(270).Equal(all[0].TotalCost()), "got %s", all[0].TotalCost())
		assert.Equal(t, "Anna", all[0].Client().Name)
	})

	t.Run("precision", func(t *testing.T) {
		c := client.New("Boris", "+1234567892", "boris@example.com")
		require.NoError(t, store.Clients().Create(ctx, c))
		p := product.New("Bolt", "", decimal.RequireFromString("0.125"))
		require.NoError(t, store.Products().Create(ctx, p))

		id, _ := p.ID()
		got, err := store.Products().GetByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("0.125").Equal(got.Price), "got %s", got.Price)

		o := order.NewSpecial(c, []order.Line{{Product: p, Quantity: 1}}, "2023-10-11 12:00:00",
			decimal.RequireFromString("12.3456"))
		require.NoError(t, store.Orders().Create(ctx, o))

		all, err := store.Orders().List(ctx)
		require.NoError(t, err)
		last := all[len(all)-1]
		assert.True(t, decimal.RequireFromString("12.3456").Equal(order.DiscountOf(last)), "got %s", order.DiscountOf(last))
	})
}
