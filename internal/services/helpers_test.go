package services

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"ecommerce-backend/internal/cache"
	"ecommerce-backend/internal/config"
	"ecommerce-backend/internal/models"
	"ecommerce-backend/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(config.DatabaseConfig{InMemory: true}, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestCache() *cache.Cache {
	return cache.New(discardLogger())
}

// countingOrders records how often the order collection is queried.
type countingOrders struct {
	OrderStore
	queries atomic.Int32
}

func (c *countingOrders) FindOrders(ctx context.Context, q models.OrderQuery) ([]models.Order, error) {
	c.queries.Add(1)
	return c.OrderStore.FindOrders(ctx, q)
}

func (c *countingOrders) CountOrders(ctx context.Context, q models.OrderQuery) (int, error) {
	c.queries.Add(1)
	return c.OrderStore.CountOrders(ctx, q)
}

// failingUsers fails every user query.
type failingUsers struct {
	UserStore
	err error
}

func (f failingUsers) FindUsers(context.Context, models.UserQuery) ([]models.User, error) {
	return nil, f.err
}

func (f failingUsers) CountUsers(context.Context, models.UserQuery) (int, error) {
	return 0, f.err
}
