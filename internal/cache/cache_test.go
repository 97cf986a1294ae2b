package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache() *Cache {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCache_SetGetHas(t *testing.T) {
	c := newTestCache()

	assert.False(t, c.Has("a"))
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Set("a", []byte(`{"x":1}`))
	assert.True(t, c.Has("a"))

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.JSONEq(t, `{"x":1}`, string(got))

	c.Set("a", []byte(`{"x":2}`))
	got, _ = c.Get("a")
	assert.JSONEq(t, `{"x":2}`, string(got), "Set should overwrite")
}

func TestCache_GetReturnsCopy(t *testing.T) {
	c := newTestCache()
	c.Set("a", []byte("abc"))

	got, _ := c.Get("a")
	got[0] = 'z'

	again, _ := c.Get("a")
	assert.Equal(t, "abc", string(again))
}

func TestCache_DeleteMany(t *testing.T) {
	c := newTestCache()
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	c.Set("c", []byte("3"))

	removed := c.DeleteMany("a", "b", "never-set")

	assert.Equal(t, 2, removed)
	assert.False(t, c.Has("a"))
	assert.False(t, c.Has("b"))
	assert.True(t, c.Has("c"))
	assert.Equal(t, 1, c.Len())

	assert.NotPanics(t, func() { c.DeleteMany() })
}

func TestCache_Stats(t *testing.T) {
	c := newTestCache()
	c.Set("a", []byte("1"))
	c.Get("a")
	c.Get("a")
	c.Get("b")
	c.DeleteMany("a")

	stats := c.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
	assert.Equal(t, int64(1), stats.Deletes)
	assert.Equal(t, 0, stats.Keys)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := newTestCache()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("k-%d", i%5)
			c.Set(key, []byte("v"))
			c.Get(key)
			c.Has(key)
			c.DeleteMany(key)
		}()
	}
	wg.Wait()
}

func TestKeys_MissingIDs(t *testing.T) {
	assert.Equal(t, "product-p1", ProductKey("p1"))
	assert.Equal(t, "my-orders-undefined", MyOrdersKey(""))
	assert.Equal(t, "orders-undefined", OrderKey(""))
	assert.Equal(t, "orders-o1", OrderKey("o1"))
}

func TestInvalidation_Keys(t *testing.T) {
	tests := []struct {
		name string
		inv  Invalidation
		want []string
	}{
		{
			name: "nothing",
			inv:  Invalidation{},
			want: nil,
		},
		{
			name: "product list",
			inv:  Invalidation{Product: true, ProductIDs: []string{"a", "b"}},
			want: []string{"latest-products", "categories", "all-products", "product-a", "product-b"},
		},
		{
			name: "product single",
			inv:  Invalidation{Product: true}.WithProductID("a"),
			want: []string{"latest-products", "categories", "all-products", "product-a"},
		},
		{
			name: "order without ids",
			inv:  Invalidation{Order: true},
			want: []string{"all-orders", "my-orders-undefined", "orders-undefined"},
		},
		{
			name: "admin",
			inv:  Invalidation{Admin: true},
			want: []string{"admin-stats", "admin-pie-charts", "admin-bar-charts", "admin-line-charts"},
		},
		{
			name: "duplicate product ids",
			inv:  Invalidation{Product: true, ProductIDs: []string{"a", "a"}},
			want: []string{"latest-products", "categories", "all-products", "product-a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.inv.Keys())
		})
	}
}

func TestInvalidate_ProductLeavesAdminKeys(t *testing.T) {
	c := newTestCache()
	for _, k := range []string{"product-a", "product-b", "latest-products", "categories", "all-products", "admin-stats"} {
		c.Set(k, []byte("x"))
	}

	c.Invalidate(context.Background(), Invalidation{Product: true, ProductIDs: []string{"a", "b"}})

	for _, k := range []string{"product-a", "product-b", "latest-products", "categories", "all-products"} {
		assert.False(t, c.Has(k), k)
	}
	assert.True(t, c.Has("admin-stats"))
}

func TestInvalidate_AdminAlwaysClearsAdminKeys(t *testing.T) {
	adminKeys := []string{KeyAdminStats, KeyAdminPieCharts, KeyAdminBarCharts, KeyAdminLineCharts}

	for _, inv := range []Invalidation{
		{Admin: true},
		{Admin: true, Product: true},
		{Admin: true, Order: true, UserID: "u1"},
	} {
		c := newTestCache()
		for _, k := range adminKeys {
			c.Set(k, []byte("x"))
		}

		c.Invalidate(context.Background(), inv)

		for _, k := range adminKeys {
			assert.False(t, c.Has(k), k)
		}
	}
}

func TestInvalidate_OrderPlaced(t *testing.T) {
	c := newTestCache()
	stale := []string{
		"all-orders", "my-orders-u1", "orders-undefined", "product-p1",
		"latest-products", "categories", "all-products",
		"admin-stats", "admin-pie-charts", "admin-bar-charts", "admin-line-charts",
	}
	for _, k := range stale {
		c.Set(k, []byte("x"))
	}
	c.Set("product-p2", []byte("x"))
	c.Set("my-orders-u2", []byte("x"))

	c.Invalidate(context.Background(), Invalidation{
		Order:      true,
		Admin:      true,
		Product:    true,
		UserID:     "u1",
		ProductIDs: []string{"p1"},
	})

	for _, k := range stale {
		assert.False(t, c.Has(k), k)
	}
	assert.True(t, c.Has("product-p2"))
	assert.True(t, c.Has("my-orders-u2"))
}

type payload struct {
	Values []float64 `json:"values"`
}

func TestRemember_MissThenHit(t *testing.T) {
	c := newTestCache()
	calls := 0
	compute := func(context.Context) (payload, error) {
		calls++
		return payload{Values: []float64{1, 2}}, nil
	}

	first, err := Remember(context.Background(), c, "admin-stats", compute)
	require.NoError(t, err)
	blob, ok := c.Get("admin-stats")
	require.True(t, ok)

	second, err := Remember(context.Background(), c, "admin-stats", compute)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	again, _ := c.Get("admin-stats")
	assert.Equal(t, blob, again)
}

func TestRemember_ErrorNotCached(t *testing.T) {
	c := newTestCache()
	boom := errors.New("query failed")

	_, err := Remember(context.Background(), c, "admin-stats", func(context.Context) (payload, error) {
		return payload{}, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.False(t, c.Has("admin-stats"))
}

func TestRemember_UndecodableEntryRecomputed(t *testing.T) {
	c := newTestCache()
	c.Set("k", []byte("not json"))

	got, err := Remember(context.Background(), c, "k", func(context.Context) (payload, error) {
		return payload{Values: []float64{3}}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []float64{3}, got.Values)
	blob, _ := c.Get("k")
	assert.JSONEq(t, `{"values":[3]}`, string(blob))
}
