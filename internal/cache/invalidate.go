package cache

import (
	"context"
	"log/slog"

	"ecommerce-backend/internal/observability"
)

// Invalidation describes a committed write. The flags are independent and
// any combination may be set.
type Invalidation struct {
	Product bool
	Order   bool
	Admin   bool

	UserID     string
	OrderID    string
	ProductIDs []string
}

// WithProductID adds a single product id.
func (inv Invalidation) WithProductID(id string) Invalidation {
	inv.ProductIDs = append(append([]string(nil), inv.ProductIDs...), id)
	return inv
}

// Keys returns the exact set of keys the write makes stale, without duplicates.
func (inv Invalidation) Keys() []string {
	var keys []string

	if inv.Product {
		keys = append(keys, KeyLatestProducts, KeyCategories, KeyAllProducts)
		for _, id := range inv.ProductIDs {
			keys = append(keys, ProductKey(id))
		}
	}

	if inv.Order {
		keys = append(keys, KeyAllOrders, MyOrdersKey(inv.UserID), OrderKey(inv.OrderID))
	}

	if inv.Admin {
		keys = append(keys, KeyAdminStats, KeyAdminPieCharts, KeyAdminBarCharts, KeyAdminLineCharts)
	}

	return dedupe(keys)
}

// Invalidate deletes every key made stale by inv. It runs synchronously and
// is not transactional with the write that preceded it.
func (c *Cache) Invalidate(ctx context.Context, inv Invalidation) {
	keys := inv.Keys()
	if len(keys) == 0 {
		return
	}

	removed := c.DeleteMany(keys...)
	observability.CacheInvalidatedKeys.Add(float64(removed))

	c.logger.DebugContext(ctx, "cache invalidated",
		slog.Any("keys", keys),
		slog.Int("removed", removed),
	)
}

func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := keys[:0]
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
