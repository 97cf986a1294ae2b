package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce-backend/internal/cache"
	apperrors "ecommerce-backend/internal/errors"
	"ecommerce-backend/internal/models"
	"ecommerce-backend/internal/store"
)

var statsNow = time.Date(2024, time.June, 20, 12, 0, 0, 0, time.UTC)

func day(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 9, 0, 0, 0, time.UTC)
}

func seedStats(t *testing.T, s *store.Store) {
	t.Helper()
	ctx := context.Background()

	for _, p := range []*models.Product{
		{Name: "Laptop", Category: "laptop", Stock: 5, Price: 1000, CreatedAt: day(time.June, 2)},
		{Name: "Camera", Category: "camera", Stock: 0, Price: 500, CreatedAt: day(time.June, 3)},
		{Name: "Lens", Category: "camera", Stock: 2, Price: 200, CreatedAt: day(time.May, 10)},
	} {
		require.NoError(t, s.CreateProduct(ctx, p))
	}

	for _, u := range []*models.User{
		{ID: "u1", Gender: models.GenderMale, Role: models.RoleAdmin, DOB: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), CreatedAt: day(time.June, 1)},
		{ID: "u2", Gender: models.GenderFemale, DOB: time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC), CreatedAt: day(time.May, 1)},
		{ID: "u3", Gender: models.GenderFemale, DOB: time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), CreatedAt: day(time.April, 1)},
	} {
		require.NoError(t, s.CreateUser(ctx, u))
	}

	for _, o := range []*models.Order{
		{ID: "o1", User: "u1", Total: 150, Discount: 10, Tax: 5, ShippingCharges: 20, CreatedAt: day(time.June, 5),
			OrderItems: []models.OrderItem{{ProductID: "x", Quantity: 1}, {ProductID: "y", Quantity: 2}}},
		{ID: "o2", User: "u2", Total: 100, Status: models.StatusShipped, CreatedAt: day(time.May, 5)},
		{ID: "o3", User: "u2", Total: 50, Status: models.StatusDelivered, CreatedAt: day(time.January, 5)},
	} {
		require.NoError(t, s.CreateOrder(ctx, o))
	}
}

func newTestStats(t *testing.T) (*Stats, *countingOrders, *cache.Cache) {
	t.Helper()

	s := newTestStore(t)
	seedStats(t, s)

	orders := &countingOrders{OrderStore: s}
	c := newTestCache()
	stats := NewStats(s, orders, s, c, discardLogger())
	stats.now = func() time.Time { return statsNow }
	return stats, orders, c
}

func TestStats_Dashboard(t *testing.T) {
	stats, _, _ := newTestStats(t)

	got, err := stats.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []map[string]int{{"camera": 67}, {"laptop": 33}}, got.CategoryCount)
	assert.Equal(t, models.ChangePercent{Revenue: 50, Product: 100, User: 0, Order: 0}, got.ChangePercent)
	assert.Equal(t, models.Counts{Revenue: 300, Product: 3, User: 3, Order: 3}, got.Counts)
	assert.Equal(t, []float64{1, 0, 0, 0, 1, 1}, got.Chart.Order)
	assert.Equal(t, []float64{50, 0, 0, 0, 100, 150}, got.Chart.Revenue)
	assert.Equal(t, models.UserRatio{Male: 1, Female: 2}, got.UserRatio)

	require.Len(t, got.LatestTransaction, 3)
	assert.Equal(t, models.Transaction{ID: "o1", Discount: 10, Amount: 150, Quantity: 2, Status: models.StatusProcessing}, got.LatestTransaction[0])
	assert.Equal(t, "o3", got.LatestTransaction[2].ID)
}

func TestStats_DashboardServedFromCache(t *testing.T) {
	stats, orders, c := newTestStats(t)
	ctx := context.Background()

	first, err := stats.Dashboard(ctx)
	require.NoError(t, err)
	blob, ok := c.Get(cache.KeyAdminStats)
	require.True(t, ok)
	queries := orders.queries.Load()
	require.Positive(t, queries)

	second, err := stats.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, queries, orders.queries.Load(), "cached snapshot must not re-query")
	assert.Equal(t, first, second)
	again, _ := c.Get(cache.KeyAdminStats)
	assert.Equal(t, blob, again)

	var decoded models.DashboardStats
	require.NoError(t, json.Unmarshal(blob, &decoded))
	assert.Equal(t, *first, decoded)
}

func TestStats_InvalidationForcesRebuild(t *testing.T) {
	stats, orders, c := newTestStats(t)
	ctx := context.Background()

	_, err := stats.BarCharts(ctx)
	require.NoError(t, err)
	before := orders.queries.Load()

	c.Invalidate(ctx, cache.Invalidation{Admin: true})

	_, err = stats.BarCharts(ctx)
	require.NoError(t, err)
	assert.Greater(t, orders.queries.Load(), before)
}

func TestStats_QueryFailureCachesNothing(t *testing.T) {
	s := newTestStore(t)
	c := newTestCache()
	boom := errors.New("store unavailable")
	stats := NewStats(s, s, failingUsers{UserStore: s, err: boom}, c, discardLogger())
	ctx := context.Background()

	_, err := stats.Dashboard(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeInternal, appErr.Code)

	_, err = stats.PieCharts(ctx)
	assert.ErrorIs(t, err, boom)
	_, err = stats.LineCharts(ctx)
	assert.ErrorIs(t, err, boom)

	for _, key := range []string{cache.KeyAdminStats, cache.KeyAdminPieCharts, cache.KeyAdminLineCharts} {
		assert.False(t, c.Has(key), key)
	}
}

func TestStats_PieCharts(t *testing.T) {
	stats, _, _ := newTestStats(t)

	got, err := stats.PieCharts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.OrderFullfillment{Processing: 1, Shipped: 1, Delivered: 1}, got.OrderFullfillment)
	assert.Equal(t, models.StockAvailability{InStock: 2, OutOfStock: 1}, got.StockAvailability)
	assert.Equal(t, models.RevenueDistribution{
		NetMargin:      300 - 10 - 20 - 5 - 90,
		Discount:       10,
		ProductionCost: 20,
		Burnt:          5,
		MarketingCost:  90,
	}, got.RevenueDistribution)
	assert.Equal(t, models.UsersAgeGroup{Teen: 1, Adult: 1, Old: 1}, got.UsersAgeGroup)
	assert.Equal(t, models.AdminCustomer{Admin: 1, Customer: 2}, got.AdminCustomer)
}

func TestStats_PieChartsCountsOversoldAsOutOfStock(t *testing.T) {
	stats, _, _ := newTestStats(t)
	ctx := context.Background()

	require.NoError(t, stats.products.CreateProduct(ctx, &models.Product{Name: "Tripod", Category: "camera", Stock: -3, CreatedAt: day(time.June, 4)}))

	got, err := stats.PieCharts(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StockAvailability{InStock: 2, OutOfStock: 2}, got.StockAvailability)
}

func TestStats_BarAndLineCharts(t *testing.T) {
	stats, _, _ := newTestStats(t)
	ctx := context.Background()

	bar, err := stats.BarCharts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0, 1, 2}, bar.Products)
	assert.Equal(t, []float64{0, 0, 0, 1, 1, 1}, bar.Users)
	assert.Len(t, bar.Orders, 12)
	assert.Equal(t, 1.0, bar.Orders[11])
	assert.Equal(t, 1.0, bar.Orders[10])
	assert.Equal(t, 1.0, bar.Orders[6])

	line, err := stats.LineCharts(ctx)
	require.NoError(t, err)
	assert.Len(t, line.Users, 12)
	assert.Equal(t, 150.0, line.Revenue[11])
	assert.Equal(t, 100.0, line.Revenue[10])
	assert.Equal(t, 50.0, line.Revenue[6])
	assert.Equal(t, 10.0, line.Discount[11])
}

func TestPeriodsAt_LastMonthIsFullCalendarMonth(t *testing.T) {
	p := periodsAt(time.Date(2024, time.March, 15, 8, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), p.thisMonth.From)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), p.lastMonth.From)
	assert.True(t, p.lastMonth.Contains(time.Date(2024, time.February, 29, 23, 59, 0, 0, time.UTC)))
	assert.False(t, p.lastMonth.Contains(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)))
}
