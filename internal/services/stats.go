package services

import (
	"context"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"ecommerce-backend/internal/cache"
	apperrors "ecommerce-backend/internal/errors"
	"ecommerce-backend/internal/models"
	"ecommerce-backend/internal/observability"
)

const (
	latestTransactions = 4
	marketingShare     = 0.30
)

// Stats assembles the admin dashboard and chart snapshots. Every snapshot is
// read through the cache and rebuilt from the store on a miss.
type Stats struct {
	products ProductStore
	orders   OrderStore
	users    UserStore
	cache    *cache.Cache
	logger   *slog.Logger
	now      func() time.Time
}

func NewStats(products ProductStore, orders OrderStore, users UserStore, c *cache.Cache, logger *slog.Logger) *Stats {
	return &Stats{
		products: products,
		orders:   orders,
		users:    users,
		cache:    c,
		logger:   logger,
		now:      time.Now,
	}
}

// periods are the reporting windows relative to one reference instant.
type periods struct {
	today        time.Time
	thisMonth    models.TimeRange
	lastMonth    models.TimeRange
	sixMonths    models.TimeRange
	twelveMonths models.TimeRange
}

func periodsAt(now time.Time) periods {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return periods{
		today:        now,
		thisMonth:    models.TimeRange{From: firstOfMonth, To: now},
		lastMonth:    models.TimeRange{From: firstOfMonth.AddDate(0, -1, 0), To: firstOfMonth.Add(-time.Nanosecond)},
		sixMonths:    models.TimeRange{From: now.AddDate(0, -6, 0), To: now},
		twelveMonths: models.TimeRange{From: now.AddDate(0, -12, 0), To: now},
	}
}

func (s *Stats) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	return snapshot(ctx, s, cache.KeyAdminStats, s.buildDashboard)
}

func (s *Stats) PieCharts(ctx context.Context) (*models.PieCharts, error) {
	return snapshot(ctx, s, cache.KeyAdminPieCharts, s.buildPieCharts)
}

func (s *Stats) BarCharts(ctx context.Context) (*models.BarCharts, error) {
	return snapshot(ctx, s, cache.KeyAdminBarCharts, s.buildBarCharts)
}

func (s *Stats) LineCharts(ctx context.Context) (*models.LineCharts, error) {
	return snapshot(ctx, s, cache.KeyAdminLineCharts, s.buildLineCharts)
}

func snapshot[T any](ctx context.Context, s *Stats, key string, build func(context.Context, periods) (*T, error)) (*T, error) {
	v, err := cache.Remember(ctx, s.cache, key, func(ctx context.Context) (*T, error) {
		ctx, span := observability.StartSpan(ctx, "stats.build", attribute.String("cache.key", key))
		start := time.Now()

		v, err := build(ctx, periodsAt(s.now()))

		elapsed := time.Since(start)
		observability.StatsBuildDuration.WithLabelValues(key).Observe(elapsed.Seconds())
		observability.EndSpan(span, err)

		if err != nil {
			s.logger.ErrorContext(ctx, "stats build failed", "key", key, "error", err)
			return nil, err
		}
		s.logger.InfoContext(ctx, "stats rebuilt", "key", key, "duration", elapsed)
		return v, nil
	})
	if err != nil {
		return nil, apperrors.InternalWrap(err, "failed to build statistics")
	}
	return v, nil
}

func (s *Stats) buildDashboard(ctx context.Context, p periods) (*models.DashboardStats, error) {
	var (
		thisMonthProducts, lastMonthProducts int
		thisMonthUsers, lastMonthUsers       int
		productCount, userCount, femaleCount int
		thisMonthOrders, lastMonthOrders     []models.Order
		allOrders, sixMonthOrders, latest    []models.Order
		categoryCount                        []map[string]int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		thisMonthProducts, err = s.products.CountProducts(ctx, models.ProductQuery{Created: p.thisMonth})
		return err
	})
	g.Go(func() (err error) {
		lastMonthProducts, err = s.products.CountProducts(ctx, models.ProductQuery{Created: p.lastMonth})
		return err
	})
	g.Go(func() (err error) {
		thisMonthUsers, err = s.users.CountUsers(ctx, models.UserQuery{Created: p.thisMonth})
		return err
	})
	g.Go(func() (err error) {
		lastMonthUsers, err = s.users.CountUsers(ctx, models.UserQuery{Created: p.lastMonth})
		return err
	})
	g.Go(func() (err error) {
		thisMonthOrders, err = s.orders.FindOrders(ctx, models.OrderQuery{Created: p.thisMonth})
		return err
	})
	g.Go(func() (err error) {
		lastMonthOrders, err = s.orders.FindOrders(ctx, models.OrderQuery{Created: p.lastMonth})
		return err
	})
	g.Go(func() (err error) {
		productCount, err = s.products.CountProducts(ctx, models.ProductQuery{})
		return err
	})
	g.Go(func() (err error) {
		userCount, err = s.users.CountUsers(ctx, models.UserQuery{})
		return err
	})
	g.Go(func() (err error) {
		allOrders, err = s.orders.FindOrders(ctx, models.OrderQuery{})
		return err
	})
	g.Go(func() (err error) {
		sixMonthOrders, err = s.orders.FindOrders(ctx, models.OrderQuery{Created: p.sixMonths})
		return err
	})
	g.Go(func() (err error) {
		categoryCount, err = s.categoryRatios(ctx)
		return err
	})
	g.Go(func() (err error) {
		femaleCount, err = s.users.CountUsers(ctx, models.UserQuery{Gender: models.GenderFemale})
		return err
	})
	g.Go(func() (err error) {
		latest, err = s.orders.FindOrders(ctx, models.OrderQuery{NewestFirst: true, Limit: latestTransactions})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	thisMonthRevenue := sumOrders(thisMonthOrders, OrderTotal)
	lastMonthRevenue := sumOrders(lastMonthOrders, OrderTotal)

	transactions := make([]models.Transaction, 0, len(latest))
	for _, o := range latest {
		transactions = append(transactions, models.Transaction{
			ID:       o.ID,
			Discount: o.Discount,
			Amount:   o.Total,
			Quantity: len(o.OrderItems),
			Status:   o.Status,
		})
	}

	return &models.DashboardStats{
		CategoryCount: categoryCount,
		ChangePercent: models.ChangePercent{
			Revenue: PercentChange(thisMonthRevenue, lastMonthRevenue),
			Product: PercentChange(float64(thisMonthProducts), float64(lastMonthProducts)),
			User:    PercentChange(float64(thisMonthUsers), float64(lastMonthUsers)),
			Order:   PercentChange(float64(len(thisMonthOrders)), float64(len(lastMonthOrders))),
		},
		Counts: models.Counts{
			Revenue: sumOrders(allOrders, OrderTotal),
			Product: productCount,
			User:    userCount,
			Order:   len(allOrders),
		},
		Chart: models.OrderChart{
			Order:   ChartData(6, p.today, sixMonthOrders, nil),
			Revenue: ChartData(6, p.today, sixMonthOrders, OrderTotal),
		},
		UserRatio: models.UserRatio{
			Male:   userCount - femaleCount,
			Female: femaleCount,
		},
		LatestTransaction: transactions,
	}, nil
}

func (s *Stats) buildPieCharts(ctx context.Context, p periods) (*models.PieCharts, error) {
	var (
		processing, shipped, delivered int
		productCount, outOfStock       int
		adminCount, customerCount      int
		categories                     []map[string]int
		allOrders                      []models.Order
		allUsers                       []models.User
	)

	countStatus := func(status models.OrderStatus, dst *int) func() error {
		return func() (err error) {
			*dst, err = s.orders.CountOrders(ctx, models.OrderQuery{Status: status})
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(countStatus(models.StatusProcessing, &processing))
	g.Go(countStatus(models.StatusShipped, &shipped))
	g.Go(countStatus(models.StatusDelivered, &delivered))
	g.Go(func() (err error) {
		categories, err = s.categoryRatios(ctx)
		return err
	})
	g.Go(func() (err error) {
		productCount, err = s.products.CountProducts(ctx, models.ProductQuery{})
		return err
	})
	g.Go(func() (err error) {
		outOfStock, err = s.products.CountProducts(ctx, models.ProductQuery{OutOfStock: true})
		return err
	})
	g.Go(func() (err error) {
		allOrders, err = s.orders.FindOrders(ctx, models.OrderQuery{})
		return err
	})
	g.Go(func() (err error) {
		allUsers, err = s.users.FindUsers(ctx, models.UserQuery{})
		return err
	})
	g.Go(func() (err error) {
		adminCount, err = s.users.CountUsers(ctx, models.UserQuery{Role: models.RoleAdmin})
		return err
	})
	g.Go(func() (err error) {
		customerCount, err = s.users.CountUsers(ctx, models.UserQuery{Role: models.RoleUser})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	gross := sumOrders(allOrders, OrderTotal)
	discount := sumOrders(allOrders, OrderDiscount)
	productionCost := sumOrders(allOrders, func(o models.Order) float64 { return o.ShippingCharges })
	burnt := sumOrders(allOrders, func(o models.Order) float64 { return o.Tax })
	marketingCost := math.Round(gross * marketingShare)

	var ages models.UsersAgeGroup
	for _, u := range allUsers {
		switch age := u.Age(p.today); {
		case age < 20:
			ages.Teen++
		case age < 40:
			ages.Adult++
		default:
			ages.Old++
		}
	}

	return &models.PieCharts{
		OrderFullfillment: models.OrderFullfillment{
			Processing: processing,
			Shipped:    shipped,
			Delivered:  delivered,
		},
		ProductCategories: categories,
		StockAvailability: models.StockAvailability{
			InStock:    productCount - outOfStock,
			OutOfStock: outOfStock,
		},
		RevenueDistribution: models.RevenueDistribution{
			NetMargin:      gross - discount - productionCost - burnt - marketingCost,
			Discount:       discount,
			ProductionCost: productionCost,
			Burnt:          burnt,
			MarketingCost:  marketingCost,
		},
		UsersAgeGroup: ages,
		AdminCustomer: models.AdminCustomer{
			Admin:    adminCount,
			Customer: customerCount,
		},
	}, nil
}

func (s *Stats) buildBarCharts(ctx context.Context, p periods) (*models.BarCharts, error) {
	var (
		products []models.Product
		users    []models.User
		orders   []models.Order
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.products.FindProducts(ctx, models.ProductQuery{Created: p.sixMonths})
		return err
	})
	g.Go(func() (err error) {
		users, err = s.users.FindUsers(ctx, models.UserQuery{Created: p.sixMonths})
		return err
	})
	g.Go(func() (err error) {
		orders, err = s.orders.FindOrders(ctx, models.OrderQuery{Created: p.twelveMonths})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.BarCharts{
		Users:    ChartData(6, p.today, users, nil),
		Products: ChartData(6, p.today, products, nil),
		Orders:   ChartData(12, p.today, orders, nil),
	}, nil
}

func (s *Stats) buildLineCharts(ctx context.Context, p periods) (*models.LineCharts, error) {
	var (
		products []models.Product
		users    []models.User
		orders   []models.Order
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.products.FindProducts(ctx, models.ProductQuery{Created: p.twelveMonths})
		return err
	})
	g.Go(func() (err error) {
		users, err = s.users.FindUsers(ctx, models.UserQuery{Created: p.twelveMonths})
		return err
	})
	g.Go(func() (err error) {
		orders, err = s.orders.FindOrders(ctx, models.OrderQuery{Created: p.twelveMonths})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.LineCharts{
		Users:    ChartData(12, p.today, users, nil),
		Products: ChartData(12, p.today, products, nil),
		Discount: ChartData(12, p.today, orders, OrderDiscount),
		Revenue:  ChartData(12, p.today, orders, OrderTotal),
	}, nil
}

// categoryRatios counts products per category concurrently and converts the
// counts to percentages of all products.
func (s *Stats) categoryRatios(ctx context.Context) ([]map[string]int, error) {
	categories, err := s.products.ProductCategories(ctx)
	if err != nil {
		return nil, err
	}

	var total int
	counts := make([]int, len(categories))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		total, err = s.products.CountProducts(ctx, models.ProductQuery{})
		return err
	})
	for i, category := range categories {
		g.Go(func() (err error) {
			counts[i], err = s.products.CountProducts(ctx, models.ProductQuery{Category: category})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return CategoryRatios(categories, counts, total), nil
}

func sumOrders(orders []models.Order, value func(models.Order) float64) float64 {
	var sum float64
	for _, o := range orders {
		sum += value(o)
	}
	return sum
}
