package services

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"ecommerce-backend/internal/cache"
	apperrors "ecommerce-backend/internal/errors"
	"ecommerce-backend/internal/models"
)

const (
	latestProducts  = 5
	defaultPageSize = 8
)

type NewProductRequest struct {
	Name     string  `json:"name" validate:"required"`
	Photo    string  `json:"photo" validate:"required"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Stock    int     `json:"stock" validate:"gte=0"`
	Category string  `json:"category" validate:"required"`
}

// UpdateProductRequest changes only the fields that are set.
type UpdateProductRequest struct {
	Name     string   `json:"name"`
	Photo    string   `json:"photo"`
	Price    *float64 `json:"price" validate:"omitempty,gt=0"`
	Stock    *int     `json:"stock" validate:"omitempty,gte=0"`
	Category string   `json:"category"`
}

type SearchRequest struct {
	Search   string  `json:"search"`
	Category string  `json:"category"`
	Price    float64 `json:"price" validate:"gte=0"`
	Sort     string  `json:"sort"`
	Page     int     `json:"page" validate:"gte=0"`
}

type Products struct {
	store   ProductStore
	cache   *cache.Cache
	logger  *slog.Logger
	perPage int
}

func NewProducts(store ProductStore, c *cache.Cache, logger *slog.Logger, perPage int) *Products {
	if perPage < 1 {
		perPage = defaultPageSize
	}
	return &Products{store: store, cache: c, logger: logger, perPage: perPage}
}

func (s *Products) Create(ctx context.Context, req NewProductRequest) (*models.Product, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	p := &models.Product{
		Name:     req.Name,
		Photo:    req.Photo,
		Price:    req.Price,
		Stock:    req.Stock,
		Category: strings.ToLower(req.Category),
	}
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return nil, storeError(err, "Product", "create product")
	}

	s.cache.Invalidate(ctx, cache.Invalidation{Product: true, Admin: true})
	s.logger.InfoContext(ctx, "product created", "product_id", p.ID, "category", p.Category)
	return p, nil
}

func (s *Products) Latest(ctx context.Context) ([]models.Product, error) {
	products, err := cache.Remember(ctx, s.cache, cache.KeyLatestProducts, func(ctx context.Context) ([]models.Product, error) {
		return s.store.FindProducts(ctx, models.ProductQuery{NewestFirst: true, Limit: latestProducts})
	})
	if err != nil {
		return nil, storeError(err, "Product", "load latest products")
	}
	return products, nil
}

func (s *Products) Categories(ctx context.Context) ([]string, error) {
	categories, err := cache.Remember(ctx, s.cache, cache.KeyCategories, s.store.ProductCategories)
	if err != nil {
		return nil, storeError(err, "Category", "load categories")
	}
	return categories, nil
}

func (s *Products) AdminProducts(ctx context.Context) ([]models.Product, error) {
	products, err := cache.Remember(ctx, s.cache, cache.KeyAllProducts, func(ctx context.Context) ([]models.Product, error) {
		return s.store.FindProducts(ctx, models.ProductQuery{})
	})
	if err != nil {
		return nil, storeError(err, "Product", "load products")
	}
	return products, nil
}

func (s *Products) Get(ctx context.Context, id string) (*models.Product, error) {
	p, err := cache.Remember(ctx, s.cache, cache.ProductKey(id), func(ctx context.Context) (*models.Product, error) {
		return s.store.GetProduct(ctx, id)
	})
	if err != nil {
		return nil, storeError(err, "Product", "load product")
	}
	return p, nil
}

func (s *Products) Update(ctx context.Context, id string, req UpdateProductRequest) (*models.Product, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, storeError(err, "Product", "load product")
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Photo != "" {
		p.Photo = req.Photo
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.Category != "" {
		p.Category = strings.ToLower(req.Category)
	}

	if err := s.store.SaveProduct(ctx, p); err != nil {
		return nil, storeError(err, "Product", "update product")
	}

	s.cache.Invalidate(ctx, cache.Invalidation{Product: true, Admin: true}.WithProductID(id))
	s.logger.InfoContext(ctx, "product updated", "product_id", id)
	return p, nil
}

func (s *Products) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return storeError(err, "Product", "delete product")
	}

	s.cache.Invalidate(ctx, cache.Invalidation{Product: true, Admin: true}.WithProductID(id))
	s.logger.InfoContext(ctx, "product deleted", "product_id", id)
	return nil
}

// Search returns one page of matching products. The page and the total match
// count are queried concurrently.
func (s *Products) Search(ctx context.Context, req SearchRequest) (*models.ProductPage, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	page := max(req.Page, 1)
	q := models.ProductQuery{
		Search:   req.Search,
		Category: strings.ToLower(req.Category),
		MaxPrice: req.Price,
	}

	var (
		products []models.Product
		matches  int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		pageQuery := q
		pageQuery.SortByPrice = sortOrder(req.Sort)
		pageQuery.Skip = (page - 1) * s.perPage
		pageQuery.Limit = s.perPage
		products, err = s.store.FindProducts(gctx, pageQuery)
		return err
	})
	g.Go(func() (err error) {
		matches, err = s.store.CountProducts(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.InternalWrap(err, "failed to search products")
	}

	return &models.ProductPage{
		Products:  products,
		TotalPage: (matches + s.perPage - 1) / s.perPage,
	}, nil
}

func sortOrder(sort string) models.SortOrder {
	switch sort {
	case "":
		return models.SortNone
	case string(models.SortAsc):
		return models.SortAsc
	default:
		return models.SortDesc
	}
}
