package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"ecommerce-backend/internal/models"
)

func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	if p.ID == "" {
		p.ID = newID()
	}
	now := s.now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	return s.update(ctx, func(txn *badger.Txn) error {
		ok, err := exists(txn, productsPrefix, p.ID)
		if err != nil {
			return err
		}
		if ok {
			return fmt.Errorf("product %s: %w", p.ID, ErrDuplicate)
		}
		return put(txn, productsPrefix, p.ID, p)
	})
}

func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := s.view(ctx, func(txn *badger.Txn) error {
		var err error
		p, err = get[models.Product](txn, productsPrefix, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProduct overwrites an existing product.
func (s *Store) SaveProduct(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = s.now()
	return s.update(ctx, func(txn *badger.Txn) error {
		ok, err := exists(txn, productsPrefix, p.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		return put(txn, productsPrefix, p.ID, p)
	})
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		return remove(txn, productsPrefix, id)
	})
}

// reduceStock subtracts every item quantity from its product. A missing
// product or a quantity above the remaining stock fails the transaction.
func reduceStock(txn *badger.Txn, items []models.OrderItem, now time.Time) error {
	for _, item := range items {
		p, err := get[models.Product](txn, productsPrefix, item.ProductID)
		if err != nil {
			return fmt.Errorf("product %s: %w", item.ProductID, err)
		}
		if item.Quantity > p.Stock {
			return fmt.Errorf("product %s has %d left, %d requested: %w",
				p.ID, p.Stock, item.Quantity, ErrInsufficientStock)
		}
		p.Stock -= item.Quantity
		p.UpdatedAt = now
		if err := put(txn, productsPrefix, p.ID, p); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) FindProducts(ctx context.Context, q models.ProductQuery) ([]models.Product, error) {
	var products []models.Product
	err := s.view(ctx, func(txn *badger.Txn) error {
		var err error
		products, err = scan(txn, productsPrefix, productFilter(q))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	sortProducts(products, q)
	return window(products, q.Skip, q.Limit), nil
}

func (s *Store) CountProducts(ctx context.Context, q models.ProductQuery) (int, error) {
	var n int
	err := s.view(ctx, func(txn *badger.Txn) error {
		products, err := scan(txn, productsPrefix, productFilter(q))
		n = len(products)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// ProductCategories returns the distinct product categories, sorted.
func (s *Store) ProductCategories(ctx context.Context) ([]string, error) {
	products, err := s.FindProducts(ctx, models.ProductQuery{})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	categories := []string{}
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

func productFilter(q models.ProductQuery) func(models.Product) bool {
	search := strings.ToLower(q.Search)
	return func(p models.Product) bool {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			return false
		}
		if q.Category != "" && p.Category != q.Category {
			return false
		}
		if q.MaxPrice > 0 && p.Price > q.MaxPrice {
			return false
		}
		if q.OutOfStock && p.Stock > 0 {
			return false
		}
		return q.Created.Contains(p.CreatedAt)
	}
}

func sortProducts(products []models.Product, q models.ProductQuery) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		switch q.SortByPrice {
		case models.SortAsc:
			if a.Price != b.Price {
				return a.Price < b.Price
			}
		case models.SortDesc:
			if a.Price != b.Price {
				return a.Price > b.Price
			}
		}
		if q.NewestFirst {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}
