package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"ecommerce-backend/internal/models"
)

func (s *Store) CreateOrder(ctx context.Context, o *models.Order) error {
	s.prepareOrder(o)
	return s.update(ctx, func(txn *badger.Txn) error {
		return insertOrder(txn, o)
	})
}

// PlaceOrder takes the ordered quantities out of stock and records o in one
// transaction. Either both happen or neither does.
func (s *Store) PlaceOrder(ctx context.Context, o *models.Order) error {
	s.prepareOrder(o)
	return s.update(ctx, func(txn *badger.Txn) error {
		if err := reduceStock(txn, o.OrderItems, o.UpdatedAt); err != nil {
			return err
		}
		return insertOrder(txn, o)
	})
}

func (s *Store) prepareOrder(o *models.Order) {
	if o.ID == "" {
		o.ID = newID()
	}
	if o.Status == "" {
		o.Status = models.StatusProcessing
	}
	now := s.now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
}

func insertOrder(txn *badger.Txn, o *models.Order) error {
	ok, err := exists(txn, ordersPrefix, o.ID)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("order %s: %w", o.ID, ErrDuplicate)
	}
	return put(txn, ordersPrefix, o.ID, o)
}

func (s *Store) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	err := s.view(ctx, func(txn *badger.Txn) error {
		var err error
		o, err = get[models.Order](txn, ordersPrefix, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Store) SaveOrder(ctx context.Context, o *models.Order) error {
	o.UpdatedAt = s.now()
	return s.update(ctx, func(txn *badger.Txn) error {
		ok, err := exists(txn, ordersPrefix, o.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		return put(txn, ordersPrefix, o.ID, o)
	})
}

func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		return remove(txn, ordersPrefix, id)
	})
}

func (s *Store) FindOrders(ctx context.Context, q models.OrderQuery) ([]models.Order, error) {
	var orders []models.Order
	err := s.view(ctx, func(txn *badger.Txn) error {
		var err error
		orders, err = scan(txn, ordersPrefix, orderFilter(q))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}

	sort.SliceStable(orders, func(i, j int) bool {
		if q.NewestFirst {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
	return window(orders, 0, q.Limit), nil
}

func (s *Store) CountOrders(ctx context.Context, q models.OrderQuery) (int, error) {
	var n int
	err := s.view(ctx, func(txn *badger.Txn) error {
		orders, err := scan(txn, ordersPrefix, orderFilter(q))
		n = len(orders)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

func orderFilter(q models.OrderQuery) func(models.Order) bool {
	return func(o models.Order) bool {
		if q.User != "" && o.User != q.User {
			return false
		}
		if q.Status != "" && o.Status != q.Status {
			return false
		}
		return q.Created.Contains(o.CreatedAt)
	}
}
