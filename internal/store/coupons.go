package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"ecommerce-backend/internal/models"
)

// CreateCoupon stores a coupon and reserves its code in the code index.
func (s *Store) CreateCoupon(ctx context.Context, c *models.Coupon) error {
	if c.ID == "" {
		c.ID = newID()
	}

	return s.update(ctx, func(txn *badger.Txn) error {
		taken, err := exists(txn, couponCodesPrefix, c.Code)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("coupon %s: %w", c.Code, ErrDuplicate)
		}
		if err := txn.Set(docKey(couponCodesPrefix, c.Code), []byte(c.ID)); err != nil {
			return err
		}
		return put(txn, couponsPrefix, c.ID, c)
	})
}

func (s *Store) CouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var c models.Coupon
	err := s.view(ctx, func(txn *badger.Txn) error {
		item, err := txn.Get(docKey(couponCodesPrefix, code))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		c, err = get[models.Coupon](txn, couponsPrefix, string(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) FindCoupons(ctx context.Context) ([]models.Coupon, error) {
	var coupons []models.Coupon
	err := s.view(ctx, func(txn *badger.Txn) error {
		var err error
		coupons, err = scan[models.Coupon](txn, couponsPrefix, nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("find coupons: %w", err)
	}

	sort.Slice(coupons, func(i, j int) bool { return coupons[i].Code < coupons[j].Code })
	return coupons, nil
}

// DeleteCoupon removes the coupon and releases its code.
func (s *Store) DeleteCoupon(ctx context.Context, id string) (*models.Coupon, error) {
	var c models.Coupon
	err := s.update(ctx, func(txn *badger.Txn) error {
		var err error
		c, err = get[models.Coupon](txn, couponsPrefix, id)
		if err != nil {
			return err
		}
		if err := txn.Delete(docKey(couponCodesPrefix, c.Code)); err != nil {
			return err
		}
		return txn.Delete(docKey(couponsPrefix, id))
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}
