package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"ecommerce-backend/internal/models"
)

// CreateUser stores a user under its caller-assigned id.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = newID()
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}

	return s.update(ctx, func(txn *badger.Txn) error {
		ok, err := exists(txn, usersPrefix, u.ID)
		if err != nil {
			return err
		}
		if ok {
			return fmt.Errorf("user %s: %w", u.ID, ErrDuplicate)
		}
		return put(txn, usersPrefix, u.ID, u)
	})
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.view(ctx, func(txn *badger.Txn) error {
		var err error
		u, err = get[models.User](txn, usersPrefix, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		return remove(txn, usersPrefix, id)
	})
}

func (s *Store) FindUsers(ctx context.Context, q models.UserQuery) ([]models.User, error) {
	var users []models.User
	err := s.view(ctx, func(txn *badger.Txn) error {
		var err error
		users, err = scan(txn, usersPrefix, userFilter(q))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (s *Store) CountUsers(ctx context.Context, q models.UserQuery) (int, error) {
	var n int
	err := s.view(ctx, func(txn *badger.Txn) error {
		users, err := scan(txn, usersPrefix, userFilter(q))
		n = len(users)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func userFilter(q models.UserQuery) func(models.User) bool {
	return func(u models.User) bool {
		if q.Gender != "" && u.Gender != q.Gender {
			return false
		}
		if q.Role != "" && u.Role != q.Role {
			return false
		}
		return q.Created.Contains(u.CreatedAt)
	}
}
