package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ecommerce-backend/internal/cache"
	"ecommerce-backend/internal/models"
	"ecommerce-backend/internal/store"
)

type NewUserRequest struct {
	ID     string    `json:"_id" validate:"required"`
	Name   string    `json:"name" validate:"required"`
	Email  string    `json:"email" validate:"required,email"`
	Photo  string    `json:"photo" validate:"required"`
	Gender string    `json:"gender" validate:"required,oneof=male female"`
	Role   string    `json:"role" validate:"omitempty,oneof=admin user"`
	DOB    time.Time `json:"dob" validate:"required"`
}

type Users struct {
	store  UserStore
	cache  *cache.Cache
	logger *slog.Logger
}

func NewUsers(store UserStore, c *cache.Cache, logger *slog.Logger) *Users {
	return &Users{store: store, cache: c, logger: logger}
}

// Create registers a user. When the id is already registered the existing
// user is returned and created is false.
func (s *Users) Create(ctx context.Context, req NewUserRequest) (*models.User, bool, error) {
	existing, err := s.store.GetUser(ctx, req.ID)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, store.ErrNotFound):
		return nil, false, storeError(err, "User", "load user")
	}

	if err := validateRequest(req); err != nil {
		return nil, false, err
	}

	u := &models.User{
		ID:     req.ID,
		Name:   req.Name,
		Email:  req.Email,
		Photo:  req.Photo,
		Gender: req.Gender,
		Role:   req.Role,
		DOB:    req.DOB,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, false, storeError(err, "User", "create user")
	}

	s.cache.Invalidate(ctx, cache.Invalidation{Admin: true})
	s.logger.InfoContext(ctx, "user created", "user_id", u.ID)
	return u, true, nil
}

func (s *Users) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, storeError(err, "User", "load user")
	}
	return u, nil
}

func (s *Users) All(ctx context.Context) ([]models.User, error) {
	users, err := s.store.FindUsers(ctx, models.UserQuery{})
	if err != nil {
		return nil, storeError(err, "User", "load users")
	}
	return users, nil
}

func (s *Users) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return storeError(err, "User", "delete user")
	}

	s.cache.Invalidate(ctx, cache.Invalidation{Admin: true})
	s.logger.InfoContext(ctx, "user deleted", "user_id", id)
	return nil
}
