package services

import (
	"context"
	"errors"

	apperrors "ecommerce-backend/internal/errors"
	"ecommerce-backend/internal/models"
	"ecommerce-backend/internal/store"
)

type ProductStore interface {
	CreateProduct(ctx context.Context, p *models.Product) error
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	SaveProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
	FindProducts(ctx context.Context, q models.ProductQuery) ([]models.Product, error)
	CountProducts(ctx context.Context, q models.ProductQuery) (int, error)
	ProductCategories(ctx context.Context) ([]string, error)
}

type OrderStore interface {
	CreateOrder(ctx context.Context, o *models.Order) error
	PlaceOrder(ctx context.Context, o *models.Order) error
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	SaveOrder(ctx context.Context, o *models.Order) error
	DeleteOrder(ctx context.Context, id string) error
	FindOrders(ctx context.Context, q models.OrderQuery) ([]models.Order, error)
	CountOrders(ctx context.Context, q models.OrderQuery) (int, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
	FindUsers(ctx context.Context, q models.UserQuery) ([]models.User, error)
	CountUsers(ctx context.Context, q models.UserQuery) (int, error)
}

type CouponStore interface {
	CreateCoupon(ctx context.Context, c *models.Coupon) error
	CouponByCode(ctx context.Context, code string) (*models.Coupon, error)
	FindCoupons(ctx context.Context) ([]models.Coupon, error)
	DeleteCoupon(ctx context.Context, id string) (*models.Coupon, error)
}

// storeError translates a store failure into the error returned to handlers.
func storeError(err error, entity, action string) error {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, store.ErrNotFound):
		return apperrors.NotFound(entity + " not found")
	case errors.Is(err, store.ErrInsufficientStock):
		return apperrors.BadRequestWrap(err, "Insufficient stock")
	case errors.Is(err, store.ErrDuplicate):
		return apperrors.ValidationWrap(err, entity+" already exists")
	default:
		return apperrors.InternalWrap(err, "failed to "+action)
	}
}
