package services

import (
	"context"
	"log/slog"

	"ecommerce-backend/internal/cache"
	apperrors "ecommerce-backend/internal/errors"
	"ecommerce-backend/internal/models"
)

type NewOrderRequest struct {
	ShippingInfo    *models.ShippingInfo `json:"shippingInfo" validate:"required"`
	User            string               `json:"user" validate:"required"`
	Subtotal        float64              `json:"subtotal" validate:"required,gt=0"`
	Tax             float64              `json:"tax" validate:"required,gte=0"`
	ShippingCharges float64              `json:"shippingCharges" validate:"gte=0"`
	Discount        float64              `json:"discount" validate:"gte=0"`
	Total           float64              `json:"total" validate:"required,gt=0"`
	OrderItems      []models.OrderItem   `json:"orderItems" validate:"required,min=1,dive"`
}

type Orders struct {
	store  OrderStore
	cache  *cache.Cache
	logger *slog.Logger
}

func NewOrders(store OrderStore, c *cache.Cache, logger *slog.Logger) *Orders {
	return &Orders{store: store, cache: c, logger: logger}
}

// Create takes every item out of stock and records the order in one store
// transaction. Nothing is written when any item cannot be served.
func (s *Orders) Create(ctx context.Context, req NewOrderRequest) (*models.Order, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	o := &models.Order{
		ShippingInfo:    *req.ShippingInfo,
		User:            req.User,
		Subtotal:        req.Subtotal,
		Tax:             req.Tax,
		ShippingCharges: req.ShippingCharges,
		Discount:        req.Discount,
		Total:           req.Total,
		Status:          models.StatusProcessing,
		OrderItems:      req.OrderItems,
	}
	if err := s.store.PlaceOrder(ctx, o); err != nil {
		return nil, storeError(err, "Product", "place order")
	}

	s.cache.Invalidate(ctx, cache.Invalidation{
		Product:    true,
		Order:      true,
		Admin:      true,
		UserID:     o.User,
		ProductIDs: o.ProductIDs(),
	})
	s.logger.InfoContext(ctx, "order placed", "order_id", o.ID, "user_id", o.User, "items", len(o.OrderItems))
	return o, nil
}

// Mine lists the orders placed by userID. An empty id is rejected so the
// lookup never widens to every user's orders.
func (s *Orders) Mine(ctx context.Context, userID string) ([]models.Order, error) {
	if userID == "" {
		return nil, apperrors.BadRequest("Please provide user id")
	}

	orders, err := cache.Remember(ctx, s.cache, cache.MyOrdersKey(userID), func(ctx context.Context) ([]models.Order, error) {
		return s.store.FindOrders(ctx, models.OrderQuery{User: userID})
	})
	if err != nil {
		return nil, storeError(err, "Order", "load orders")
	}
	return orders, nil
}

func (s *Orders) All(ctx context.Context) ([]models.Order, error) {
	orders, err := cache.Remember(ctx, s.cache, cache.KeyAllOrders, func(ctx context.Context) ([]models.Order, error) {
		return s.store.FindOrders(ctx, models.OrderQuery{})
	})
	if err != nil {
		return nil, storeError(err, "Order", "load orders")
	}
	return orders, nil
}

func (s *Orders) Get(ctx context.Context, id string) (*models.Order, error) {
	o, err := cache.Remember(ctx, s.cache, cache.OrderKey(id), func(ctx context.Context) (*models.Order, error) {
		return s.store.GetOrder(ctx, id)
	})
	if err != nil {
		return nil, storeError(err, "Order", "load order")
	}
	return o, nil
}

// Process advances the order one status step. Delivered orders stay delivered.
func (s *Orders) Process(ctx context.Context, id string) (*models.Order, error) {
	o, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, storeError(err, "Order", "load order")
	}

	o.Status = o.Status.Next()
	if err := s.store.SaveOrder(ctx, o); err != nil {
		return nil, storeError(err, "Order", "process order")
	}

	s.cache.Invalidate(ctx, cache.Invalidation{Order: true, Admin: true, UserID: o.User, OrderID: o.ID})
	s.logger.InfoContext(ctx, "order processed", "order_id", o.ID, "status", o.Status)
	return o, nil
}

func (s *Orders) Delete(ctx context.Context, id string) error {
	o, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return storeError(err, "Order", "load order")
	}

	if err := s.store.DeleteOrder(ctx, id); err != nil {
		return storeError(err, "Order", "delete order")
	}

	s.cache.Invalidate(ctx, cache.Invalidation{Order: true, Admin: true, UserID: o.User, OrderID: o.ID})
	s.logger.InfoContext(ctx, "order deleted", "order_id", id)
	return nil
}
