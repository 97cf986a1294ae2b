package services

import (
	"context"
	"log/slog"
	"math"

	"github.com/google/uuid"

	apperrors "ecommerce-backend/internal/errors"
	"ecommerce-backend/internal/models"
)

// IntentProvider creates payment intents with an external processor and
// returns the client secret. amount is in minor currency units.
type IntentProvider interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// OfflineIntents issues locally generated client secrets. It is used when no
// payment processor is configured.
type OfflineIntents struct{}

func (OfflineIntents) CreateIntent(_ context.Context, _ int64, _ string) (string, error) {
	id := uuid.NewString()
	return "pi_" + id + "_secret_" + uuid.NewString(), nil
}

type NewCouponRequest struct {
	Code   string  `json:"coupon" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type PaymentIntentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type Payments struct {
	coupons  CouponStore
	intents  IntentProvider
	currency string
	logger   *slog.Logger
}

func NewPayments(coupons CouponStore, intents IntentProvider, currency string, logger *slog.Logger) *Payments {
	if intents == nil {
		intents = OfflineIntents{}
	}
	return &Payments{coupons: coupons, intents: intents, currency: currency, logger: logger}
}

func (s *Payments) CreateIntent(ctx context.Context, req PaymentIntentRequest) (string, error) {
	if err := validateRequest(req); err != nil {
		return "", apperrors.Validation("Please enter amount")
	}

	minor := int64(math.Round(req.Amount * 100))
	secret, err := s.intents.CreateIntent(ctx, minor, s.currency)
	if err != nil {
		return "", apperrors.InternalWrap(err, "failed to create payment intent")
	}

	s.logger.InfoContext(ctx, "payment intent created", "amount", minor, "currency", s.currency)
	return secret, nil
}

func (s *Payments) NewCoupon(ctx context.Context, req NewCouponRequest) (*models.Coupon, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	c := &models.Coupon{Code: req.Code, Amount: req.Amount}
	if err := s.coupons.CreateCoupon(ctx, c); err != nil {
		return nil, storeError(err, "Coupon", "create coupon")
	}

	s.logger.InfoContext(ctx, "coupon created", "code", c.Code)
	return c, nil
}

// ApplyDiscount returns the discount amount of the coupon with the given code.
func (s *Payments) ApplyDiscount(ctx context.Context, code string) (float64, error) {
	c, err := s.coupons.CouponByCode(ctx, code)
	if err != nil {
		return 0, s.invalidCoupon(err, "Invalid coupon code")
	}
	return c.Amount, nil
}

func (s *Payments) AllCoupons(ctx context.Context) ([]models.Coupon, error) {
	coupons, err := s.coupons.FindCoupons(ctx)
	if err != nil {
		return nil, storeError(err, "Coupon", "load coupons")
	}
	return coupons, nil
}

func (s *Payments) DeleteCoupon(ctx context.Context, id string) (*models.Coupon, error) {
	c, err := s.coupons.DeleteCoupon(ctx, id)
	if err != nil {
		return nil, s.invalidCoupon(err, "Invalid coupon ID")
	}

	s.logger.InfoContext(ctx, "coupon deleted", "code", c.Code)
	return c, nil
}

func (s *Payments) invalidCoupon(err error, msg string) error {
	appErr := storeError(err, "Coupon", "load coupon")
	if e, ok := appErr.(*apperrors.AppError); ok && e.Code == apperrors.CodeNotFound {
		return apperrors.BadRequest(msg)
	}
	return appErr
}
