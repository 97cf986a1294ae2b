package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ecommerce-backend/internal/errors"
)

type recordingIntents struct {
	amount   int64
	currency string
	err      error
}

func (r *recordingIntents) CreateIntent(_ context.Context, amount int64, currency string) (string, error) {
	r.amount, r.currency = amount, currency
	return "secret", r.err
}

func TestPayments_CreateIntent(t *testing.T) {
	intents := &recordingIntents{}
	payments := NewPayments(newTestStore(t), intents, "inr", discardLogger())
	ctx := context.Background()

	secret, err := payments.CreateIntent(ctx, PaymentIntentRequest{Amount: 12.34})
	require.NoError(t, err)
	assert.Equal(t, "secret", secret)
	assert.Equal(t, int64(1234), intents.amount)
	assert.Equal(t, "inr", intents.currency)

	_, err = payments.CreateIntent(ctx, PaymentIntentRequest{})
	assertAppError(t, err, apperrors.CodeValidation)

	intents.err = errors.New("processor down")
	_, err = payments.CreateIntent(ctx, PaymentIntentRequest{Amount: 1})
	assertAppError(t, err, apperrors.CodeInternal)
}

func TestPayments_OfflineIntents(t *testing.T) {
	payments := NewPayments(newTestStore(t), nil, "inr", discardLogger())

	secret, err := payments.CreateIntent(context.Background(), PaymentIntentRequest{Amount: 10})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(secret, "pi_"))
	assert.Contains(t, secret, "_secret_")
}

func TestPayments_Coupons(t *testing.T) {
	payments := NewPayments(newTestStore(t), nil, "inr", discardLogger())
	ctx := context.Background()

	c, err := payments.NewCoupon(ctx, NewCouponRequest{Code: "DIWALI", Amount: 200})
	require.NoError(t, err)

	_, err = payments.NewCoupon(ctx, NewCouponRequest{Code: "DIWALI", Amount: 100})
	assertAppError(t, err, apperrors.CodeValidation)

	_, err = payments.NewCoupon(ctx, NewCouponRequest{Code: "EMPTY"})
	assertAppError(t, err, apperrors.CodeValidation)

	discount, err := payments.ApplyDiscount(ctx, "DIWALI")
	require.NoError(t, err)
	assert.Equal(t, 200.0, discount)

	_, err = payments.ApplyDiscount(ctx, "NOPE")
	assertAppError(t, err, apperrors.CodeBadRequest)

	all, err := payments.AllCoupons(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	deleted, err := payments.DeleteCoupon(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "DIWALI", deleted.Code)

	_, err = payments.DeleteCoupon(ctx, c.ID)
	assertAppError(t, err, apperrors.CodeBadRequest)
}
