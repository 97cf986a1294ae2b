package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ecommerce-backend/internal/errors"
	"ecommerce-backend/internal/services"
)

func (h *APIHandlers) HandleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req services.PaymentIntentRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	secret, err := h.svc.Payments.CreateIntent(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteCreated(w, map[string]string{"clientSecret": secret})
}

func (h *APIHandlers) HandleNewCoupon(w http.ResponseWriter, r *http.Request) {
	var req services.NewCouponRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	c, err := h.svc.Payments.NewCoupon(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteMessage(w, http.StatusCreated, fmt.Sprintf("Coupon %s created successfully", c.Code))
}

func (h *APIHandlers) HandleApplyDiscount(w http.ResponseWriter, r *http.Request) {
	discount, err := h.svc.Payments.ApplyDiscount(r.Context(), r.URL.Query().Get("coupon"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteSuccess(w, map[string]float64{"discount": discount})
}

func (h *APIHandlers) HandleAllCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.svc.Payments.AllCoupons(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteSuccess(w, coupons)
}

func (h *APIHandlers) HandleDeleteCoupon(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Payments.DeleteCoupon(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteMessage(w, http.StatusOK, fmt.Sprintf("Coupon %s deleted successfully", c.Code))
}
