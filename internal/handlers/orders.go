package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ecommerce-backend/internal/errors"
	"ecommerce-backend/internal/services"
)

func (h *APIHandlers) HandleNewOrder(w http.ResponseWriter, r *http.Request) {
	var req services.NewOrderRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	o, err := h.svc.Orders.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteCreated(w, o)
}

// HandleMyOrders lists the orders of the user given by the id query parameter.
func (h *APIHandlers) HandleMyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.Orders.Mine(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteSuccess(w, orders)
}

func (h *APIHandlers) HandleAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.Orders.All(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteSuccess(w, orders)
}

func (h *APIHandlers) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.Orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteSuccess(w, o)
}

func (h *APIHandlers) HandleProcessOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.Orders.Process(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteSuccess(w, o)
}

func (h *APIHandlers) HandleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Orders.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteMessage(w, http.StatusOK, "Order deleted successfully")
}
