package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ecommerce-backend/internal/errors"
	"ecommerce-backend/internal/services"
)

func (h *APIHandlers) HandleNewUser(w http.ResponseWriter, r *http.Request) {
	var req services.NewUserRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	u, created, err := h.svc.Users.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !created {
		errors.WriteMessage(w, http.StatusOK, "Welcome, "+u.Name)
		return
	}
	errors.WriteCreated(w, u)
}

func (h *APIHandlers) HandleAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.Users.All(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteSuccess(w, users)
}

func (h *APIHandlers) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteSuccess(w, u)
}

func (h *APIHandlers) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Users.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteMessage(w, http.StatusOK, "User deleted successfully")
}
