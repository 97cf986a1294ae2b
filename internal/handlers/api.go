package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"ecommerce-backend/internal/cache"
	"ecommerce-backend/internal/errors"
	"ecommerce-backend/internal/observability"
	"ecommerce-backend/internal/services"
)

// Services groups the domain services the HTTP handlers call.
type Services struct {
	Products *services.Products
	Orders   *services.Orders
	Users    *services.Users
	Payments *services.Payments
	Stats    *services.Stats
	Cache    *cache.Cache
}

type APIHandlers struct {
	svc    Services
	logger *slog.Logger
}

func NewAPIHandlers(svc Services, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		svc:    svc,
		logger: logger,
	}
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	stats := h.svc.Cache.Stats()

	errors.WriteSuccess(w, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
		"cache": map[string]any{
			"keys":   stats.Keys,
			"hits":   stats.Hits,
			"misses": stats.Misses,
		},
	})
}

func (h *APIHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.BadRequestWrap(err, "Invalid request body")
	}
	return nil
}
