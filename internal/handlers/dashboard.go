package handlers

import (
	"net/http"

	"ecommerce-backend/internal/errors"
)

func (h *APIHandlers) HandleDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats.Dashboard(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteSuccess(w, stats)
}

func (h *APIHandlers) HandlePieCharts(w http.ResponseWriter, r *http.Request) {
	charts, err := h.svc.Stats.PieCharts(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteSuccess(w, charts)
}

func (h *APIHandlers) HandleBarCharts(w http.ResponseWriter, r *http.Request) {
	charts, err := h.svc.Stats.BarCharts(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteSuccess(w, charts)
}

func (h *APIHandlers) HandleLineCharts(w http.ResponseWriter, r *http.Request) {
	charts, err := h.svc.Stats.LineCharts(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	errors.WriteSuccess(w, charts)
}
