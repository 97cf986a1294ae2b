package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/starfederation/datastar-go/datastar"
	"golang.org/x/sync/errgroup"

	"ecommerce-backend/internal/models"
	"ecommerce-backend/internal/services"
)

var transactionTableTemplate = template.Must(template.New("transactionTable").Parse(`
<div id="transactions-content">
<table class="modern-table">
<thead><tr><th>Order</th><th>Quantity</th><th>Discount</th><th>Amount</th><th>Status</th></tr></thead>
<tbody>
{{range .}}<tr>
<td>{{.ID}}</td>
<td>{{.Quantity}}</td>
<td>{{printf "%.2f" .Discount}}</td>
<td><strong>{{printf "%.2f" .Amount}}</strong></td>
<td><span class="status-badge status-{{.Status}}">{{.Status}}</span></td>
</tr>{{else}}<tr><td colspan="5">No transactions yet</td></tr>{{end}}
</tbody>
</table>
</div>`))

type SSEHandlers struct {
	stats  *services.Stats
	logger *slog.Logger
}

func NewSSEHandlers(stats *services.Stats, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		stats:  stats,
		logger: logger,
	}
}

func renderTransactions(transactions []models.Transaction) (string, error) {
	var buf strings.Builder
	err := transactionTableTemplate.Execute(&buf, transactions)
	return buf.String(), err
}

// HandleDashboard pushes the dashboard snapshot as signals and the latest
// transactions as a rendered table.
func (h *SSEHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	stats, err := h.stats.Dashboard(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "load dashboard stats", "error", err)
		sse.PatchElements(`<div id="transactions-content">Statistics are unavailable</div>`)
		return
	}

	html, err := renderTransactions(stats.LatestTransaction)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "render transaction table", "error", err)
		return
	}
	sse.PatchElements(html)

	signals, err := json.Marshal(map[string]any{"dashboard": stats})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "marshal dashboard signals", "error", err)
		return
	}
	sse.PatchSignals(signals)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleCharts pushes the pie, bar and line chart data in one signal patch.
func (h *SSEHandlers) HandleCharts(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	var (
		pie  *models.PieCharts
		bar  *models.BarCharts
		line *models.LineCharts
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		pie, err = h.stats.PieCharts(ctx)
		return err
	})
	g.Go(func() (err error) {
		bar, err = h.stats.BarCharts(ctx)
		return err
	})
	g.Go(func() (err error) {
		line, err = h.stats.LineCharts(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.logger.ErrorContext(r.Context(), "load chart data", "error", err)
		sse.PatchElements(`<div id="charts-content">Charts are unavailable</div>`)
		return
	}

	signals, err := json.Marshal(map[string]any{
		"pieCharts":  pie,
		"barCharts":  bar,
		"lineCharts": line,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "marshal chart signals", "error", err)
		return
	}
	sse.PatchSignals(signals)
	sse.PatchElements(`<div id="charts-content">Charts loaded</div>`)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
