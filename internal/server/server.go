package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ecommerce-backend/internal/handlers"
	"ecommerce-backend/internal/middleware"
)

type Server struct {
	router      chi.Router
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

// NewServer routes every endpoint through chain. chain runs inside the
// router so middleware can read the matched route pattern.
func NewServer(svc handlers.Services, logger *slog.Logger, templateHandlers *TemplateHandlers, chain middleware.Middleware) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(svc, logger),
		sseHandlers: handlers.NewSSEHandlers(svc.Stats, logger),
	}
	if chain != nil {
		s.router.Use(chain)
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	api := s.apiHandlers

	// Dashboard routes
	if templateHandlers != nil && templateHandlers.Dashboard != nil {
		s.router.Get("/", templateHandlers.Dashboard)
	}
	s.router.Get("/health", api.HandleHealth)
	s.router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/product", func(r chi.Router) {
			r.Post("/new", api.HandleNewProduct)
			r.Get("/all", api.HandleSearchProducts)
			r.Get("/latest", api.HandleLatestProducts)
			r.Get("/categories", api.HandleCategories)
			r.Get("/admin-products", api.HandleAdminProducts)
			r.Get("/{id}", api.HandleGetProduct)
			r.Put("/{id}", api.HandleUpdateProduct)
			r.Delete("/{id}", api.HandleDeleteProduct)
		})

		r.Route("/order", func(r chi.Router) {
			r.Post("/new", api.HandleNewOrder)
			r.Get("/my", api.HandleMyOrders)
			r.Get("/all", api.HandleAllOrders)
			r.Get("/{id}", api.HandleGetOrder)
			r.Put("/{id}", api.HandleProcessOrder)
			r.Delete("/{id}", api.HandleDeleteOrder)
		})

		r.Route("/user", func(r chi.Router) {
			r.Post("/new", api.HandleNewUser)
			r.Get("/all", api.HandleAllUsers)
			r.Get("/{id}", api.HandleGetUser)
			r.Delete("/{id}", api.HandleDeleteUser)
		})

		r.Route("/payment", func(r chi.Router) {
			r.Post("/create", api.HandleCreatePayment)
			r.Post("/coupon/new", api.HandleNewCoupon)
			r.Get("/discount", api.HandleApplyDiscount)
			r.Get("/coupon/all", api.HandleAllCoupons)
			r.Delete("/coupon/{id}", api.HandleDeleteCoupon)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/stats", api.HandleDashboardStats)
			r.Get("/pie", api.HandlePieCharts)
			r.Get("/bar", api.HandleBarCharts)
			r.Get("/line", api.HandleLineCharts)
		})
	})

	// Datastar SSE endpoints
	s.router.Get("/sse/dashboard", s.sseHandlers.HandleDashboard)
	s.router.Get("/sse/charts", s.sseHandlers.HandleCharts)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
