/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/experience/*       Monthly experience data CRUD
  /api/budget             Budget rows
  /api/adjustments/*      User-adjustable line items
  /api/fee-structures/*   Fee structure CRUD + calculation
  /api/summary/calculate  The 28-item summary
  /api/executive-summary  Plan-year KPIs and fuel gauge
  /api/claimants/*        High-cost claimants + summary

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/claims-server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Experience data routes
		r.Route("/experience", func(r chi.Router) {
			r.Get("/", h.ListExperience)
			r.Post("/", h.UpsertExperience)
			r.Delete("/{month}", h.DeleteExperience)
		})

		// Budget routes
		r.Route("/budget", func(r chi.Router) {
			r.Get("/", h.ListBudget)
			r.Post("/", h.UpsertBudget)
		})

		// Adjustment routes
		r.Route("/adjustments", func(r chi.Router) {
			r.Get("/", h.ListAdjustments)
			r.Post("/", h.SaveAdjustment)
			r.Delete("/{id}", h.DeleteAdjustment)
		})

		// Fee structure routes
		r.Route("/fee-structures", func(r chi.Router) {
			r.Get("/", h.ListFeeStructures)
			r.Post("/", h.SaveFeeStructure)
			r.Get("/{id}", h.GetFeeStructure)
			r.Delete("/{id}", h.DeleteFeeStructure)
			r.Post("/{id}/validate-tiers", h.ValidateFeeStructureTiers)
			r.Post("/{id}/calculate", h.CalculateFee)
			r.Post("/{id}/calculate-batch", h.CalculateFeeBatch)
			r.Post("/{id}/project", h.ProjectAnnual)
		})

		// Summary routes
		r.Post("/summary/calculate", h.CalculateSummary)

		// Executive routes
		r.Post("/executive-summary", h.ExecutiveSummary)

		// High-claimant routes
		r.Route("/claimants", func(r chi.Router) {
			r.Get("/", h.ListClaimants)
			r.Post("/", h.SaveClaimant)
			r.Get("/summary", h.ClaimantSummary)
			r.Delete("/{id}", h.DeleteClaimant)
		})
	})

	return r
}
