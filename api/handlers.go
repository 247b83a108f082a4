/*
handlers.go - HTTP API handlers for the claims calculation engine

PURPOSE:
  Exposes the calculation engine via REST. Handles HTTP request/response
  and JSON serialization, assembles calculation inputs from the
  repository, and delegates all arithmetic to the core packages.

ENDPOINTS:
  Experience:
    GET    /api/experience             List monthly experience records
    POST   /api/experience             Upsert monthly records
    DELETE /api/experience/{month}     Delete one month

  Budget:
    GET    /api/budget                 List budget rows
    POST   /api/budget                 Upsert budget rows

  Adjustments:
    GET    /api/adjustments            List line items
    POST   /api/adjustments            Create/update a line item
    DELETE /api/adjustments/{id}       Delete a line item

  Fee structures:
    GET    /api/fee-structures                   List
    POST   /api/fee-structures                   Create/update
    GET    /api/fee-structures/{id}              Get one
    DELETE /api/fee-structures/{id}              Delete
    POST   /api/fee-structures/{id}/validate-tiers  Advisory tier check
    POST   /api/fee-structures/{id}/calculate    One month
    POST   /api/fee-structures/{id}/calculate-batch Multiple months
    POST   /api/fee-structures/{id}/project      12-month projection

  Calculations:
    POST   /api/summary/calculate      28-item summary over stored data
    POST   /api/executive-summary      Plan-year KPIs + fuel gauge

  Claimants:
    GET    /api/claimants              List (planId/status/recognized filters)
    POST   /api/claimants              Create/update
    GET    /api/claimants/summary      HCC summary statistics
    DELETE /api/claimants/{id}         Delete

ERROR HANDLING:
  Transport failures use JSON errors with HTTP status (400 invalid
  input, 404 not found, 500 internal). Calculation-level validation
  failures are values: the envelope is returned with 200 and
  success:false, matching the calculators' contract.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/warp/claims-engine/engine"
	"github.com/warp/claims-engine/fees"
	"github.com/warp/claims-engine/plan"
	"github.com/warp/claims-engine/store"
	"github.com/warp/claims-engine/summary"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Repo store.Repository
	Log  zerolog.Logger
}

// NewHandler creates a new handler over the given repository.
func NewHandler(repo store.Repository, log zerolog.Logger) *Handler {
	return &Handler{Repo: repo, Log: log}
}

// =============================================================================
// EXPERIENCE HANDLERS
// =============================================================================

// ListExperience returns all monthly experience records.
func (h *Handler) ListExperience(w http.ResponseWriter, r *http.Request) {
	months, err := h.Repo.ListExperience(r.Context())
	if err != nil {
		h.writeStoreError(w, "failed to list experience data", err)
		return
	}
	writeJSON(w, http.StatusOK, months)
}

// UpsertExperience inserts or replaces monthly records.
func (h *Handler) UpsertExperience(w http.ResponseWriter, r *http.Request) {
	var months []engine.ExperienceMonth
	if err := json.NewDecoder(r.Body).Decode(&months); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.Repo.UpsertExperience(r.Context(), months); err != nil {
		h.writeStoreError(w, "failed to save experience data", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"saved": len(months)})
}

// DeleteExperience removes one month's record.
func (h *Handler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	month := engine.MonthKey(chi.URLParam(r, "month"))
	if err := h.Repo.DeleteExperience(r.Context(), month); err != nil {
		h.writeStoreError(w, "failed to delete experience month", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// BUDGET HANDLERS
// =============================================================================

// ListBudget returns all budget rows.
func (h *Handler) ListBudget(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Repo.ListBudget(r.Context())
	if err != nil {
		h.writeStoreError(w, "failed to list budget rows", err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// UpsertBudget inserts or replaces budget rows.
func (h *Handler) UpsertBudget(w http.ResponseWriter, r *http.Request) {
	var rows []engine.BudgetData
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.Repo.UpsertBudget(r.Context(), rows); err != nil {
		h.writeStoreError(w, "failed to save budget rows", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"saved": len(rows)})
}

// =============================================================================
// ADJUSTMENT HANDLERS
// =============================================================================

// ListAdjustments returns all user-adjustable line items.
func (h *Handler) ListAdjustments(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.ListAdjustments(r.Context())
	if err != nil {
		h.writeStoreError(w, "failed to list adjustments", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// SaveAdjustment creates or updates a line item.
func (h *Handler) SaveAdjustment(w http.ResponseWriter, r *http.Request) {
	var adj engine.UserAdjustableLineItem
	if err := json.NewDecoder(r.Body).Decode(&adj); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if !adj.Month.Valid() {
		writeError(w, http.StatusBadRequest, "invalid month key", nil)
		return
	}
	saved, err := h.Repo.SaveAdjustment(r.Context(), adj)
	if err != nil {
		h.writeStoreError(w, "failed to save adjustment", err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// DeleteAdjustment removes a line item.
func (h *Handler) DeleteAdjustment(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.DeleteAdjustment(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeStoreError(w, "failed to delete adjustment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// FEE STRUCTURE HANDLERS
// =============================================================================

// ListFeeStructures returns all fee structures.
func (h *Handler) ListFeeStructures(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListFeeStructures(r.Context())
	if err != nil {
		h.writeStoreError(w, "failed to list fee structures", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// SaveFeeStructure creates or updates a fee structure.
func (h *Handler) SaveFeeStructure(w http.ResponseWriter, r *http.Request) {
	var fs fees.FeeStructure
	if err := json.NewDecoder(r.Body).Decode(&fs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.Repo.SaveFeeStructure(r.Context(), fs); err != nil {
		h.writeStoreError(w, "failed to save fee structure", err)
		return
	}
	writeJSON(w, http.StatusCreated, fs)
}

// GetFeeStructure returns one fee structure.
func (h *Handler) GetFeeStructure(w http.ResponseWriter, r *http.Request) {
	fs, err := h.Repo.GetFeeStructure(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, "failed to get fee structure", err)
		return
	}
	writeJSON(w, http.StatusOK, fs)
}

// DeleteFeeStructure removes a fee structure.
func (h *Handler) DeleteFeeStructure(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.DeleteFeeStructure(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeStoreError(w, "failed to delete fee structure", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ValidateFeeStructureTiers runs the advisory tier-set validation.
func (h *Handler) ValidateFeeStructureTiers(w http.ResponseWriter, r *http.Request) {
	fs, err := h.Repo.GetFeeStructure(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, "failed to get fee structure", err)
		return
	}
	issues := fees.ValidateTiers(fs.Tiers)
	writeJSON(w, http.StatusOK, map[string]any{"valid": len(issues) == 0, "issues": issues})
}

// CalculateFee computes one month's fee instance.
func (h *Handler) CalculateFee(w http.ResponseWriter, r *http.Request) {
	fs, err := h.Repo.GetFeeStructure(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, "failed to get fee structure", err)
		return
	}
	var req fees.FeeCalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	result := fees.Calculate(fs, req)
	if !result.Success {
		h.Log.Warn().Str("feeStructure", fs.ID).Strs("errors", result.Errors).
			Msg("fee calculation rejected")
	}
	writeJSON(w, http.StatusOK, result)
}

// CalculateFeeBatch computes several months in one call.
func (h *Handler) CalculateFeeBatch(w http.ResponseWriter, r *http.Request) {
	fs, err := h.Repo.GetFeeStructure(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, "failed to get fee structure", err)
		return
	}
	var reqs []fees.FeeCalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	writeJSON(w, http.StatusOK, fees.CalculateMultipleMonths(fs, reqs))
}

// ProjectAnnual projects twelve months of fees from a template request.
func (h *Handler) ProjectAnnual(w http.ResponseWriter, r *http.Request) {
	fs, err := h.Repo.GetFeeStructure(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, "failed to get fee structure", err)
		return
	}
	var body struct {
		StartMonth engine.MonthKey            `json:"startMonth"`
		Template   fees.FeeCalculationRequest `json:"template"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if !body.StartMonth.Valid() {
		writeError(w, http.StatusBadRequest, "invalid start month", nil)
		return
	}
	writeJSON(w, http.StatusOK, fees.ProjectAnnualFees(fs, body.Template, body.StartMonth))
}

// =============================================================================
// CALCULATION HANDLERS
// =============================================================================

// CalculateSummary runs the 28-item summary over stored experience,
// adjustments, and budget data plus the fee configuration in the body.
func (h *Handler) CalculateSummary(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	ctx := r.Context()

	experience, err := h.Repo.ListExperience(ctx)
	if err != nil {
		h.writeStoreError(w, "failed to load experience data", err)
		return
	}
	adjustments, err := h.Repo.ListAdjustments(ctx)
	if err != nil {
		h.writeStoreError(w, "failed to load adjustments", err)
		return
	}
	budget, err := h.Repo.ListBudget(ctx)
	if err != nil {
		h.writeStoreError(w, "failed to load budget rows", err)
		return
	}

	stopLossFees := req.StopLossFeesByMonth
	if stopLossFees == nil && req.StopLossConfig != nil {
		stopLossFees = summary.CalculateStopLossFees(*req.StopLossConfig, req.StopLossEnrollments)
	}

	result := summary.Calculate(summary.Input{
		ExperienceData:      experience,
		Adjustments:         adjustments,
		AdminFees:           req.AdminFees,
		Budget:              budget,
		StopLossFeesByMonth: stopLossFees,
		ConsultingFee:       req.ConsultingFee,
		TargetPEPM:          req.TargetPEPM,
		ExpectedMonths:      req.ExpectedMonths,
	})
	if !result.Success {
		h.Log.Warn().Strs("errors", result.Errors).Msg("summary calculation rejected")
	}
	writeJSON(w, http.StatusOK, result)
}

// ExecutiveSummary computes plan-year KPIs and the fuel gauge from the
// monthly stats in the body.
func (h *Handler) ExecutiveSummary(w http.ResponseWriter, r *http.Request) {
	var req ExecutiveSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	kpis := plan.CalculateExecutiveSummaryKPIs(req.MonthlyStats, req.PlanYear, req.Through)
	writeJSON(w, http.StatusOK, kpis)
}

// =============================================================================
// CLAIMANT HANDLERS
// =============================================================================

// ListClaimants returns claimants matching the query filters.
func (h *Handler) ListClaimants(w http.ResponseWriter, r *http.Request) {
	filter := store.ClaimantFilter{
		PlanID:         r.URL.Query().Get("planId"),
		Status:         engine.ClaimantStatus(r.URL.Query().Get("status")),
		RecognizedOnly: r.URL.Query().Get("recognized") == "true",
	}
	claimants, err := h.Repo.ListClaimants(r.Context(), filter)
	if err != nil {
		h.writeStoreError(w, "failed to list claimants", err)
		return
	}
	writeJSON(w, http.StatusOK, claimants)
}

// SaveClaimant creates or updates a claimant record.
func (h *Handler) SaveClaimant(w http.ResponseWriter, r *http.Request) {
	var c engine.HighClaimant
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	saved, err := h.Repo.SaveClaimant(r.Context(), c)
	if err != nil {
		h.writeStoreError(w, "failed to save claimant", err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// ClaimantSummary returns the HCC summary statistics over stored
// claimants, honoring the same query filters as the listing.
func (h *Handler) ClaimantSummary(w http.ResponseWriter, r *http.Request) {
	filter := store.ClaimantFilter{
		PlanID:         r.URL.Query().Get("planId"),
		Status:         engine.ClaimantStatus(r.URL.Query().Get("status")),
		RecognizedOnly: r.URL.Query().Get("recognized") == "true",
	}
	claimants, err := h.Repo.ListClaimants(r.Context(), filter)
	if err != nil {
		h.writeStoreError(w, "failed to list claimants", err)
		return
	}
	resp := ClaimantSummaryResponse{
		Summary:         plan.SummarizeHighClaimants(claimants),
		QualifyingCount: len(plan.FilterQualifying(claimants)),
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeleteClaimant removes a claimant record.
func (h *Handler) DeleteClaimant(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.DeleteClaimant(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeStoreError(w, "failed to delete claimant", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) writeStoreError(w http.ResponseWriter, message string, err error) {
	switch {
	case engine.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case engine.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		h.Log.Error().Err(err).Msg(message)
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
