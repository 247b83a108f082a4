/*
dto.go - Request/response data structures for the REST surface

PURPOSE:
  Request bodies are explicit typed records validated at the boundary;
  the pure calculation packages only ever see fully-typed inputs.
  Calculation outputs are already JSON-serializable records and are
  embedded verbatim in responses.

SEE ALSO:
  - handlers.go: Handlers decoding these
*/
package api

import (
	"github.com/warp/claims-engine/engine"
	"github.com/warp/claims-engine/plan"
	"github.com/warp/claims-engine/summary"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SummaryRequest drives the 28-item summary calculation. Experience
// data, adjustments, and budget rows are read from the repository;
// the request supplies the fee configuration.
type SummaryRequest struct {
	ConsultingFee float64                   `json:"consultingFee"`
	TargetPEPM    float64                   `json:"targetPEPM"`
	AdminFees     []engine.AdminFeeLineItem `json:"adminFees,omitempty"`

	// Either an explicit per-month fee table or a legacy stop-loss
	// configuration applied to the supplied enrollments.
	StopLossFeesByMonth map[engine.MonthKey]float64  `json:"stopLossFeesByMonth,omitempty"`
	StopLossConfig      *summary.StopLossFeeConfig   `json:"stopLossConfig,omitempty"`
	StopLossEnrollments []summary.StopLossEnrollment `json:"stopLossEnrollments,omitempty"`

	ExpectedMonths []engine.MonthKey `json:"expectedMonths,omitempty"`
}

// ExecutiveSummaryRequest drives the plan-year KPI rollup.
type ExecutiveSummaryRequest struct {
	MonthlyStats []plan.MonthlyPlanStats `json:"monthlyStats"`
	PlanYear     string                  `json:"planYear"`
	Through      engine.MonthKey         `json:"through"`
}

// ClaimantSummaryResponse pairs the HCC summary with the qualifying
// claimant count.
type ClaimantSummaryResponse struct {
	Summary         plan.HCCSummary `json:"summary"`
	QualifyingCount int             `json:"qualifyingCount"`
}
