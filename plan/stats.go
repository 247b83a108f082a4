/*
Package plan computes plan-level monthly statistics and aggregates.

PURPOSE:
  This package covers the plan rollup layer: per-month stats derivation,
  PEPM period aggregation, executive KPIs with the budget fuel gauge,
  distribution and high-claimant analytics, and the loss-ratio/PMPM
  utility formulas.

KEY CONCEPTS IN THIS FILE (stats.go):
  - MonthlyPlanStats: raw inputs + derived fields for one month
  - Derived fields are always recomputed from raw fields, never stored
    as ground truth
  - Stop-loss reimbursement and Rx rebates arrive as positive magnitudes
    and are netted into claims exactly once

DESIGN PRINCIPLES:
  1. Pure functions: same inputs produce same outputs, always
  2. Guarded division: zero denominators yield 0, never NaN/Inf

SEE ALSO:
  - pepm.go: Period aggregation over these stats
  - executive.go: Plan-year KPIs and the fuel gauge
*/
package plan

import "github.com/warp/claims-engine/engine"

// =============================================================================
// MONTHLY PLAN STATS
// =============================================================================

// MonthlyPlanStats is one month's plan-level rollup. The first block is
// raw input; the second is derived by CalculateMonthlyStats.
type MonthlyPlanStats struct {
	Month              engine.MonthKey `json:"month"`
	TotalSubscribers   float64         `json:"totalSubscribers"`
	MedicalClaims      float64         `json:"medicalClaims"`
	PharmacyClaims     float64         `json:"pharmacyClaims"`
	SpecStopLossReimb  float64         `json:"specStopLossReimb"`
	EstimatedRxRebates float64         `json:"estimatedRxRebates"`
	AdminFees          float64         `json:"adminFees"`
	StopLossFees       float64         `json:"stopLossFees"`
	BudgetedPremium    float64         `json:"budgetedPremium"`

	NetMedicalPharmacyClaims float64 `json:"netMedicalPharmacyClaims"`
	TotalPlanCost            float64 `json:"totalPlanCost"`
	SurplusDeficit           float64 `json:"surplusDeficit"`
	PEPM                     float64 `json:"pepm"`
	PercentOfBudget          float64 `json:"percentOfBudget"`
}

// CalculateNetMedicalPharmacyClaims nets reimbursements and rebates out
// of paid claims. Offsets are positive magnitudes subtracted here and
// nowhere else downstream.
func CalculateNetMedicalPharmacyClaims(medical, pharmacy, stopLossReimb, rxRebates float64) float64 {
	return medical + pharmacy - stopLossReimb - rxRebates
}

// CalculateMonthlyStats fills in all derived fields from the raw fields.
// The input is not mutated.
func CalculateMonthlyStats(raw MonthlyPlanStats) MonthlyPlanStats {
	out := raw
	out.NetMedicalPharmacyClaims = CalculateNetMedicalPharmacyClaims(
		raw.MedicalClaims, raw.PharmacyClaims, raw.SpecStopLossReimb, raw.EstimatedRxRebates)
	out.TotalPlanCost = out.NetMedicalPharmacyClaims + raw.AdminFees + raw.StopLossFees
	out.SurplusDeficit = raw.BudgetedPremium - out.TotalPlanCost
	if raw.TotalSubscribers > 0 {
		out.PEPM = out.TotalPlanCost / raw.TotalSubscribers
	} else {
		out.PEPM = 0
	}
	if raw.BudgetedPremium > 0 {
		out.PercentOfBudget = (out.TotalPlanCost / raw.BudgetedPremium) * 100
	} else {
		out.PercentOfBudget = 0
	}
	return out
}
