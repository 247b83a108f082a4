/*
executive.go - Plan-year KPIs and the budget fuel gauge

PURPOSE:
  Aggregates monthly plan stats into plan-year-to-date executive KPIs
  and derives the three-state budget health gauge.

KEY CONCEPTS:
  - Fuel gauge thresholds: red at >= 100% of budget, yellow at >= 95%
    and < 100%, green below 95%
  - monthlyVsBudget counts classify individual months into observation
    bands (under 95 / on 95-105 / over 105); these bands are reporting
    buckets, distinct from the gauge thresholds

SEE ALSO:
  - stats.go: The accumulation rules mirrored here
*/
package plan

import "github.com/warp/claims-engine/engine"

// =============================================================================
// FUEL GAUGE
// =============================================================================

// GaugeStatus is the three-state budget health indicator.
type GaugeStatus string

const (
	GaugeGreen  GaugeStatus = "green"
	GaugeYellow GaugeStatus = "yellow"
	GaugeRed    GaugeStatus = "red"
)

// FuelGaugeConfig is the derived gauge state with its driving value.
type FuelGaugeConfig struct {
	Value  float64     `json:"value"`
	Status GaugeStatus `json:"status"`
	Label  string      `json:"label"`
}

// CalculateFuelGauge derives the gauge from a percent-of-budget value.
func CalculateFuelGauge(percentOfBudget float64) FuelGaugeConfig {
	g := FuelGaugeConfig{Value: percentOfBudget}
	switch {
	case percentOfBudget >= 100:
		g.Status = GaugeRed
		g.Label = "Over Budget"
	case percentOfBudget >= 95:
		g.Status = GaugeYellow
		g.Label = "Approaching Budget"
	default:
		g.Status = GaugeGreen
		g.Label = "Under Budget"
	}
	return g
}

// =============================================================================
// EXECUTIVE KPIS
// =============================================================================

// MonthlyVsBudgetCounts classifies months by their percent-of-budget.
type MonthlyVsBudgetCounts struct {
	Under int `json:"under"` // < 95
	On    int `json:"on"`    // 95-105
	Over  int `json:"over"`  // > 105
}

// ExecutiveSummaryKPIs is the plan-year-to-date rollup.
type ExecutiveSummaryKPIs struct {
	PlanYear             string                `json:"planYear"`
	Through              engine.MonthKey       `json:"through"`
	MonthCount           int                   `json:"monthCount"`
	TotalBudgetedPremium float64               `json:"totalBudgetedPremium"`
	MedicalPaidClaims    float64               `json:"medicalPaidClaims"`
	PharmacyPaidClaims   float64               `json:"pharmacyPaidClaims"`
	TotalPaidClaims      float64               `json:"totalPaidClaims"`
	StopLossReimb        float64               `json:"totalStopLossReimb"`
	RxRebates            float64               `json:"totalRxRebates"`
	NetPaidClaims        float64               `json:"netPaidClaims"`
	AdminFees            float64               `json:"totalAdminFees"`
	StopLossFees         float64               `json:"totalStopLossFees"`
	TotalPlanCost        float64               `json:"totalPlanCost"`
	SurplusDeficit       float64               `json:"surplusDeficit"`
	PercentOfBudget      float64               `json:"percentOfBudget"`
	PEPM                 float64               `json:"pepm"`
	MonthlyVsBudget      MonthlyVsBudgetCounts `json:"monthlyVsBudget"`
	FuelGauge            FuelGaugeConfig       `json:"fuelGauge"`
}

// CalculateExecutiveSummaryKPIs aggregates monthly stats into the plan
// year rollup. Derived per-month fields are recomputed here so callers
// may pass raw or derived records interchangeably.
func CalculateExecutiveSummaryKPIs(monthlyStats []MonthlyPlanStats, planYear string, through engine.MonthKey) ExecutiveSummaryKPIs {
	kpis := ExecutiveSummaryKPIs{PlanYear: planYear, Through: through, MonthCount: len(monthlyStats)}
	subscriberMonths := 0.0
	for _, raw := range monthlyStats {
		m := CalculateMonthlyStats(raw)
		kpis.TotalBudgetedPremium += m.BudgetedPremium
		kpis.MedicalPaidClaims += m.MedicalClaims
		kpis.PharmacyPaidClaims += m.PharmacyClaims
		kpis.StopLossReimb += m.SpecStopLossReimb
		kpis.RxRebates += m.EstimatedRxRebates
		kpis.NetPaidClaims += m.NetMedicalPharmacyClaims
		kpis.AdminFees += m.AdminFees
		kpis.StopLossFees += m.StopLossFees
		kpis.TotalPlanCost += m.TotalPlanCost
		subscriberMonths += m.TotalSubscribers

		switch {
		case m.BudgetedPremium <= 0:
			// No budget for the month; excluded from the band counts.
		case m.PercentOfBudget < 95:
			kpis.MonthlyVsBudget.Under++
		case m.PercentOfBudget <= 105:
			kpis.MonthlyVsBudget.On++
		default:
			kpis.MonthlyVsBudget.Over++
		}
	}
	kpis.TotalPaidClaims = kpis.MedicalPaidClaims + kpis.PharmacyPaidClaims
	kpis.SurplusDeficit = kpis.TotalBudgetedPremium - kpis.TotalPlanCost
	if kpis.TotalBudgetedPremium > 0 {
		kpis.PercentOfBudget = (kpis.TotalPlanCost / kpis.TotalBudgetedPremium) * 100
	}
	if subscriberMonths > 0 {
		kpis.PEPM = kpis.TotalPlanCost / subscriberMonths
	}
	kpis.FuelGauge = CalculateFuelGauge(kpis.PercentOfBudget)
	return kpis
}
