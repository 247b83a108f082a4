/*
Package summary builds the month-by-month 28-item cost summary.

PURPOSE:
  Combines experience data, pre-calculated stop-loss fees, configured
  admin fees, user-entered adjustments, and budget rows into the
  complete cost summary with running cumulative totals and variance
  analysis.

KEY CONCEPTS IN THIS FILE (summary.go):
  - Months are processed in strictly ascending order; the cumulative
    total (item 16) is the one piece of cross-month state
  - A month missing its experience record is skipped entirely: it
    produces no row and does not advance the cumulative total
  - Missing fee/budget/adjustment data degrades to warnings and
    documented defaults; only empty experience data is a hard failure

SIGN CONVENTION:
  User adjustments keep the sign the user entered. Rx rebates (typically
  negative) are ADDED into the monthly total; stop-loss reimbursement
  (typically positive) is SUBTRACTED.

SEE ALSO:
  - stoploss.go: Legacy helper producing the per-month stop-loss fees
*/
package summary

import (
	"fmt"

	"github.com/warp/claims-engine/engine"
)

// =============================================================================
// INPUT
// =============================================================================

// Input is everything the summary engine consumes for one run.
type Input struct {
	ExperienceData []engine.ExperienceMonth        `json:"experienceData"`
	Adjustments    []engine.UserAdjustableLineItem `json:"adjustments"`
	AdminFees      []engine.AdminFeeLineItem       `json:"adminFees"`
	Budget         []engine.BudgetData             `json:"budget"`

	// StopLossFeesByMonth holds the already-calculated stop-loss fee per
	// month; the engine never recomputes fees.
	StopLossFeesByMonth map[engine.MonthKey]float64 `json:"stopLossFeesByMonth"`

	// ConsultingFee is the flat monthly consulting amount (item 12).
	ConsultingFee float64 `json:"consultingFee"`

	// TargetPEPM is the configured incurred target, passed through to
	// item 21 and used for default budget rows.
	TargetPEPM float64 `json:"targetPEPM"`

	// ExpectedMonths optionally widens the month set beyond what the
	// experience data covers (e.g. a full plan year). When empty, the
	// months present in the experience data are the expected set.
	ExpectedMonths []engine.MonthKey `json:"expectedMonths,omitempty"`
}

// =============================================================================
// ROW
// =============================================================================

// Row is the complete 28-item result for one month.
type Row struct {
	Month engine.MonthKey `json:"month"`

	// Medical claims (items 1-7).
	DomesticMedicalIPOP        float64 `json:"domesticMedicalIPOP"`
	NonDomesticMedical         float64 `json:"nonDomesticMedical"`
	TotalHospitalMedical       float64 `json:"totalHospitalMedical"`
	NonHospitalMedical         float64 `json:"nonHospitalMedical"`
	TotalAllMedical            float64 `json:"totalAllMedical"`
	UCSettlement               float64 `json:"ucSettlement"`
	TotalAdjustedMedicalClaims float64 `json:"totalAdjustedMedicalClaims"`

	// Pharmacy (items 8-9).
	TotalRxClaims float64 `json:"totalRxClaims"`
	RxRebates     float64 `json:"rxRebates"`

	// Stop loss (items 10-11).
	TotalStopLossFees     float64 `json:"totalStopLossFees"`
	StopLossReimbursement float64 `json:"stopLossReimbursement"`

	// Admin fees (items 12-14).
	Consulting        float64 `json:"consulting"`
	AdminFeeLineItems float64 `json:"adminFeeLineItems"`
	TotalAdminFees    float64 `json:"totalAdminFees"`

	// Totals (items 15-16).
	MonthlyClaimsAndExpenses    float64 `json:"monthlyClaimsAndExpenses"`
	CumulativeClaimsAndExpenses float64 `json:"cumulativeClaimsAndExpenses"`

	// Enrollment (items 17-18).
	EECount     float64 `json:"eeCount"`
	MemberCount float64 `json:"memberCount"`

	// PEPM metrics (items 19-21).
	PEPMNonLaggedActual     float64 `json:"pepmNonLaggedActual"`
	PEPMNonLaggedCumulative float64 `json:"pepmNonLaggedCumulative"`
	IncurredTargetPEPM      float64 `json:"incurredTargetPEPM"`

	// Budget (items 22-24).
	PEPMBudget             float64 `json:"pepmBudget"`
	PEPMBudgetEECounts     float64 `json:"pepmBudgetEECounts"`
	AnnualCumulativeBudget float64 `json:"annualCumulativeBudget"`

	// Variance (items 25-28).
	BudgetedMonthly             float64 `json:"budgetedMonthly"`
	ActualMonthlyDifference     float64 `json:"actualMonthlyDifference"`
	PercentDifferenceMonthly    float64 `json:"percentDifferenceMonthly"`
	CumulativeDifference        float64 `json:"cumulativeDifference"`
	PercentDifferenceCumulative float64 `json:"percentDifferenceCumulative"`
}

// =============================================================================
// RESULT
// =============================================================================

// Metadata describes run completeness.
type Metadata struct {
	MonthsExpected   int               `json:"monthsExpected"`
	RowsProduced     int               `json:"rowsProduced"`
	DataCompleteness float64           `json:"dataCompleteness"`
	MissingMonths    []engine.MonthKey `json:"missingMonths"`
}

// Result is the summary engine's envelope.
type Result struct {
	Success  bool     `json:"success"`
	Data     []Row    `json:"data,omitempty"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Metadata Metadata `json:"metadata"`
}

// =============================================================================
// ENGINE
// =============================================================================

// Calculate runs the 28-item summary over the input. The only hard
// failure is empty experience data.
func Calculate(input Input) Result {
	if len(input.ExperienceData) == 0 {
		return Result{Success: false, Errors: []string{"no experience data provided"}}
	}

	byMonth := make(map[engine.MonthKey]engine.ExperienceMonth, len(input.ExperienceData))
	months := make([]engine.MonthKey, 0, len(input.ExperienceData))
	for _, e := range input.ExperienceData {
		byMonth[e.Month] = e
		months = append(months, e.Month)
	}
	if len(input.ExpectedMonths) > 0 {
		months = append([]engine.MonthKey(nil), input.ExpectedMonths...)
	}
	months = engine.SortMonthKeys(months)

	budgetByMonth := make(map[engine.MonthKey]engine.BudgetData, len(input.Budget))
	for _, b := range input.Budget {
		budgetByMonth[b.Month] = b
	}

	res := Result{Success: true}
	res.Metadata.MonthsExpected = len(months)
	cumulative := 0.0

	for _, month := range months {
		exp, ok := byMonth[month]
		if !ok {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("month %s has no experience data; skipped", month))
			res.Metadata.MissingMonths = append(res.Metadata.MissingMonths, month)
			continue
		}

		row := Row{Month: month}

		// Medical claims (items 1-7).
		row.DomesticMedicalIPOP = exp.DomesticMedicalIPOP
		row.NonDomesticMedical = exp.NonDomesticMedical
		row.TotalHospitalMedical = exp.DomesticMedicalIPOP + exp.NonDomesticMedical
		row.NonHospitalMedical = exp.NonHospitalMedical
		row.TotalAllMedical = row.TotalHospitalMedical + exp.NonHospitalMedical
		row.UCSettlement = engine.AdjustmentAmount(input.Adjustments, month, engine.AdjustmentUCSettlement)
		row.TotalAdjustedMedicalClaims = row.TotalAllMedical + row.UCSettlement

		// Pharmacy (items 8-9).
		row.TotalRxClaims = exp.RxClaims
		row.RxRebates = engine.AdjustmentAmount(input.Adjustments, month, engine.AdjustmentRxRebates)

		// Stop loss (items 10-11).
		fee, feeOK := input.StopLossFeesByMonth[month]
		if !feeOK {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("month %s has no stop-loss fee; defaulting to 0", month))
		}
		row.TotalStopLossFees = fee
		row.StopLossReimbursement = engine.AdjustmentAmount(input.Adjustments, month, engine.AdjustmentStopLossReimb)

		// Admin fees (items 12-14).
		row.Consulting = input.ConsultingFee
		for _, f := range input.AdminFees {
			row.AdminFeeLineItems += f.Calculate(exp.EECount, exp.MemberCount).CalculatedAmount
		}
		row.TotalAdminFees = row.Consulting + row.AdminFeeLineItems

		// Totals (items 15-16).
		row.MonthlyClaimsAndExpenses = row.TotalAdjustedMedicalClaims +
			row.TotalRxClaims + row.RxRebates +
			row.TotalStopLossFees - row.StopLossReimbursement +
			row.TotalAdminFees
		cumulative += row.MonthlyClaimsAndExpenses
		row.CumulativeClaimsAndExpenses = cumulative

		// Enrollment (items 17-18).
		row.EECount = exp.EECount
		row.MemberCount = exp.MemberCount

		// PEPM metrics (items 19-21). Cumulative PEPM divides by the
		// CURRENT month's EE count, not a running average.
		if exp.EECount > 0 {
			row.PEPMNonLaggedActual = row.MonthlyClaimsAndExpenses / exp.EECount
			row.PEPMNonLaggedCumulative = cumulative / exp.EECount
		}
		row.IncurredTargetPEPM = input.TargetPEPM

		// Budget (items 22-24).
		budget, budgetOK := budgetByMonth[month]
		if !budgetOK {
			budget = engine.BudgetData{
				Month:              month,
				PEPMBudget:         input.TargetPEPM,
				PEPMBudgetEECounts: exp.EECount,
			}
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("month %s has no budget row; using target PEPM default", month))
		}
		row.PEPMBudget = budget.PEPMBudget
		row.PEPMBudgetEECounts = budget.PEPMBudgetEECounts
		row.AnnualCumulativeBudget = budget.AnnualCumulativeBudget

		// Variance (items 25-28).
		counts := budget.PEPMBudgetEECounts
		if counts == 0 {
			counts = exp.EECount
		}
		row.BudgetedMonthly = budget.PEPMBudget * counts
		row.ActualMonthlyDifference = row.MonthlyClaimsAndExpenses - row.BudgetedMonthly
		if row.BudgetedMonthly > 0 {
			row.PercentDifferenceMonthly = row.ActualMonthlyDifference / row.BudgetedMonthly * 100
		}
		row.CumulativeDifference = cumulative - budget.AnnualCumulativeBudget
		if budget.AnnualCumulativeBudget > 0 {
			row.PercentDifferenceCumulative = row.CumulativeDifference / budget.AnnualCumulativeBudget * 100
		}

		res.Data = append(res.Data, row)
	}

	res.Metadata.RowsProduced = len(res.Data)
	if res.Metadata.MonthsExpected > 0 {
		res.Metadata.DataCompleteness =
			float64(res.Metadata.RowsProduced) / float64(res.Metadata.MonthsExpected) * 100
	}
	return res
}
