/*
records.go - Shared input records consumed by the calculation modules

PURPOSE:
  Plain, immutable records handed to the engine by the upstream import /
  persistence layer. The engine assumes they are already type- and
  range-validated (non-negative currency amounts, valid month keys); it
  re-checks only what the calculation contracts require.

RECORD FAMILIES:
  ExperienceMonth:        one month of raw claims + enrollment from the CSV import
  BudgetData:             per-month PEPM budget targets
  UserAdjustableLineItem: user-entered monthly adjustments (sign-significant)
  AdminFeeLineItem:       named admin fees calculated by basis (pepm/pmpm/flat)
  HighClaimant:           one high-cost claimant with ISL tracking

SIGN CONVENTION:
  User adjustments carry the sign the user entered: rx rebates are typically
  negative and are added into totals; stop-loss reimbursements are typically
  positive and are subtracted where the summary formulas say so. The engine
  never flips signs on the caller's behalf.
*/
package engine

// =============================================================================
// EXPERIENCE DATA - raw monthly claims inputs
// =============================================================================

// ExperienceMonth is one month of validated claims and enrollment data.
type ExperienceMonth struct {
	Month               MonthKey `json:"month"`
	DomesticMedicalIPOP float64  `json:"domesticMedicalIPOP"`
	NonDomesticMedical  float64  `json:"nonDomesticMedical"`
	NonHospitalMedical  float64  `json:"nonHospitalMedical"`
	RxClaims            float64  `json:"rxClaims"`
	EECount             float64  `json:"eeCount"`
	MemberCount         float64  `json:"memberCount"`
}

// =============================================================================
// BUDGET DATA
// =============================================================================

// BudgetData is the per-month budget row. When a month has no explicit row
// the summary engine substitutes a default built from the target PEPM and
// the month's EE count.
type BudgetData struct {
	Month                  MonthKey `json:"month"`
	PEPMBudget             float64  `json:"pepmBudget"`
	PEPMBudgetEECounts     float64  `json:"pepmBudgetEECounts"`
	AnnualCumulativeBudget float64  `json:"annualCumulativeBudget"`
}

// =============================================================================
// USER ADJUSTMENTS
// =============================================================================

// AdjustmentType enumerates the user-adjustable line item kinds.
type AdjustmentType string

const (
	AdjustmentUCSettlement  AdjustmentType = "uc-settlement"
	AdjustmentRxRebates     AdjustmentType = "rx-rebates"
	AdjustmentStopLossReimb AdjustmentType = "stop-loss-reimbursement"
)

// UserAdjustableLineItem is a user-entered monthly adjustment. Amount keeps
// the sign the user entered.
type UserAdjustableLineItem struct {
	ID      string         `json:"id"`
	Month   MonthKey       `json:"month"`
	Type    AdjustmentType `json:"type"`
	Amount  float64        `json:"amount"`
	Enabled bool           `json:"enabled"`
}

// AdjustmentAmount returns the amount of the first enabled adjustment for
// the month and type, or 0 when none is configured.
func AdjustmentAmount(adjustments []UserAdjustableLineItem, month MonthKey, kind AdjustmentType) float64 {
	for _, adj := range adjustments {
		if adj.Month == month && adj.Type == kind && adj.Enabled {
			return adj.Amount
		}
	}
	return 0
}

// =============================================================================
// ADMIN FEES
// =============================================================================

// AdminFeeBasis is how an admin fee line item scales with enrollment.
type AdminFeeBasis string

const (
	AdminFeePEPM AdminFeeBasis = "pepm"
	AdminFeePMPM AdminFeeBasis = "pmpm"
	AdminFeeFlat AdminFeeBasis = "flat"
)

// AdminFeeLineItem is a named admin fee. CalculatedAmount is derived from
// Basis and the month's enrollment; the raw Amount is never mutated.
type AdminFeeLineItem struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Basis            AdminFeeBasis `json:"basis"`
	Amount           float64       `json:"amount"`
	CalculatedAmount float64       `json:"calculatedAmount"`
	Enrollment       float64       `json:"enrollment,omitempty"`
}

// Calculate returns a copy with CalculatedAmount (and the enrollment figure
// it was derived from) filled in.
func (f AdminFeeLineItem) Calculate(eeCount, memberCount float64) AdminFeeLineItem {
	out := f
	switch f.Basis {
	case AdminFeePEPM:
		out.CalculatedAmount = f.Amount * eeCount
		out.Enrollment = eeCount
	case AdminFeePMPM:
		out.CalculatedAmount = f.Amount * memberCount
		out.Enrollment = memberCount
	case AdminFeeFlat:
		out.CalculatedAmount = f.Amount
	default:
		out.CalculatedAmount = 0
	}
	return out
}

// =============================================================================
// HIGH-COST CLAIMANTS
// =============================================================================

// ClaimantStatus is the enrollment status of a high-cost claimant.
type ClaimantStatus string

const (
	StatusActive     ClaimantStatus = "ACTIVE"
	StatusTerminated ClaimantStatus = "TERMINATED"
	StatusCOBRA      ClaimantStatus = "COBRA"
)

// HighClaimant is one high-cost claimant record.
type HighClaimant struct {
	ID                 string         `json:"id"`
	ClaimantKey        string         `json:"claimantKey"`
	PlanID             string         `json:"planId"`
	Status             ClaimantStatus `json:"status"`
	PrimaryDiagnosis   string         `json:"primaryDiagnosis"`
	MedicalPaid        float64        `json:"medicalPaid"`
	RxPaid             float64        `json:"rxPaid"`
	TotalPaid          float64        `json:"totalPaid"`
	ISLLimit           float64        `json:"islLimit"`
	AmountExceedingISL float64        `json:"amountExceedingISL"`
	Recognized         bool           `json:"recognized"`
}
