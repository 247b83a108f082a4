/*
Package fees computes administrative and stop-loss fee amounts.

PURPOSE:
  This package implements the fee configuration model and the monthly fee
  calculator: enrollment-tiered rates, nine rate bases, and the modifier
  pipeline (seasonal multipliers, escalation schedules, cap/floor
  constraints, proration).

KEY CONCEPTS IN THIS FILE (types.go):
  - FeeStructure: a versioned fee definition with rate basis and modifiers
  - FeeCalculationRequest: the per-month input bundle for one calculation
  - MonthlyFeeInstance: the audited result of one calculation
  - CalculationResult: success/errors/warnings envelope

DESIGN PRINCIPLES:
  1. Validation fails closed: a request that cannot be calculated returns
     success:false with error strings and no partial instance
  2. Every adjustment is a signed delta recorded separately in the instance
  3. Instances are created fresh per call and never mutated

SEE ALSO:
  - tiers.go: Tier resolution and tier-set validation
  - modifiers.go: Seasonal, escalation, constraint, proration deltas
  - calculator.go: Rate-basis dispatch and the pipeline
*/
package fees

import (
	"time"

	"github.com/warp/claims-engine/engine"
)

// =============================================================================
// RATE BASIS
// =============================================================================

// RateBasis selects the base-amount formula for a fee structure.
type RateBasis string

const (
	BasisPMPM           RateBasis = "pmpm"
	BasisPEPM           RateBasis = "pepm"
	BasisPercentPremium RateBasis = "percent_premium"
	BasisPercentClaims  RateBasis = "percent_claims"
	BasisPerTransaction RateBasis = "per_transaction"
	BasisFlat           RateBasis = "flat"
	BasisBlended        RateBasis = "blended"
	BasisComposite      RateBasis = "composite"
	BasisManual         RateBasis = "manual"
)

// FeeStatus is the lifecycle state of a fee structure.
type FeeStatus string

const (
	StatusDraft    FeeStatus = "draft"
	StatusPending  FeeStatus = "pending"
	StatusApproved FeeStatus = "approved"
	StatusActive   FeeStatus = "active"
	StatusExpired  FeeStatus = "expired"
	StatusArchived FeeStatus = "archived"
)

// =============================================================================
// TIERS
// =============================================================================

// FeeTier is one enrollment band with its per-member rate.
// MaxEnrollment nil means unbounded; only the last tier of a valid set
// may be unbounded.
type FeeTier struct {
	ID            string   `json:"id"`
	MinEnrollment float64  `json:"minEnrollment"`
	MaxEnrollment *float64 `json:"maxEnrollment"`
	Rate          float64  `json:"rate"`
	Label         string   `json:"label"`
	Color         string   `json:"color,omitempty"`
}

// =============================================================================
// MODIFIERS
// =============================================================================

// SeasonalModifier multiplies the base amount in the listed months (1-12).
type SeasonalModifier struct {
	Name       string  `json:"name"`
	Months     []int   `json:"months"`
	Multiplier float64 `json:"multiplier"`
}

// EscalationFrequency sets the period length of an escalation schedule.
type EscalationFrequency string

const (
	EscalateMonthly   EscalationFrequency = "monthly"
	EscalateQuarterly EscalationFrequency = "quarterly"
	EscalateAnnual    EscalationFrequency = "annual"
)

// EscalationType distinguishes percentage growth from fixed step-ups.
type EscalationType string

const (
	EscalationPercentage EscalationType = "percentage"
	EscalationFixed      EscalationType = "fixed"
)

// EscalationSchedule grows the fee over time from the structure's
// effective start date. Rate is a fraction (0.05 = 5%) for percentage
// schedules; Value is a dollar step per period for fixed schedules.
type EscalationSchedule struct {
	Type        EscalationType      `json:"type"`
	Frequency   EscalationFrequency `json:"frequency"`
	Rate        float64             `json:"rate,omitempty"`
	Value       float64             `json:"value,omitempty"`
	Compounding bool                `json:"compounding"`
}

// RateConstraints caps and floors the running fee amount. Absolute
// constraints apply before per-member constraints.
type RateConstraints struct {
	MinAmount    *float64 `json:"minAmount,omitempty"`
	MaxAmount    *float64 `json:"maxAmount,omitempty"`
	MinPerMember *float64 `json:"minPerMember,omitempty"`
	MaxPerMember *float64 `json:"maxPerMember,omitempty"`
}

// ProRatingConfig marks partial-month proration as enabled. The
// calculation is a documented no-op that always contributes zero.
type ProRatingConfig struct {
	Enabled bool   `json:"enabled"`
	Method  string `json:"method,omitempty"`
}

// =============================================================================
// BLENDED / COMPOSITE RATES
// =============================================================================

// BlendedComponentType selects the formula of one blended component.
type BlendedComponentType string

const (
	ComponentFixed          BlendedComponentType = "fixed"
	ComponentPercentPremium BlendedComponentType = "percent_premium"
	ComponentPercentClaims  BlendedComponentType = "percent_claims"
	ComponentPMPM           BlendedComponentType = "pmpm"
)

// BlendedComponent is one addend of a blended rate. Value is a dollar
// amount for fixed/pmpm components and a percentage (0-100) for the
// percent components.
type BlendedComponent struct {
	Name  string               `json:"name"`
	Type  BlendedComponentType `json:"type"`
	Value float64              `json:"value"`
}

// CompositeBasis selects how composite member/dependent rates combine.
type CompositeBasis string

const (
	CompositePMPM CompositeBasis = "pmpm"
	CompositeFlat CompositeBasis = "flat"
)

// CompositeRate is a member/dependent rate pair.
type CompositeRate struct {
	Basis         CompositeBasis `json:"basis"`
	MemberRate    float64        `json:"memberRate"`
	DependentRate float64        `json:"dependentRate"`
}

// =============================================================================
// FEE STRUCTURE
// =============================================================================

// FeeStructure is a versioned fee definition.
type FeeStructure struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Category           string              `json:"category"`
	RateBasis          RateBasis           `json:"rateBasis"`
	BaseAmount         float64             `json:"baseAmount"`
	Percentage         float64             `json:"percentage"`
	BlendedComponents  []BlendedComponent  `json:"blendedComponents,omitempty"`
	CompositeRate      *CompositeRate      `json:"compositeRate,omitempty"`
	Tiers              []FeeTier           `json:"tiers,omitempty"`
	TieringEnabled     bool                `json:"tieringEnabled"`
	Constraints        *RateConstraints    `json:"constraints,omitempty"`
	SeasonalModifiers  []SeasonalModifier  `json:"seasonalModifiers,omitempty"`
	Escalation         *EscalationSchedule `json:"escalation,omitempty"`
	ProRating          *ProRatingConfig    `json:"proRating,omitempty"`
	EffectiveStartDate string              `json:"effectiveStartDate"`
	EffectiveEndDate   string              `json:"effectiveEndDate,omitempty"`
	Status             FeeStatus           `json:"status"`
	Version            int                 `json:"version"`
}

// =============================================================================
// REQUEST / RESULT
// =============================================================================

// FeeCalculationRequest is the per-month input bundle. Optional fields
// are pointers so the validator can distinguish "absent" from zero.
type FeeCalculationRequest struct {
	Month            engine.MonthKey `json:"month"`
	Enrollment       float64         `json:"enrollment"`
	PremiumAmount    *float64        `json:"premiumAmount,omitempty"`
	ClaimsAmount     *float64        `json:"claimsAmount,omitempty"`
	TransactionCount *float64        `json:"transactionCount,omitempty"`
	MemberCount      *float64        `json:"memberCount,omitempty"`
	DependentCount   *float64        `json:"dependentCount,omitempty"`
}

// ComponentAmount is the recomputed display amount of one blended component.
type ComponentAmount struct {
	Name   string               `json:"name"`
	Type   BlendedComponentType `json:"type"`
	Amount float64              `json:"amount"`
}

// AdjustmentDetail is one non-zero pipeline adjustment in the breakdown.
type AdjustmentDetail struct {
	Stage       string  `json:"stage"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// Breakdown is the auditable decomposition of a calculated instance.
type Breakdown struct {
	BaseDescription string             `json:"baseDescription"`
	Components      []ComponentAmount  `json:"components,omitempty"`
	Adjustments     []AdjustmentDetail `json:"adjustments,omitempty"`
}

// MonthlyFeeInstance is the calculated result for one fee structure in
// one month.
type MonthlyFeeInstance struct {
	ID                   string          `json:"id"`
	FeeStructureID       string          `json:"feeStructureId"`
	FeeStructureName     string          `json:"feeStructureName"`
	Month                engine.MonthKey `json:"month"`
	RateBasis            RateBasis       `json:"rateBasis"`
	BaseCalculatedAmount float64         `json:"baseCalculatedAmount"`
	AppliedTier          *FeeTier        `json:"appliedTier,omitempty"`
	SeasonalAdjustment   float64         `json:"seasonalAdjustment"`
	EscalationAdjustment float64         `json:"escalationAdjustment"`
	ConstraintAdjustment float64         `json:"constraintAdjustment"`
	ProrationAdjustment  float64         `json:"prorationAdjustment"`
	FinalAmount          float64         `json:"finalAmount"`
	Breakdown            Breakdown       `json:"breakdown"`
	CalculatedAt         time.Time       `json:"calculatedAt"`
}

// CalculationResult is the fee calculator's envelope. When Success is
// false, Instance is nil and Errors lists every validation failure.
type CalculationResult struct {
	Success  bool                `json:"success"`
	Instance *MonthlyFeeInstance `json:"monthlyFeeInstance,omitempty"`
	Errors   []string            `json:"errors,omitempty"`
	Warnings []string            `json:"warnings,omitempty"`
}
