/*
calculator.go - Monthly fee calculation with rate-basis dispatch

PURPOSE:
  Computes one month's fee amount for a fee structure. Validates the
  request against the rate basis, dispatches to exactly one base-amount
  formula, then runs the modifier pipeline and assembles the audited
  instance.

PIPELINE:
  validate -> base amount (one of nine bases) -> seasonal -> escalation
  -> constraints -> proration -> finalAmount

EXAMPLE:
  result := fees.Calculate(structure, fees.FeeCalculationRequest{
      Month: "2024-07", Enrollment: 1000,
  })
  if result.Success {
      fmt.Println(result.Instance.FinalAmount)
  }

SEE ALSO:
  - tiers.go: Tiered pmpm/pepm resolution
  - modifiers.go: The adjustment stages
*/
package fees

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/warp/claims-engine/engine"
)

// =============================================================================
// VALIDATION
// =============================================================================

func validateRequest(fs FeeStructure, req FeeCalculationRequest) []string {
	var errs []string
	if !req.Month.Valid() {
		errs = append(errs, fmt.Sprintf("month %q is not a valid YYYY-MM key", req.Month))
	}
	switch fs.RateBasis {
	case BasisPMPM, BasisPEPM:
		if req.Enrollment <= 0 {
			errs = append(errs, fmt.Sprintf("%s rate basis requires enrollment > 0", fs.RateBasis))
		}
	case BasisPercentPremium:
		if req.PremiumAmount == nil {
			errs = append(errs, "percent_premium rate basis requires a premium amount")
		}
	case BasisPercentClaims:
		if req.ClaimsAmount == nil {
			errs = append(errs, "percent_claims rate basis requires a claims amount")
		}
	case BasisPerTransaction:
		if req.TransactionCount == nil {
			errs = append(errs, "per_transaction rate basis requires a transaction count")
		}
	case BasisComposite:
		if req.MemberCount == nil || req.DependentCount == nil {
			errs = append(errs, "composite rate basis requires member and dependent counts")
		}
		if fs.CompositeRate == nil {
			errs = append(errs, "composite rate basis requires a composite rate configuration")
		}
	case BasisFlat, BasisBlended, BasisManual:
	default:
		errs = append(errs, fmt.Sprintf("unknown rate basis %q", fs.RateBasis))
	}
	return errs
}

// =============================================================================
// BASE CALCULATION
// =============================================================================

func blendedComponentAmount(c BlendedComponent, req FeeCalculationRequest) float64 {
	switch c.Type {
	case ComponentFixed:
		return c.Value
	case ComponentPercentPremium:
		if req.PremiumAmount == nil {
			return 0
		}
		return *req.PremiumAmount * (c.Value / 100)
	case ComponentPercentClaims:
		if req.ClaimsAmount == nil {
			return 0
		}
		return *req.ClaimsAmount * (c.Value / 100)
	case ComponentPMPM:
		return c.Value * req.Enrollment
	}
	return 0
}

func baseAmount(fs FeeStructure, req FeeCalculationRequest) (amount float64, tier *FeeTier, components []ComponentAmount, warnings []string) {
	switch fs.RateBasis {
	case BasisPMPM, BasisPEPM:
		if fs.TieringEnabled && len(fs.Tiers) > 0 {
			res := ResolveTier(fs.Tiers, req.Enrollment)
			return res.Amount, res.Tier, nil, nil
		}
		return fs.BaseAmount * req.Enrollment, nil, nil, nil
	case BasisPercentPremium:
		return *req.PremiumAmount * (fs.Percentage / 100), nil, nil, nil
	case BasisPercentClaims:
		return *req.ClaimsAmount * (fs.Percentage / 100), nil, nil, nil
	case BasisPerTransaction:
		return fs.BaseAmount * *req.TransactionCount, nil, nil, nil
	case BasisFlat:
		return fs.BaseAmount, nil, nil, nil
	case BasisBlended:
		total := 0.0
		for _, c := range fs.BlendedComponents {
			a := blendedComponentAmount(c, req)
			total += a
			components = append(components, ComponentAmount{Name: c.Name, Type: c.Type, Amount: a})
		}
		return total, nil, components, nil
	case BasisComposite:
		cr := fs.CompositeRate
		if cr.Basis == CompositePMPM {
			return cr.MemberRate*(*req.MemberCount) + cr.DependentRate*(*req.DependentCount), nil, nil, nil
		}
		return cr.MemberRate + cr.DependentRate, nil, nil, nil
	case BasisManual:
		return fs.BaseAmount, nil, nil,
			[]string{"manual rate basis: amount is not auto-calculated"}
	}
	return 0, nil, nil, nil
}

// =============================================================================
// CALCULATE
// =============================================================================

// Calculate computes one month's fee instance for a fee structure.
// Validation failures return success:false with no partial instance.
func Calculate(fs FeeStructure, req FeeCalculationRequest) CalculationResult {
	if errs := validateRequest(fs, req); len(errs) > 0 {
		return CalculationResult{Success: false, Errors: errs}
	}

	base, tier, components, warnings := baseAmount(fs, req)

	seasonal, seasonalMod := seasonalDelta(fs.SeasonalModifiers, req.Month, base)
	escalation := escalationDelta(fs.Escalation, fs.EffectiveStartDate, req.Month, base)
	constraint := constraintDelta(fs.Constraints, base+seasonal+escalation, req.Enrollment)
	proration := prorationDelta(fs.ProRating)

	final := base + seasonal + escalation + constraint + proration

	breakdown := Breakdown{Components: components}
	switch {
	case tier != nil:
		breakdown.BaseDescription = fmt.Sprintf("tier %q: %g x %g enrolled", tier.Label, tier.Rate, req.Enrollment)
	case fs.RateBasis == BasisBlended:
		breakdown.BaseDescription = fmt.Sprintf("blended: %d components", len(components))
	default:
		breakdown.BaseDescription = fmt.Sprintf("%s base: %s", fs.RateBasis, engine.FormatCurrency(base))
	}
	if seasonal != 0 && seasonalMod != nil {
		breakdown.Adjustments = append(breakdown.Adjustments, AdjustmentDetail{
			Stage:       "seasonal",
			Amount:      seasonal,
			Description: fmt.Sprintf("%s x%g", seasonalMod.Name, seasonalMod.Multiplier),
		})
	}
	if escalation != 0 {
		breakdown.Adjustments = append(breakdown.Adjustments, AdjustmentDetail{
			Stage:       "escalation",
			Amount:      escalation,
			Description: fmt.Sprintf("%s %s escalation since %s", fs.Escalation.Frequency, fs.Escalation.Type, fs.EffectiveStartDate),
		})
	}
	if constraint != 0 {
		breakdown.Adjustments = append(breakdown.Adjustments, AdjustmentDetail{
			Stage:       "constraint",
			Amount:      constraint,
			Description: "cap/floor applied",
		})
	}

	instance := &MonthlyFeeInstance{
		ID:                   uuid.NewString(),
		FeeStructureID:       fs.ID,
		FeeStructureName:     fs.Name,
		Month:                req.Month,
		RateBasis:            fs.RateBasis,
		BaseCalculatedAmount: base,
		AppliedTier:          tier,
		SeasonalAdjustment:   seasonal,
		EscalationAdjustment: escalation,
		ConstraintAdjustment: constraint,
		ProrationAdjustment:  proration,
		FinalAmount:          final,
		Breakdown:            breakdown,
		CalculatedAt:         time.Now().UTC(),
	}
	return CalculationResult{Success: true, Instance: instance, Warnings: warnings}
}

// =============================================================================
// BATCHING AND PROJECTION
// =============================================================================

// CalculateMultipleMonths runs Calculate for each request and returns the
// results in input order. Failed months fail individually; the batch
// never aborts.
func CalculateMultipleMonths(fs FeeStructure, requests []FeeCalculationRequest) []CalculationResult {
	results := make([]CalculationResult, 0, len(requests))
	for _, req := range requests {
		results = append(results, Calculate(fs, req))
	}
	return results
}

// AnnualProjection is a 12-month fee projection built from a template
// request advanced one month at a time.
type AnnualProjection struct {
	FeeStructureID string               `json:"feeStructureId"`
	StartMonth     engine.MonthKey      `json:"startMonth"`
	TotalAnnual    float64              `json:"totalAnnual"`
	MonthlyAverage float64              `json:"monthlyAverage"`
	Instances      []MonthlyFeeInstance `json:"instances"`
	Warnings       []string             `json:"warnings,omitempty"`
}

// ProjectAnnualFees projects twelve consecutive months from startMonth
// using the template request's enrollment and amounts for every month.
// Months that fail validation are reported as warnings and excluded
// from the total.
func ProjectAnnualFees(fs FeeStructure, template FeeCalculationRequest, startMonth engine.MonthKey) AnnualProjection {
	proj := AnnualProjection{FeeStructureID: fs.ID, StartMonth: startMonth}
	for i := 0; i < 12; i++ {
		req := template
		req.Month = startMonth.AddMonths(i)
		res := Calculate(fs, req)
		if !res.Success {
			proj.Warnings = append(proj.Warnings,
				fmt.Sprintf("month %s excluded: %v", req.Month, res.Errors))
			continue
		}
		proj.Instances = append(proj.Instances, *res.Instance)
		proj.TotalAnnual += res.Instance.FinalAmount
	}
	if n := len(proj.Instances); n > 0 {
		proj.MonthlyAverage = proj.TotalAnnual / float64(n)
	}
	return proj
}
