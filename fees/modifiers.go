/*
modifiers.go - The four fee adjustment stages

PURPOSE:
  Each stage computes a signed delta added to the running fee amount,
  returning 0 when it does not apply. Seasonal and escalation deltas are
  computed from the base amount (not compounded on each other); the
  constraint delta is computed against base + seasonal + escalation.

STAGE ORDER (fixed):
  1. Seasonal multiplier
  2. Escalation schedule
  3. Cap/floor constraints (absolute first, then per-member)
  4. Proration (documented no-op)

SEE ALSO:
  - calculator.go: Runs the stages in order and records the breakdown
*/
package fees

import (
	"math"

	"github.com/warp/claims-engine/engine"
)

// =============================================================================
// SEASONAL
// =============================================================================

// seasonalDelta returns base*(multiplier-1) for the first modifier whose
// month list contains the request month. Multiple matching modifiers are
// not summed; first match in list order wins.
func seasonalDelta(modifiers []SeasonalModifier, month engine.MonthKey, base float64) (float64, *SeasonalModifier) {
	num := month.MonthNumber()
	if num == 0 {
		return 0, nil
	}
	for i := range modifiers {
		for _, m := range modifiers[i].Months {
			if m == num {
				return base * (modifiers[i].Multiplier - 1), &modifiers[i]
			}
		}
	}
	return 0, nil
}

// =============================================================================
// ESCALATION
// =============================================================================

// escalationDelta returns the escalation growth over the whole periods
// elapsed from the effective start date to the request month. Zero or
// negative elapsed time contributes nothing.
func escalationDelta(sched *EscalationSchedule, startDate string, month engine.MonthKey, base float64) float64 {
	if sched == nil {
		return 0
	}
	periodLen := 1
	switch sched.Frequency {
	case EscalateQuarterly:
		periodLen = 3
	case EscalateAnnual:
		periodLen = 12
	}
	elapsed := engine.MonthsBetween(startDate, month)
	periods := elapsed / periodLen
	if periods <= 0 {
		return 0
	}
	switch sched.Type {
	case EscalationPercentage:
		if sched.Compounding {
			return base * (math.Pow(1+sched.Rate, float64(periods)) - 1)
		}
		return base * sched.Rate * float64(periods)
	case EscalationFixed:
		return sched.Value * float64(periods)
	}
	return 0
}

// =============================================================================
// CONSTRAINTS
// =============================================================================

// constraintDelta clamps the running total to the configured caps and
// floors. Absolute limits are applied first, then per-member limits
// against the already-clamped total, accumulating one adjustment value.
func constraintDelta(c *RateConstraints, runningTotal, enrollment float64) float64 {
	if c == nil {
		return 0
	}
	adjustment := 0.0
	effective := runningTotal

	if c.MaxAmount != nil && effective > *c.MaxAmount {
		adjustment += *c.MaxAmount - effective
		effective = *c.MaxAmount
	}
	if c.MinAmount != nil && effective < *c.MinAmount {
		adjustment += *c.MinAmount - effective
		effective = *c.MinAmount
	}

	if c.MaxPerMember != nil {
		ceiling := *c.MaxPerMember * enrollment
		if effective > ceiling {
			adjustment += ceiling - effective
			effective = ceiling
		}
	}
	if c.MinPerMember != nil {
		floor := *c.MinPerMember * enrollment
		if effective < floor {
			adjustment += floor - effective
			effective = floor
		}
	}
	return adjustment
}

// =============================================================================
// PRORATION
// =============================================================================

// prorationDelta always returns 0. Partial-month proration is configured
// but not implemented upstream; this stays a no-op until the proration
// method semantics are defined. TODO: implement calendar-day proration
// once ProRatingConfig.Method gains defined values.
func prorationDelta(cfg *ProRatingConfig) float64 {
	if cfg == nil || !cfg.Enabled {
		return 0
	}
	return 0
}
