/*
tiers.go - Enrollment tier resolution and tier-set validation

PURPOSE:
  Resolves which enrollment band applies to a month's enrollment count
  and computes the tiered per-member amount. Also provides the advisory
  tier-set validator used by configuration surfaces.

KEY CONCEPTS:
  - Resolution scans tiers in input order; first match wins, even for
    malformed/overlapping sets
  - Boundaries are inclusive on both ends
  - Validation is advisory only and never blocks calculation

SEE ALSO:
  - calculator.go: Uses ResolveTier for tiered pmpm/pepm bases
*/
package fees

import "fmt"

// =============================================================================
// RESOLUTION
// =============================================================================

// TierResolution is the outcome of a tier lookup. Tier is nil and Amount
// is 0 when no tier matches.
type TierResolution struct {
	Tier   *FeeTier
	Amount float64
}

// ResolveTier selects the first tier containing the enrollment count and
// returns the per-member amount rate*enrollment. Never fails: a set with
// no matching tier yields a zero amount.
func ResolveTier(tiers []FeeTier, enrollment float64) TierResolution {
	for i := range tiers {
		t := &tiers[i]
		if enrollment < t.MinEnrollment {
			continue
		}
		if t.MaxEnrollment != nil && enrollment > *t.MaxEnrollment {
			continue
		}
		return TierResolution{Tier: t, Amount: t.Rate * enrollment}
	}
	return TierResolution{}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidateTiers reports tier-set problems as human-readable strings:
// gaps, overlaps, an unbounded max on a non-last tier, inverted ranges,
// and non-positive rates. Tiers are checked in minEnrollment order.
func ValidateTiers(tiers []FeeTier) []string {
	var issues []string
	if len(tiers) == 0 {
		return issues
	}

	sorted := make([]FeeTier, len(tiers))
	copy(sorted, tiers)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].MinEnrollment < sorted[j-1].MinEnrollment; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	for i, t := range sorted {
		if t.MaxEnrollment != nil && t.MinEnrollment > *t.MaxEnrollment {
			issues = append(issues, fmt.Sprintf(
				"tier %q has an invalid range: min %g exceeds max %g",
				t.Label, t.MinEnrollment, *t.MaxEnrollment))
		}
		if t.Rate <= 0 {
			issues = append(issues, fmt.Sprintf(
				"tier %q has an invalid rate: %g (must be positive)", t.Label, t.Rate))
		}
		if t.MaxEnrollment == nil && i != len(sorted)-1 {
			issues = append(issues, fmt.Sprintf(
				"tier %q has an unlimited max but is not the last tier", t.Label))
		}
		if i == len(sorted)-1 {
			continue
		}
		next := sorted[i+1]
		if t.MaxEnrollment == nil {
			continue
		}
		if next.MinEnrollment <= *t.MaxEnrollment {
			issues = append(issues, fmt.Sprintf(
				"tiers %q and %q overlap: %g <= %g",
				t.Label, next.Label, next.MinEnrollment, *t.MaxEnrollment))
		} else if *t.MaxEnrollment+1 != next.MinEnrollment {
			issues = append(issues, fmt.Sprintf(
				"gap between tiers %q and %q: %g to %g is uncovered",
				t.Label, next.Label, *t.MaxEnrollment+1, next.MinEnrollment-1))
		}
	}
	return issues
}
