/*
analytics.go - Distribution and high-claimant analytics

PURPOSE:
  Claim-mix distributions (medical vs Rx, per-plan share) and the
  high-cost-claimant analytics: cost-band bucketing against the overall
  paid-claims total, ISL exceedance summary statistics, and the
  qualification filter.

KEY CONCEPTS:
  - Bucket percentages are shares of the GRAND total of all paid claims,
    not just the high-claimant subset
  - Employer responsibility per claimant is min(totalPaid, islLimit);
    the stop-loss carrier is responsible for amountExceedingISL
  - A claimant qualifies for reporting once totalPaid reaches 50% of
    the ISL limit

SEE ALSO:
  - executive.go: KPI rollup consuming the same monthly stats
*/
package plan

import (
	"sort"

	"github.com/warp/claims-engine/engine"
)

// =============================================================================
// CLAIM-MIX DISTRIBUTIONS
// =============================================================================

// DistributionSlice is one labeled share of a distribution.
type DistributionSlice struct {
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// CalculateMedicalRxSplit returns medical and pharmacy paid totals as
// shares of their sum. A zero sum yields zero percentages.
func CalculateMedicalRxSplit(medical, pharmacy float64) []DistributionSlice {
	total := medical + pharmacy
	split := []DistributionSlice{
		{Label: "Medical", Value: medical},
		{Label: "Pharmacy", Value: pharmacy},
	}
	if total > 0 {
		split[0].Percentage = medical / total * 100
		split[1].Percentage = pharmacy / total * 100
	}
	return split
}

// PlanClaims is one plan's paid-claims contribution to the plan mix.
type PlanClaims struct {
	PlanID         string  `json:"planId"`
	PlanName       string  `json:"planName"`
	MedicalClaims  float64 `json:"medicalClaims"`
	PharmacyClaims float64 `json:"pharmacyClaims"`
}

// CalculatePlanMix returns each plan's total claims and share of the
// grand total across all plans, in input order.
func CalculatePlanMix(plans []PlanClaims) []DistributionSlice {
	grand := 0.0
	for _, p := range plans {
		grand += p.MedicalClaims + p.PharmacyClaims
	}
	out := make([]DistributionSlice, 0, len(plans))
	for _, p := range plans {
		s := DistributionSlice{Label: p.PlanName, Value: p.MedicalClaims + p.PharmacyClaims}
		if grand > 0 {
			s.Percentage = s.Value / grand * 100
		}
		out = append(out, s)
	}
	return out
}

// =============================================================================
// HIGH-CLAIMANT BUCKETING
// =============================================================================

// CostBand is one high-claimant cost bucket. MaxPaid of 0 means unbounded.
type CostBand struct {
	Label   string  `json:"label"`
	MinPaid float64 `json:"minPaid"`
	MaxPaid float64 `json:"maxPaid"`
}

// DefaultCostBands are the standard reporting bands.
var DefaultCostBands = []CostBand{
	{Label: "$50K-$100K", MinPaid: 50000, MaxPaid: 100000},
	{Label: "$100K-$250K", MinPaid: 100000, MaxPaid: 250000},
	{Label: "$250K-$500K", MinPaid: 250000, MaxPaid: 500000},
	{Label: "$500K+", MinPaid: 500000, MaxPaid: 0},
}

// ClaimantBucket is one band's claimant count and share of the grand
// total of ALL paid claims.
type ClaimantBucket struct {
	Band            CostBand `json:"band"`
	ClaimantCount   int      `json:"claimantCount"`
	TotalPaid       float64  `json:"totalPaid"`
	PercentOfClaims float64  `json:"percentOfClaims"`
}

// BucketHighClaimants assigns each claimant to the first band containing
// its total paid (min inclusive, max exclusive) and reports each band's
// share of grandTotalClaims.
func BucketHighClaimants(claimants []engine.HighClaimant, bands []CostBand, grandTotalClaims float64) []ClaimantBucket {
	buckets := make([]ClaimantBucket, len(bands))
	for i, b := range bands {
		buckets[i].Band = b
	}
	for _, c := range claimants {
		for i, b := range bands {
			if c.TotalPaid < b.MinPaid {
				continue
			}
			if b.MaxPaid > 0 && c.TotalPaid >= b.MaxPaid {
				continue
			}
			buckets[i].ClaimantCount++
			buckets[i].TotalPaid += c.TotalPaid
			break
		}
	}
	if grandTotalClaims > 0 {
		for i := range buckets {
			buckets[i].PercentOfClaims = buckets[i].TotalPaid / grandTotalClaims * 100
		}
	}
	return buckets
}

// =============================================================================
// HCC SUMMARY STATISTICS
// =============================================================================

// DiagnosisCount is one diagnosis with its claimant frequency.
type DiagnosisCount struct {
	Diagnosis  string  `json:"diagnosis"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// HCCSummary is the high-cost-claimant summary block.
type HCCSummary struct {
	TotalClaimants         int                           `json:"totalClaimants"`
	ClaimantsExceedingISL  int                           `json:"claimantsExceedingISL"`
	TotalMedicalPaid       float64                       `json:"totalMedicalPaid"`
	TotalRxPaid            float64                       `json:"totalRxPaid"`
	TotalPaid              float64                       `json:"totalPaid"`
	EmployerResponsibility float64                       `json:"employerResponsibility"`
	StopLossResponsibility float64                       `json:"stopLossResponsibility"`
	AverageCostPerClaimant float64                       `json:"averageCostPerClaimant"`
	StatusDistribution     map[engine.ClaimantStatus]int `json:"statusDistribution"`
	TopDiagnoses           []DiagnosisCount              `json:"topDiagnoses"`
}

// SummarizeHighClaimants computes the HCC summary block over the given
// claimant list.
func SummarizeHighClaimants(claimants []engine.HighClaimant) HCCSummary {
	s := HCCSummary{
		TotalClaimants:     len(claimants),
		StatusDistribution: map[engine.ClaimantStatus]int{},
	}
	diagnoses := map[string]int{}
	for _, c := range claimants {
		if c.AmountExceedingISL > 0 {
			s.ClaimantsExceedingISL++
		}
		s.TotalMedicalPaid += c.MedicalPaid
		s.TotalRxPaid += c.RxPaid
		s.TotalPaid += c.TotalPaid
		if c.TotalPaid < c.ISLLimit {
			s.EmployerResponsibility += c.TotalPaid
		} else {
			s.EmployerResponsibility += c.ISLLimit
		}
		s.StopLossResponsibility += c.AmountExceedingISL
		s.StatusDistribution[c.Status]++
		if c.PrimaryDiagnosis != "" {
			diagnoses[c.PrimaryDiagnosis]++
		}
	}
	if s.TotalClaimants > 0 {
		s.AverageCostPerClaimant = s.TotalPaid / float64(s.TotalClaimants)
	}

	for d, n := range diagnoses {
		s.TopDiagnoses = append(s.TopDiagnoses, DiagnosisCount{Diagnosis: d, Count: n})
	}
	sort.Slice(s.TopDiagnoses, func(i, j int) bool {
		if s.TopDiagnoses[i].Count != s.TopDiagnoses[j].Count {
			return s.TopDiagnoses[i].Count > s.TopDiagnoses[j].Count
		}
		return s.TopDiagnoses[i].Diagnosis < s.TopDiagnoses[j].Diagnosis
	})
	if len(s.TopDiagnoses) > 5 {
		s.TopDiagnoses = s.TopDiagnoses[:5]
	}
	if s.TotalClaimants > 0 {
		for i := range s.TopDiagnoses {
			s.TopDiagnoses[i].Percentage = float64(s.TopDiagnoses[i].Count) / float64(s.TotalClaimants) * 100
		}
	}
	return s
}

// FilterQualifying returns claimants whose total paid has reached 50%
// of their ISL limit. Claimants with no ISL limit never qualify.
func FilterQualifying(claimants []engine.HighClaimant) []engine.HighClaimant {
	out := make([]engine.HighClaimant, 0, len(claimants))
	for _, c := range claimants {
		if c.ISLLimit > 0 && c.TotalPaid >= c.ISLLimit*0.5 {
			out = append(out, c)
		}
	}
	return out
}
