/*
ratios.go - Loss-ratio and PMPM utility formulas

PURPOSE:
  Small pure formulas used by the summary and dashboard layers: monthly
  and rolling loss ratios, trend and volatility statistics, a linear
  regression projection, and PMPM/PEPM helpers.

KEY CONCEPTS:
  - Loss ratio = (claims + fees) / premiums, expressed as a fraction
  - Rolling ratios use however much trailing history is available;
    insufficient history is not an error
  - The regression projection is placeholder-quality extrapolation for
    dashboards, not a forecast engine
  - Every division guards its denominator and substitutes 0

SEE ALSO:
  - stats.go: The monthly records these formulas typically consume
*/
package plan

import (
	"math"

	"github.com/warp/claims-engine/engine"
)

// =============================================================================
// LOSS RATIO
// =============================================================================

// MonthlyLossRatio returns (claims+fees)/premiums, or 0 when premiums
// is not positive.
func MonthlyLossRatio(claims, fees, premiums float64) float64 {
	if premiums <= 0 {
		return 0
	}
	return (claims + fees) / premiums
}

// LossRatioPoint is one month's inputs for rolling calculations.
type LossRatioPoint struct {
	Month    engine.MonthKey `json:"month"`
	Claims   float64         `json:"claims"`
	Fees     float64         `json:"fees"`
	Premiums float64         `json:"premiums"`
}

// RollingLossRatio computes the ratio over the trailing window ending at
// index end (inclusive). A window longer than the available history
// shrinks to what exists.
func RollingLossRatio(points []LossRatioPoint, end, window int) float64 {
	if end < 0 || end >= len(points) || window <= 0 {
		return 0
	}
	start := end - window + 1
	if start < 0 {
		start = 0
	}
	var claims, fees, premiums float64
	for _, p := range points[start : end+1] {
		claims += p.Claims
		fees += p.Fees
		premiums += p.Premiums
	}
	return MonthlyLossRatio(claims, fees, premiums)
}

// LossRatioStatus classifies a ratio against a target.
type LossRatioStatus string

const (
	LossRatioGood     LossRatioStatus = "good"
	LossRatioWarning  LossRatioStatus = "warning"
	LossRatioCritical LossRatioStatus = "critical"
)

// ClassifyLossRatio compares a ratio to the target: good at or under
// target, warning within 10% over, critical beyond.
func ClassifyLossRatio(ratio, target float64) LossRatioStatus {
	switch {
	case ratio <= target:
		return LossRatioGood
	case ratio <= target*1.1:
		return LossRatioWarning
	default:
		return LossRatioCritical
	}
}

// =============================================================================
// TREND AND SUMMARY STATISTICS
// =============================================================================

// Trend labels the direction of a metric series.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendWorsening Trend = "worsening"
)

// DetectTrend compares the mean of the last half of the series against
// the first half; moves within 2% are stable. For loss ratios, a lower
// value is an improvement.
func DetectTrend(values []float64) Trend {
	if len(values) < 2 {
		return TrendStable
	}
	half := len(values) / 2
	first := mean(values[:len(values)-half])
	second := mean(values[len(values)-half:])
	if first == 0 {
		return TrendStable
	}
	change := (second - first) / first
	switch {
	case change < -0.02:
		return TrendImproving
	case change > 0.02:
		return TrendWorsening
	default:
		return TrendStable
	}
}

// SeriesSummary is descriptive statistics over a metric series.
type SeriesSummary struct {
	Mean       float64 `json:"mean"`
	Best       float64 `json:"best"`
	BestIndex  int     `json:"bestIndex"`
	Worst      float64 `json:"worst"`
	WorstIndex int     `json:"worstIndex"`
	Volatility float64 `json:"volatility"`
	Trend      Trend   `json:"trend"`
}

// SummarizeSeries computes mean, best (lowest) and worst (highest)
// values, population standard deviation, and trend. Empty input yields
// a zero summary.
func SummarizeSeries(values []float64) SeriesSummary {
	if len(values) == 0 {
		return SeriesSummary{Trend: TrendStable}
	}
	s := SeriesSummary{Best: values[0], Worst: values[0]}
	for i, v := range values {
		if v < s.Best {
			s.Best, s.BestIndex = v, i
		}
		if v > s.Worst {
			s.Worst, s.WorstIndex = v, i
		}
	}
	s.Mean = mean(values)
	variance := 0.0
	for _, v := range values {
		variance += (v - s.Mean) * (v - s.Mean)
	}
	s.Volatility = math.Sqrt(variance / float64(len(values)))
	s.Trend = DetectTrend(values)
	return s
}

// =============================================================================
// LINEAR PROJECTION
// =============================================================================

// Projection is a least-squares extrapolation of a metric series.
type Projection struct {
	NextValue  float64 `json:"nextValue"`
	Slope      float64 `json:"slope"`
	Intercept  float64 `json:"intercept"`
	RSquared   float64 `json:"rSquared"`
	Confidence string  `json:"confidence"`
}

// ProjectNext fits y = slope*x + intercept over the series (x = index)
// and extrapolates one step past the end. Confidence is "high" when
// R-squared >= 0.7, "medium" >= 0.4, otherwise "low". Fewer than two
// points project the last value forward unchanged.
func ProjectNext(values []float64) Projection {
	n := float64(len(values))
	if len(values) == 0 {
		return Projection{Confidence: "low"}
	}
	if len(values) == 1 {
		return Projection{NextValue: values[0], Intercept: values[0], Confidence: "low"}
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return Projection{NextValue: values[len(values)-1], Confidence: "low"}
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	meanY := sumY / n
	var ssTot, ssRes float64
	for i, y := range values {
		fit := slope*float64(i) + intercept
		ssRes += (y - fit) * (y - fit)
		ssTot += (y - meanY) * (y - meanY)
	}
	r2 := 0.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}

	p := Projection{
		NextValue: slope*n + intercept,
		Slope:     slope,
		Intercept: intercept,
		RSquared:  r2,
	}
	switch {
	case r2 >= 0.7:
		p.Confidence = "high"
	case r2 >= 0.4:
		p.Confidence = "medium"
	default:
		p.Confidence = "low"
	}
	return p
}

// =============================================================================
// PMPM / PEPM HELPERS
// =============================================================================

// PMPM returns totalCost/memberMonths, or 0 on a zero denominator.
func PMPM(totalCost, memberMonths float64) float64 {
	if memberMonths <= 0 {
		return 0
	}
	return totalCost / memberMonths
}

// PEPM returns totalCost/employeeCount, or 0 on a zero denominator.
func PEPM(totalCost, employeeCount float64) float64 {
	if employeeCount <= 0 {
		return 0
	}
	return totalCost / employeeCount
}

// PMPMImpact returns the total-cost delta implied by a PMPM change over
// the given member-months.
func PMPMImpact(pmpmDelta, memberMonths float64) float64 {
	return pmpmDelta * memberMonths
}

// RollingAverage returns the mean of the trailing window ending at end.
func RollingAverage(values []float64, end, window int) float64 {
	if end < 0 || end >= len(values) || window <= 0 {
		return 0
	}
	start := end - window + 1
	if start < 0 {
		start = 0
	}
	return mean(values[start : end+1])
}

// =============================================================================
// RECONCILIATION
// =============================================================================

// ValidateReconciliation checks that per-plan claim totals sum to the
// book-of-business total within the tolerance. Returns a human-readable
// message when they do not.
func ValidateReconciliation(planTotals []float64, bookTotal, tolerance float64) (bool, string) {
	sum := 0.0
	for _, t := range planTotals {
		sum += t
	}
	diff := math.Abs(sum - bookTotal)
	if diff <= tolerance {
		return true, ""
	}
	return false, "plan totals " + engine.FormatCurrency(sum) +
		" do not reconcile to book total " + engine.FormatCurrency(bookTotal) +
		" (difference " + engine.FormatCurrency(diff) + ")"
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
