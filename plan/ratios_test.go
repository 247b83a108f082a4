package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyLossRatio(t *testing.T) {
	assert.InDelta(t, 0.9, MonthlyLossRatio(80000, 10000, 100000), 0.001)
	assert.Zero(t, MonthlyLossRatio(80000, 10000, 0))
	assert.Zero(t, MonthlyLossRatio(80000, 10000, -5))
}

func TestRollingLossRatio(t *testing.T) {
	points := []LossRatioPoint{
		{Month: "2024-01", Claims: 80000, Fees: 10000, Premiums: 100000},
		{Month: "2024-02", Claims: 90000, Fees: 10000, Premiums: 100000},
		{Month: "2024-03", Claims: 100000, Fees: 10000, Premiums: 100000},
	}
	// Full window over all three months.
	assert.InDelta(t, 300000.0/300000.0, RollingLossRatio(points, 2, 3), 0.001)
	// Two-month window ending at the last point.
	assert.InDelta(t, 210000.0/200000.0, RollingLossRatio(points, 2, 2), 0.001)
	// Window longer than history shrinks to what exists.
	assert.InDelta(t, 0.9, RollingLossRatio(points, 0, 12), 0.001)
	// Out-of-range end index.
	assert.Zero(t, RollingLossRatio(points, 5, 3))
}

func TestClassifyLossRatio(t *testing.T) {
	assert.Equal(t, LossRatioGood, ClassifyLossRatio(0.85, 0.85))
	assert.Equal(t, LossRatioWarning, ClassifyLossRatio(0.90, 0.85))
	assert.Equal(t, LossRatioCritical, ClassifyLossRatio(0.95, 0.85))
}

func TestDetectTrend(t *testing.T) {
	assert.Equal(t, TrendWorsening, DetectTrend([]float64{0.8, 0.8, 0.9, 0.95}))
	assert.Equal(t, TrendImproving, DetectTrend([]float64{0.95, 0.9, 0.8, 0.8}))
	assert.Equal(t, TrendStable, DetectTrend([]float64{0.85, 0.85, 0.85, 0.86}))
	assert.Equal(t, TrendStable, DetectTrend([]float64{0.85}))
	assert.Equal(t, TrendStable, DetectTrend(nil))
}

func TestSummarizeSeries(t *testing.T) {
	s := SummarizeSeries([]float64{0.9, 0.8, 1.1, 1.0})
	assert.InDelta(t, 0.95, s.Mean, 0.001)
	assert.InDelta(t, 0.8, s.Best, 0.001)
	assert.Equal(t, 1, s.BestIndex)
	assert.InDelta(t, 1.1, s.Worst, 0.001)
	assert.Equal(t, 2, s.WorstIndex)
	assert.Greater(t, s.Volatility, 0.0)

	empty := SummarizeSeries(nil)
	assert.Zero(t, empty.Mean)
	assert.Equal(t, TrendStable, empty.Trend)
}

func TestProjectNext(t *testing.T) {
	// Perfect line: y = 2x + 1 continues to 9 with full confidence.
	p := ProjectNext([]float64{1, 3, 5, 7})
	assert.InDelta(t, 9, p.NextValue, 0.001)
	assert.InDelta(t, 2, p.Slope, 0.001)
	assert.InDelta(t, 1, p.RSquared, 0.001)
	assert.Equal(t, "high", p.Confidence)

	p = ProjectNext([]float64{5})
	assert.InDelta(t, 5, p.NextValue, 0.001)
	assert.Equal(t, "low", p.Confidence)

	p = ProjectNext(nil)
	assert.Zero(t, p.NextValue)
	assert.Equal(t, "low", p.Confidence)
}

func TestPMPMHelpers(t *testing.T) {
	assert.InDelta(t, 10, PMPM(10000, 1000), 0.001)
	assert.Zero(t, PMPM(10000, 0))
	assert.InDelta(t, 25, PEPM(10000, 400), 0.001)
	assert.Zero(t, PEPM(10000, 0))
	assert.InDelta(t, 5000, PMPMImpact(5, 1000), 0.001)
	assert.InDelta(t, 2, RollingAverage([]float64{1, 2, 3}, 2, 3), 0.001)
	assert.InDelta(t, 2.5, RollingAverage([]float64{1, 2, 3}, 2, 2), 0.001)
}

func TestValidateReconciliation(t *testing.T) {
	ok, msg := ValidateReconciliation([]float64{700000, 300000}, 1000000, 0.01)
	assert.True(t, ok)
	assert.Empty(t, msg)

	ok, msg = ValidateReconciliation([]float64{700000, 300000}, 1010000, 0.01)
	require.False(t, ok)
	assert.Contains(t, msg, "do not reconcile")
}
