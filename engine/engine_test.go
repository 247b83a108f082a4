package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthKeyValid(t *testing.T) {
	tests := []struct {
		key  MonthKey
		want bool
	}{
		{"2024-01", true},
		{"2024-12", true},
		{"2024-13", false},
		{"2024-00", false},
		{"2024-1", false},
		{"24-01", false},
		{"2024/01", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.key.Valid(), "key %q", tt.key)
	}
}

func TestMonthKeyArithmetic(t *testing.T) {
	m := NewMonthKey(2024, time.July)
	require.Equal(t, MonthKey("2024-07"), m)

	assert.Equal(t, MonthKey("2024-12"), m.AddMonths(5))
	assert.Equal(t, MonthKey("2025-01"), m.AddMonths(6))
	assert.Equal(t, MonthKey("2023-12"), m.AddMonths(-7))
	assert.Equal(t, 2024, m.Year())
	assert.Equal(t, 7, m.MonthNumber())
	assert.True(t, MonthKey("2024-07").Before("2024-08"))
	assert.True(t, MonthKey("2024-12").Before("2025-01"))
}

func TestMonthsBetween(t *testing.T) {
	assert.Equal(t, 0, MonthsBetween("2024-01-01", "2024-01"))
	assert.Equal(t, 6, MonthsBetween("2024-01-01", "2024-07"))
	assert.Equal(t, 14, MonthsBetween("2024-01-15", "2025-03"))
	assert.Equal(t, -2, MonthsBetween("2024-03-01", "2024-01"))
	// Plain YYYY-MM start dates are accepted too.
	assert.Equal(t, 12, MonthsBetween("2023-07", "2024-07"))
	assert.Equal(t, 0, MonthsBetween("garbage", "2024-07"))
}

func TestSortMonthKeys(t *testing.T) {
	keys := []MonthKey{"2024-03", "2024-01", "2024-03", "2023-12", "2024-01"}
	got := SortMonthKeys(keys)
	assert.Equal(t, []MonthKey{"2023-12", "2024-01", "2024-03"}, got)
}

func TestAdjustmentAmount(t *testing.T) {
	adjs := []UserAdjustableLineItem{
		{Month: "2024-07", Type: AdjustmentRxRebates, Amount: -12000, Enabled: true},
		{Month: "2024-07", Type: AdjustmentStopLossReimb, Amount: 50000, Enabled: false},
		{Month: "2024-08", Type: AdjustmentUCSettlement, Amount: 3000, Enabled: true},
	}
	assert.Equal(t, -12000.0, AdjustmentAmount(adjs, "2024-07", AdjustmentRxRebates))
	// Disabled items contribute nothing.
	assert.Equal(t, 0.0, AdjustmentAmount(adjs, "2024-07", AdjustmentStopLossReimb))
	assert.Equal(t, 0.0, AdjustmentAmount(adjs, "2024-09", AdjustmentUCSettlement))
}

func TestAdminFeeCalculate(t *testing.T) {
	fee := AdminFeeLineItem{Name: "TPA", Basis: AdminFeePEPM, Amount: 45}
	got := fee.Calculate(450, 900)
	assert.Equal(t, 20250.0, got.CalculatedAmount)
	assert.Equal(t, 450.0, got.Enrollment)

	fee.Basis = AdminFeePMPM
	got = fee.Calculate(450, 900)
	assert.Equal(t, 40500.0, got.CalculatedAmount)
	assert.Equal(t, 900.0, got.Enrollment)

	fee.Basis = AdminFeeFlat
	got = fee.Calculate(450, 900)
	assert.Equal(t, 45.0, got.CalculatedAmount)
}

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 711.11, RoundCents(711.111111))
	assert.Equal(t, 0.13, RoundCents(0.125))
	assert.Equal(t, -0.13, RoundCents(-0.125))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "$1,234,567.80", FormatCurrency(1234567.8))
	assert.Equal(t, "-$1,234,567.80", FormatCurrency(-1234567.8))
	assert.Equal(t, "$0.00", FormatCurrency(0))
	assert.Equal(t, "$999.50", FormatCurrency(999.499))
	assert.Equal(t, "12,450", FormatNumber(12450.4))
	assert.Equal(t, "94.3%", FormatPercent(94.2857))
}
