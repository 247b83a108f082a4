package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/claims-engine/engine"
)

// Eight-claimant fixture used across the analytics tests.
func claimantFixture() []engine.HighClaimant {
	return []engine.HighClaimant{
		{ClaimantKey: "C1", Status: engine.StatusActive, PrimaryDiagnosis: "Cancer", MedicalPaid: 380000, RxPaid: 70000, TotalPaid: 450000, ISLLimit: 250000, AmountExceedingISL: 200000},
		{ClaimantKey: "C2", Status: engine.StatusActive, PrimaryDiagnosis: "Cancer", MedicalPaid: 280000, RxPaid: 20000, TotalPaid: 300000, ISLLimit: 250000, AmountExceedingISL: 50000},
		{ClaimantKey: "C3", Status: engine.StatusTerminated, PrimaryDiagnosis: "Renal Failure", MedicalPaid: 230000, RxPaid: 10000, TotalPaid: 240000, ISLLimit: 250000},
		{ClaimantKey: "C4", Status: engine.StatusActive, PrimaryDiagnosis: "Cardiac", MedicalPaid: 150000, RxPaid: 30000, TotalPaid: 180000, ISLLimit: 250000},
		{ClaimantKey: "C5", Status: engine.StatusCOBRA, PrimaryDiagnosis: "Cancer", MedicalPaid: 120000, RxPaid: 20000, TotalPaid: 140000, ISLLimit: 250000},
		{ClaimantKey: "C6", Status: engine.StatusActive, PrimaryDiagnosis: "Neonatal", MedicalPaid: 125000, RxPaid: 0, TotalPaid: 125000, ISLLimit: 250000},
		{ClaimantKey: "C7", Status: engine.StatusActive, PrimaryDiagnosis: "Cardiac", MedicalPaid: 90000, RxPaid: 10000, TotalPaid: 100000, ISLLimit: 250000},
		{ClaimantKey: "C8", Status: engine.StatusTerminated, PrimaryDiagnosis: "Sepsis", MedicalPaid: 60000, RxPaid: 5000, TotalPaid: 65000, ISLLimit: 250000},
	}
}

func TestCalculateMedicalRxSplit(t *testing.T) {
	split := CalculateMedicalRxSplit(750000, 250000)
	require.Len(t, split, 2)
	assert.InDelta(t, 75, split[0].Percentage, 0.001)
	assert.InDelta(t, 25, split[1].Percentage, 0.001)

	split = CalculateMedicalRxSplit(0, 0)
	assert.Zero(t, split[0].Percentage)
	assert.Zero(t, split[1].Percentage)
}

func TestCalculatePlanMix(t *testing.T) {
	mix := CalculatePlanMix([]PlanClaims{
		{PlanID: "ppo", PlanName: "PPO", MedicalClaims: 600000, PharmacyClaims: 100000},
		{PlanID: "hdhp", PlanName: "HDHP", MedicalClaims: 250000, PharmacyClaims: 50000},
	})
	require.Len(t, mix, 2)
	assert.InDelta(t, 700000, mix[0].Value, 0.001)
	assert.InDelta(t, 70, mix[0].Percentage, 0.001)
	assert.InDelta(t, 30, mix[1].Percentage, 0.001)
}

func TestBucketHighClaimants(t *testing.T) {
	grand := 4000000.0
	buckets := BucketHighClaimants(claimantFixture(), DefaultCostBands, grand)
	require.Len(t, buckets, 4)

	// Band max is exclusive: 100K rolls into the 100K-250K band.
	assert.Equal(t, 1, buckets[0].ClaimantCount)
	assert.InDelta(t, 65000, buckets[0].TotalPaid, 0.001)
	// 100K, 125K, 140K, 180K, 240K.
	assert.Equal(t, 5, buckets[1].ClaimantCount)
	// 300K, 450K.
	assert.Equal(t, 2, buckets[2].ClaimantCount)
	assert.Equal(t, 0, buckets[3].ClaimantCount)

	assert.InDelta(t, 65000/grand*100, buckets[0].PercentOfClaims, 0.001)
}

func TestSummarizeHighClaimants(t *testing.T) {
	s := SummarizeHighClaimants(claimantFixture())

	assert.Equal(t, 8, s.TotalClaimants)
	assert.Equal(t, 2, s.ClaimantsExceedingISL)
	assert.InDelta(t, 1435000, s.TotalMedicalPaid, 0.001)
	assert.InDelta(t, 165000, s.TotalRxPaid, 0.001)
	assert.InDelta(t, 1600000, s.TotalPaid, 0.001)
	// min(totalPaid, islLimit) per claimant: 250K+250K+240K+180K+140K+125K+100K+65K.
	assert.InDelta(t, 1350000, s.EmployerResponsibility, 0.001)
	assert.InDelta(t, 250000, s.StopLossResponsibility, 0.001)
	assert.InDelta(t, 200000, s.AverageCostPerClaimant, 0.001)

	assert.Equal(t, 5, s.StatusDistribution[engine.StatusActive])
	assert.Equal(t, 2, s.StatusDistribution[engine.StatusTerminated])
	assert.Equal(t, 1, s.StatusDistribution[engine.StatusCOBRA])

	require.NotEmpty(t, s.TopDiagnoses)
	assert.Equal(t, "Cancer", s.TopDiagnoses[0].Diagnosis)
	assert.Equal(t, 3, s.TopDiagnoses[0].Count)
	assert.InDelta(t, 37.5, s.TopDiagnoses[0].Percentage, 0.001)
	assert.LessOrEqual(t, len(s.TopDiagnoses), 5)
}

func TestSummarizeHighClaimantsEmpty(t *testing.T) {
	s := SummarizeHighClaimants(nil)
	assert.Zero(t, s.TotalClaimants)
	assert.Zero(t, s.AverageCostPerClaimant)
	assert.Empty(t, s.TopDiagnoses)
}

func TestFilterQualifying(t *testing.T) {
	claimants := []engine.HighClaimant{
		{ClaimantKey: "A", TotalPaid: 125000, ISLLimit: 250000}, // exactly 50%
		{ClaimantKey: "B", TotalPaid: 124999, ISLLimit: 250000},
		{ClaimantKey: "C", TotalPaid: 300000, ISLLimit: 250000},
		{ClaimantKey: "D", TotalPaid: 300000}, // no ISL limit configured
	}
	got := FilterQualifying(claimants)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].ClaimantKey)
	assert.Equal(t, "C", got[1].ClaimantKey)
}
