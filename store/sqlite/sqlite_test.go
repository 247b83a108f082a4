package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/claims-engine/engine"
	"github.com/warp/claims-engine/fees"
	"github.com/warp/claims-engine/store"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	r, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestSQLiteExperienceRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	err := r.UpsertExperience(ctx, []engine.ExperienceMonth{
		{Month: "2024-02", DomesticMedicalIPOP: 160000, NonDomesticMedical: 25000, NonHospitalMedical: 85000, RxClaims: 47000, EECount: 455, MemberCount: 910},
		{Month: "2024-01", DomesticMedicalIPOP: 150000, EECount: 450, MemberCount: 900},
	})
	require.NoError(t, err)

	got, err := r.ListExperience(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, engine.MonthKey("2024-01"), got[0].Month)
	assert.InDelta(t, 910, got[1].MemberCount, 0.001)

	// Upsert replaces in place.
	require.NoError(t, r.UpsertExperience(ctx, []engine.ExperienceMonth{
		{Month: "2024-01", DomesticMedicalIPOP: 170000, EECount: 452},
	}))
	got, err = r.ListExperience(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 170000, got[0].DomesticMedicalIPOP, 0.001)

	require.NoError(t, r.DeleteExperience(ctx, "2024-02"))
	assert.True(t, engine.IsNotFound(r.DeleteExperience(ctx, "2024-02")))
}

func TestSQLiteFeeStructureDocument(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	maxAmt := 50000.0
	fs := fees.FeeStructure{
		ID:             "fs1",
		Name:           "Tiered Admin",
		RateBasis:      fees.BasisPEPM,
		Status:         fees.StatusActive,
		Version:        2,
		TieringEnabled: true,
		Tiers: []fees.FeeTier{
			{ID: "t1", Label: "Base", MinEnrollment: 1, Rate: 45},
		},
		Constraints:        &fees.RateConstraints{MaxAmount: &maxAmt},
		EffectiveStartDate: "2024-01-01",
	}
	require.NoError(t, r.SaveFeeStructure(ctx, fs))

	got, err := r.GetFeeStructure(ctx, "fs1")
	require.NoError(t, err)
	assert.Equal(t, fs.Name, got.Name)
	require.Len(t, got.Tiers, 1)
	assert.InDelta(t, 45, got.Tiers[0].Rate, 0.001)
	require.NotNil(t, got.Constraints.MaxAmount)
	assert.InDelta(t, 50000, *got.Constraints.MaxAmount, 0.001)

	// Save again bumps the stored document.
	fs.Version = 3
	require.NoError(t, r.SaveFeeStructure(ctx, fs))
	got, err = r.GetFeeStructure(ctx, "fs1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Version)

	list, err := r.ListFeeStructures(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = r.GetFeeStructure(ctx, "missing")
	assert.True(t, engine.IsNotFound(err))
	require.NoError(t, r.DeleteFeeStructure(ctx, "fs1"))
}

func TestSQLiteAdjustmentsAndBudget(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	saved, err := r.SaveAdjustment(ctx, engine.UserAdjustableLineItem{
		Month: "2024-04", Type: engine.AdjustmentUCSettlement, Amount: 12000, Enabled: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	saved.Amount = 13000
	_, err = r.SaveAdjustment(ctx, saved)
	require.NoError(t, err)

	list, err := r.ListAdjustments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.InDelta(t, 13000, list[0].Amount, 0.001)
	assert.True(t, list[0].Enabled)

	require.NoError(t, r.UpsertBudget(ctx, []engine.BudgetData{
		{Month: "2024-04", PEPMBudget: 1000, PEPMBudgetEECounts: 450, AnnualCumulativeBudget: 1800000},
	}))
	budget, err := r.ListBudget(ctx)
	require.NoError(t, err)
	require.Len(t, budget, 1)
	assert.InDelta(t, 1800000, budget[0].AnnualCumulativeBudget, 0.001)

	require.NoError(t, r.DeleteAdjustment(ctx, saved.ID))
	assert.True(t, engine.IsNotFound(r.DeleteAdjustment(ctx, saved.ID)))
}

func TestSQLiteClaimantFilters(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	_, err := r.SaveClaimant(ctx, engine.HighClaimant{ClaimantKey: "C1", PlanID: "ppo", Status: engine.StatusActive, PrimaryDiagnosis: "Cancer", TotalPaid: 450000, ISLLimit: 250000, AmountExceedingISL: 200000, Recognized: true})
	require.NoError(t, err)
	_, err = r.SaveClaimant(ctx, engine.HighClaimant{ClaimantKey: "C2", PlanID: "hdhp", Status: engine.StatusCOBRA, TotalPaid: 140000, ISLLimit: 250000})
	require.NoError(t, err)

	all, err := r.ListClaimants(ctx, store.ClaimantFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "C1", all[0].ClaimantKey, "sorted by total paid descending")

	cobra, err := r.ListClaimants(ctx, store.ClaimantFilter{Status: engine.StatusCOBRA})
	require.NoError(t, err)
	require.Len(t, cobra, 1)
	assert.Equal(t, "C2", cobra[0].ClaimantKey)

	recognized, err := r.ListClaimants(ctx, store.ClaimantFilter{RecognizedOnly: true})
	require.NoError(t, err)
	require.Len(t, recognized, 1)

	ppo, err := r.ListClaimants(ctx, store.ClaimantFilter{PlanID: "ppo", Status: engine.StatusActive})
	require.NoError(t, err)
	require.Len(t, ppo, 1)

	require.NoError(t, r.DeleteClaimant(ctx, all[1].ID))
	assert.True(t, engine.IsNotFound(r.DeleteClaimant(ctx, all[1].ID)))
}
