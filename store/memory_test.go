package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/claims-engine/engine"
	"github.com/warp/claims-engine/fees"
)

func TestMemoryExperienceRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	err := m.UpsertExperience(ctx, []engine.ExperienceMonth{
		{Month: "2024-02", DomesticMedicalIPOP: 160000, EECount: 455},
		{Month: "2024-01", DomesticMedicalIPOP: 150000, EECount: 450},
	})
	require.NoError(t, err)

	got, err := m.ListExperience(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, engine.MonthKey("2024-01"), got[0].Month)

	// Upsert replaces the existing month.
	require.NoError(t, m.UpsertExperience(ctx, []engine.ExperienceMonth{
		{Month: "2024-01", DomesticMedicalIPOP: 175000, EECount: 451},
	}))
	got, err = m.ListExperience(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 175000, got[0].DomesticMedicalIPOP, 0.001)

	require.NoError(t, m.DeleteExperience(ctx, "2024-01"))
	err = m.DeleteExperience(ctx, "2024-01")
	assert.True(t, engine.IsNotFound(err))

	err = m.UpsertExperience(ctx, []engine.ExperienceMonth{{Month: "bogus"}})
	assert.True(t, errors.Is(err, engine.ErrInvalidInput))
}

func TestMemoryFeeStructures(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	fs := fees.FeeStructure{ID: "fs1", Name: "TPA", RateBasis: fees.BasisPMPM, BaseAmount: 45, Status: fees.StatusActive, Version: 1}
	require.NoError(t, m.SaveFeeStructure(ctx, fs))

	got, err := m.GetFeeStructure(ctx, "fs1")
	require.NoError(t, err)
	assert.Equal(t, fs, got)

	_, err = m.GetFeeStructure(ctx, "nope")
	assert.True(t, engine.IsNotFound(err))

	err = m.SaveFeeStructure(ctx, fees.FeeStructure{Name: "no id"})
	assert.True(t, engine.IsClientError(err))

	list, err := m.ListFeeStructures(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, m.DeleteFeeStructure(ctx, "fs1"))
	assert.True(t, engine.IsNotFound(m.DeleteFeeStructure(ctx, "fs1")))
}

func TestMemoryAdjustments(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	saved, err := m.SaveAdjustment(ctx, engine.UserAdjustableLineItem{
		Month: "2024-03", Type: engine.AdjustmentRxRebates, Amount: -5000, Enabled: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID, "an id is assigned on save")

	list, err := m.ListAdjustments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.InDelta(t, -5000, list[0].Amount, 0.001)

	require.NoError(t, m.DeleteAdjustment(ctx, saved.ID))
	assert.True(t, engine.IsNotFound(m.DeleteAdjustment(ctx, saved.ID)))
}

func TestMemoryBudgetAndClaimants(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.UpsertBudget(ctx, []engine.BudgetData{
		{Month: "2024-01", PEPMBudget: 1000, PEPMBudgetEECounts: 450},
	}))
	budget, err := m.ListBudget(ctx)
	require.NoError(t, err)
	require.Len(t, budget, 1)

	c1, err := m.SaveClaimant(ctx, engine.HighClaimant{ClaimantKey: "C1", PlanID: "ppo", Status: engine.StatusActive, TotalPaid: 300000, Recognized: true})
	require.NoError(t, err)
	_, err = m.SaveClaimant(ctx, engine.HighClaimant{ClaimantKey: "C2", PlanID: "hdhp", Status: engine.StatusTerminated, TotalPaid: 150000})
	require.NoError(t, err)

	all, err := m.ListClaimants(ctx, ClaimantFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Sorted by total paid descending.
	assert.Equal(t, "C1", all[0].ClaimantKey)

	ppo, err := m.ListClaimants(ctx, ClaimantFilter{PlanID: "ppo"})
	require.NoError(t, err)
	assert.Len(t, ppo, 1)

	active, err := m.ListClaimants(ctx, ClaimantFilter{Status: engine.StatusActive})
	require.NoError(t, err)
	assert.Len(t, active, 1)

	recognized, err := m.ListClaimants(ctx, ClaimantFilter{RecognizedOnly: true})
	require.NoError(t, err)
	assert.Len(t, recognized, 1)

	require.NoError(t, m.DeleteClaimant(ctx, c1.ID))
	assert.True(t, engine.IsNotFound(m.DeleteClaimant(ctx, c1.ID)))
}
