/*
memory.go - In-memory Repository implementation (for testing/dev)
*/
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/warp/claims-engine/engine"
	"github.com/warp/claims-engine/fees"
)

// Memory implements Repository with maps guarded by a RWMutex.
type Memory struct {
	mu            sync.RWMutex
	experience    map[engine.MonthKey]engine.ExperienceMonth
	feeStructures map[string]fees.FeeStructure
	adjustments   map[string]engine.UserAdjustableLineItem
	budget        map[engine.MonthKey]engine.BudgetData
	claimants     map[string]engine.HighClaimant
}

// NewMemory returns an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{
		experience:    make(map[engine.MonthKey]engine.ExperienceMonth),
		feeStructures: make(map[string]fees.FeeStructure),
		adjustments:   make(map[string]engine.UserAdjustableLineItem),
		budget:        make(map[engine.MonthKey]engine.BudgetData),
		claimants:     make(map[string]engine.HighClaimant),
	}
}

// =============================================================================
// EXPERIENCE
// =============================================================================

func (m *Memory) UpsertExperience(_ context.Context, months []engine.ExperienceMonth) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range months {
		if !e.Month.Valid() {
			return &engine.ValidationError{Field: "month", Message: string(e.Month)}
		}
		m.experience[e.Month] = e
	}
	return nil
}

func (m *Memory) ListExperience(_ context.Context) ([]engine.ExperienceMonth, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]engine.ExperienceMonth, 0, len(m.experience))
	for _, e := range m.experience {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (m *Memory) DeleteExperience(_ context.Context, month engine.MonthKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.experience[month]; !ok {
		return &engine.NotFoundError{Kind: "experience month", ID: string(month)}
	}
	delete(m.experience, month)
	return nil
}

// =============================================================================
// FEE STRUCTURES
// =============================================================================

func (m *Memory) SaveFeeStructure(_ context.Context, fs fees.FeeStructure) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if fs.ID == "" {
		return &engine.ValidationError{Field: "id", Message: "fee structure id is required"}
	}
	m.feeStructures[fs.ID] = fs
	return nil
}

func (m *Memory) GetFeeStructure(_ context.Context, id string) (fees.FeeStructure, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fs, ok := m.feeStructures[id]
	if !ok {
		return fees.FeeStructure{}, &engine.NotFoundError{Kind: "fee structure", ID: id}
	}
	return fs, nil
}

func (m *Memory) ListFeeStructures(_ context.Context) ([]fees.FeeStructure, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]fees.FeeStructure, 0, len(m.feeStructures))
	for _, fs := range m.feeStructures {
		out = append(out, fs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) DeleteFeeStructure(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.feeStructures[id]; !ok {
		return &engine.NotFoundError{Kind: "fee structure", ID: id}
	}
	delete(m.feeStructures, id)
	return nil
}

// =============================================================================
// ADJUSTMENTS
// =============================================================================

func (m *Memory) SaveAdjustment(_ context.Context, adj engine.UserAdjustableLineItem) (engine.UserAdjustableLineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if adj.ID == "" {
		adj.ID = uuid.NewString()
	}
	m.adjustments[adj.ID] = adj
	return adj, nil
}

func (m *Memory) ListAdjustments(_ context.Context) ([]engine.UserAdjustableLineItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]engine.UserAdjustableLineItem, 0, len(m.adjustments))
	for _, a := range m.adjustments {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) DeleteAdjustment(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.adjustments[id]; !ok {
		return &engine.NotFoundError{Kind: "adjustment", ID: id}
	}
	delete(m.adjustments, id)
	return nil
}

// =============================================================================
// BUDGET
// =============================================================================

func (m *Memory) UpsertBudget(_ context.Context, rows []engine.BudgetData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range rows {
		if !b.Month.Valid() {
			return &engine.ValidationError{Field: "month", Message: string(b.Month)}
		}
		m.budget[b.Month] = b
	}
	return nil
}

func (m *Memory) ListBudget(_ context.Context) ([]engine.BudgetData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]engine.BudgetData, 0, len(m.budget))
	for _, b := range m.budget {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

// =============================================================================
// CLAIMANTS
// =============================================================================

func (m *Memory) SaveClaimant(_ context.Context, c engine.HighClaimant) (engine.HighClaimant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	m.claimants[c.ID] = c
	return c, nil
}

func (m *Memory) ListClaimants(_ context.Context, filter ClaimantFilter) ([]engine.HighClaimant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]engine.HighClaimant, 0, len(m.claimants))
	for _, c := range m.claimants {
		if filter.PlanID != "" && c.PlanID != filter.PlanID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.RecognizedOnly && !c.Recognized {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalPaid != out[j].TotalPaid {
			return out[i].TotalPaid > out[j].TotalPaid
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) DeleteClaimant(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.claimants[id]; !ok {
		return &engine.NotFoundError{Kind: "claimant", ID: id}
	}
	delete(m.claimants, id)
	return nil
}

// Close is a no-op for the in-memory repository.
func (m *Memory) Close() error { return nil }
