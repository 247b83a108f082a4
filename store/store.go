/*
Package store defines the persistence interfaces for the claims engine.

PURPOSE:
  The calculation core is pure; everything it consumes lives behind
  these repository interfaces. The API layer composes them to assemble
  calculation inputs. Implementations: Memory (this package, for tests
  and dev) and sqlite (production).

INTERFACES:
  ExperienceStore:   monthly claims/enrollment records, keyed by month
  FeeStructureStore: fee structure definitions (stored whole, versioned)
  AdjustmentStore:   user-adjustable line items
  BudgetStore:       per-month budget rows, keyed by month
  ClaimantStore:     high-cost claimant records

SEE ALSO:
  - store/sqlite: SQLite implementation
  - memory.go: In-memory implementation
*/
package store

import (
	"context"

	"github.com/warp/claims-engine/engine"
	"github.com/warp/claims-engine/fees"
)

// ClaimantFilter narrows ListClaimants. Zero values match everything.
type ClaimantFilter struct {
	PlanID         string
	Status         engine.ClaimantStatus
	RecognizedOnly bool
}

// ExperienceStore persists monthly experience records. Upsert replaces
// any existing record for the same month.
type ExperienceStore interface {
	UpsertExperience(ctx context.Context, months []engine.ExperienceMonth) error
	ListExperience(ctx context.Context) ([]engine.ExperienceMonth, error)
	DeleteExperience(ctx context.Context, month engine.MonthKey) error
}

// FeeStructureStore persists fee structure definitions whole.
type FeeStructureStore interface {
	SaveFeeStructure(ctx context.Context, fs fees.FeeStructure) error
	GetFeeStructure(ctx context.Context, id string) (fees.FeeStructure, error)
	ListFeeStructures(ctx context.Context) ([]fees.FeeStructure, error)
	DeleteFeeStructure(ctx context.Context, id string) error
}

// AdjustmentStore persists user-adjustable line items.
type AdjustmentStore interface {
	SaveAdjustment(ctx context.Context, adj engine.UserAdjustableLineItem) (engine.UserAdjustableLineItem, error)
	ListAdjustments(ctx context.Context) ([]engine.UserAdjustableLineItem, error)
	DeleteAdjustment(ctx context.Context, id string) error
}

// BudgetStore persists per-month budget rows.
type BudgetStore interface {
	UpsertBudget(ctx context.Context, rows []engine.BudgetData) error
	ListBudget(ctx context.Context) ([]engine.BudgetData, error)
}

// ClaimantStore persists high-cost claimant records.
type ClaimantStore interface {
	SaveClaimant(ctx context.Context, c engine.HighClaimant) (engine.HighClaimant, error)
	ListClaimants(ctx context.Context, filter ClaimantFilter) ([]engine.HighClaimant, error)
	DeleteClaimant(ctx context.Context, id string) error
}

// Repository is the full persistence surface the API layer depends on.
type Repository interface {
	ExperienceStore
	FeeStructureStore
	AdjustmentStore
	BudgetStore
	ClaimantStore
	Close() error
}
