/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements store.Repository using SQLite. In production, the same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  experience_months: monthly claims/enrollment records, keyed by month
  fee_structures:    fee definitions; the full structure is stored as a
                     JSON document next to the queryable columns
  adjustments:       user-adjustable line items
  budget_rows:       per-month PEPM budget targets
  high_claimants:    high-cost claimant records

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  repo, err := sqlite.New("./data/claims.db")
  if err != nil {
      log.Fatal(err)
  }
  defer repo.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - store/store.go: Interface definitions
  - store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/claims-engine/engine"
	"github.com/warp/claims-engine/fees"
	"github.com/warp/claims-engine/store"
)

// Repo implements store.Repository using SQLite.
type Repo struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ store.Repository = (*Repo)(nil)

// New creates a SQLite repository at the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Repo, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	r := &Repo{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return r, nil
}

// Close closes the database connection.
func (r *Repo) Close() error {
	return r.db.Close()
}

// migrate creates the database schema.
func (r *Repo) migrate() error {
	schema := `
	-- Monthly experience records
	CREATE TABLE IF NOT EXISTS experience_months (
		month TEXT PRIMARY KEY,
		domestic_medical_ipop REAL NOT NULL DEFAULT 0,
		non_domestic_medical REAL NOT NULL DEFAULT 0,
		non_hospital_medical REAL NOT NULL DEFAULT 0,
		rx_claims REAL NOT NULL DEFAULT 0,
		ee_count REAL NOT NULL DEFAULT 0,
		member_count REAL NOT NULL DEFAULT 0
	);

	-- Fee structure definitions (document + queryable columns)
	CREATE TABLE IF NOT EXISTS fee_structures (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		rate_basis TEXT NOT NULL,
		status TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		definition_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_fee_structures_status
		ON fee_structures(status);

	-- User-adjustable line items
	CREATE TABLE IF NOT EXISTS adjustments (
		id TEXT PRIMARY KEY,
		month TEXT NOT NULL,
		type TEXT NOT NULL,
		amount REAL NOT NULL,
		enabled BOOLEAN NOT NULL DEFAULT TRUE
	);

	CREATE INDEX IF NOT EXISTS idx_adjustments_month_type
		ON adjustments(month, type);

	-- Budget rows
	CREATE TABLE IF NOT EXISTS budget_rows (
		month TEXT PRIMARY KEY,
		pepm_budget REAL NOT NULL DEFAULT 0,
		pepm_budget_ee_counts REAL NOT NULL DEFAULT 0,
		annual_cumulative_budget REAL NOT NULL DEFAULT 0
	);

	-- High-cost claimants
	CREATE TABLE IF NOT EXISTS high_claimants (
		id TEXT PRIMARY KEY,
		claimant_key TEXT NOT NULL,
		plan_id TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		primary_diagnosis TEXT,
		medical_paid REAL NOT NULL DEFAULT 0,
		rx_paid REAL NOT NULL DEFAULT 0,
		total_paid REAL NOT NULL DEFAULT 0,
		isl_limit REAL NOT NULL DEFAULT 0,
		amount_exceeding_isl REAL NOT NULL DEFAULT 0,
		recognized BOOLEAN NOT NULL DEFAULT FALSE
	);

	CREATE INDEX IF NOT EXISTS idx_high_claimants_plan
		ON high_claimants(plan_id);
	CREATE INDEX IF NOT EXISTS idx_high_claimants_status
		ON high_claimants(status);
	`
	_, err := r.db.Exec(schema)
	return err
}

// =============================================================================
// EXPERIENCE
// =============================================================================

func (r *Repo) UpsertExperience(ctx context.Context, months []engine.ExperienceMonth) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO experience_months
		(month, domestic_medical_ipop, non_domestic_medical, non_hospital_medical, rx_claims, ee_count, member_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(month) DO UPDATE SET
			domestic_medical_ipop = excluded.domestic_medical_ipop,
			non_domestic_medical = excluded.non_domestic_medical,
			non_hospital_medical = excluded.non_hospital_medical,
			rx_claims = excluded.rx_claims,
			ee_count = excluded.ee_count,
			member_count = excluded.member_count
	`
	for _, e := range months {
		if !e.Month.Valid() {
			return &engine.ValidationError{Field: "month", Message: string(e.Month)}
		}
		if _, err := tx.ExecContext(ctx, query,
			string(e.Month), e.DomesticMedicalIPOP, e.NonDomesticMedical,
			e.NonHospitalMedical, e.RxClaims, e.EECount, e.MemberCount,
		); err != nil {
			return fmt.Errorf("failed to upsert experience month %s: %w", e.Month, err)
		}
	}
	return tx.Commit()
}

func (r *Repo) ListExperience(ctx context.Context) ([]engine.ExperienceMonth, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.QueryContext(ctx, `
		SELECT month, domestic_medical_ipop, non_domestic_medical, non_hospital_medical, rx_claims, ee_count, member_count
		FROM experience_months ORDER BY month ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list experience: %w", err)
	}
	defer rows.Close()

	var out []engine.ExperienceMonth
	for rows.Next() {
		var e engine.ExperienceMonth
		var month string
		if err := rows.Scan(&month, &e.DomesticMedicalIPOP, &e.NonDomesticMedical,
			&e.NonHospitalMedical, &e.RxClaims, &e.EECount, &e.MemberCount); err != nil {
			return nil, fmt.Errorf("failed to scan experience row: %w", err)
		}
		e.Month = engine.MonthKey(month)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteExperience(ctx context.Context, month engine.MonthKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx, `DELETE FROM experience_months WHERE month = ?`, string(month))
	if err != nil {
		return fmt.Errorf("failed to delete experience month: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &engine.NotFoundError{Kind: "experience month", ID: string(month)}
	}
	return nil
}

// =============================================================================
// FEE STRUCTURES
// =============================================================================

func (r *Repo) SaveFeeStructure(ctx context.Context, fs fees.FeeStructure) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if fs.ID == "" {
		return &engine.ValidationError{Field: "id", Message: "fee structure id is required"}
	}
	doc, err := json.Marshal(fs)
	if err != nil {
		return fmt.Errorf("failed to marshal fee structure: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO fee_structures (id, name, rate_basis, status, version, definition_json)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			rate_basis = excluded.rate_basis,
			status = excluded.status,
			version = excluded.version,
			definition_json = excluded.definition_json
	`, fs.ID, fs.Name, string(fs.RateBasis), string(fs.Status), fs.Version, string(doc))
	if err != nil {
		return fmt.Errorf("failed to save fee structure: %w", err)
	}
	return nil
}

func (r *Repo) GetFeeStructure(ctx context.Context, id string) (fees.FeeStructure, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var doc string
	err := r.db.QueryRowContext(ctx,
		`SELECT definition_json FROM fee_structures WHERE id = ?`, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return fees.FeeStructure{}, &engine.NotFoundError{Kind: "fee structure", ID: id}
	}
	if err != nil {
		return fees.FeeStructure{}, fmt.Errorf("failed to get fee structure: %w", err)
	}
	var fs fees.FeeStructure
	if err := json.Unmarshal([]byte(doc), &fs); err != nil {
		return fees.FeeStructure{}, fmt.Errorf("failed to unmarshal fee structure: %w", err)
	}
	return fs, nil
}

func (r *Repo) ListFeeStructures(ctx context.Context) ([]fees.FeeStructure, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.QueryContext(ctx,
		`SELECT definition_json FROM fee_structures ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list fee structures: %w", err)
	}
	defer rows.Close()

	var out []fees.FeeStructure
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan fee structure: %w", err)
		}
		var fs fees.FeeStructure
		if err := json.Unmarshal([]byte(doc), &fs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal fee structure: %w", err)
		}
		out = append(out, fs)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteFeeStructure(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx, `DELETE FROM fee_structures WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete fee structure: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &engine.NotFoundError{Kind: "fee structure", ID: id}
	}
	return nil
}

// =============================================================================
// ADJUSTMENTS
// =============================================================================

func (r *Repo) SaveAdjustment(ctx context.Context, adj engine.UserAdjustableLineItem) (engine.UserAdjustableLineItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if adj.ID == "" {
		adj.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adjustments (id, month, type, amount, enabled)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			month = excluded.month,
			type = excluded.type,
			amount = excluded.amount,
			enabled = excluded.enabled
	`, adj.ID, string(adj.Month), string(adj.Type), adj.Amount, adj.Enabled)
	if err != nil {
		return engine.UserAdjustableLineItem{}, fmt.Errorf("failed to save adjustment: %w", err)
	}
	return adj, nil
}

func (r *Repo) ListAdjustments(ctx context.Context) ([]engine.UserAdjustableLineItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, month, type, amount, enabled FROM adjustments ORDER BY month ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	defer rows.Close()

	var out []engine.UserAdjustableLineItem
	for rows.Next() {
		var a engine.UserAdjustableLineItem
		var month, kind string
		if err := rows.Scan(&a.ID, &month, &kind, &a.Amount, &a.Enabled); err != nil {
			return nil, fmt.Errorf("failed to scan adjustment: %w", err)
		}
		a.Month = engine.MonthKey(month)
		a.Type = engine.AdjustmentType(kind)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteAdjustment(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx, `DELETE FROM adjustments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete adjustment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &engine.NotFoundError{Kind: "adjustment", ID: id}
	}
	return nil
}

// =============================================================================
// BUDGET
// =============================================================================

func (r *Repo) UpsertBudget(ctx context.Context, budgetRows []engine.BudgetData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO budget_rows (month, pepm_budget, pepm_budget_ee_counts, annual_cumulative_budget)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(month) DO UPDATE SET
			pepm_budget = excluded.pepm_budget,
			pepm_budget_ee_counts = excluded.pepm_budget_ee_counts,
			annual_cumulative_budget = excluded.annual_cumulative_budget
	`
	for _, b := range budgetRows {
		if !b.Month.Valid() {
			return &engine.ValidationError{Field: "month", Message: string(b.Month)}
		}
		if _, err := tx.ExecContext(ctx, query,
			string(b.Month), b.PEPMBudget, b.PEPMBudgetEECounts, b.AnnualCumulativeBudget,
		); err != nil {
			return fmt.Errorf("failed to upsert budget row %s: %w", b.Month, err)
		}
	}
	return tx.Commit()
}

func (r *Repo) ListBudget(ctx context.Context) ([]engine.BudgetData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.QueryContext(ctx, `
		SELECT month, pepm_budget, pepm_budget_ee_counts, annual_cumulative_budget
		FROM budget_rows ORDER BY month ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget rows: %w", err)
	}
	defer rows.Close()

	var out []engine.BudgetData
	for rows.Next() {
		var b engine.BudgetData
		var month string
		if err := rows.Scan(&month, &b.PEPMBudget, &b.PEPMBudgetEECounts, &b.AnnualCumulativeBudget); err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		b.Month = engine.MonthKey(month)
		out = append(out, b)
	}
	return out, rows.Err()
}

// =============================================================================
// CLAIMANTS
// =============================================================================

func (r *Repo) SaveClaimant(ctx context.Context, c engine.HighClaimant) (engine.HighClaimant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO high_claimants
		(id, claimant_key, plan_id, status, primary_diagnosis, medical_paid, rx_paid, total_paid, isl_limit, amount_exceeding_isl, recognized)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			claimant_key = excluded.claimant_key,
			plan_id = excluded.plan_id,
			status = excluded.status,
			primary_diagnosis = excluded.primary_diagnosis,
			medical_paid = excluded.medical_paid,
			rx_paid = excluded.rx_paid,
			total_paid = excluded.total_paid,
			isl_limit = excluded.isl_limit,
			amount_exceeding_isl = excluded.amount_exceeding_isl,
			recognized = excluded.recognized
	`, c.ID, c.ClaimantKey, c.PlanID, string(c.Status), c.PrimaryDiagnosis,
		c.MedicalPaid, c.RxPaid, c.TotalPaid, c.ISLLimit, c.AmountExceedingISL, c.Recognized)
	if err != nil {
		return engine.HighClaimant{}, fmt.Errorf("failed to save claimant: %w", err)
	}
	return c, nil
}

func (r *Repo) ListClaimants(ctx context.Context, filter store.ClaimantFilter) ([]engine.HighClaimant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT id, claimant_key, plan_id, status, primary_diagnosis, medical_paid, rx_paid, total_paid, isl_limit, amount_exceeding_isl, recognized
		FROM high_claimants
	`
	var conds []string
	var args []any
	if filter.PlanID != "" {
		conds = append(conds, "plan_id = ?")
		args = append(args, filter.PlanID)
	}
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.RecognizedOnly {
		conds = append(conds, "recognized = TRUE")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY total_paid DESC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list claimants: %w", err)
	}
	defer rows.Close()

	var out []engine.HighClaimant
	for rows.Next() {
		var c engine.HighClaimant
		var status string
		var diagnosis sql.NullString
		if err := rows.Scan(&c.ID, &c.ClaimantKey, &c.PlanID, &status, &diagnosis,
			&c.MedicalPaid, &c.RxPaid, &c.TotalPaid, &c.ISLLimit, &c.AmountExceedingISL, &c.Recognized); err != nil {
			return nil, fmt.Errorf("failed to scan claimant: %w", err)
		}
		c.Status = engine.ClaimantStatus(status)
		c.PrimaryDiagnosis = diagnosis.String
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteClaimant(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx, `DELETE FROM high_claimants WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete claimant: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &engine.NotFoundError{Kind: "claimant", ID: id}
	}
	return nil
}
