package planstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/glossa/internal/plan"
)

// maxTxAttempts bounds optimistic retries before a conflict surfaces.
const maxTxAttempts = 5

// retryBackoff spaces out retry attempts; kept short because conflicts are
// same-student races (duplicate submits, two tabs), not sustained contention.
const retryBackoff = 25 * time.Millisecond

// GetPlan returns a decoded snapshot of the plan document. The snapshot is
// detached: mutating it has no effect on the store.
func (s *Store) GetPlan(ctx context.Context, planID string) (*plan.Plan, error) {
	var raw string
	query := s.db.Rebind("SELECT data FROM plans WHERE id = ?")
	err := s.db.GetContext(ctx, &raw, query, planID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &PlanNotFoundError{PlanID: planID}
	}
	if err != nil {
		return nil, fmt.Errorf("get plan %s: %w", planID, err)
	}
	return plan.Decode([]byte(raw))
}

// PutPlan inserts or replaces a plan document. This is the plan-management
// path (import, re-import); grading writes go through WithTransaction.
func (s *Store) PutPlan(ctx context.Context, p *plan.Plan) error {
	raw, err := plan.Encode(p)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	query := s.db.Rebind(`INSERT INTO plans (id, data, version, created_at, updated_at)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET data = excluded.data,
			version = plans.version + 1, updated_at = excluded.updated_at`)
	if _, err := s.db.ExecContext(ctx, query, p.ID, string(raw), now, now); err != nil {
		return fmt.Errorf("put plan %s: %w", p.ID, err)
	}
	return nil
}

// DeletePlan removes a plan document. Missing plans surface PlanNotFoundError.
func (s *Store) DeletePlan(ctx context.Context, planID string) error {
	query := s.db.Rebind("DELETE FROM plans WHERE id = ?")
	res, err := s.db.ExecContext(ctx, query, planID)
	if err != nil {
		return fmt.Errorf("delete plan %s: %w", planID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete plan %s: %w", planID, err)
	}
	if n == 0 {
		return &PlanNotFoundError{PlanID: planID}
	}
	return nil
}

// ListPlanIDs returns the ids of all stored plans, ordered.
func (s *Store) ListPlanIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := s.db.SelectContext(ctx, &ids, "SELECT id FROM plans ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return ids, nil
}

// WithTransaction runs fn against a fresh snapshot of the plan inside a
// database transaction. fn returns the updated plan to persist, or nil for a
// no-op (the transaction commits without writing). The write carries an
// optimistic version check; on collision with a concurrent writer the whole
// read-modify-write re-runs with a fresh snapshot, up to maxTxAttempts, then
// surfaces TransactionConflictError.
func (s *Store) WithTransaction(ctx context.Context, planID string, fn func(*plan.Plan) (*plan.Plan, error)) error {
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		conflict, err := s.runTx(ctx, planID, fn)
		if err != nil {
			return err
		}
		if !conflict {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}
	return &TransactionConflictError{PlanID: planID, Attempts: maxTxAttempts}
}

// runTx performs one transactional attempt. The bool result reports a
// version conflict that warrants a retry.
func (s *Store) runTx(ctx context.Context, planID string, fn func(*plan.Plan) (*plan.Plan, error)) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Re-read inside the transaction: never trust a caller-held snapshot.
	selectQuery := "SELECT data, version FROM plans WHERE id = ?"
	if s.driver == DriverPostgres {
		selectQuery += " FOR UPDATE"
	}
	var row struct {
		Data    string `db:"data"`
		Version int64  `db:"version"`
	}
	err = tx.GetContext(ctx, &row, tx.Rebind(selectQuery), planID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, &PlanNotFoundError{PlanID: planID}
	}
	if err != nil {
		return false, fmt.Errorf("read plan %s: %w", planID, err)
	}
	if s.staleReads > 0 {
		s.staleReads--
		row.Version--
	}

	p, err := plan.Decode([]byte(row.Data))
	if err != nil {
		return false, err
	}

	updated, err := fn(p)
	if err != nil {
		return false, err
	}
	if updated == nil {
		// No-op: nothing to persist.
		return false, tx.Commit()
	}

	raw, err := plan.Encode(updated)
	if err != nil {
		return false, err
	}

	res, err := tx.ExecContext(ctx,
		tx.Rebind("UPDATE plans SET data = ?, version = ?, updated_at = ? WHERE id = ? AND version = ?"),
		string(raw), row.Version+1, time.Now().UTC(), planID, row.Version,
	)
	if err != nil {
		return false, fmt.Errorf("write plan %s: %w", planID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("write plan %s: %w", planID, err)
	}
	if n == 0 {
		// Someone committed a newer version while fn ran.
		return true, nil
	}
	return false, tx.Commit()
}
