package planstore

import "fmt"

// PlanNotFoundError reports that no plan document exists for the id.
// It is not retriable; callers surface it.
type PlanNotFoundError struct {
	PlanID string
}

func (e *PlanNotFoundError) Error() string {
	return fmt.Sprintf("plan %s not found", e.PlanID)
}

// TransactionConflictError reports that a plan transaction kept colliding
// with concurrent writers and exhausted its retry budget. The operation is
// safe to retry from the caller's side.
type TransactionConflictError struct {
	PlanID   string
	Attempts int
}

func (e *TransactionConflictError) Error() string {
	return fmt.Sprintf("plan %s: transaction conflict after %d attempts", e.PlanID, e.Attempts)
}
