package engine

import (
	"fmt"
	"strings"

	"hospital-room-allocation/internal/models"
)

// NotFoundError indicates a referenced patient, room or allocation id
// does not exist. Never retried automatically.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// ConflictError indicates an exclusive-occupancy precondition was violated
// (room occupied, patient already allocated). The caller may retry after
// the conflicting state changes.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

// InvalidStateError indicates an action was attempted against an
// allocation in the wrong lifecycle state (e.g. double discharge).
type InvalidStateError struct {
	Action string
	Status models.AllocationStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s allocation in %s state", e.Action, e.Status)
}

// ValidationError indicates malformed input, rejected before any
// repository interaction.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// PartialFailureError indicates a multi-record write sequence committed
// some but not all records. Committed names the records that were
// written so an operator or reconciliation sweep can repair the rest.
type PartialFailureError struct {
	Op        string
	Committed []string
	Err       error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s partially committed [%s]: %v", e.Op, strings.Join(e.Committed, ", "), e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}
