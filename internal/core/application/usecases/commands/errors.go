package commands

import (
	"errors"
	"fmt"

	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/errs"
)

// ErrForbidden is returned when the acting subject's role does not permit the
// requested operation. It is fatal and not retryable.
var ErrForbidden = errors.New("operation is not permitted for this role")

// ConflictError reports a conditional write that matched no record because
// another writer advanced the order since the caller last observed it. It
// carries the current seq and status so the caller can retry with fresh state
// without an extra read. Replayed requests with a stale expected seq surface
// the same way, which is what makes retried mutations safe against double
// application.
//
// ConflictError unwraps to errs.ErrVersionConflict for classification.
type ConflictError struct {
	OrderID string
	Seq     int64
	Status  order.Status
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("order %s was modified concurrently: current seq is %d, status is %s",
		e.OrderID, e.Seq, e.Status)
}

func (e *ConflictError) Unwrap() error {
	return errs.ErrVersionConflict
}
