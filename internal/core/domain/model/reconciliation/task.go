// Package reconciliation models the deferred work left behind by a status change.
//
// A Task is written in the same transaction as the status it follows up on and is
// drained later by a background job. Delivery is at-least-once; a task is marked done
// in the same transaction that applies it.
package reconciliation

import (
	"errors"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// Kind names what a task does.
type Kind string

const (
	// KindRefund restores stock and reverses the seller payout of an accepted refund.
	KindRefund Kind = "reconcile-refund"
)

// ErrTaskIsNotConstructed is returned when using an improperly initialized Task.
var ErrTaskIsNotConstructed = errors.New("Task must be created via NewTask constructor")

// ErrTaskIsDone is returned when a finished task is touched again.
var ErrTaskIsDone = errors.New("reconciliation task is already done")

const maxErrorLength = 1024

// Task is one pending side effect of a committed order transition, stored in the
// same transaction as the transition.
type Task struct {
	id        kernel.UUID
	orderID   kernel.UUID
	kind      Kind
	attempts  int
	lastError string
	doneAt    *time.Time
	createdAt time.Time

	isConstructed bool
}

// NewTask creates a task with no attempts yet.
func NewTask(id, orderID kernel.UUID, kind Kind, createdAt time.Time) (*Task, error) {
	return RestoreTask(id, orderID, kind, 0, "", nil, createdAt)
}

// RestoreTask rebuilds a persisted task.
func RestoreTask(
	id, orderID kernel.UUID,
	kind Kind,
	attempts int,
	lastError string,
	doneAt *time.Time,
	createdAt time.Time,
) (*Task, error) {
	var kindErr, attemptsErr, createdAtErr error
	if kind != KindRefund {
		kindErr = errs.NewValueIsInvalidError("task kind")
	}
	if attempts < 0 {
		attemptsErr = errs.NewValueIsOutOfRangeError("attempts", attempts, 0, "unbounded")
	}
	if createdAt.IsZero() {
		createdAtErr = errs.NewValueIsRequiredError("created at")
	}
	if err := errors.Join(id.Validate(), orderID.Validate(), kindErr, attemptsErr, createdAtErr); err != nil {
		return nil, err
	}

	return &Task{
		id:            id,
		orderID:       orderID,
		kind:          kind,
		attempts:      attempts,
		lastError:     lastError,
		doneAt:        doneAt,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate reports whether the task was built by NewTask or RestoreTask.
func (t *Task) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTaskIsNotConstructed
	}
	return nil
}

// ID returns the task identifier.
func (t *Task) ID() kernel.UUID {
	return t.id
}

// OrderID returns the order the task reconciles.
func (t *Task) OrderID() kernel.UUID {
	return t.orderID
}

// Kind tells which effect the task applies.
func (t *Task) Kind() Kind {
	return t.kind
}

// Attempts counts the failed runs so far.
func (t *Task) Attempts() int {
	return t.attempts
}

// LastError is the message of the latest failure, empty before the first one.
func (t *Task) LastError() string {
	return t.lastError
}

// DoneAt is nil until the task is applied.
func (t *Task) DoneAt() *time.Time {
	return t.doneAt
}

// CreatedAt returns when the task was queued.
func (t *Task) CreatedAt() time.Time {
	return t.createdAt
}

// IsDone reports whether the task was applied.
func (t *Task) IsDone() bool {
	return t.doneAt != nil
}

// MarkDone closes the task.
func (t *Task) MarkDone(at time.Time) error {
	if t.IsDone() {
		return ErrTaskIsDone
	}
	doneAt := at
	t.doneAt = &doneAt
	t.lastError = ""
	return nil
}

// RecordFailure counts a failed attempt and keeps the error text for operators.
func (t *Task) RecordFailure(cause error) error {
	if t.IsDone() {
		return ErrTaskIsDone
	}
	t.attempts++
	if cause != nil {
		msg := cause.Error()
		if len(msg) > maxErrorLength {
			msg = msg[:maxErrorLength]
		}
		t.lastError = strings.ToValidUTF8(msg, "")
	}
	return nil
}

// IsExhausted reports whether the task reached maxAttempts failures.
// A non-positive maxAttempts means unlimited retries.
func (t *Task) IsExhausted(maxAttempts int) bool {
	return maxAttempts > 0 && t.attempts >= maxAttempts
}
