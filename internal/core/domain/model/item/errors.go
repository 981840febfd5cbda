package item

import (
	"errors"
	"fmt"

	"kitchen/internal/core/domain/model/kernel"
)

var (
	// ErrInvalidTransition is the sentinel for status-machine violations.
	// Not retryable: the same request will fail the same way.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrVersionConflict is the sentinel for optimistic-concurrency failures:
	// another writer committed the item between read and update. Retryable
	// after re-reading the item.
	ErrVersionConflict = errors.New("item version conflict")
)

// InvalidTransitionError reports a request that violates the item status
// machine, carrying both endpoints and the policy reason.
type InvalidTransitionError struct {
	ItemID kernel.UUID
	From   Status
	To     Status
	Reason string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given
// item and transition endpoints. The reason is derived from the status machine.
func NewInvalidTransitionError(itemID kernel.UUID, from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{
		ItemID: itemID,
		From:   from,
		To:     to,
		Reason: from.DescribeTransition(to),
	}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s for item %s (%s)",
		ErrInvalidTransition, e.From, e.To, e.ItemID, e.Reason)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// VersionConflictError reports that a persistence commit against an expected
// item version found a different one in the store.
type VersionConflictError struct {
	ItemID          kernel.UUID
	ExpectedVersion int
}

// NewVersionConflictError creates a VersionConflictError for the given item
// and the version the writer expected to replace.
func NewVersionConflictError(itemID kernel.UUID, expectedVersion int) *VersionConflictError {
	return &VersionConflictError{
		ItemID:          itemID,
		ExpectedVersion: expectedVersion,
	}
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%s: item %s, expected version %d",
		ErrVersionConflict, e.ItemID, e.ExpectedVersion)
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}
