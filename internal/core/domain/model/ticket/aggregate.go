package ticket

import (
	"fmt"

	"kitchen/internal/pkg/errs"
)

// AggregateStatus is the ticket-level status derived from the statuses of the
// ticket's items. It is never stored; it is recomputed from the live items on
// every read and on every bump attempt.
type AggregateStatus int

const (
	// AggregateUnknown represents an invalid or undefined aggregate status.
	AggregateUnknown AggregateStatus = iota

	// AggregateOpen means at least one item still needs kitchen work, and no
	// item is plated yet. An empty ticket is also Open.
	AggregateOpen

	// AggregatePartiallyReady means at least one item is plated while at
	// least one other item is still Pending or Preparing.
	AggregatePartiallyReady

	// AggregateReady means every item is resolved (Ready, Served, Rejected,
	// or Cancelled) and at least one of them is Ready or Served. Only a Ready
	// ticket can be bumped.
	AggregateReady
)

func getAggregateStatusStrings() map[AggregateStatus]string {
	return map[AggregateStatus]string{
		AggregateUnknown:        "Unknown",
		AggregateOpen:           "Open",
		AggregatePartiallyReady: "PartiallyReady",
		AggregateReady:          "Ready",
	}
}

// String returns the human-readable name of the aggregate status.
func (s AggregateStatus) String() string {
	if str, ok := getAggregateStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks if the AggregateStatus value is valid.
func (s AggregateStatus) Validate() error {
	if s != AggregateOpen && s != AggregatePartiallyReady && s != AggregateReady {
		return errs.NewValueIsInvalidErrorWithCause("aggregate status is invalid",
			fmt.Errorf("%d is not a valid aggregate status", s))
	}
	return nil
}

// AggregateState is the derived, read-only summary of a ticket: its aggregate
// status plus whether any item was rejected. HasRejections is an independent
// flag, so a ticket can be Ready and still carry rejections.
type AggregateState struct {
	Status        AggregateStatus
	HasRejections bool
}
