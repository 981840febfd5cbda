package item

import (
	"fmt"
	"strings"

	"kitchen/internal/pkg/errs"
)

// Status represents the preparation state of a single order item.
// It implements a state machine with defined transitions to ensure
// items follow the kitchen workflow.
//
// State transitions:
//
//	Pending ──┬──> Preparing ──┬──> Ready ──┬──> Served
//	          │        ▲       │      │
//	          │        └───────┼──────┘
//	          │    (rework)    │
//	          ├──> Rejected <──┤
//	          └──> Cancelled <─┘
//
// Served, Rejected, and Cancelled are terminal: no transition leaves them.
// Same-status requests are rejected rather than treated as no-ops, so a
// duplicate command always surfaces to the caller.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of every item: accepted onto a ticket,
	// not yet picked up by a cook.
	Pending

	// Preparing indicates a cook is actively working on the item.
	Preparing

	// Ready indicates the item is plated and waiting to be served.
	// Ready items can be sent back to Preparing for rework.
	Ready

	// Served indicates the item reached the guest. Terminal.
	Served

	// Rejected indicates the kitchen refused the item, e.g. an ingredient
	// ran out. Terminal; a rejection always carries a reason.
	Rejected

	// Cancelled indicates the guest or staff withdrew the item before it
	// was ready. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Preparing: "Preparing",
		Ready:     "Ready",
		Served:    "Served",
		Rejected:  "Rejected",
		Cancelled: "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Preparing: "Preparing",
		Ready:     "Ready",
		Served:    "Served",
		Rejected:  "Rejected",
		Cancelled: "Cancelled",
	}
}

// getLegalTransitions returns, for every source status, the set of statuses
// that may follow it. Statuses absent from the map are terminal.
func getLegalTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no outgoing transitions
	return map[Status][]Status{
		Pending:   {Preparing, Rejected, Cancelled},
		Preparing: {Ready, Rejected, Cancelled},
		Ready:     {Served, Preparing},
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no transition may leave this status.
func (s Status) IsTerminal() bool {
	return s == Served || s == Rejected || s == Cancelled
}

// CanTransitionTo reports whether the transition from s to target is legal.
// Same-status requests and transitions out of terminal statuses are illegal.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getLegalTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// DescribeTransition explains why the transition from s to target is not
// allowed, for use in error messages. Returns an empty string for a legal
// transition.
func (s Status) DescribeTransition(target Status) string {
	switch {
	case s.CanTransitionTo(target):
		return ""
	case s == target:
		return fmt.Sprintf("item is already %s", s)
	case s.IsTerminal():
		return fmt.Sprintf("%s is a terminal status", s)
	default:
		return fmt.Sprintf("%s cannot follow %s", target, s)
	}
}

// StatusFromString parses a status name received from an external boundary
// (request payload, database row). Matching is case-insensitive; unrecognized
// names and "Unknown" are rejected so the core never holds an invalid status.
func StatusFromString(raw string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for status, name := range getValidStatusStrings() {
		if strings.ToLower(name) == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a recognized status", raw))
}
