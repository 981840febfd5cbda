// Package services contains stateless domain services that operate across
// aggregates.
package services

import (
	"kitchen/internal/core/domain/model/item"
	"kitchen/internal/core/domain/model/ticket"
)

// TicketAggregator is a domain service that derives a ticket's aggregate
// state from a snapshot of its items. The fold is pure: it never mutates the
// items and never touches storage, so the same snapshot always yields the
// same state.
//
// Aggregation rules:
//   - Ready: every item is resolved (Ready, Served, Rejected, or Cancelled)
//     and at least one of them is Ready or Served
//   - PartiallyReady: at least one item is Ready while at least one other is
//     still Pending or Preparing
//   - Open: everything else, including an empty ticket and a ticket whose
//     items were all rejected or cancelled
//   - HasRejections is set whenever any item is Rejected, independently of
//     the primary status
//
// Example usage:
//
//	aggregator := services.NewTicketAggregator()
//	state := aggregator.Aggregate(items)
//	if state.Status == ticket.AggregateReady {
//	    // The ticket may be bumped
//	}
type TicketAggregator struct{}

// NewTicketAggregator creates a new TicketAggregator instance.
func NewTicketAggregator() TicketAggregator {
	return TicketAggregator{}
}

// Aggregate folds an item snapshot into the ticket's AggregateState.
func (a TicketAggregator) Aggregate(items []*item.OrderItem) ticket.AggregateState {
	var (
		total      int
		inProgress int
		ready      int
		served     int
		rejected   int
	)

	for _, orderItem := range items {
		total++
		switch orderItem.Status() {
		case item.Pending, item.Preparing:
			inProgress++
		case item.Ready:
			ready++
		case item.Served:
			served++
		case item.Rejected:
			rejected++
		case item.Cancelled, item.Unknown:
		}
	}

	state := ticket.AggregateState{
		Status:        ticket.AggregateOpen,
		HasRejections: rejected > 0,
	}

	switch {
	case total > 0 && inProgress == 0 && ready+served > 0:
		state.Status = ticket.AggregateReady
	case ready > 0 && inProgress > 0:
		state.Status = ticket.AggregatePartiallyReady
	}

	return state
}
