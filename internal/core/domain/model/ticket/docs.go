// Package ticket contains the KitchenTicket aggregate: the unit of work a
// preparation station sees, grouping the items of one order. A ticket is
// bumped (finalized) exactly once, after which its items are frozen.
package ticket
