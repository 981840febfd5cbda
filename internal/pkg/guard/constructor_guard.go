// Package guard provides a defensive construction pattern for value objects,
// entities, commands, and queries. Embedding a ConstructorGuard in a struct makes
// zero-value instances detectable, so code paths that receive a struct can verify
// it went through its designated constructor and therefore through validation.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil error is passed
// for a zero-value guard. This ensures validation always fails with a meaningful
// message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes properly constructed objects from zero values.
// The guard holds an internal flag that is only set when the object is created
// through NewConstructorGuard inside its constructor function.
//
// Example:
//
//	var ErrTicketNotConstructed = errors.New("Ticket must be created via NewTicket")
//
//	type Ticket struct {
//	    id    kernel.UUID
//	    guard guard.ConstructorGuard
//	}
//
//	func NewTicket(id kernel.UUID) (Ticket, error) {
//	    if err := id.Validate(); err != nil {
//	        return Ticket{}, err
//	    }
//	    return Ticket{id: id, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (t Ticket) Validate() error {
//	    return t.guard.Validate(ErrTicketNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed. Call it in the
// constructor of the guarded type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a properly constructed guard. For a zero-value guard
// it returns validationError, or ErrDefaultConstructorGuard when validationError
// is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
