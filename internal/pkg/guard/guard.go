// Package guard provides ConstructorGuard, which lets value objects, entities and
// command objects detect that they were built through their constructor rather
// than as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in structs whose zero value is not a valid instance.
//
// Example:
//
//	var ErrLineNotConstructed = errors.New("OrderLine must be created via NewOrderLine")
//
//	type OrderLine struct {
//	    productID kernel.UUID
//	    quantity  int
//	    guard     guard.ConstructorGuard
//	}
//
//	func (l OrderLine) Validate() error {
//	    return l.guard.Validate(ErrLineNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil) if the
// owner was not created through its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
