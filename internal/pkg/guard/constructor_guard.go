package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error
// is provided. It ensures validation always fails with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects, commands, and queries are only
// created through their designated constructor functions. A zero-value
// struct fails validation, which prevents accidental use of uninitialized
// domain objects.
//
// Embed a ConstructorGuard in a struct and set it via NewConstructorGuard
// inside the constructor:
//
//	type TransitionRequest struct {
//	    target item.Status
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewTransitionRequest(target item.Status) (TransitionRequest, error) {
//	    if err := target.Validate(); err != nil {
//	        return TransitionRequest{}, err
//	    }
//	    return TransitionRequest{target: target, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (r TransitionRequest) Validate() error {
//	    return r.guard.Validate(ErrTransitionRequestIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking an object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was created through its
// constructor. Returns validationError (or ErrDefaultConstructorGuard when
// validationError is nil) for zero-value objects, nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
