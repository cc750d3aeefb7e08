package item

import (
	"strings"

	"fulfillment/internal/pkg/errs"
)

const adminActorPrefix = "admin:"

// Actor identifies who performed a status change: the automation (`system`)
// or a named administrator (`admin:<id>`). Actors are recorded in item
// history entries and override locks for auditability.
type Actor struct {
	adminID       string
	isConstructed bool
}

// SystemActor returns the actor representing automated jobs.
func SystemActor() Actor {
	return Actor{isConstructed: true}
}

// AdminActor creates an actor for a named administrator.
// Returns an error when the admin identifier is blank.
func AdminActor(id string) (Actor, error) {
	if strings.TrimSpace(id) == "" {
		return Actor{}, errs.NewValueIsRequiredError("admin id")
	}
	return Actor{adminID: id, isConstructed: true}, nil
}

// ActorFromString parses the persisted actor representation:
// "system" or "admin:<id>".
func ActorFromString(s string) (Actor, error) {
	if s == "system" {
		return SystemActor(), nil
	}
	if id, ok := strings.CutPrefix(s, adminActorPrefix); ok {
		return AdminActor(id)
	}
	return Actor{}, errs.NewValueIsInvalidError("actor")
}

// IsSystem reports whether the actor is the automation.
func (a Actor) IsSystem() bool {
	return a.adminID == ""
}

// AdminID returns the administrator identifier, empty for the system actor.
func (a Actor) AdminID() string {
	return a.adminID
}

// String returns the persisted representation of the actor.
func (a Actor) String() string {
	if a.IsSystem() {
		return "system"
	}
	return adminActorPrefix + a.adminID
}

// Validate checks that the actor was created through a constructor.
func (a Actor) Validate() error {
	if !a.isConstructed {
		return errs.NewValueIsRequiredError("actor must be created via SystemActor or AdminActor")
	}
	return nil
}
