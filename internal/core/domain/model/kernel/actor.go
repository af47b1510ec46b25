package kernel

import (
	"strings"

	"orderlifecycle/internal/pkg/errs"
	"orderlifecycle/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("actor must be created via NewActor or SystemActor")

// Actor is the authenticated caller of an operation.
// The zero value is the anonymous caller.
type Actor struct {
	id    UUID
	role  Role
	email string
	guard guard.ConstructorGuard
}

// NewActor creates an authenticated actor. The email is normalised to lower
// case so it can be matched against order contacts.
//
// Returns an error if id is not a valid UUID or role is not one of the
// defined roles.
func NewActor(id UUID, role Role, email string) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, errs.NewValueIsRequiredErrorWithCause("actor.id", err)
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{
		id:    id,
		role:  role,
		email: strings.ToLower(strings.TrimSpace(email)),
		guard: guard.NewConstructorGuard(),
	}, nil
}

var systemActorID = MustParseUUID("00000000-0000-0000-0000-00000000005e")

// SystemActor is the caller used by background processes.
func SystemActor() Actor {
	return Actor{
		id:    systemActorID,
		role:  RoleSystem,
		guard: guard.NewConstructorGuard(),
	}
}

// Anonymous returns the unauthenticated caller.
func Anonymous() Actor {
	return Actor{}
}

func (a Actor) ID() UUID { return a.id }
func (a Actor) Role() Role { return a.role }
func (a Actor) Email() string { return a.email }

func (a Actor) IsAnonymous() bool {
	return a.guard.Validate(nil) != nil
}

// Is reports whether a is authenticated with role. Anonymous callers have no role.
func (a Actor) Is(role Role) bool {
	return !a.IsAnonymous() && a.role == role
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}
