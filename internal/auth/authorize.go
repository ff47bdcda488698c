package auth

import (
	"errors"

	"github.com/nlowell/fsubs/internal/model"
)

var (
	// ErrActorUnresolved means the acting identity could not be resolved
	// even though the token verified. This is a server fault, not a denial.
	ErrActorUnresolved = errors.New("acting user could not be resolved")

	// ErrForbidden means the actor lacks the required tier and does not own
	// the target resource.
	ErrForbidden = errors.New("insufficient tier")
)

// Authorize decides whether actor may perform an operation gated at the
// required tier. When target metadata is supplied and the actor created
// the resource, access is granted regardless of tier (ownership override).
// Ownership is matched on the user id, which never changes; usernames can
// be renamed and must not carry ownership. Pure and side-effect free;
// safe to call more than once per request.
func Authorize(actor *model.User, required model.Access, target *model.Metadata) error {
	if actor == nil {
		return ErrActorUnresolved
	}
	if target != nil && target.CreatedBy == actor.ID {
		return nil
	}
	if actor.Access.AtLeast(required) {
		return nil
	}
	return ErrForbidden
}
