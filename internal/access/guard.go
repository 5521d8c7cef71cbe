// Package access holds the ownership rules applied to mutating operations.
package access

import (
	"github.com/GiorgiUbiria/donation_platform/internal/apperr"
)

// RequireActor rejects anonymous calls to operations that need an identity.
func RequireActor(actorID uint64) error {
	if actorID == 0 {
		return apperr.Unauthorized("authentication required")
	}
	return nil
}

// RequireOwner fails with a forbidden error unless actorID owns the resource.
func RequireOwner(actorID, ownerID uint64, resource string) error {
	if err := RequireActor(actorID); err != nil {
		return err
	}
	if actorID != ownerID {
		return apperr.Forbidden("user_id", "you can only modify your own "+resource)
	}
	return nil
}
