package service

import (
	"fmt"

	"todolist/internal/apperrors"
	"todolist/internal/models"
)

// RequireRole fails with ErrForbidden unless roles contains role. It is
// called at the top of every admin-only operation.
func RequireRole(roles []string, role string) error {
	if !models.HasRole(roles, role) {
		return fmt.Errorf("%w: requires role %s", apperrors.ErrForbidden, role)
	}
	return nil
}

// RequireSelfOrAdmin lets a user act on their own account, and admins act on any.
func RequireSelfOrAdmin(caller *models.User, targetID string) error {
	if caller == nil {
		return apperrors.ErrUnauthorized
	}
	if caller.ID == targetID || caller.HasRole("ADMIN") {
		return nil
	}
	return fmt.Errorf("%w: cannot access another user's account", apperrors.ErrForbidden)
}

// CheckUserDeletion enforces the admin deletion rules: no one deletes their
// own account this way, and the seeded admin account is never deleted.
func CheckUserDeletion(caller, target *models.User) error {
	if caller.ID == target.ID || caller.Username == target.Username {
		return fmt.Errorf("%w: you cannot delete your own admin account", apperrors.ErrForbidden)
	}
	if target.Username == models.DefaultAdminUsername {
		return fmt.Errorf("%w: the default '%s' account cannot be deleted", apperrors.ErrForbidden, models.DefaultAdminUsername)
	}
	return nil
}
