package auth

import "jobportal_backend/internal/models"

// CanManageJob reports whether the caller may mutate a job owned by ownerID.
// Only the owning employer or an admin qualifies.
func CanManageJob(callerID string, callerRole models.UserRole, ownerID string) bool {
	if callerRole == models.UserRoleAdmin {
		return true
	}
	return callerRole == models.UserRoleEmployer && callerID == ownerID
}
