package services

import "storefront/internal/models"

// Can reports whether a requester may act on a resource owned by ownerID.
// Elevated roles (admin, manager) may act on anything; plain users only on
// resources they own. Every privilege-sensitive operation calls this at its
// top instead of trusting caller-supplied filters.
func Can(requesterRole, requesterID, ownerID string) bool {
	if isElevated(requesterRole) {
		return true
	}
	return requesterID != "" && requesterID == ownerID
}

func isElevated(role string) bool {
	return role == models.RoleAdmin || role == models.RoleManager
}
