package authz

import "ispcrm/internal/models"

// Action is a named capability checked uniformly by handlers, so the
// role rules live in one place instead of drifting per endpoint.
type Action string

const (
	ActionWriteProducts  Action = "products:write"
	ActionDecideProjects Action = "projects:decide"
	ActionViewAllRecords Action = "records:view_all"
)

// Can reports whether a role holds a capability.
func Can(role string, action Action) bool {
	switch action {
	case ActionWriteProducts, ActionDecideProjects, ActionViewAllRecords:
		return role == models.RoleManager
	default:
		return false
	}
}

// OwnerScope returns the owner id list queries must be restricted to.
// Zero means unrestricted; sales users are scoped to their own rows.
func OwnerScope(user *models.User) int {
	if Can(user.Role, ActionViewAllRecords) {
		return 0
	}
	return user.ID
}

// CanAccessRecord reports whether the user may touch a row owned by ownerID.
func CanAccessRecord(user *models.User, ownerID int) bool {
	if Can(user.Role, ActionViewAllRecords) {
		return true
	}
	return ownerID == user.ID
}
