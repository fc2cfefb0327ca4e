// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access: catalog writes and user administration
	RoleAdmin UserRole = "admin"

	// Can edit or remove any review and comment
	RoleModerator UserRole = "moderator"

	// Default role for standard registered users
	RoleUser UserRole = "user"
)

// IsValid reports whether r is one of the defined roles.
func IsValid(r UserRole) bool {
	return r == RoleAdmin || r == RoleModerator || r == RoleUser
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleModerator:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}

// # Capabilities

// Action identifies a permission-gated operation class.
type Action string

const (
	// ActionCreateFeedback covers posting reviews and comments.
	ActionCreateFeedback Action = "feedback:create"

	// ActionModerateFeedback covers editing or deleting feedback authored by others.
	ActionModerateFeedback Action = "feedback:moderate"

	// ActionManageCatalog covers creating, updating, and deleting
	// titles, categories, and genres.
	ActionManageCatalog Action = "catalog:manage"

	// ActionManageUsers covers listing, creating, patching, and deleting accounts.
	ActionManageUsers Action = "users:manage"

	// ActionAssignRoles covers changing the role field of any account,
	// including the caller's own.
	ActionAssignRoles Action = "users:assign_roles"
)

// Capabilities returns the set of actions a role is permitted to perform.
//
// It is a pure function: permission decisions are derived from the role enum
// in one place instead of scattered boolean checks.
func Capabilities(role UserRole) map[Action]bool {
	switch role {
	case RoleAdmin:
		return map[Action]bool{
			ActionCreateFeedback:   true,
			ActionModerateFeedback: true,
			ActionManageCatalog:    true,
			ActionManageUsers:      true,
			ActionAssignRoles:      true,
		}
	case RoleModerator:
		return map[Action]bool{
			ActionCreateFeedback:   true,
			ActionModerateFeedback: true,
			ActionAssignRoles:      true,
		}
	case RoleUser:
		return map[Action]bool{
			ActionCreateFeedback: true,
		}
	default:
		// Unknown or anonymous: read-only.
		return map[Action]bool{}
	}
}

// Can reports whether the role is permitted to perform the given action.
func (r UserRole) Can(action Action) bool {
	return Capabilities(r)[action]
}

// CanModifyOwned decides mutation access for owned resources (reviews,
// comments): the author may always modify their own, everyone else needs
// [ActionModerateFeedback].
func CanModifyOwned(role UserRole, actorID, ownerID string) bool {
	if actorID != "" && actorID == ownerID {
		return true
	}
	return role.Can(ActionModerateFeedback)
}
