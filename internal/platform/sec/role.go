// Copyright (c) 2026 Coursia. All rights reserved.
// Author: lam.vothanh.dev@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
//
// Roles gate what an account may administer. They are orthogonal to the
// membership tier, which gates which lessons an account may play.
type UserRole string

const (
	// Unrestricted system access: course authoring, sync, storefront admin
	RoleAdmin UserRole = "admin"

	// Can author and manage the content of courses assigned to them
	RoleInstructor UserRole = "instructor"

	// Default role for standard registered learners
	RoleMember UserRole = "member"
)

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
	case RoleInstructor:
		return 20
	case RoleMember:
		return 10
	default:
		return 0
	}
}
