// Package policy decides who may do what to which record.
//
// Every handler consults Can with the record owner, and list queries are
// restricted through ScopeFor. Nothing here performs I/O.
package policy

import "sort"

type Action string

const (
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	// ActionDeleteUser removes an account. Only admins hold it.
	ActionDeleteUser Action = "delete_user"
)

// Actor is the authenticated identity behind a request.
type Actor struct {
	ID    string
	Admin bool
}

// Can reports whether actor may perform action on a record owned by ownerID.
// A nil actor is never allowed.
func Can(actor *Actor, action Action, ownerID string) bool {
	if actor == nil || actor.ID == "" {
		return false
	}

	switch action {
	case ActionDeleteUser:
		return actor.Admin
	case ActionCreate:
		// The new record is always owned by the actor.
		return true
	}

	if actor.Admin {
		return true
	}

	switch action {
	case ActionList, ActionRead, ActionUpdate, ActionDelete:
		return actor.ID == ownerID
	}
	return false
}

// IsAdmin is the gate for admin-only operations.
func IsAdmin(actor *Actor) bool {
	return Can(actor, ActionDeleteUser, "")
}

// Scope restricts a query to the rows an actor may see.
type Scope struct {
	// Unrestricted scopes see every owner.
	Unrestricted bool
	OwnerID      string
}

// ScopeFor returns the row predicate for actor. A nil actor gets a scope
// that matches nothing.
func ScopeFor(actor *Actor) Scope {
	if actor == nil || actor.ID == "" {
		return Scope{}
	}
	if actor.Admin {
		return Scope{Unrestricted: true}
	}
	return Scope{OwnerID: actor.ID}
}

// Allows reports whether a row owned by ownerID is inside the scope.
func (s Scope) Allows(ownerID string) bool {
	if s.Unrestricted {
		return true
	}
	return s.OwnerID != "" && s.OwnerID == ownerID
}

// Empty reports whether the scope matches no rows at all.
func (s Scope) Empty() bool {
	return !s.Unrestricted && s.OwnerID == ""
}

const (
	PermAddTask       = "tasks.add"
	PermViewOwnTask   = "tasks.view_own"
	PermChangeOwnTask = "tasks.change_own"
	PermDeleteOwnTask = "tasks.delete_own"
	PermViewAnyTask   = "tasks.view_any"
	PermChangeAnyTask = "tasks.change_any"
	PermDeleteAnyTask = "tasks.delete_any"
	PermViewSelf      = "users.view_self"
	PermChangeSelf    = "users.change_self"
	PermViewAnyUser   = "users.view_any"
	PermChangeAnyUser = "users.change_any"
	PermDeleteUser    = "users.delete"
)

// Permissions describes what actor is allowed to do, sorted.
func Permissions(actor *Actor) []string {
	if actor == nil || actor.ID == "" {
		return []string{}
	}

	perms := []string{
		PermAddTask,
		PermViewOwnTask,
		PermChangeOwnTask,
		PermDeleteOwnTask,
		PermViewSelf,
		PermChangeSelf,
	}
	if actor.Admin {
		perms = append(perms,
			PermViewAnyTask,
			PermChangeAnyTask,
			PermDeleteAnyTask,
			PermViewAnyUser,
			PermChangeAnyUser,
			PermDeleteUser,
		)
	}
	sort.Strings(perms)
	return perms
}
