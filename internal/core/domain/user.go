package domain

import "time"

// Role and status enumerations are closed sets; anything outside them is
// rejected at creation time.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleViewer  = "viewer"
)

const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// User is a single directory record. IDs are decimal strings allocated
// monotonically (max existing numeric id + 1) and never reused within a
// process lifetime.
type User struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	DateJoined time.Time `json:"dateJoined"`
	LastLogin  time.Time `json:"lastLogin"`
}

// Role describes a role and its permission tokens. The set is seeded once and
// is not user-editable.
type Role struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// RoleSet is the fixed role descriptor set returned by the directory.
var RoleSet = []Role{
	{ID: "1", Name: RoleAdmin, Permissions: []string{"create", "read", "update", "delete"}},
	{ID: "2", Name: RoleManager, Permissions: []string{"create", "read", "update"}},
	{ID: "3", Name: RoleViewer, Permissions: []string{"read"}},
}

// Statuses lists all valid user statuses.
var Statuses = []string{StatusActive, StatusInactive, StatusSuspended}

// ValidRole reports whether r is one of the known role names.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleManager || r == RoleViewer
}

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive || s == StatusSuspended
}
