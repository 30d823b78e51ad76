package models

import "time"

// Account roles. A role is fixed at registration and never changes.
const (
	RoleParent      = "parent"
	RoleSchoolAdmin = "school_admin"
	RoleSystemAdmin = "system_admin"
)

// User represents a platform account.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Role         string    `bson:"role" json:"role"`
	Active       bool      `bson:"active" json:"active"`
	Verified     bool      `bson:"verified" json:"verified"`
	SchoolID     string    `bson:"schoolId,omitempty" json:"schoolId,omitempty"` // Only set for school_admin accounts.
	TokenHash    string    `bson:"tokenHash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ValidRole reports whether role is one of the three platform roles.
func ValidRole(role string) bool {
	switch role {
	case RoleParent, RoleSchoolAdmin, RoleSystemAdmin:
		return true
	}
	return false
}
