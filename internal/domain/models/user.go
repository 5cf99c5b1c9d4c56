package models

import "time"

// Role identifies a user's access tier.
type Role string

const (
	RoleTeamTraining Role = "Team Training"
	RoleManager      Role = "Manager"
	RoleAdminManager Role = "Admin Manager"
)

// Valid reports whether the role is a known value.
func (r Role) Valid() bool {
	return r == RoleTeamTraining || r == RoleManager || r == RoleAdminManager
}

// AtLeast reports whether the role grants the permissions of min.
func (r Role) AtLeast(min Role) bool {
	return rank(r) >= rank(min)
}

func rank(r Role) int {
	switch r {
	case RoleAdminManager:
		return 2
	case RoleManager:
		return 1
	default:
		return 0
	}
}

// User is a dashboard account. ID is the public 1-4 digit numeric string
// employees log in with; PIN is the 4-digit credential.
type User struct {
	DocID     string    `bson:"_id,omitempty" json:"-"`
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Role      Role      `bson:"role" json:"role"`
	PIN       string    `bson:"pin" json:"-"`
	LastLogin time.Time `bson:"lastLogin" json:"lastLogin"`
}
