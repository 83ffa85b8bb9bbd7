package entity

import "fmt"

// Role represents a user role in the system. The set is closed: every
// authorization decision switches over exactly these three values.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Roles lists every valid role in display order
var Roles = []Role{RoleAdmin, RoleDoctor, RolePatient}

// ParseRole converts a raw role name into a Role
func ParseRole(name string) (Role, error) {
	role := Role(name)
	if !role.IsValid() {
		return "", fmt.Errorf("unknown role %q", name)
	}
	return role, nil
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
