// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role an account can have in the system.
type Role string

const (
	// RoleOwner indicates a restaurant owner.
	RoleOwner Role = "owner"
	// RoleClient indicates a regular ordering customer.
	RoleClient Role = "client"
	// RoleDelivery indicates a delivery rider.
	RoleDelivery Role = "delivery"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleClient, RoleDelivery:
		return true
	default:
		return false
	}
}

// RoleFromString converts a string to a Role. The boolean reports whether
// the input named a known role.
func RoleFromString(s string) (Role, bool) {
	role := Role(s)

	return role, role.IsValid()
}
