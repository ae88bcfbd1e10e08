package auth

// UserRole is the closed set of roles a user can hold. Role strings compare
// case-sensitively everywhere; unknown strings are rejected at the boundary
// (registration, token issuance) instead of being carried along.
type UserRole string

const (
	// RoleBuyer is the default role assigned at registration
	RoleBuyer UserRole = "buyer"
	// RoleSeller manages their own listings
	RoleSeller UserRole = "seller"
	// RoleCourier handles deliveries
	RoleCourier UserRole = "courier"
	// RoleAdmin can act on any user's resources
	RoleAdmin UserRole = "admin"
)

// IsValid checks if the role is one of the predefined valid roles
func (r UserRole) IsValid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleCourier, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether the role grants access to other users' resources
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// GetAllRoles returns all predefined roles
func GetAllRoles() []UserRole {
	return []UserRole{
		RoleBuyer,
		RoleSeller,
		RoleCourier,
		RoleAdmin,
	}
}

// ParseRole safely parses a string into a UserRole type
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, role.IsValid()
}
