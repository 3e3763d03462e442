package domain

type Role string

const (
	RoleFleetAdmin Role = "FLEET_ADMIN"
	RoleSupplier   Role = "SUPPLIER"
	RoleUser       Role = "USER"
)

// ParseRole maps a raw role string to a known Role. Unknown or empty
// values fall back to the plain USER role, matching signup behavior.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleFleetAdmin, RoleSupplier:
		return Role(s)
	default:
		return RoleUser
	}
}

type User struct {
	ID           int32  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}
