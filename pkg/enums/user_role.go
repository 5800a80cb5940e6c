package enums

// UserRole maps to the user_role enum in Postgres.
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleAgent  UserRole = "agent"
	UserRoleBuyer  UserRole = "buyer"
	UserRoleSeller UserRole = "seller"
)

func (u UserRole) IsValid() bool {
	switch u {
	case UserRoleAdmin, UserRoleAgent, UserRoleBuyer, UserRoleSeller:
		return true
	}
	return false
}
