package entity

import "github.com/google/uuid"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

type RoleAssignment struct {
	BaseSimple
	UserID uuid.UUID `db:"user_id"`
	Role   UserRole  `db:"role"`
}

// DeriveRole collapses role rows into the single effective role: admin wins,
// otherwise the first assignment, otherwise none ("").
func DeriveRole(roles []UserRole) UserRole {
	if len(roles) == 0 {
		return ""
	}
	for _, r := range roles {
		if r == RoleAdmin {
			return RoleAdmin
		}
	}
	return roles[0]
}
