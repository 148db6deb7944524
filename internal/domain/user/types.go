package user

import "errors"

var ErrInvalidRoleValue = errors.New("invalid role value")

type Role string

const (
	RoleViewer   Role = "viewer"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

func NewRole(s string) (Role, error) {
	switch Role(s) {
	case RoleViewer, RoleOperator, RoleAdmin:
		return Role(s), nil
	default:
		return "", ErrInvalidRoleValue
	}
}

func (r Role) String() string {
	return string(r)
}
