package kernel

import (
	"strings"

	"orderlifecycle/internal/pkg/errs"
)

// Role is the authorisation role carried in the caller's token.
type Role string

const (
	RoleCustomer    Role = "CUSTOMER"
	RoleDeliveryMan Role = "DELIVERY_MAN"
	RoleAdmin       Role = "ADMIN"
	// RoleSystem is used by background processes such as payment hooks.
	RoleSystem Role = "SYSTEM"
)

// ParseRole is case-insensitive.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) String() string {
	return string(r)
}

func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleDeliveryMan, RoleAdmin, RoleSystem:
		return nil
	case "":
		return errs.NewValueIsRequiredError("role")
	default:
		return errs.NewValueIsInvalidError("role")
	}
}
