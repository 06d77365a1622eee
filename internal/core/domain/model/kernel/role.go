package kernel

import (
	"fmt"
	"strings"

	"foodtruck/internal/pkg/errs"
)

// Role is the staff role a caller acts under.
type Role int

const (
	// RoleNone is an unauthenticated caller or one without a staff role.
	RoleNone Role = iota
	RoleAdmin
	RoleAttendant
	RoleKitchen
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleNone:      "none",
		RoleAdmin:     "admin",
		RoleAttendant: "attendant",
		RoleKitchen:   "kitchen",
	}
}

// ParseRole maps a role claim to a Role. Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for role, str := range getRoleStrings() {
		if str == needle {
			return role, nil
		}
	}
	return RoleNone, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "none"
}

// IsStaff reports whether the role is one of admin, attendant or kitchen.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleAttendant || r == RoleKitchen
}
