package actor

import (
	"fmt"

	"ordertrack/internal/pkg/errs"
)

// Role identifies which part a subject plays in the order lifecycle.
// Merchants originate orders, drivers fulfil them, and admins supervise
// assignment. Each mutation on an order is permitted to exactly one role.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleMerchant is the order originator. Merchants create orders and may
	// cancel their own orders while cancellation is still legal.
	RoleMerchant

	// RoleDriver is the fulfillment agent. Drivers advance the status of
	// orders along the delivery workflow.
	RoleDriver

	// RoleAdmin is the supervisor. Admins assign and unassign drivers and may
	// cancel any order.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "UNKNOWN",
		RoleMerchant: "MERCHANT",
		RoleDriver:   "DRIVER",
		RoleAdmin:    "ADMIN",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleMerchant: "MERCHANT",
		RoleDriver:   "DRIVER",
		RoleAdmin:    "ADMIN",
	}
}

// Validate checks if the Role value is valid.
// Valid roles are: Merchant, Driver, Admin.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire-format name of the role ("MERCHANT", "DRIVER",
// "ADMIN"), or "UNKNOWN" for invalid values. Implements fmt.Stringer.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

// RoleFromString parses a wire-format role name into a Role.
// Returns an error for any value outside the fixed role set.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role is invalid",
		fmt.Errorf("%q is not a valid role", s))
}
