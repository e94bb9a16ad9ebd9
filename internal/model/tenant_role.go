package model

import "errors"

var ErrInvalidTenantRole = errors.New("tenant role is not valid")

// TenantRole separates portfolio owners from platform administrators.
type TenantRole string

const (
	RoleOwner         TenantRole = "OWNER"
	RolePlatformAdmin TenantRole = "PLATFORM_ADMIN"
)

var validTenantRoles = map[TenantRole]struct{}{
	RoleOwner:         {},
	RolePlatformAdmin: {},
}

// Validate validates the given role of the tenant.
// Returns an error if the role is invalid.
func (r TenantRole) Validate() error {
	if _, ok := validTenantRoles[r]; !ok {
		return ErrInvalidTenantRole
	}

	return nil
}
