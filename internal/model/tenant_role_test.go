package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/portfoliopro/folio/internal/model"
)

func TestTenantRoleValidation(t *testing.T) {
	tests := map[string]struct {
		role      model.TenantRole
		expectErr bool
	}{
		"Owner": {
			role: model.RoleOwner,
		},
		"Platform admin": {
			role: model.RolePlatformAdmin,
		},
		"Empty role": {
			role:      "",
			expectErr: true,
		},
		"Invalid role": {
			role:      "invalid_role",
			expectErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := test.role.Validate()
			if test.expectErr {
				assert.Equal(t, model.ErrInvalidTenantRole, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
