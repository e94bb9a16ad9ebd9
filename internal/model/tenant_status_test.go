package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfoliopro/folio/internal/model"
)

func TestStatusDerivation(t *testing.T) {
	tests := map[string]struct {
		tenant model.Tenant
		want   model.TenantStatus
	}{
		"Active tenant": {
			tenant: model.Tenant{Active: true},
			want:   model.StatusActive,
		},
		"Banned tenant": {
			tenant: model.Tenant{Active: true, Banned: true},
			want:   model.StatusBanned,
		},
		"Banned wins over deactivated": {
			tenant: model.Tenant{Active: false, Banned: true},
			want:   model.StatusBanned,
		},
		"Deactivated tenant": {
			tenant: model.Tenant{Active: false},
			want:   model.StatusDeactivated,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, test.tenant.Status())
		})
	}
}

func TestApplyTransition(t *testing.T) {
	tests := map[string]struct {
		tenant     model.Tenant
		transition model.StatusTransition
		expectErr  bool
		wantStatus model.TenantStatus
	}{
		"Ban active tenant": {
			tenant:     model.Tenant{Active: true},
			transition: model.TransitionBan,
			wantStatus: model.StatusBanned,
		},
		"Ban deactivated tenant": {
			tenant:     model.Tenant{Active: false},
			transition: model.TransitionBan,
			wantStatus: model.StatusBanned,
		},
		"Ban banned tenant": {
			tenant:     model.Tenant{Active: true, Banned: true},
			transition: model.TransitionBan,
			expectErr:  true,
		},
		"Unban banned tenant": {
			tenant:     model.Tenant{Active: true, Banned: true},
			transition: model.TransitionUnban,
			wantStatus: model.StatusActive,
		},
		"Unban active tenant": {
			tenant:     model.Tenant{Active: true},
			transition: model.TransitionUnban,
			expectErr:  true,
		},
		"Deactivate active tenant": {
			tenant:     model.Tenant{Active: true},
			transition: model.TransitionDeactivate,
			wantStatus: model.StatusDeactivated,
		},
		"Deactivate banned tenant": {
			tenant:     model.Tenant{Active: true, Banned: true},
			transition: model.TransitionDeactivate,
			expectErr:  true,
		},
		"Reactivate deactivated tenant": {
			tenant:     model.Tenant{Active: false},
			transition: model.TransitionReactivate,
			wantStatus: model.StatusActive,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := test.tenant.ApplyTransition(t.Context(), test.transition)
			if test.expectErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrInvalidStatusTransition)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.wantStatus, test.tenant.Status())
		})
	}
}

func TestUnbanRestoresServing(t *testing.T) {
	tenant := model.Tenant{Active: true, Banned: true}

	require.NoError(t, tenant.ApplyTransition(t.Context(), model.TransitionUnban))
	assert.True(t, tenant.Servable())
}
