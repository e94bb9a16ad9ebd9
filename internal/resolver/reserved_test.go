package resolver_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/portfoliopro/folio/internal/resolver"
)

func TestReservedSetContains(t *testing.T) {
	set := resolver.NewReservedSet([]string{"internal"})

	assert.True(t, set.Contains("www"))
	assert.True(t, set.Contains("WWW"))
	assert.True(t, set.Contains("superadmin"))
	assert.True(t, set.Contains("internal"))
	assert.False(t, set.Contains("alice"))
}

func TestValidateSubdomain(t *testing.T) {
	set := resolver.NewReservedSet(nil)

	tests := map[string]struct {
		subdomain string
		wantErr   error
	}{
		"Valid": {
			subdomain: "alice",
		},
		"Valid with hyphen": {
			subdomain: "jane-doe",
		},
		"Valid with digits": {
			subdomain: "user42",
		},
		"Too short": {
			subdomain: "ab",
			wantErr:   resolver.ErrSubdomainTooShort,
		},
		"Too long": {
			subdomain: strings.Repeat("a", 51),
			wantErr:   resolver.ErrSubdomainTooLong,
		},
		"Leading hyphen": {
			subdomain: "-alice",
			wantErr:   resolver.ErrSubdomainInvalid,
		},
		"Trailing hyphen": {
			subdomain: "alice-",
			wantErr:   resolver.ErrSubdomainInvalid,
		},
		"Uppercase rejected": {
			subdomain: "Alice",
			wantErr:   resolver.ErrSubdomainInvalid,
		},
		"Underscore rejected": {
			subdomain: "a_lice",
			wantErr:   resolver.ErrSubdomainInvalid,
		},
		"Reserved name": {
			subdomain: "admin",
			wantErr:   resolver.ErrSubdomainReserved,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := set.ValidateSubdomain(test.subdomain)
			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
