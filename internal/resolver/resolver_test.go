package resolver_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/portfoliopro/folio/internal/resolver"
)

func TestResolve(t *testing.T) {
	r := resolver.New("portfoliopro.site", nil)

	tests := map[string]struct {
		host  string
		query url.Values
		want  string
	}{
		"Tenant subdomain": {
			host: "alice.portfoliopro.site",
			want: "alice",
		},
		"Uppercase host is lowered": {
			host: "Alice.PortfolioPro.Site",
			want: "alice",
		},
		"Port is stripped": {
			host: "alice.portfoliopro.site:8080",
			want: "alice",
		},
		"Hyphenated label": {
			host: "jane-doe.portfoliopro.site",
			want: "jane-doe",
		},
		"Single character label": {
			host: "a.portfoliopro.site",
			want: "a",
		},
		"Bare main domain": {
			host: "portfoliopro.site",
			want: "",
		},
		"Bare main domain ignores query": {
			host:  "portfoliopro.site",
			query: url.Values{"subdomain": {"alice"}},
			want:  "",
		},
		"www is returned, not filtered": {
			host: "www.portfoliopro.site",
			want: "www",
		},
		"Nested label does not match": {
			host: "a.b.portfoliopro.site",
			want: "",
		},
		"Label ending in hyphen does not match": {
			host: "alice-.portfoliopro.site",
			want: "",
		},
		"Unrelated host without query": {
			host: "example.com",
			want: "",
		},
		"Secondary domain with query param": {
			host:  "example.com",
			query: url.Values{"subdomain": {"alice"}},
			want:  "alice",
		},
		"Localhost with query param": {
			host:  "localhost:8000",
			query: url.Values{"subdomain": {"alice"}},
			want:  "alice",
		},
		"Localhost without query param": {
			host: "localhost",
			want: "",
		},
		"Loopback address with query param": {
			host:  "127.0.0.1:8000",
			query: url.Values{"subdomain": {"bob"}},
			want:  "bob",
		},
		"Private network host with query param": {
			host:  "192.168.1.20:3000",
			query: url.Values{"subdomain": {"bob"}},
			want:  "bob",
		},
		"Ten-dot host with query param": {
			host:  "10.0.0.5",
			query: url.Values{"subdomain": {"bob"}},
			want:  "bob",
		},
		"Query param is lowercased": {
			host:  "localhost",
			query: url.Values{"subdomain": {"Alice"}},
			want:  "alice",
		},
		"Malformed query param passes through": {
			host:  "localhost",
			query: url.Values{"subdomain": {"-bad-"}},
			want:  "-bad-",
		},
		"Query param is trimmed": {
			host:  "localhost",
			query: url.Values{"subdomain": {"  alice "}},
			want:  "alice",
		},
		"Empty host": {
			host: "",
			want: "",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			query := test.query
			if query == nil {
				query = url.Values{}
			}

			assert.Equal(t, test.want, r.Resolve(test.host, query))
		})
	}
}

func TestResolveExtraLocalHosts(t *testing.T) {
	r := resolver.New("portfoliopro.site", []string{"dev.internal"})

	got := r.Resolve("dev.internal:9000", url.Values{"subdomain": {"carol"}})
	assert.Equal(t, "carol", got)
}

func TestResolveIsIdempotentPerHost(t *testing.T) {
	r := resolver.New("portfoliopro.site", nil)

	first := r.Resolve("alice.portfoliopro.site", url.Values{})
	second := r.Resolve("alice.portfoliopro.site", url.Values{})

	assert.Equal(t, first, second)
}
