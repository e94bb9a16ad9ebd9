package resolver

import (
	"net"
	"net/url"
	"regexp"
	"strings"
)

// QueryParam carries the subdomain on hosts without wildcard DNS.
const QueryParam = "subdomain"

var labelPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// defaultLocalHosts are development hosts where wildcard DNS is unavailable
// and the subdomain travels as a query parameter instead.
var defaultLocalHosts = map[string]struct{}{
	"localhost":  {},
	"127.0.0.1":  {},
	"0.0.0.0":    {},
	"testserver": {},
}

type strategy func(host string, query url.Values) (string, bool)

// Resolver extracts the candidate subdomain from a request host. It does not
// filter reserved names; that is the caller's job.
type Resolver struct {
	mainDomain string
	wildcard   *regexp.Regexp
	localHosts map[string]struct{}
	strategies []strategy
}

// New builds a resolver for the given apex domain, e.g. "portfoliopro.site".
// extraLocalHosts extends the built-in development host set.
func New(mainDomain string, extraLocalHosts []string) *Resolver {
	mainDomain = strings.ToLower(mainDomain)

	localHosts := make(map[string]struct{}, len(defaultLocalHosts)+len(extraLocalHosts))
	for host := range defaultLocalHosts {
		localHosts[host] = struct{}{}
	}

	for _, host := range extraLocalHosts {
		localHosts[strings.ToLower(host)] = struct{}{}
	}

	r := &Resolver{
		mainDomain: mainDomain,
		wildcard: regexp.MustCompile(
			`^([a-z0-9][a-z0-9-]*[a-z0-9]|[a-z0-9])\.` + regexp.QuoteMeta(mainDomain) + `$`,
		),
		localHosts: localHosts,
	}

	r.strategies = []strategy{
		r.localHostStrategy,
		r.wildcardDNSStrategy,
		r.queryParamStrategy,
	}

	return r
}

// Resolve returns the candidate subdomain for the host, or "" when the
// request does not address a tenant site. The host is lower-cased and any
// port is stripped before matching.
func (r *Resolver) Resolve(host string, query url.Values) string {
	host = normalizeHost(host)
	if host == "" {
		return ""
	}

	for _, apply := range r.strategies {
		sub, ok := apply(host, query)
		if ok {
			return sub
		}
	}

	return ""
}

// localHostStrategy handles development hosts and private network addresses,
// where the subdomain is carried by the query parameter.
func (r *Resolver) localHostStrategy(host string, query url.Values) (string, bool) {
	if !r.isLocalHost(host) {
		return "", false
	}

	return subdomainFromQuery(query), true
}

// wildcardDNSStrategy matches "<label>.<main domain>". The bare main domain
// never matches, so it falls through to no subdomain.
func (r *Resolver) wildcardDNSStrategy(host string, _ url.Values) (string, bool) {
	groups := r.wildcard.FindStringSubmatch(host)
	if groups == nil {
		return "", false
	}

	return groups[1], true
}

// queryParamStrategy serves secondary domains without wildcard DNS. The bare
// main domain is excluded; it is the landing page.
func (r *Resolver) queryParamStrategy(host string, query url.Values) (string, bool) {
	if host == r.mainDomain {
		return "", false
	}

	sub := subdomainFromQuery(query)
	if sub == "" {
		return "", false
	}

	return sub, true
}

func (r *Resolver) isLocalHost(host string) bool {
	if _, ok := r.localHosts[host]; ok {
		return true
	}

	return strings.HasPrefix(host, "192.168.") || strings.HasPrefix(host, "10.")
}

// subdomainFromQuery trims and lowercases the parameter but does not apply
// the label grammar. A malformed value still addresses a tenant site; it
// just misses in the directory instead of falling back to the landing page.
func subdomainFromQuery(query url.Values) string {
	return strings.ToLower(strings.TrimSpace(query.Get(QueryParam)))
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))

	if bare, _, err := net.SplitHostPort(host); err == nil {
		host = bare
	}

	return strings.TrimSuffix(host, ".")
}
