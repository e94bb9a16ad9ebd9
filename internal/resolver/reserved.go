package resolver

import (
	"errors"
	"strings"
)

var (
	ErrSubdomainTooShort = errors.New("subdomain must be at least 3 characters")
	ErrSubdomainTooLong  = errors.New("subdomain must be at most 50 characters")
	ErrSubdomainInvalid  = errors.New("subdomain may only contain lowercase letters, digits and hyphens, and cannot start or end with a hyphen")
	ErrSubdomainReserved = errors.New("subdomain is reserved")
)

const (
	minSubdomainLen = 3
	maxSubdomainLen = 50
)

// reservedSubdomains are names claimed by the platform itself. A tenant can
// never register one and the resolution middleware treats them as no tenant.
var reservedSubdomains = map[string]struct{}{
	"www": {}, "api": {}, "admin": {}, "static": {}, "media": {},
	"app": {}, "mail": {}, "ftp": {}, "blog": {}, "help": {},
	"support": {}, "status": {}, "docs": {}, "developer": {}, "dev": {},
	"staging": {}, "test": {}, "demo": {}, "login": {}, "register": {},
	"signup": {}, "auth": {}, "dashboard": {}, "superadmin": {},
	"panel": {}, "console": {},
}

// ReservedSet answers whether a name is off-limits for tenants. Extended
// names come from configuration.
type ReservedSet struct {
	names map[string]struct{}
}

func NewReservedSet(extra []string) *ReservedSet {
	names := make(map[string]struct{}, len(reservedSubdomains)+len(extra))
	for name := range reservedSubdomains {
		names[name] = struct{}{}
	}

	for _, name := range extra {
		names[strings.ToLower(name)] = struct{}{}
	}

	return &ReservedSet{names: names}
}

// Contains is case-insensitive.
func (s *ReservedSet) Contains(name string) bool {
	_, ok := s.names[strings.ToLower(name)]
	return ok
}

// ValidateSubdomain checks a registration candidate: length bounds, label
// grammar and the reserved set. The input is expected lower-cased.
func (s *ReservedSet) ValidateSubdomain(name string) error {
	if len(name) < minSubdomainLen {
		return ErrSubdomainTooShort
	}

	if len(name) > maxSubdomainLen {
		return ErrSubdomainTooLong
	}

	if !labelPattern.MatchString(name) {
		return ErrSubdomainInvalid
	}

	if s.Contains(name) {
		return ErrSubdomainReserved
	}

	return nil
}
