package context

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/portfoliopro/folio/internal/model"
)

var (
	ErrGetRequestID = errors.New("no requestID found in context")
	ErrNoTenant     = errors.New("no tenant found in context")
	ErrNoPrincipal  = errors.New("no authenticated account found in context")
)

type key string

const (
	requestIDKey key = "requestID"
	tenantKey    key = "tenant"
	subdomainKey key = "subdomain"
	principalKey key = "principal"
)

func InjectRequestID(ctx context.Context) context.Context {
	return context.WithValue(ctx, requestIDKey, uuid.NewString())
}

func GetRequestID(ctx context.Context) (string, error) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	if !ok || requestID == "" {
		return "", ErrGetRequestID
	}

	return requestID, nil
}

// InjectSubdomain stores the candidate subdomain extracted from the request
// host, before any directory lookup happened.
func InjectSubdomain(ctx context.Context, subdomain string) context.Context {
	return context.WithValue(ctx, subdomainKey, subdomain)
}

func GetSubdomain(ctx context.Context) string {
	subdomain, _ := ctx.Value(subdomainKey).(string)
	return subdomain
}

// InjectTenant attaches the resolved tenant to the request context.
func InjectTenant(ctx context.Context, tenant *model.Tenant) context.Context {
	return context.WithValue(ctx, tenantKey, tenant)
}

func GetTenant(ctx context.Context) (*model.Tenant, error) {
	tenant, ok := ctx.Value(tenantKey).(*model.Tenant)
	if !ok || tenant == nil {
		return nil, ErrNoTenant
	}

	return tenant, nil
}

// InjectPrincipal attaches the authenticated account to the request context.
// Distinct from the resolved tenant: a visitor on alice's site may be signed
// in as bob.
func InjectPrincipal(ctx context.Context, tenant *model.Tenant) context.Context {
	return context.WithValue(ctx, principalKey, tenant)
}

func GetPrincipal(ctx context.Context) (*model.Tenant, error) {
	tenant, ok := ctx.Value(principalKey).(*model.Tenant)
	if !ok || tenant == nil {
		return nil, ErrNoPrincipal
	}

	return tenant, nil
}

// IsTenantRequest reports whether the current request resolved to a tenant.
func IsTenantRequest(ctx context.Context) bool {
	_, err := GetTenant(ctx)
	return err == nil
}
