package manager

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jxskiss/base62"
	"golang.org/x/crypto/bcrypt"

	"github.com/portfoliopro/folio/internal/errs"
	"github.com/portfoliopro/folio/internal/log"
	"github.com/portfoliopro/folio/internal/model"
	"github.com/portfoliopro/folio/internal/repo"
	"github.com/portfoliopro/folio/internal/resolver"
	"github.com/portfoliopro/folio/utils/ptr"
)

const (
	minPasswordLen = 8
	tempSecretLen  = 24
)

// RegisterParams carries a signup request.
type RegisterParams struct {
	Username  string
	Email     string
	Subdomain string
	Password  string
}

// DashboardStats summarize the fleet for the superadmin dashboard.
type DashboardStats struct {
	Total       int `json:"total"`
	Active      int `json:"active"`
	Banned      int `json:"banned"`
	Deactivated int `json:"deactivated"`
	Admins      int `json:"admins"`
}

// TenantManager owns the tenant lifecycle: registration, authentication and
// the superadmin fleet operations. Every write that changes what the public
// site serves ends with a cache invalidation for the affected subdomain.
type TenantManager struct {
	directory   repo.Directory
	content     repo.ContentStore
	reserved    *resolver.ReservedSet
	invalidator CacheInvalidator
}

func NewTenantManager(
	directory repo.Directory,
	content repo.ContentStore,
	reserved *resolver.ReservedSet,
	invalidator CacheInvalidator,
) *TenantManager {
	return &TenantManager{
		directory:   directory,
		content:     content,
		reserved:    reserved,
		invalidator: invalidator,
	}
}

// Register creates the tenant and seeds its default content. The subdomain's
// cache entry is invalidated afterwards: a visitor may have parked a negative
// entry on it minutes before.
func (m *TenantManager) Register(ctx context.Context, params RegisterParams) (*model.Tenant, error) {
	username := strings.TrimSpace(params.Username)
	if username == "" {
		return nil, ErrEmptyUsername
	}

	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" {
		return nil, ErrEmptyEmail
	}

	subdomain := strings.ToLower(strings.TrimSpace(params.Subdomain))

	err := m.reserved.ValidateSubdomain(subdomain)
	if err != nil {
		return nil, err
	}

	if len(params.Password) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	tenant := &model.Tenant{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		Subdomain:    subdomain,
		PasswordHash: string(hash),
		Role:         model.RoleOwner,
		Active:       true,
	}

	err = m.directory.CreateTenant(ctx, tenant)
	if errors.Is(err, repo.ErrUniqueConstraint) {
		return nil, errs.Wrap(ErrAccountExists, err)
	} else if err != nil {
		return nil, err
	}

	err = m.seedContent(ctx, tenant)
	if err != nil {
		return nil, err
	}

	m.invalidator.Invalidate(ctx, subdomain)

	return tenant, nil
}

func (m *TenantManager) seedContent(ctx context.Context, tenant *model.Tenant) error {
	profile := model.DefaultProfile(tenant.ID)
	profile.Name = tenant.Username
	profile.Greeting = "Hi, I am " + tenant.Username

	err := m.content.SaveProfile(ctx, profile)
	if err != nil {
		return err
	}

	contact := model.DefaultContactInfo(tenant.ID)
	contact.Email = tenant.Email

	err = m.content.SaveContactInfo(ctx, contact)
	if err != nil {
		return err
	}

	err = m.content.SaveSiteSettings(ctx, model.DefaultSiteSettings(tenant.ID))
	if err != nil {
		return err
	}

	for _, section := range model.DefaultSections(tenant.ID) {
		err = m.content.CreateCustomSection(ctx, &section)
		if err != nil {
			return err
		}
	}

	return nil
}

// Authenticate resolves the login, which may be a username or an email, and
// verifies the password. Banned and deactivated accounts cannot sign in.
func (m *TenantManager) Authenticate(ctx context.Context, login, password string) (*model.Tenant, error) {
	tenant, err := m.directory.FindByUsername(ctx, login)
	if errors.Is(err, repo.ErrTenantNotFound) {
		tenant, err = m.directory.FindByEmail(ctx, login)
	}

	if errors.Is(err, repo.ErrTenantNotFound) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(tenant.PasswordHash), []byte(password))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if tenant.Banned {
		return nil, ErrAccountBanned
	}

	if !tenant.Active {
		return nil, ErrAccountDeactivated
	}

	tenant.LastLogin = ptr.To(time.Now().UTC())

	err = m.directory.UpdateTenant(ctx, tenant)
	if err != nil {
		log.Warn(ctx, "failed to record last login", log.ErrorAttr(err))
	}

	return tenant, nil
}

// ChangePassword verifies the current password before replacing it.
func (m *TenantManager) ChangePassword(ctx context.Context, tenantID uuid.UUID, current, next string) error {
	tenant, err := m.directory.FindByID(ctx, tenantID)
	if err != nil {
		return err
	}

	err = bcrypt.CompareHashAndPassword([]byte(tenant.PasswordHash), []byte(current))
	if err != nil {
		return ErrInvalidCredentials
	}

	if len(next) < minPasswordLen {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tenant.PasswordHash = string(hash)

	return m.directory.UpdateTenant(ctx, tenant)
}

// SubdomainAvailable reports whether a subdomain can still be registered.
func (m *TenantManager) SubdomainAvailable(ctx context.Context, subdomain string) (bool, error) {
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))

	err := m.reserved.ValidateSubdomain(subdomain)
	if err != nil {
		return false, err
	}

	_, err = m.directory.FindBySubdomain(ctx, subdomain)
	if errors.Is(err, repo.ErrTenantNotFound) {
		return true, nil
	} else if err != nil {
		return false, err
	}

	return false, nil
}

// Ban blocks the tenant's portfolio and sign-in. The cache invalidation runs
// after the row is saved so the public site stops serving within one lookup.
func (m *TenantManager) Ban(ctx context.Context, tenantID uuid.UUID) (*model.Tenant, error) {
	return m.transition(ctx, tenantID, model.TransitionBan)
}

func (m *TenantManager) Unban(ctx context.Context, tenantID uuid.UUID) (*model.Tenant, error) {
	return m.transition(ctx, tenantID, model.TransitionUnban)
}

func (m *TenantManager) Deactivate(ctx context.Context, tenantID uuid.UUID) (*model.Tenant, error) {
	return m.transition(ctx, tenantID, model.TransitionDeactivate)
}

func (m *TenantManager) Reactivate(ctx context.Context, tenantID uuid.UUID) (*model.Tenant, error) {
	return m.transition(ctx, tenantID, model.TransitionReactivate)
}

func (m *TenantManager) transition(
	ctx context.Context,
	tenantID uuid.UUID,
	transition model.StatusTransition,
) (*model.Tenant, error) {
	tenant, err := m.directory.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	err = tenant.ApplyTransition(ctx, transition)
	if err != nil {
		return nil, err
	}

	err = m.directory.UpdateTenant(ctx, tenant)
	if err != nil {
		return nil, err
	}

	m.invalidator.Invalidate(ctx, tenant.Subdomain)

	return tenant, nil
}

// SetRole promotes or demotes a tenant.
func (m *TenantManager) SetRole(ctx context.Context, tenantID uuid.UUID, role model.TenantRole) (*model.Tenant, error) {
	err := role.Validate()
	if err != nil {
		return nil, err
	}

	tenant, err := m.directory.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	tenant.Role = role

	err = m.directory.UpdateTenant(ctx, tenant)
	if err != nil {
		return nil, err
	}

	return tenant, nil
}

// RenameSubdomain moves the tenant to a new address. Both the old and the
// new subdomain get invalidated: the old one stops resolving and the new one
// may carry a stale negative entry.
func (m *TenantManager) RenameSubdomain(ctx context.Context, tenantID uuid.UUID, subdomain string) (*model.Tenant, error) {
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))

	err := m.reserved.ValidateSubdomain(subdomain)
	if err != nil {
		return nil, err
	}

	tenant, err := m.directory.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	previous := tenant.Subdomain
	tenant.Subdomain = subdomain

	err = m.directory.UpdateTenant(ctx, tenant)
	if errors.Is(err, repo.ErrUniqueConstraint) {
		return nil, errs.Wrap(ErrSubdomainTaken, err)
	} else if err != nil {
		return nil, err
	}

	m.invalidator.Invalidate(ctx, previous)
	m.invalidator.Invalidate(ctx, subdomain)

	return tenant, nil
}

// ResetPassword replaces the tenant's password with a random temporary
// secret and returns it once, for the superadmin to hand over out of band.
func (m *TenantManager) ResetPassword(ctx context.Context, tenantID uuid.UUID) (string, error) {
	tenant, err := m.directory.FindByID(ctx, tenantID)
	if err != nil {
		return "", err
	}

	raw := make([]byte, tempSecretLen)

	_, err = rand.Read(raw)
	if err != nil {
		return "", err
	}

	secret := base62.EncodeToString(raw)

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	tenant.PasswordHash = string(hash)

	err = m.directory.UpdateTenant(ctx, tenant)
	if err != nil {
		return "", err
	}

	return secret, nil
}

// Get returns one tenant for the superadmin detail view.
func (m *TenantManager) Get(ctx context.Context, tenantID uuid.UUID) (*model.Tenant, error) {
	return m.directory.FindByID(ctx, tenantID)
}

// GetBySubdomain returns one tenant by subdomain, active or not.
func (m *TenantManager) GetBySubdomain(ctx context.Context, subdomain string) (*model.Tenant, error) {
	return m.directory.FindBySubdomain(ctx, subdomain)
}

// List pages through the fleet.
func (m *TenantManager) List(ctx context.Context, query repo.TenantQuery) ([]*model.Tenant, int, error) {
	return m.directory.ListTenants(ctx, query)
}

// Stats aggregates fleet counts for the dashboard.
func (m *TenantManager) Stats(ctx context.Context) (*DashboardStats, error) {
	total, err := m.directory.CountTenants(ctx, repo.TenantQuery{})
	if err != nil {
		return nil, err
	}

	active, err := m.directory.CountTenants(ctx, repo.TenantQuery{
		Active: ptr.To(true), Banned: ptr.To(false),
	})
	if err != nil {
		return nil, err
	}

	banned, err := m.directory.CountTenants(ctx, repo.TenantQuery{Banned: ptr.To(true)})
	if err != nil {
		return nil, err
	}

	deactivated, err := m.directory.CountTenants(ctx, repo.TenantQuery{
		Active: ptr.To(false), Banned: ptr.To(false),
	})
	if err != nil {
		return nil, err
	}

	admins, err := m.directory.CountTenants(ctx, repo.TenantQuery{
		Role: ptr.To(model.RolePlatformAdmin),
	})
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Total:       total,
		Active:      active,
		Banned:      banned,
		Deactivated: deactivated,
		Admins:      admins,
	}, nil
}

// FlushCaches drops every cached tenant and page. Explicit admin action.
func (m *TenantManager) FlushCaches(ctx context.Context) {
	m.invalidator.FlushAll(ctx)
}
