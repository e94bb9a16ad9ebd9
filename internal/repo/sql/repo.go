package sql

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/portfoliopro/folio/internal/errs"
	"github.com/portfoliopro/folio/internal/model"
	"github.com/portfoliopro/folio/internal/repo"
	"github.com/portfoliopro/folio/internal/repo/violations"
)

// Repository implements repo.Directory and repo.ContentStore on a gorm
// connection. All tenant content is row-scoped through the tenant_id column.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates and returns a new instance of Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) FindServable(ctx context.Context, subdomain string) (*model.Tenant, error) {
	var tenant model.Tenant

	err := r.db.WithContext(ctx).
		Where("lower(subdomain) = ? AND active AND NOT banned", strings.ToLower(subdomain)).
		First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrTenantNotFound
	} else if err != nil {
		return nil, errs.Wrap(repo.ErrGetResource, err)
	}

	return &tenant, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error) {
	return r.findTenant(ctx, "id = ?", id)
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*model.Tenant, error) {
	return r.findTenant(ctx, "lower(username) = ?", strings.ToLower(username))
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*model.Tenant, error) {
	return r.findTenant(ctx, "lower(email) = ?", strings.ToLower(email))
}

func (r *Repository) FindBySubdomain(ctx context.Context, subdomain string) (*model.Tenant, error) {
	return r.findTenant(ctx, "lower(subdomain) = ?", strings.ToLower(subdomain))
}

func (r *Repository) findTenant(ctx context.Context, cond string, arg any) (*model.Tenant, error) {
	var tenant model.Tenant

	err := r.db.WithContext(ctx).Where(cond, arg).First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrTenantNotFound
	} else if err != nil {
		return nil, errs.Wrap(repo.ErrGetResource, err)
	}

	return &tenant, nil
}

func (r *Repository) CreateTenant(ctx context.Context, tenant *model.Tenant) error {
	err := r.db.WithContext(ctx).Create(tenant).Error
	if violations.IsUniqueConstraint(err) {
		return errs.Wrap(repo.ErrUniqueConstraint, err)
	} else if err != nil {
		return errs.Wrap(repo.ErrCreateResource, err)
	}

	return nil
}

func (r *Repository) UpdateTenant(ctx context.Context, tenant *model.Tenant) error {
	err := r.db.WithContext(ctx).Save(tenant).Error
	if violations.IsUniqueConstraint(err) {
		return errs.Wrap(repo.ErrUniqueConstraint, err)
	} else if err != nil {
		return errs.Wrap(repo.ErrUpdateResource, err)
	}

	return nil
}

func (r *Repository) ListTenants(ctx context.Context, query repo.TenantQuery) ([]*model.Tenant, int, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = repo.DefaultLimit
	}

	count, err := r.CountTenants(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	var tenants []*model.Tenant

	err = applyTenantQuery(r.db.WithContext(ctx), query).
		Order("created_at desc, id asc").
		Limit(limit).
		Offset(query.Offset).
		Find(&tenants).Error
	if err != nil {
		return nil, 0, errs.Wrap(repo.ErrGetResource, err)
	}

	return tenants, count, nil
}

func (r *Repository) CountTenants(ctx context.Context, query repo.TenantQuery) (int, error) {
	var count int64

	err := applyTenantQuery(r.db.WithContext(ctx).Model(&model.Tenant{}), query).
		Count(&count).Error
	if err != nil {
		return 0, errs.Wrap(repo.ErrGetResource, err)
	}

	return int(count), nil
}

func applyTenantQuery(tx *gorm.DB, query repo.TenantQuery) *gorm.DB {
	if query.Role != nil {
		tx = tx.Where("role = ?", *query.Role)
	}

	if query.Active != nil {
		tx = tx.Where("active = ?", *query.Active)
	}

	if query.Banned != nil {
		tx = tx.Where("banned = ?", *query.Banned)
	}

	if query.Search != "" {
		pattern := "%" + strings.ToLower(query.Search) + "%"
		tx = tx.Where(
			"lower(username) LIKE ? OR lower(email) LIKE ? OR lower(subdomain) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	return tx
}
