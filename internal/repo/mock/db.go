package mock

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/portfoliopro/folio/internal/model"
	"github.com/portfoliopro/folio/internal/repo"
)

// ModelInfo holds every table of the in-memory database, exported so tests
// can seed and inspect rows directly.
type ModelInfo struct {
	Tenants map[uuid.UUID]model.Tenant

	Profiles     map[uuid.UUID]model.Profile      // keyed by tenant ID
	ContactInfos map[uuid.UUID]model.ContactInfo  // keyed by tenant ID
	SiteSettings map[uuid.UUID]model.SiteSettings // keyed by tenant ID

	SocialLinks    map[uuid.UUID]model.SocialLink
	Expertises     map[uuid.UUID]model.Expertise
	Experiences    map[uuid.UUID]model.Experience
	Educations     map[uuid.UUID]model.Education
	Skills         map[uuid.UUID]model.Skill
	Projects       map[uuid.UUID]model.Project
	CustomSections map[uuid.UUID]model.CustomSection
	CustomItems    map[uuid.UUID]model.CustomItem
	SavedThemes    map[uuid.UUID]model.SavedTheme
	ThemePresets   map[uuid.UUID]model.ThemePreset
}

// InMemoryDB implements repo.Directory and repo.ContentStore for unit tests.
type InMemoryDB struct {
	Data ModelInfo
	mu   sync.RWMutex

	// Err, when set, is returned by every operation. Used to test
	// degraded-directory paths.
	Err error
}

// NewInMemoryDB creates and returns a new instance of InMemoryDB
func NewInMemoryDB() *InMemoryDB {
	return &InMemoryDB{
		Data: ModelInfo{
			Tenants:        map[uuid.UUID]model.Tenant{},
			Profiles:       map[uuid.UUID]model.Profile{},
			ContactInfos:   map[uuid.UUID]model.ContactInfo{},
			SiteSettings:   map[uuid.UUID]model.SiteSettings{},
			SocialLinks:    map[uuid.UUID]model.SocialLink{},
			Expertises:     map[uuid.UUID]model.Expertise{},
			Experiences:    map[uuid.UUID]model.Experience{},
			Educations:     map[uuid.UUID]model.Education{},
			Skills:         map[uuid.UUID]model.Skill{},
			Projects:       map[uuid.UUID]model.Project{},
			CustomSections: map[uuid.UUID]model.CustomSection{},
			CustomItems:    map[uuid.UUID]model.CustomItem{},
			SavedThemes:    map[uuid.UUID]model.SavedTheme{},
			ThemePresets:   map[uuid.UUID]model.ThemePreset{},
		},
	}
}

func (db *InMemoryDB) FindServable(_ context.Context, subdomain string) (*model.Tenant, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.Err != nil {
		return nil, db.Err
	}

	for _, t := range db.Data.Tenants {
		if strings.EqualFold(t.Subdomain, subdomain) && t.Servable() {
			return &t, nil
		}
	}

	return nil, repo.ErrTenantNotFound
}

func (db *InMemoryDB) FindByID(_ context.Context, id uuid.UUID) (*model.Tenant, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.Err != nil {
		return nil, db.Err
	}

	t, ok := db.Data.Tenants[id]
	if !ok {
		return nil, repo.ErrTenantNotFound
	}

	return &t, nil
}

func (db *InMemoryDB) FindByUsername(_ context.Context, username string) (*model.Tenant, error) {
	return db.findTenant(func(t model.Tenant) bool {
		return strings.EqualFold(t.Username, username)
	})
}

func (db *InMemoryDB) FindByEmail(_ context.Context, email string) (*model.Tenant, error) {
	return db.findTenant(func(t model.Tenant) bool {
		return strings.EqualFold(t.Email, email)
	})
}

func (db *InMemoryDB) FindBySubdomain(_ context.Context, subdomain string) (*model.Tenant, error) {
	return db.findTenant(func(t model.Tenant) bool {
		return strings.EqualFold(t.Subdomain, subdomain)
	})
}

func (db *InMemoryDB) findTenant(match func(model.Tenant) bool) (*model.Tenant, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.Err != nil {
		return nil, db.Err
	}

	for _, t := range db.Data.Tenants {
		if match(t) {
			return &t, nil
		}
	}

	return nil, repo.ErrTenantNotFound
}

func (db *InMemoryDB) CreateTenant(_ context.Context, tenant *model.Tenant) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.Err != nil {
		return db.Err
	}

	for _, t := range db.Data.Tenants {
		if strings.EqualFold(t.Subdomain, tenant.Subdomain) ||
			strings.EqualFold(t.Username, tenant.Username) ||
			strings.EqualFold(t.Email, tenant.Email) {
			return repo.ErrUniqueConstraint
		}
	}

	db.Data.Tenants[tenant.ID] = *tenant

	return nil
}

func (db *InMemoryDB) UpdateTenant(_ context.Context, tenant *model.Tenant) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.Err != nil {
		return db.Err
	}

	if _, ok := db.Data.Tenants[tenant.ID]; !ok {
		return repo.ErrTenantNotFound
	}

	for id, t := range db.Data.Tenants {
		if id != tenant.ID && strings.EqualFold(t.Subdomain, tenant.Subdomain) {
			return repo.ErrUniqueConstraint
		}
	}

	db.Data.Tenants[tenant.ID] = *tenant

	return nil
}

func (db *InMemoryDB) ListTenants(_ context.Context, query repo.TenantQuery) ([]*model.Tenant, int, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.Err != nil {
		return nil, 0, db.Err
	}

	matched := db.matchTenants(query)

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}

		return lessUUID(matched[i].ID, matched[j].ID)
	})

	count := len(matched)

	limit := query.Limit
	if limit <= 0 {
		limit = repo.DefaultLimit
	}

	if query.Offset >= count {
		return nil, count, nil
	}

	matched = matched[query.Offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, count, nil
}

func (db *InMemoryDB) CountTenants(_ context.Context, query repo.TenantQuery) (int, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.Err != nil {
		return 0, db.Err
	}

	return len(db.matchTenants(query)), nil
}

func (db *InMemoryDB) matchTenants(query repo.TenantQuery) []*model.Tenant {
	var matched []*model.Tenant

	for _, t := range db.Data.Tenants {
		if query.Role != nil && t.Role != *query.Role {
			continue
		}

		if query.Active != nil && t.Active != *query.Active {
			continue
		}

		if query.Banned != nil && t.Banned != *query.Banned {
			continue
		}

		if query.Search != "" {
			needle := strings.ToLower(query.Search)
			if !strings.Contains(strings.ToLower(t.Username), needle) &&
				!strings.Contains(strings.ToLower(t.Email), needle) &&
				!strings.Contains(strings.ToLower(t.Subdomain), needle) {
				continue
			}
		}

		matched = append(matched, &t)
	}

	return matched
}

func lessUUID(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}
