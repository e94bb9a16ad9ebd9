package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/portfoliopro/folio/internal/api/write"
	"github.com/portfoliopro/folio/internal/apierrors"
	"github.com/portfoliopro/folio/internal/log"
	"github.com/portfoliopro/folio/internal/manager"
	"github.com/portfoliopro/folio/internal/model"
	"github.com/portfoliopro/folio/internal/repo"
	"github.com/portfoliopro/folio/utils/sanitise"
	foliocontext "github.com/portfoliopro/folio/utils/context"
)

// ContentController is the owner dashboard API over the portfolio content.
// Every handler operates on the signed-in account's own data.
type ContentController struct {
	portfolio *manager.PortfolioManager
	themes    *manager.ThemeManager
}

func NewContentController(portfolio *manager.PortfolioManager, themes *manager.ThemeManager) *ContentController {
	return &ContentController{
		portfolio: portfolio,
		themes:    themes,
	}
}

func principal(ctx context.Context, w http.ResponseWriter) (*model.Tenant, bool) {
	tenant, err := foliocontext.GetPrincipal(ctx)
	if err != nil {
		write.ErrorResponse(ctx, w, apierrors.UnauthorizedErrorMessage())
		return nil, false
	}

	return tenant, true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		write.ErrorResponse(r.Context(), w, apierrors.ValidationErrorMessage("invalid id"))
		return uuid.Nil, false
	}

	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, into any) bool {
	err := json.NewDecoder(r.Body).Decode(into)
	if err != nil {
		write.ErrorResponse(r.Context(), w, apierrors.JSONDecodeErrorMessage())
		return false
	}

	return true
}

// writeContentError maps manager and repo errors onto API errors.
func writeContentError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound), errors.Is(err, repo.ErrTenantNotFound):
		write.ErrorResponse(ctx, w, apierrors.NotFoundErrorMessage())
	case errors.Is(err, manager.ErrSystemSection),
		errors.Is(err, manager.ErrEmptyTitle),
		errors.Is(err, manager.ErrUnknownTheme),
		errors.Is(err, sanitise.ErrSanitisation):
		write.ErrorResponse(ctx, w, apierrors.ValidationErrorMessage(err.Error()))
	case errors.Is(err, repo.ErrUniqueConstraint):
		write.ErrorResponse(ctx, w, apierrors.ConflictErrorMessage(err.Error()))
	default:
		log.Error(ctx, "Content operation failed", err)
		write.ErrorResponse(ctx, w, apierrors.InternalServerErrorMessage())
	}
}

func (c *ContentController) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := principal(ctx, w)
	if !ok {
		return
	}

	profile, err := c.portfolio.GetProfile(ctx, tenant)
	if errors.Is(err, repo.ErrNotFound) {
		profile = model.DefaultProfile(tenant.ID)
	} else if err != nil {
		writeContentError(ctx, w, err)
		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, profile)
}

func (c *ContentController) SaveProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := principal(ctx, w)
	if !ok {
		return
	}

	var profile model.Profile
	if !decode(w, r, &profile) {
		return
	}

	err := c.portfolio.SaveProfile(ctx, tenant, &profile)
	if err != nil {
		writeContentError(ctx, w, err)
		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, profile)
}

func (c *ContentController) GetContactInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := principal(ctx, w)
	if !ok {
		return
	}

	info, err := c.portfolio.GetContactInfo(ctx, tenant)
	if errors.Is(err, repo.ErrNotFound) {
		info = model.DefaultContactInfo(tenant.ID)
	} else if err != nil {
		writeContentError(ctx, w, err)
		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, info)
}

func (c *ContentController) SaveContactInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := principal(ctx, w)
	if !ok {
		return
	}

	var info model.ContactInfo
	if !decode(w, r, &info) {
		return
	}

	err := c.portfolio.SaveContactInfo(ctx, tenant, &info)
	if err != nil {
		writeContentError(ctx, w, err)
		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, info)
}

func (c *ContentController) GetSiteSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := principal(ctx, w)
	if !ok {
		return
	}

	settings, err := c.portfolio.GetSiteSettings(ctx, tenant)
	if errors.Is(err, repo.ErrNotFound) {
		settings = model.DefaultSiteSettings(tenant.ID)
	} else if err != nil {
		writeContentError(ctx, w, err)
		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, settings)
}

func (c *ContentController) SaveSiteSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := principal(ctx, w)
	if !ok {
		return
	}

	var settings model.SiteSettings
	if !decode(w, r, &settings) {
		return
	}

	err := c.portfolio.SaveSiteSettings(ctx, tenant, &settings)
	if err != nil {
		writeContentError(ctx, w, err)
		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, settings)
}

// collection wires one ordered collection's CRUD handlers through the
// manager. The closures keep per-entity sanitisation in the manager.
type collection[T any] struct {
	list   func(ctx context.Context, tenant *model.Tenant) ([]T, error)
	create func(ctx context.Context, tenant *model.Tenant, row *T) error
	update func(ctx context.Context, tenant *model.Tenant, row *T) error
	delete func(ctx context.Context, tenant *model.Tenant, id uuid.UUID) error
	setID  func(row *T, id uuid.UUID)
}

func handleList[T any](c collection[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tenant, ok := principal(ctx, w)
		if !ok {
			return
		}

		rows, err := c.list(ctx, tenant)
		if err != nil {
			writeContentError(ctx, w, err)
			return
		}

		write.JSONResponse(ctx, w, http.StatusOK, rows)
	}
}

func handleCreate[T any](c collection[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tenant, ok := principal(ctx, w)
		if !ok {
			return
		}

		var row T
		if !decode(w, r, &row) {
			return
		}

		err := c.create(ctx, tenant, &row)
		if err != nil {
			writeContentError(ctx, w, err)
			return
		}

		write.JSONResponse(ctx, w, http.StatusCreated, row)
	}
}

func handleUpdate[T any](c collection[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tenant, ok := principal(ctx, w)
		if !ok {
			return
		}

		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var row T
		if !decode(w, r, &row) {
			return
		}

		c.setID(&row, id)

		err := c.update(ctx, tenant, &row)
		if err != nil {
			writeContentError(ctx, w, err)
			return
		}

		write.JSONResponse(ctx, w, http.StatusOK, row)
	}
}

func handleDelete[T any](c collection[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tenant, ok := principal(ctx, w)
		if !ok {
			return
		}

		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		err := c.delete(ctx, tenant, id)
		if err != nil {
			writeContentError(ctx, w, err)
			return
		}

		write.JSONResponse(ctx, w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func (c *ContentController) socialLinks() collection[model.SocialLink] {
	return collection[model.SocialLink]{
		list: func(ctx context.Context, t *model.Tenant) ([]model.SocialLink, error) {
			return c.portfolio.ListSocialLinks(ctx, t)
		},
		create: c.portfolio.CreateSocialLink,
		update: c.portfolio.UpdateSocialLink,
		delete: c.portfolio.DeleteSocialLink,
		setID:  func(row *model.SocialLink, id uuid.UUID) { row.ID = id },
	}
}

func (c *ContentController) expertises() collection[model.Expertise] {
	return collection[model.Expertise]{
		list: func(ctx context.Context, t *model.Tenant) ([]model.Expertise, error) {
			return c.portfolio.ListExpertises(ctx, t)
		},
		create: c.portfolio.CreateExpertise,
		update: c.portfolio.UpdateExpertise,
		delete: c.portfolio.DeleteExpertise,
		setID:  func(row *model.Expertise, id uuid.UUID) { row.ID = id },
	}
}

func (c *ContentController) experiences() collection[model.Experience] {
	return collection[model.Experience]{
		list: func(ctx context.Context, t *model.Tenant) ([]model.Experience, error) {
			return c.portfolio.ListExperiences(ctx, t)
		},
		create: c.portfolio.CreateExperience,
		update: c.portfolio.UpdateExperience,
		delete: c.portfolio.DeleteExperience,
		setID:  func(row *model.Experience, id uuid.UUID) { row.ID = id },
	}
}

func (c *ContentController) educations() collection[model.Education] {
	return collection[model.Education]{
		list: func(ctx context.Context, t *model.Tenant) ([]model.Education, error) {
			return c.portfolio.ListEducations(ctx, t)
		},
		create: c.portfolio.CreateEducation,
		update: c.portfolio.UpdateEducation,
		delete: c.portfolio.DeleteEducation,
		setID:  func(row *model.Education, id uuid.UUID) { row.ID = id },
	}
}

func (c *ContentController) skills() collection[model.Skill] {
	return collection[model.Skill]{
		list: func(ctx context.Context, t *model.Tenant) ([]model.Skill, error) {
			return c.portfolio.ListSkills(ctx, t)
		},
		create: c.portfolio.CreateSkill,
		update: c.portfolio.UpdateSkill,
		delete: c.portfolio.DeleteSkill,
		setID:  func(row *model.Skill, id uuid.UUID) { row.ID = id },
	}
}

func (c *ContentController) projects() collection[model.Project] {
	return collection[model.Project]{
		list: func(ctx context.Context, t *model.Tenant) ([]model.Project, error) {
			return c.portfolio.ListProjects(ctx, t)
		},
		create: c.portfolio.CreateProject,
		update: c.portfolio.UpdateProject,
		delete: c.portfolio.DeleteProject,
		setID:  func(row *model.Project, id uuid.UUID) { row.ID = id },
	}
}

// CollectionHandlers is one ordered collection's HTTP surface.
type CollectionHandlers struct {
	List   http.HandlerFunc
	Create http.HandlerFunc
	Update http.HandlerFunc
	Delete http.HandlerFunc
}

func handlers[T any](c collection[T]) CollectionHandlers {
	return CollectionHandlers{
		List:   handleList(c),
		Create: handleCreate(c),
		Update: handleUpdate(c),
		Delete: handleDelete(c),
	}
}

// Collections maps the URL segment of each ordered collection to its
// handlers. The router mounts them uniformly.
func (c *ContentController) Collections() map[string]CollectionHandlers {
	return map[string]CollectionHandlers{
		"social-links": handlers(c.socialLinks()),
		"expertise":    handlers(c.expertises()),
		"experience":   handlers(c.experiences()),
		"education":    handlers(c.educations()),
		"skills":       handlers(c.skills()),
		"projects":     handlers(c.projects()),
	}
}

func (c *ContentController) ListCustomSections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := principal(ctx, w)
	if !ok {
		return
	}

	sections, err := c.portfolio.ListCustomSections(ctx, tenant)
	if err != nil {
		writeContentError(ctx, w, err)
		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, sections)
}

func (c *ContentController) CreateCustomSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := principal(ctx, w)
	if !ok {
		return
	}

	var section model.CustomSection
	if !decode(w, r, &section) {
		return
	}

	err := c.portfolio.CreateCustomSection(ctx, tenant, &section)
	if err != nil {
		writeContentError(ctx, w, err)
		return
	}

	write.JSONResponse(ctx, w, http.StatusCreated, section)
}

func (c *ContentController) UpdateCustomSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := principal(ctx, w)
	if !ok {
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var section model.CustomSection
	if !decode(w, r, &section) {
		return
	}

	section.ID = id

	err := c.portfolio.UpdateCustomSection(ctx, tenant, &section)
	if err != nil {
		writeContentError(ctx, w, err)
		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, section)
}

func (c *ContentController) DeleteCustomSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := principal(ctx, w)
	if !ok {
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	err := c.portfolio.DeleteCustomSection(ctx, tenant, id)
	if err != nil {
		writeContentError(ctx, w, err)
		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, map[string]bool{"ok": true})
}

func (c *ContentController) ToggleSectionVisibility(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := principal(ctx, w)
	if !ok {
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	section, err := c.portfolio.ToggleSectionVisibility(ctx, tenant, id)
	if err != nil {
		writeContentError(ctx, w, err)
		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, section)
}

type reorderRequest struct {
	OrderedIDs []uuid.UUID `json:"orderedIds"`
}

func (c *ContentController) ReorderSections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := principal(ctx, w)
	if !ok {
		return
	}

	var req reorderRequest
	if !decode(w, r, &req) {
		return
	}

	err := c.portfolio.ReorderSections(ctx, tenant, req.OrderedIDs)
	if err != nil {
		writeContentError(ctx, w, err)
		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, map[string]bool{"ok": true})
}

func (c *ContentController) CreateCustomItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := principal(ctx, w)
	if !ok {
		return
	}

	sectionID, ok := pathID(w, r, "sectionId")
	if !ok {
		return
	}

	var item model.CustomItem
	if !decode(w, r, &item) {
		return
	}

	item.SectionID = sectionID

	err := c.portfolio.CreateCustomItem(ctx, tenant, &item)
	if err != nil {
		writeContentError(ctx, w, err)
		return
	}

	write.JSONResponse(ctx, w, http.StatusCreated, item)
}

func (c *ContentController) UpdateCustomItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := principal(ctx, w)
	if !ok {
		return
	}

	sectionID, ok := pathID(w, r, "sectionId")
	if !ok {
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var item model.CustomItem
	if !decode(w, r, &item) {
		return
	}

	item.SectionID = sectionID
	item.ID = id

	err := c.portfolio.UpdateCustomItem(ctx, tenant, &item)
	if err != nil {
		writeContentError(ctx, w, err)
		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, item)
}

func (c *ContentController) DeleteCustomItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := principal(ctx, w)
	if !ok {
		return
	}

	sectionID, ok := pathID(w, r, "sectionId")
	if !ok {
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	err := c.portfolio.DeleteCustomItem(ctx, tenant, sectionID, id)
	if err != nil {
		writeContentError(ctx, w, err)
		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, map[string]bool{"ok": true})
}

func (c *ContentController) ListSavedThemes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := principal(ctx, w)
	if !ok {
		return
	}

	themes, err := c.themes.ListSavedThemes(ctx, tenant)
	if err != nil {
		writeContentError(ctx, w, err)
		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, themes)
}

type saveThemeRequest struct {
	Name string `json:"name"`
}

func (c *ContentController) SaveTheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := principal(ctx, w)
	if !ok {
		return
	}

	var req saveThemeRequest
	if !decode(w, r, &req) {
		return
	}

	theme, err := c.themes.SaveTheme(ctx, tenant, req.Name)
	if err != nil {
		writeContentError(ctx, w, err)
		return
	}

	write.JSONResponse(ctx, w, http.StatusCreated, theme)
}

func (c *ContentController) ApplySavedTheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := principal(ctx, w)
	if !ok {
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	err := c.themes.ApplySavedTheme(ctx, tenant, id)
	if err != nil {
		writeContentError(ctx, w, err)
		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, map[string]bool{"ok": true})
}

func (c *ContentController) DeleteSavedTheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := principal(ctx, w)
	if !ok {
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	err := c.themes.DeleteSavedTheme(ctx, tenant, id)
	if err != nil {
		writeContentError(ctx, w, err)
		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, map[string]bool{"ok": true})
}

type applyPresetRequest struct {
	Slug string `json:"slug"`
}

func (c *ContentController) ApplyThemePreset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, ok := principal(ctx, w)
	if !ok {
		return
	}

	var req applyPresetRequest
	if !decode(w, r, &req) {
		return
	}

	err := c.themes.ApplyPreset(ctx, tenant, req.Slug)
	if err != nil {
		writeContentError(ctx, w, err)
		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, map[string]bool{"ok": true})
}
