package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/portfoliopro/folio/internal/api/write"
	"github.com/portfoliopro/folio/internal/apierrors"
	"github.com/portfoliopro/folio/internal/async"
	"github.com/portfoliopro/folio/internal/auth"
	"github.com/portfoliopro/folio/internal/config"
	"github.com/portfoliopro/folio/internal/log"
	"github.com/portfoliopro/folio/internal/manager"
	"github.com/portfoliopro/folio/internal/middleware"
	"github.com/portfoliopro/folio/internal/model"
	"github.com/portfoliopro/folio/internal/repo"
	"github.com/portfoliopro/folio/utils/ptr"
	foliocontext "github.com/portfoliopro/folio/utils/context"
)

// SuperadminController exposes the fleet management API. Every route is
// guarded by middleware.RequireSuperadmin before it reaches these handlers.
type SuperadminController struct {
	tenants   *manager.TenantManager
	broadcast *manager.BroadcastManager
	sessions  *auth.Sessions
	client    async.Client
}

func NewSuperadminController(
	tenants *manager.TenantManager,
	broadcast *manager.BroadcastManager,
	sessions *auth.Sessions,
	client async.Client,
) *SuperadminController {
	return &SuperadminController{
		tenants:   tenants,
		broadcast: broadcast,
		sessions:  sessions,
		client:    client,
	}
}

func (c *SuperadminController) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := c.tenants.Stats(ctx)
	if err != nil {
		log.Error(ctx, "Failed to compute dashboard stats", err)
		write.ErrorResponse(ctx, w, apierrors.InternalServerErrorMessage())

		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, stats)
}

type tenantListResponse struct {
	Tenants []accountResponse `json:"tenants"`
	Total   int               `json:"total"`
}

func (c *SuperadminController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query, err := parseTenantQuery(r)
	if err != nil {
		write.ErrorResponse(ctx, w, apierrors.ValidationErrorMessage(err.Error()))
		return
	}

	tenants, total, err := c.tenants.List(ctx, query)
	if err != nil {
		log.Error(ctx, "Failed to list tenants", err)
		write.ErrorResponse(ctx, w, apierrors.InternalServerErrorMessage())

		return
	}

	resp := tenantListResponse{
		Tenants: make([]accountResponse, 0, len(tenants)),
		Total:   total,
	}
	for _, tenant := range tenants {
		resp.Tenants = append(resp.Tenants, toAccountResponse(tenant))
	}

	write.JSONResponse(ctx, w, http.StatusOK, resp)
}

func parseTenantQuery(r *http.Request) (repo.TenantQuery, error) {
	values := r.URL.Query()
	query := repo.TenantQuery{
		Search: values.Get("search"),
		Limit:  repo.DefaultLimit,
	}

	if raw := values.Get("role"); raw != "" {
		role := model.TenantRole(raw)
		if err := role.Validate(); err != nil {
			return query, err
		}

		query.Role = &role
	}

	for name, target := range map[string]**bool{
		"active": &query.Active,
		"banned": &query.Banned,
	} {
		raw := values.Get(name)
		if raw == "" {
			continue
		}

		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return query, err
		}

		*target = ptr.To(parsed)
	}

	for name, target := range map[string]*int{
		"limit":  &query.Limit,
		"offset": &query.Offset,
	} {
		raw := values.Get(name)
		if raw == "" {
			continue
		}

		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return query, err
		}

		*target = parsed
	}

	return query, nil
}

func (c *SuperadminController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	tenant, err := c.tenants.Get(ctx, id)
	if err != nil {
		writeContentError(ctx, w, err)
		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, toAccountResponse(tenant))
}

func (c *SuperadminController) Ban(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.tenants.Ban)
}

func (c *SuperadminController) Unban(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.tenants.Unban)
}

func (c *SuperadminController) Deactivate(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.tenants.Deactivate)
}

func (c *SuperadminController) Reactivate(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.tenants.Reactivate)
}

func (c *SuperadminController) transition(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, tenantID uuid.UUID) (*model.Tenant, error),
) {
	ctx := r.Context()

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	tenant, err := fn(ctx, id)

	switch {
	case errors.Is(err, model.ErrInvalidStatusTransition):
		write.ErrorResponse(ctx, w, apierrors.ConflictErrorMessage(err.Error()))
		return
	case errors.Is(err, repo.ErrTenantNotFound):
		write.ErrorResponse(ctx, w, apierrors.NotFoundErrorMessage())
		return
	case err != nil:
		log.Error(ctx, "Status transition failed", err)
		write.ErrorResponse(ctx, w, apierrors.InternalServerErrorMessage())

		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, toAccountResponse(tenant))
}

type setRoleRequest struct {
	Role model.TenantRole `json:"role"`
}

func (c *SuperadminController) SetRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req setRoleRequest
	if !decode(w, r, &req) {
		return
	}

	tenant, err := c.tenants.SetRole(ctx, id, req.Role)

	switch {
	case errors.Is(err, model.ErrInvalidTenantRole):
		write.ErrorResponse(ctx, w, apierrors.ValidationErrorMessage(err.Error()))
		return
	case errors.Is(err, repo.ErrTenantNotFound):
		write.ErrorResponse(ctx, w, apierrors.NotFoundErrorMessage())
		return
	case err != nil:
		log.Error(ctx, "Role change failed", err)
		write.ErrorResponse(ctx, w, apierrors.InternalServerErrorMessage())

		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, toAccountResponse(tenant))
}

type renameSubdomainRequest struct {
	Subdomain string `json:"subdomain"`
}

func (c *SuperadminController) RenameSubdomain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req renameSubdomainRequest
	if !decode(w, r, &req) {
		return
	}

	tenant, err := c.tenants.RenameSubdomain(ctx, id, req.Subdomain)

	switch {
	case errors.Is(err, manager.ErrSubdomainTaken):
		write.ErrorResponse(ctx, w, apierrors.ConflictErrorMessage(err.Error()))
		return
	case isSubdomainValidationError(err):
		write.ErrorResponse(ctx, w, apierrors.ValidationErrorMessage(err.Error()))
		return
	case errors.Is(err, repo.ErrTenantNotFound):
		write.ErrorResponse(ctx, w, apierrors.NotFoundErrorMessage())
		return
	case err != nil:
		log.Error(ctx, "Subdomain rename failed", err)
		write.ErrorResponse(ctx, w, apierrors.InternalServerErrorMessage())

		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, toAccountResponse(tenant))
}

// ResetPassword issues a fresh random password and returns it exactly once.
func (c *SuperadminController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	secret, err := c.tenants.ResetPassword(ctx, id)

	switch {
	case errors.Is(err, repo.ErrTenantNotFound):
		write.ErrorResponse(ctx, w, apierrors.NotFoundErrorMessage())
		return
	case err != nil:
		log.Error(ctx, "Password reset failed", err)
		write.ErrorResponse(ctx, w, apierrors.InternalServerErrorMessage())

		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, map[string]string{"password": secret})
}

// Impersonate swaps the admin's session for one scoped to the target
// account, with the admin recorded as the acting party.
func (c *SuperadminController) Impersonate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := foliocontext.GetPrincipal(ctx)
	if err != nil {
		write.ErrorResponse(ctx, w, apierrors.UnauthorizedErrorMessage())
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	target, err := c.tenants.Get(ctx, id)
	if errors.Is(err, repo.ErrTenantNotFound) {
		write.ErrorResponse(ctx, w, apierrors.NotFoundErrorMessage())
		return
	} else if err != nil {
		log.Error(ctx, "Impersonation target lookup failed", err)
		write.ErrorResponse(ctx, w, apierrors.InternalServerErrorMessage())

		return
	}

	token, err := c.sessions.IssueImpersonation(target.ID, actor.ID)
	if err != nil {
		log.Error(ctx, "Failed to issue impersonation session", err)
		write.ErrorResponse(ctx, w, apierrors.InternalServerErrorMessage())

		return
	}

	c.sessions.SetCookie(w, token, c.sessions.ImpersonationTTL())
	log.Info(ctx, "Impersonation started",
		slog.String("actor_id", actor.ID.String()),
		slog.String("target_id", target.ID.String()),
	)

	write.JSONResponse(ctx, w, http.StatusOK, toAccountResponse(target))
}

// EndImpersonation restores the acting admin's own session.
func (c *SuperadminController) EndImpersonation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, ok := middleware.GetSession(ctx)
	if !ok || !session.Impersonated() {
		write.ErrorResponse(ctx, w, apierrors.ValidationErrorMessage("not impersonating"))
		return
	}

	actor, err := c.tenants.Get(ctx, session.ActorID)
	if err != nil {
		log.Error(ctx, "Impersonation actor lookup failed", err)
		write.ErrorResponse(ctx, w, apierrors.InternalServerErrorMessage())

		return
	}

	token, err := c.sessions.Issue(actor.ID)
	if err != nil {
		log.Error(ctx, "Failed to restore actor session", err)
		write.ErrorResponse(ctx, w, apierrors.InternalServerErrorMessage())

		return
	}

	c.sessions.SetCookie(w, token, c.sessions.SessionTTL())
	write.JSONResponse(ctx, w, http.StatusOK, toAccountResponse(actor))
}

type broadcastRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Broadcast queues a release note for delivery to every active tenant.
func (c *SuperadminController) Broadcast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req broadcastRequest
	if !decode(w, r, &req) {
		return
	}

	err := c.broadcast.SendReleaseNote(ctx, req.Subject, req.Body)

	switch {
	case errors.Is(err, manager.ErrEmptyTitle):
		write.ErrorResponse(ctx, w, apierrors.ValidationErrorMessage(err.Error()))
		return
	case err != nil:
		log.Error(ctx, "Broadcast enqueue failed", err)
		write.ErrorResponse(ctx, w, apierrors.InternalServerErrorMessage())

		return
	}

	write.JSONResponse(ctx, w, http.StatusAccepted, map[string]bool{"queued": true})
}

// FlushCaches drops every cached tenant lookup and rendered page.
func (c *SuperadminController) FlushCaches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	c.tenants.FlushCaches(ctx)
	write.JSONResponse(ctx, w, http.StatusOK, map[string]bool{"ok": true})
}

// WarmCache queues a background repopulation of the tenant cache.
func (c *SuperadminController) WarmCache(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	task := asynq.NewTask(config.TypeCacheWarm, nil)

	_, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		log.Error(ctx, "Failed to enqueue cache warm task", err)
		write.ErrorResponse(ctx, w, apierrors.InternalServerErrorMessage())

		return
	}

	write.JSONResponse(ctx, w, http.StatusAccepted, map[string]bool{"queued": true})
}
