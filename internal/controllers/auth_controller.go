package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/portfoliopro/folio/internal/api/write"
	"github.com/portfoliopro/folio/internal/apierrors"
	"github.com/portfoliopro/folio/internal/auth"
	"github.com/portfoliopro/folio/internal/log"
	"github.com/portfoliopro/folio/internal/manager"
	"github.com/portfoliopro/folio/internal/model"
	"github.com/portfoliopro/folio/internal/resolver"
	foliocontext "github.com/portfoliopro/folio/utils/context"
)

// AuthController handles signup, sign-in and session management.
type AuthController struct {
	tenants  *manager.TenantManager
	sessions *auth.Sessions
}

func NewAuthController(tenants *manager.TenantManager, sessions *auth.Sessions) *AuthController {
	return &AuthController{
		tenants:  tenants,
		sessions: sessions,
	}
}

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Subdomain string `json:"subdomain"`
	Password  string `json:"password"`
}

type accountResponse struct {
	ID        string             `json:"id"`
	Username  string             `json:"username"`
	Email     string             `json:"email"`
	Subdomain string             `json:"subdomain"`
	Role      model.TenantRole   `json:"role"`
	Status    model.TenantStatus `json:"status"`
}

func toAccountResponse(tenant *model.Tenant) accountResponse {
	return accountResponse{
		ID:        tenant.ID.String(),
		Username:  tenant.Username,
		Email:     tenant.Email,
		Subdomain: tenant.Subdomain,
		Role:      tenant.Role,
		Status:    tenant.Status(),
	}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		write.ErrorResponse(ctx, w, apierrors.JSONDecodeErrorMessage())
		return
	}

	tenant, err := c.tenants.Register(ctx, manager.RegisterParams{
		Username:  req.Username,
		Email:     req.Email,
		Subdomain: req.Subdomain,
		Password:  req.Password,
	})

	switch {
	case errors.Is(err, manager.ErrAccountExists):
		write.ErrorResponse(ctx, w, apierrors.ConflictErrorMessage(err.Error()))
		return
	case isSubdomainValidationError(err),
		errors.Is(err, manager.ErrWeakPassword),
		errors.Is(err, manager.ErrEmptyUsername),
		errors.Is(err, manager.ErrEmptyEmail):
		write.ErrorResponse(ctx, w, apierrors.ValidationErrorMessage(err.Error()))

		return
	case err != nil:
		log.Error(ctx, "Registration failed", err)
		write.ErrorResponse(ctx, w, apierrors.InternalServerErrorMessage())

		return
	}

	token, err := c.sessions.Issue(tenant.ID)
	if err != nil {
		log.Error(ctx, "Failed to issue session", err)
		write.ErrorResponse(ctx, w, apierrors.InternalServerErrorMessage())

		return
	}

	c.sessions.SetCookie(w, token, c.sessions.SessionTTL())
	write.JSONResponse(ctx, w, http.StatusCreated, toAccountResponse(tenant))
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		write.ErrorResponse(ctx, w, apierrors.JSONDecodeErrorMessage())
		return
	}

	tenant, err := c.tenants.Authenticate(ctx, req.Login, req.Password)

	switch {
	case errors.Is(err, manager.ErrInvalidCredentials):
		write.ErrorResponse(ctx, w, apierrors.UnauthorizedErrorMessage())
		return
	case errors.Is(err, manager.ErrAccountBanned), errors.Is(err, manager.ErrAccountDeactivated):
		write.ErrorResponse(ctx, w, apierrors.ForbiddenErrorMessage())
		return
	case err != nil:
		log.Error(ctx, "Login failed", err)
		write.ErrorResponse(ctx, w, apierrors.InternalServerErrorMessage())

		return
	}

	token, err := c.sessions.Issue(tenant.ID)
	if err != nil {
		log.Error(ctx, "Failed to issue session", err)
		write.ErrorResponse(ctx, w, apierrors.InternalServerErrorMessage())

		return
	}

	c.sessions.SetCookie(w, token, c.sessions.SessionTTL())
	write.JSONResponse(ctx, w, http.StatusOK, toAccountResponse(tenant))
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	c.sessions.ClearCookie(w)
	write.JSONResponse(r.Context(), w, http.StatusOK, map[string]bool{"ok": true})
}

// Me returns the signed-in account.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, err := foliocontext.GetPrincipal(ctx)
	if err != nil {
		write.ErrorResponse(ctx, w, apierrors.UnauthorizedErrorMessage())
		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, toAccountResponse(principal))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (c *AuthController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, err := foliocontext.GetPrincipal(ctx)
	if err != nil {
		write.ErrorResponse(ctx, w, apierrors.UnauthorizedErrorMessage())
		return
	}

	var req changePasswordRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		write.ErrorResponse(ctx, w, apierrors.JSONDecodeErrorMessage())
		return
	}

	err = c.tenants.ChangePassword(ctx, principal.ID, req.CurrentPassword, req.NewPassword)

	switch {
	case errors.Is(err, manager.ErrInvalidCredentials):
		write.ErrorResponse(ctx, w, apierrors.UnauthorizedErrorMessage())
		return
	case errors.Is(err, manager.ErrWeakPassword):
		write.ErrorResponse(ctx, w, apierrors.ValidationErrorMessage(err.Error()))
		return
	case err != nil:
		log.Error(ctx, "Password change failed", err)
		write.ErrorResponse(ctx, w, apierrors.InternalServerErrorMessage())

		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, map[string]bool{"ok": true})
}

// CheckSubdomain answers availability for the signup form.
func (c *AuthController) CheckSubdomain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subdomain := r.URL.Query().Get("subdomain")

	available, err := c.tenants.SubdomainAvailable(ctx, subdomain)

	switch {
	case isSubdomainValidationError(err):
		write.JSONResponse(ctx, w, http.StatusOK, map[string]any{
			"available": false,
			"reason":    err.Error(),
		})

		return
	case err != nil:
		log.Error(ctx, "Subdomain check failed", err)
		write.ErrorResponse(ctx, w, apierrors.InternalServerErrorMessage())

		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, map[string]any{"available": available})
}

func isSubdomainValidationError(err error) bool {
	return errors.Is(err, resolver.ErrSubdomainTooShort) ||
		errors.Is(err, resolver.ErrSubdomainTooLong) ||
		errors.Is(err, resolver.ErrSubdomainInvalid) ||
		errors.Is(err, resolver.ErrSubdomainReserved)
}
