package middleware

import (
	"context"
	"net/http"

	"github.com/portfoliopro/folio/internal/api/write"
	"github.com/portfoliopro/folio/internal/apierrors"
	"github.com/portfoliopro/folio/internal/auth"
	"github.com/portfoliopro/folio/internal/log"
	"github.com/portfoliopro/folio/internal/repo"
	foliocontext "github.com/portfoliopro/folio/utils/context"
)

type sessionKey struct{}

// GetSession returns the verified session, if the request carried one.
func GetSession(ctx context.Context) (*auth.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*auth.Session)
	return session, ok
}

// Authentication verifies the session cookie when present and attaches the
// signed-in account to the context. Requests without a valid cookie pass
// through anonymously; the Require* guards decide what needs a session.
func Authentication(sessions *auth.Sessions, directory repo.Directory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			session, err := sessions.FromRequest(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := directory.FindByID(ctx, session.TenantID)
			if err != nil {
				log.Warn(ctx, "session references unknown account", log.ErrorAttr(err))
				next.ServeHTTP(w, r)

				return
			}

			// A ban or deactivation kills live sessions immediately, except
			// that an impersonating admin may inspect any account.
			if !session.Impersonated() && (principal.Banned || !principal.Active) {
				next.ServeHTTP(w, r)
				return
			}

			ctx = context.WithValue(ctx, sessionKey{}, session)
			ctx = foliocontext.InjectPrincipal(ctx, principal)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests without a signed-in account.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		_, err := foliocontext.GetPrincipal(ctx)
		if err != nil {
			write.ErrorResponse(ctx, w, apierrors.UnauthorizedErrorMessage())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireSuperadmin rejects requests whose account is not a platform admin.
// Impersonation sessions qualify through the actor, not the target.
func RequireSuperadmin(directory repo.Directory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			principal, err := foliocontext.GetPrincipal(ctx)
			if err != nil {
				write.ErrorResponse(ctx, w, apierrors.UnauthorizedErrorMessage())
				return
			}

			if principal.IsPlatformAdmin() {
				next.ServeHTTP(w, r)
				return
			}

			session, ok := GetSession(ctx)
			if ok && session.Impersonated() {
				actor, err := directory.FindByID(ctx, session.ActorID)
				if err == nil && actor.IsPlatformAdmin() {
					next.ServeHTTP(w, r)
					return
				}
			}

			write.ErrorResponse(ctx, w, apierrors.ForbiddenErrorMessage())
		})
	}
}
