package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"hospital-management/internal/domain/policy"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	PrincipalKey contextKey = "principal"
	SessionIDKey contextKey = "session_id"
)

type AuthMiddleware struct {
	authUsecase usecase.AuthUsecase
	cookieName  string
	log         *logrus.Logger
}

func NewAuthMiddleware(authUsecase usecase.AuthUsecase, cookieName string, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authUsecase: authUsecase,
		cookieName:  cookieName,
		log:         log,
	}
}

// Resolve binds the principal of a live session to the request context.
// Requests without a usable session pass through anonymous.
func (m *AuthMiddleware) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.tokenFromRequest(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		principal, sessionID, err := m.authUsecase.ResolveSession(r.Context(), token)
		if err != nil {
			if errors.Is(err, usecase.ErrInvalidSession) {
				next.ServeHTTP(w, r)
				return
			}
			m.log.Warnf("Failed to resolve session: %+v", err)
			response.InternalServerError(w, "Failed to validate session")
			return
		}

		ctx := context.WithValue(r.Context(), PrincipalKey, principal)
		ctx = context.WithValue(ctx, SessionIDKey, sessionID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenFromRequest prefers the session cookie and falls back to a
// "Bearer <token>" Authorization header for API clients.
func (m *AuthMiddleware) tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// RequireLogin sends anonymous requests to the login page.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFromContext(r.Context()); !ok {
			response.SeeOther(w, r, "/login")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PrincipalFromContext extracts the logged-in principal from context
func PrincipalFromContext(ctx context.Context) (*policy.Principal, bool) {
	principal, ok := ctx.Value(PrincipalKey).(*policy.Principal)
	return principal, ok && principal != nil
}

// SessionIDFromContext extracts the session ID from context
func SessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(string)
	return sessionID, ok
}
