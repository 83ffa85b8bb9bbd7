package middleware

import (
	"net/http"

	"hospital-management/internal/domain/policy"
	"hospital-management/internal/service"
	"hospital-management/pkg/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type RoleMiddleware struct {
	notices service.NoticeStore
	log     *logrus.Logger
}

func NewRoleMiddleware(notices service.NoticeStore, log *logrus.Logger) *RoleMiddleware {
	return &RoleMiddleware{
		notices: notices,
		log:     log,
	}
}

// RequirePermission lets the request through only if the principal may
// perform action. Denied requests are redirected to the dashboard with a
// notice instead of failing.
func (m *RoleMiddleware) RequirePermission(action policy.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, _ := PrincipalFromContext(r.Context())

			if err := policy.Authorize(principal, action, uuid.Nil); err != nil {
				m.Deny(w, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Deny turns a policy denial into a notice plus a redirect to the dashboard.
func (m *RoleMiddleware) Deny(w http.ResponseWriter, r *http.Request, err error) {
	notice, ok := policy.Notice(err)
	if !ok {
		notice = "You do not have permission to perform this action"
	}

	principal, _ := PrincipalFromContext(r.Context())
	entry := m.log.WithFields(logrus.Fields{"path": r.URL.Path})
	if principal != nil {
		entry = entry.WithFields(logrus.Fields{"user_id": principal.ID, "role": principal.Role})
	}
	entry.Info("Permission denied")

	m.Redirect(w, r, notice, "/dashboard")
}

// Redirect queues notice for the current session and redirects to location.
func (m *RoleMiddleware) Redirect(w http.ResponseWriter, r *http.Request, notice, location string) {
	if sessionID, ok := SessionIDFromContext(r.Context()); ok && sessionID != "" {
		if err := m.notices.Push(r.Context(), sessionID, notice); err != nil {
			m.log.Warnf("Failed to queue notice: %+v", err)
		}
	}
	response.SeeOther(w, r, location)
}
