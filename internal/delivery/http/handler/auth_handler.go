package handler

import (
	"errors"
	"net/http"

	"hospital-management/config"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/delivery/http/middleware"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/response"
	"hospital-management/pkg/validator"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
	appName     string
	session     config.SessionConfig
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator, appName string, session config.SessionConfig) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
		appName:     appName,
		session:     session,
	}
}

// Landing handles the public index page
func (h *AuthHandler) Landing(w http.ResponseWriter, r *http.Request) {
	res := dto.LandingResponse{Name: h.appName}
	if principal, ok := middleware.PrincipalFromContext(r.Context()); ok {
		res.Authenticated = true
		res.User = &dto.UserResponse{ID: principal.ID, Username: principal.Username, Role: principal.Role.String()}
	}

	response.Success(w, http.StatusOK, "Welcome", res)
}

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Login form", dto.FormResponse{
		Action: "/login",
		Fields: []string{"username", "password"},
	})
}

// Login handles user login
// Success sets the session cookie and redirects to the dashboard.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeRequest(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			response.Unauthorized(w, "Invalid username or password")
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(session.ExpiresIn),
		HttpOnly: true,
		Secure:   h.session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	response.SeeOther(w, r, "/dashboard")
}

func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	roles := make([]string, 0, len(entity.Roles))
	for _, role := range entity.Roles {
		roles = append(roles, role.String())
	}

	response.Success(w, http.StatusOK, "Register form", dto.FormResponse{
		Action: "/register",
		Fields: []string{"username", "password", "role"},
		Roles:  roles,
	})
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeRequest(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if _, err := h.authUsecase.Register(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUsernameTaken):
			response.Conflict(w, "Username already exists")
		case errors.Is(err, usecase.ErrInvalidRole):
			response.Error(w, http.StatusBadRequest, "Invalid role", nil)
		case errors.Is(err, usecase.ErrInvalidUsername):
			response.ValidationError(w, map[string]string{"username": "username is required"})
		case errors.Is(err, usecase.ErrPasswordTooLong):
			response.ValidationError(w, map[string]string{"password": "password must be at most 72 bytes"})
		default:
			response.InternalServerError(w, "Failed to register user")
		}
		return
	}

	response.SeeOther(w, r, "/login")
}

// Logout revokes the current session and clears the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	sessionID, _ := middleware.SessionIDFromContext(r.Context())

	if err := h.authUsecase.Logout(r.Context(), principal, sessionID); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	response.SeeOther(w, r, "/")
}
