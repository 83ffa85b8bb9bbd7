package handler

import (
	"errors"
	"net/http"

	"hospital-management/internal/delivery/http/middleware"
	"hospital-management/internal/domain/policy"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/response"
)

type UserHandler struct {
	userUsecase usecase.UserUsecase
	roles       *middleware.RoleMiddleware
}

func NewUserHandler(userUsecase usecase.UserUsecase, roles *middleware.RoleMiddleware) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		roles:       roles,
	}
}

// Dashboard returns the current user and any pending notices
func (h *UserHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	sessionID, _ := middleware.SessionIDFromContext(r.Context())

	dashboard, err := h.userUsecase.Dashboard(r.Context(), principal, sessionID)
	if err != nil {
		response.InternalServerError(w, "Failed to load dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}

func (h *UserHandler) PatientInfo(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	patients, err := h.userUsecase.ListPatients(r.Context(), principal)
	if err != nil {
		if errors.Is(err, policy.ErrPermissionDenied) {
			h.roles.Deny(w, r, err)
			return
		}
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *UserHandler) DoctorInfo(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	doctors, err := h.userUsecase.ListDoctors(r.Context(), principal)
	if err != nil {
		if errors.Is(err, policy.ErrPermissionDenied) {
			h.roles.Deny(w, r, err)
			return
		}
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}
