package handler

import (
	"errors"
	"net/http"

	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/delivery/http/middleware"
	"hospital-management/internal/domain/policy"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/response"
	"hospital-management/pkg/validator"
)

type SurgeryHandler struct {
	surgeryUsecase usecase.SurgeryUsecase
	validator      *validator.CustomValidator
	roles          *middleware.RoleMiddleware
}

func NewSurgeryHandler(surgeryUsecase usecase.SurgeryUsecase, validator *validator.CustomValidator, roles *middleware.RoleMiddleware) *SurgeryHandler {
	return &SurgeryHandler{
		surgeryUsecase: surgeryUsecase,
		validator:      validator,
		roles:          roles,
	}
}

// ScheduleForm returns the patients and doctors a surgery can be booked for
func (h *SurgeryHandler) ScheduleForm(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	form, err := h.surgeryUsecase.ScheduleForm(r.Context(), principal)
	if err != nil {
		if errors.Is(err, policy.ErrPermissionDenied) {
			h.roles.Deny(w, r, err)
			return
		}
		response.InternalServerError(w, "Failed to load surgery form")
		return
	}

	response.Success(w, http.StatusOK, "Surgery form retrieved successfully", form)
}

func (h *SurgeryHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	var req dto.ScheduleSurgeryRequest
	if err := decodeRequest(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if _, err := h.surgeryUsecase.Schedule(r.Context(), principal, &req); err != nil {
		switch {
		case errors.Is(err, policy.ErrPermissionDenied):
			h.roles.Deny(w, r, err)
		case errors.Is(err, usecase.ErrInvalidScheduledTime):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.Error(w, http.StatusBadRequest, "Patient not found", nil)
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.Error(w, http.StatusBadRequest, "Doctor not found", nil)
		default:
			response.InternalServerError(w, "Failed to schedule surgery")
		}
		return
	}

	response.SeeOther(w, r, "/view_surgeries")
}

// List returns every surgery for staff and only their own for patients
func (h *SurgeryHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	surgeries, err := h.surgeryUsecase.List(r.Context(), principal)
	if err != nil {
		if errors.Is(err, policy.ErrPermissionDenied) {
			h.roles.Deny(w, r, err)
			return
		}
		response.InternalServerError(w, "Failed to get surgeries")
		return
	}

	response.Success(w, http.StatusOK, "Surgeries retrieved successfully", surgeries)
}
