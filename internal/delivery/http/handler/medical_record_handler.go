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

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const recordAddedNotice = "Medical record added successfully"

type MedicalRecordHandler struct {
	recordUsecase usecase.MedicalRecordUsecase
	validator     *validator.CustomValidator
	roles         *middleware.RoleMiddleware
}

func NewMedicalRecordHandler(recordUsecase usecase.MedicalRecordUsecase, validator *validator.CustomValidator, roles *middleware.RoleMiddleware) *MedicalRecordHandler {
	return &MedicalRecordHandler{
		recordUsecase: recordUsecase,
		validator:     validator,
		roles:         roles,
	}
}

func (h *MedicalRecordHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	records, err := h.recordUsecase.List(r.Context(), principal)
	if err != nil {
		if errors.Is(err, policy.ErrPermissionDenied) {
			h.roles.Deny(w, r, err)
			return
		}
		response.InternalServerError(w, "Failed to get medical records")
		return
	}

	response.Success(w, http.StatusOK, "Medical records retrieved successfully", records)
}

func (h *MedicalRecordHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	form, err := h.recordUsecase.AddForm(r.Context(), principal)
	if err != nil {
		if errors.Is(err, policy.ErrPermissionDenied) {
			h.roles.Deny(w, r, err)
			return
		}
		response.InternalServerError(w, "Failed to load medical record form")
		return
	}

	response.Success(w, http.StatusOK, "Medical record form retrieved successfully", form)
}

// Add stores a record and sends the user back to the record list
func (h *MedicalRecordHandler) Add(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	var req dto.AddMedicalRecordRequest
	if err := decodeRequest(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if _, err := h.recordUsecase.Add(r.Context(), principal, &req); err != nil {
		switch {
		case errors.Is(err, policy.ErrPermissionDenied):
			h.roles.Deny(w, r, err)
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.Error(w, http.StatusBadRequest, "Patient not found", nil)
		default:
			response.InternalServerError(w, "Failed to add medical record")
		}
		return
	}

	h.roles.Redirect(w, r, recordAddedNotice, "/medical_records")
}

// PatientMedicalData returns one patient's records and surgeries
func (h *MedicalRecordHandler) PatientMedicalData(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	vars := mux.Vars(r)
	patientID, err := uuid.Parse(vars["patient_id"])
	if err != nil {
		response.NotFound(w, "Patient not found")
		return
	}

	data, err := h.recordUsecase.PatientMedicalData(r.Context(), principal, patientID)
	if err != nil {
		switch {
		case errors.Is(err, policy.ErrPermissionDenied):
			h.roles.Deny(w, r, err)
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to get patient medical data")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient medical data retrieved successfully", data)
}
