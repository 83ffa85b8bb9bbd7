package converter

import (
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
)

// SurgeryToResponse converts a Surgery entity to SurgeryResponse DTO.
// Patient and doctor names are filled only when the relations were preloaded.
func SurgeryToResponse(surgery *entity.Surgery) *dto.SurgeryResponse {
	if surgery == nil {
		return nil
	}

	return &dto.SurgeryResponse{
		ID:            surgery.ID,
		PatientID:     surgery.PatientID,
		PatientName:   surgery.Patient.Username,
		DoctorID:      surgery.DoctorID,
		DoctorName:    surgery.Doctor.Username,
		SurgeryType:   surgery.SurgeryType,
		ScheduledTime: surgery.ScheduledTime,
		CreatedAt:     surgery.CreatedAt,
	}
}

// SurgeriesToResponses converts a slice of Surgery entities to slice of SurgeryResponse DTOs
func SurgeriesToResponses(surgeries []entity.Surgery) []dto.SurgeryResponse {
	responses := make([]dto.SurgeryResponse, len(surgeries))
	for i := range surgeries {
		responses[i] = *SurgeryToResponse(&surgeries[i])
	}
	return responses
}
