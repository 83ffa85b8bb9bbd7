package converter

import (
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
)

func MedicalRecordToResponse(record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	if record == nil {
		return nil
	}

	return &dto.MedicalRecordResponse{
		ID:          record.ID,
		PatientID:   record.PatientID,
		PatientName: record.Patient.Username,
		Diagnosis:   record.Diagnosis,
		Treatment:   record.Treatment,
		Medications: record.Medications,
		Notes:       record.Notes,
		CreatedAt:   record.CreatedAt,
	}
}

func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, len(records))
	for i := range records {
		responses[i] = *MedicalRecordToResponse(&records[i])
	}
	return responses
}
