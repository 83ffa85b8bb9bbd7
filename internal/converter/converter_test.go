package converter

import (
	"testing"
	"time"

	"hospital-management/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserToResponse_OmitsPassword(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Username: "alice", Password: "$2a$10$hash", Role: entity.RolePatient}

	resp := UserToResponse(user)
	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "patient", resp.Role)
	assert.Nil(t, UserToResponse(nil))
}

func TestSurgeryToResponse_UsesPreloadedNames(t *testing.T) {
	at := time.Date(2026, 11, 2, 9, 30, 0, 0, time.UTC)
	surgery := &entity.Surgery{
		ID:            7,
		PatientID:     uuid.New(),
		DoctorID:      uuid.New(),
		SurgeryType:   "Appendectomy",
		ScheduledTime: at,
		Patient:       entity.User{Username: "alice"},
		Doctor:        entity.User{Username: "drsmith"},
	}

	resp := SurgeryToResponse(surgery)
	assert.Equal(t, 7, resp.ID)
	assert.Equal(t, "alice", resp.PatientName)
	assert.Equal(t, "drsmith", resp.DoctorName)
	assert.Equal(t, at, resp.ScheduledTime)

	assert.Len(t, SurgeriesToResponses([]entity.Surgery{*surgery, *surgery}), 2)
	assert.Empty(t, SurgeriesToResponses(nil))
}

func TestMedicalRecordsToResponses(t *testing.T) {
	records := []entity.MedicalRecord{
		{ID: 1, Diagnosis: "Flu", Treatment: "Rest"},
		{ID: 2, Diagnosis: "Fracture", Treatment: "Cast", Medications: "Ibuprofen"},
	}

	resp := MedicalRecordsToResponses(records)
	assert.Len(t, resp, 2)
	assert.Equal(t, "Ibuprofen", resp[1].Medications)
	assert.Empty(t, resp[0].PatientName)
}
