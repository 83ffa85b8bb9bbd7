package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type ScheduleSurgeryRequest struct {
	PatientID     string `json:"patient_id" mod:"trim" validate:"required,uuid"`
	DoctorID      string `json:"doctor_id" mod:"trim" validate:"required,uuid"`
	SurgeryType   string `json:"surgery_type" mod:"trim" validate:"required,max=120"`
	ScheduledTime string `json:"scheduled_time" mod:"trim" validate:"required,datetime=2006-01-02T15:04"` // Format: YYYY-MM-DDTHH:MM
}

// Response DTOs

type SurgeryResponse struct {
	ID            int       `json:"id"`
	PatientID     uuid.UUID `json:"patient_id"`
	PatientName   string    `json:"patient_name,omitempty"`
	DoctorID      uuid.UUID `json:"doctor_id"`
	DoctorName    string    `json:"doctor_name,omitempty"`
	SurgeryType   string    `json:"surgery_type"`
	ScheduledTime time.Time `json:"scheduled_time"`
	CreatedAt     time.Time `json:"created_at"`
}

type SurgeryListResponse struct {
	Surgeries []SurgeryResponse `json:"surgeries"`
	Total     int               `json:"total"`
}

type ScheduleSurgeryFormResponse struct {
	Patients []UserResponse `json:"patients"`
	Doctors  []UserResponse `json:"doctors"`
}
