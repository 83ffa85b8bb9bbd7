package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type AddMedicalRecordRequest struct {
	PatientID   string `json:"patient_id" mod:"trim" validate:"required,uuid"`
	Diagnosis   string `json:"diagnosis" mod:"trim" validate:"required,max=200"`
	Treatment   string `json:"treatment" mod:"trim" validate:"required,max=200"`
	Medications string `json:"medications" mod:"trim" validate:"omitempty,max=200"`
	Notes       string `json:"notes" mod:"trim" validate:"omitempty"`
}

// Response DTOs

type MedicalRecordResponse struct {
	ID          int       `json:"id"`
	PatientID   uuid.UUID `json:"patient_id"`
	PatientName string    `json:"patient_name,omitempty"`
	Diagnosis   string    `json:"diagnosis"`
	Treatment   string    `json:"treatment"`
	Medications string    `json:"medications,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type MedicalRecordListResponse struct {
	Records  []MedicalRecordResponse `json:"records"`
	Total    int                     `json:"total"`
	Patients []UserResponse          `json:"patients"`
}

type AddMedicalRecordFormResponse struct {
	Patients []UserResponse `json:"patients"`
}

type PatientMedicalDataResponse struct {
	Patient   UserResponse            `json:"patient"`
	Records   []MedicalRecordResponse `json:"records"`
	Surgeries []SurgeryResponse       `json:"surgeries"`
}
