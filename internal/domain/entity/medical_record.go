package entity

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord is an immutable clinical entry attached to a patient
type MedicalRecord struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID   uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Diagnosis   string    `gorm:"type:varchar(200);not null" json:"diagnosis"`
	Treatment   string    `gorm:"type:varchar(200);not null" json:"treatment"`
	Medications string    `gorm:"type:varchar(200)" json:"medications,omitempty"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Patient User `gorm:"foreignKey:PatientID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}
