package entity

import (
	"time"

	"github.com/google/uuid"
)

// Surgery represents a scheduled operation for a patient, performed by a doctor
type Surgery struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID     uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID      uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	SurgeryType   string    `gorm:"type:varchar(120);not null" json:"surgery_type"`
	ScheduledTime time.Time `gorm:"not null;index" json:"scheduled_time"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient User `gorm:"foreignKey:PatientID;constraint:OnDelete:RESTRICT" json:"-"`
	Doctor  User `gorm:"foreignKey:DoctorID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Surgery) TableName() string {
	return "surgeries"
}
