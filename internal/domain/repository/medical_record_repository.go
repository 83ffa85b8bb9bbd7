package repository

import (
	"context"

	"hospital-management/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicalRecordRepository interface {
	Create(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.MedicalRecord, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.MedicalRecord, error)
}
