package repository

import (
	"context"

	"hospital-management/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SurgeryRepository interface {
	Create(ctx context.Context, db *gorm.DB, surgery *entity.Surgery) error
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Surgery, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Surgery, error)
}
