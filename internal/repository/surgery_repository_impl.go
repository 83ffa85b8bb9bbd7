package repository

import (
	"context"

	"hospital-management/internal/domain/entity"
	domainRepo "hospital-management/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type surgeryRepository struct{}

func NewSurgeryRepository() domainRepo.SurgeryRepository {
	return &surgeryRepository{}
}

func (r *surgeryRepository) Create(ctx context.Context, db *gorm.DB, surgery *entity.Surgery) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(surgery).Error
}

func (r *surgeryRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Surgery, error) {
	var surgeries []entity.Surgery
	err := db.WithContext(ctx).
		Preload("Patient").Preload("Doctor").
		Order("scheduled_time ASC, id ASC").
		Find(&surgeries).Error
	if err != nil {
		return nil, err
	}
	return surgeries, nil
}

func (r *surgeryRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Surgery, error) {
	var surgeries []entity.Surgery
	err := db.WithContext(ctx).
		Preload("Patient").Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("scheduled_time ASC, id ASC").
		Find(&surgeries).Error
	if err != nil {
		return nil, err
	}
	return surgeries, nil
}
