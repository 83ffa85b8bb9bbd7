package repository

import (
	"context"

	"hospital-management/internal/domain/entity"
	domainRepo "hospital-management/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type medicalRecordRepository struct{}

func NewMedicalRecordRepository() domainRepo.MedicalRecordRepository {
	return &medicalRecordRepository{}
}

func (r *medicalRecordRepository) Create(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(record).Error
}

func (r *medicalRecordRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.MedicalRecord, error) {
	var records []entity.MedicalRecord
	err := db.WithContext(ctx).Preload("Patient").Order("created_at DESC, id DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *medicalRecordRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.MedicalRecord, error) {
	var records []entity.MedicalRecord
	err := db.WithContext(ctx).
		Preload("Patient").
		Where("patient_id = ?", patientID).
		Order("created_at DESC, id DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
