package usecase

import (
	"context"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/policy"
	"hospital-management/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type MedicalRecordUsecase interface {
	AddForm(ctx context.Context, principal *policy.Principal) (*dto.AddMedicalRecordFormResponse, error)
	Add(ctx context.Context, principal *policy.Principal, req *dto.AddMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	List(ctx context.Context, principal *policy.Principal) (*dto.MedicalRecordListResponse, error)
	PatientMedicalData(ctx context.Context, principal *policy.Principal, patientID uuid.UUID) (*dto.PatientMedicalDataResponse, error)
}

type medicalRecordUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	recordRepo  repository.MedicalRecordRepository
	surgeryRepo repository.SurgeryRepository
}

func NewMedicalRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	recordRepo repository.MedicalRecordRepository,
	surgeryRepo repository.SurgeryRepository,
) MedicalRecordUsecase {
	return &medicalRecordUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		recordRepo:  recordRepo,
		surgeryRepo: surgeryRepo,
	}
}

func (u *medicalRecordUsecase) AddForm(ctx context.Context, principal *policy.Principal) (*dto.AddMedicalRecordFormResponse, error) {
	if err := policy.Authorize(principal, policy.ActionAddMedicalRecord, uuid.Nil); err != nil {
		return nil, err
	}

	patients, err := u.userRepo.FindByRole(ctx, u.db, entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.AddMedicalRecordFormResponse{Patients: converter.UsersToResponses(patients)}, nil
}

func (u *medicalRecordUsecase) Add(ctx context.Context, principal *policy.Principal, req *dto.AddMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	if err := policy.Authorize(principal, policy.ActionAddMedicalRecord, uuid.Nil); err != nil {
		return nil, err
	}

	patient, err := findUserWithRole(ctx, u.db, u.userRepo, req.PatientID, entity.RolePatient, ErrPatientNotFound)
	if err != nil {
		return nil, err
	}

	record := &entity.MedicalRecord{
		PatientID:   patient.ID,
		Diagnosis:   req.Diagnosis,
		Treatment:   req.Treatment,
		Medications: req.Medications,
		Notes:       req.Notes,
	}
	if err := u.recordRepo.Create(ctx, u.db, record); err != nil {
		u.log.Warnf("Failed to create medical record: %+v", err)
		return nil, err
	}
	record.Patient = *patient

	u.log.WithFields(logrus.Fields{
		"record_id":  record.ID,
		"patient_id": patient.ID,
		"by":         principal.ID,
	}).Info("Medical record added")

	return converter.MedicalRecordToResponse(record), nil
}

// List returns records scoped to the caller plus the patient directory
func (u *medicalRecordUsecase) List(ctx context.Context, principal *policy.Principal) (*dto.MedicalRecordListResponse, error) {
	var (
		records []entity.MedicalRecord
		err     error
	)

	if scope := policy.PatientScope(principal); scope == nil {
		if err := policy.Authorize(principal, policy.ActionViewAllMedicalRecords, uuid.Nil); err != nil {
			return nil, err
		}
		records, err = u.recordRepo.FindAll(ctx, u.db)
	} else {
		if err := policy.Authorize(principal, policy.ActionViewPatientMedicalData, *scope); err != nil {
			return nil, err
		}
		records, err = u.recordRepo.FindByPatientID(ctx, u.db, *scope)
	}
	if err != nil {
		u.log.Warnf("Failed to list medical records: %+v", err)
		return nil, err
	}

	patients, err := u.userRepo.FindByRole(ctx, u.db, entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.MedicalRecordListResponse{
		Records:  converter.MedicalRecordsToResponses(records),
		Total:    len(records),
		Patients: converter.UsersToResponses(patients),
	}, nil
}

// PatientMedicalData returns one patient's records and surgeries. The
// permission check runs before the lookup so a patient cannot probe
// which ids exist.
func (u *medicalRecordUsecase) PatientMedicalData(ctx context.Context, principal *policy.Principal, patientID uuid.UUID) (*dto.PatientMedicalDataResponse, error) {
	if err := policy.Authorize(principal, policy.ActionViewPatientMedicalData, patientID); err != nil {
		return nil, err
	}

	patient, err := findUserWithRole(ctx, u.db, u.userRepo, patientID.String(), entity.RolePatient, ErrPatientNotFound)
	if err != nil {
		if err != ErrPatientNotFound {
			u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		}
		return nil, err
	}

	records, err := u.recordRepo.FindByPatientID(ctx, u.db, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to list medical records for patient %s: %+v", patientID, err)
		return nil, err
	}
	surgeries, err := u.surgeryRepo.FindByPatientID(ctx, u.db, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to list surgeries for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.PatientMedicalDataResponse{
		Patient:   *converter.UserToResponse(patient),
		Records:   converter.MedicalRecordsToResponses(records),
		Surgeries: converter.SurgeriesToResponses(surgeries),
	}, nil
}
