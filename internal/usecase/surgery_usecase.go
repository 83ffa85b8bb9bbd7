package usecase

import (
	"context"
	"time"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/policy"
	"hospital-management/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ScheduledTimeLayout is the wire format of a surgery's scheduled time
const ScheduledTimeLayout = "2006-01-02T15:04"

type SurgeryUsecase interface {
	ScheduleForm(ctx context.Context, principal *policy.Principal) (*dto.ScheduleSurgeryFormResponse, error)
	Schedule(ctx context.Context, principal *policy.Principal, req *dto.ScheduleSurgeryRequest) (*dto.SurgeryResponse, error)
	List(ctx context.Context, principal *policy.Principal) (*dto.SurgeryListResponse, error)
}

type surgeryUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	surgeryRepo repository.SurgeryRepository
}

func NewSurgeryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	surgeryRepo repository.SurgeryRepository,
) SurgeryUsecase {
	return &surgeryUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		surgeryRepo: surgeryRepo,
	}
}

// ScheduleForm returns the patients and doctors a surgery can be booked for
func (u *surgeryUsecase) ScheduleForm(ctx context.Context, principal *policy.Principal) (*dto.ScheduleSurgeryFormResponse, error) {
	if err := policy.Authorize(principal, policy.ActionScheduleSurgery, uuid.Nil); err != nil {
		return nil, err
	}

	patients, err := u.userRepo.FindByRole(ctx, u.db, entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}
	doctors, err := u.userRepo.FindByRole(ctx, u.db, entity.RoleDoctor)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.ScheduleSurgeryFormResponse{
		Patients: converter.UsersToResponses(patients),
		Doctors:  converter.UsersToResponses(doctors),
	}, nil
}

// Schedule books a surgery. patient_id and doctor_id must reference
// existing users holding the patient and doctor roles respectively.
func (u *surgeryUsecase) Schedule(ctx context.Context, principal *policy.Principal, req *dto.ScheduleSurgeryRequest) (*dto.SurgeryResponse, error) {
	if err := policy.Authorize(principal, policy.ActionScheduleSurgery, uuid.Nil); err != nil {
		return nil, err
	}

	scheduledTime, err := time.Parse(ScheduledTimeLayout, req.ScheduledTime)
	if err != nil {
		return nil, ErrInvalidScheduledTime
	}

	patient, err := findUserWithRole(ctx, u.db, u.userRepo, req.PatientID, entity.RolePatient, ErrPatientNotFound)
	if err != nil {
		return nil, err
	}
	doctor, err := findUserWithRole(ctx, u.db, u.userRepo, req.DoctorID, entity.RoleDoctor, ErrDoctorNotFound)
	if err != nil {
		return nil, err
	}

	surgery := &entity.Surgery{
		PatientID:     patient.ID,
		DoctorID:      doctor.ID,
		SurgeryType:   req.SurgeryType,
		ScheduledTime: scheduledTime,
	}
	if err := u.surgeryRepo.Create(ctx, u.db, surgery); err != nil {
		u.log.Warnf("Failed to create surgery: %+v", err)
		return nil, err
	}
	surgery.Patient = *patient
	surgery.Doctor = *doctor

	u.log.WithFields(logrus.Fields{
		"surgery_id": surgery.ID,
		"patient_id": patient.ID,
		"doctor_id":  doctor.ID,
		"by":         principal.ID,
	}).Info("Surgery scheduled")

	return converter.SurgeryToResponse(surgery), nil
}

// List returns every surgery for admins and doctors and only the caller's
// own surgeries for patients.
func (u *surgeryUsecase) List(ctx context.Context, principal *policy.Principal) (*dto.SurgeryListResponse, error) {
	var (
		surgeries []entity.Surgery
		err       error
	)

	if scope := policy.PatientScope(principal); scope == nil {
		if err := policy.Authorize(principal, policy.ActionViewAllSurgeries, uuid.Nil); err != nil {
			return nil, err
		}
		surgeries, err = u.surgeryRepo.FindAll(ctx, u.db)
	} else {
		if err := policy.Authorize(principal, policy.ActionViewOwnSurgeries, *scope); err != nil {
			return nil, err
		}
		surgeries, err = u.surgeryRepo.FindByPatientID(ctx, u.db, *scope)
	}
	if err != nil {
		u.log.Warnf("Failed to list surgeries: %+v", err)
		return nil, err
	}

	return &dto.SurgeryListResponse{
		Surgeries: converter.SurgeriesToResponses(surgeries),
		Total:     len(surgeries),
	}, nil
}
