package usecase

import (
	"context"
	"testing"

	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/policy"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedicalRecordUsecase_AddAndScope(t *testing.T) {
	c := newClinic(t)
	ctx := context.Background()

	added, err := c.records.Add(ctx, as(c.drsmith), &dto.AddMedicalRecordRequest{
		PatientID:   c.alice.ID.String(),
		Diagnosis:   "Appendicitis",
		Treatment:   "Appendectomy",
		Medications: "Cefazolin",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", added.PatientName)
	assert.False(t, added.CreatedAt.IsZero())

	_, err = c.records.Add(ctx, as(c.admin), &dto.AddMedicalRecordRequest{
		PatientID: c.bob.ID.String(),
		Diagnosis: "Sprain",
		Treatment: "Rest",
		Notes:     "Follow up in two weeks",
	})
	require.NoError(t, err)

	aliceView, err := c.records.List(ctx, as(c.alice))
	require.NoError(t, err)
	require.Equal(t, 1, aliceView.Total)
	assert.Equal(t, "Appendicitis", aliceView.Records[0].Diagnosis)
	assert.Len(t, aliceView.Patients, 2)

	doctorView, err := c.records.List(ctx, as(c.drsmith))
	require.NoError(t, err)
	assert.Equal(t, 2, doctorView.Total)
}

func TestMedicalRecordUsecase_PatientsCannotAdd(t *testing.T) {
	c := newClinic(t)
	ctx := context.Background()

	_, err := c.records.Add(ctx, as(c.alice), &dto.AddMedicalRecordRequest{
		PatientID: c.alice.ID.String(),
		Diagnosis: "Self-diagnosed",
		Treatment: "None",
	})
	require.ErrorIs(t, err, policy.ErrPermissionDenied)
	notice, _ := policy.Notice(err)
	assert.Equal(t, "Patients do not have permission to add medical records", notice)

	_, err = c.records.AddForm(ctx, as(c.bob))
	assert.ErrorIs(t, err, policy.ErrPermissionDenied)

	view, err := c.records.List(ctx, as(c.admin))
	require.NoError(t, err)
	assert.Zero(t, view.Total)
}

func TestMedicalRecordUsecase_AddRejectsNonPatientTarget(t *testing.T) {
	c := newClinic(t)

	_, err := c.records.Add(context.Background(), as(c.drsmith), &dto.AddMedicalRecordRequest{
		PatientID: c.drsmith.ID.String(),
		Diagnosis: "Burnout",
		Treatment: "Vacation",
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestMedicalRecordUsecase_PatientMedicalDataIsSelfOnly(t *testing.T) {
	c := newClinic(t)
	ctx := context.Background()

	_, err := c.records.Add(ctx, as(c.drsmith), &dto.AddMedicalRecordRequest{
		PatientID: c.bob.ID.String(),
		Diagnosis: "Fracture",
		Treatment: "Cast",
	})
	require.NoError(t, err)
	_, err = c.surgery.Schedule(ctx, as(c.drsmith), &dto.ScheduleSurgeryRequest{
		PatientID:     c.alice.ID.String(),
		DoctorID:      c.drsmith.ID.String(),
		SurgeryType:   "Appendectomy",
		ScheduledTime: "2026-11-02T09:30",
	})
	require.NoError(t, err)

	_, err = c.records.PatientMedicalData(ctx, as(c.alice), c.bob.ID)
	require.ErrorIs(t, err, policy.ErrPermissionDenied)
	notice, _ := policy.Notice(err)
	assert.Equal(t, "You do not have permission to view this patient's data", notice)

	own, err := c.records.PatientMedicalData(ctx, as(c.alice), c.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", own.Patient.Username)
	assert.Empty(t, own.Records)
	assert.Len(t, own.Surgeries, 1)

	byDoctor, err := c.records.PatientMedicalData(ctx, as(c.drsmith), c.bob.ID)
	require.NoError(t, err)
	assert.Len(t, byDoctor.Records, 1)
	assert.Empty(t, byDoctor.Surgeries)
}

func TestMedicalRecordUsecase_PatientMedicalDataNotFound(t *testing.T) {
	c := newClinic(t)
	ctx := context.Background()

	_, err := c.records.PatientMedicalData(ctx, as(c.admin), uuid.New())
	assert.ErrorIs(t, err, ErrPatientNotFound)

	// a doctor's id is not a patient
	_, err = c.records.PatientMedicalData(ctx, as(c.admin), c.drsmith.ID)
	assert.ErrorIs(t, err, ErrPatientNotFound)

	// patients are denied before the lookup happens
	_, err = c.records.PatientMedicalData(ctx, as(c.alice), uuid.New())
	assert.ErrorIs(t, err, policy.ErrPermissionDenied)
}
