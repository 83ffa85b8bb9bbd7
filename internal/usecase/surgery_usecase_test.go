package usecase

import (
	"context"
	"testing"
	"time"

	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/policy"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurgeryUsecase_VisibilityScenario(t *testing.T) {
	c := newClinic(t)
	ctx := context.Background()

	scheduled, err := c.surgery.Schedule(ctx, as(c.drsmith), &dto.ScheduleSurgeryRequest{
		PatientID:     c.alice.ID.String(),
		DoctorID:      c.drsmith.ID.String(),
		SurgeryType:   "Appendectomy",
		ScheduledTime: "2026-11-02T09:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", scheduled.PatientName)
	assert.Equal(t, "drsmith", scheduled.DoctorName)
	assert.Equal(t, time.Date(2026, 11, 2, 9, 30, 0, 0, time.UTC), scheduled.ScheduledTime)

	aliceView, err := c.surgery.List(ctx, as(c.alice))
	require.NoError(t, err)
	require.Equal(t, 1, aliceView.Total)
	assert.Equal(t, scheduled.ID, aliceView.Surgeries[0].ID)

	bobView, err := c.surgery.List(ctx, as(c.bob))
	require.NoError(t, err)
	assert.Zero(t, bobView.Total)
	assert.Empty(t, bobView.Surgeries)

	for _, staff := range []*policy.Principal{as(c.drsmith), as(c.admin)} {
		view, err := c.surgery.List(ctx, staff)
		require.NoError(t, err)
		require.Equal(t, 1, view.Total)
		assert.Equal(t, c.alice.ID, view.Surgeries[0].PatientID)
	}
}

func TestSurgeryUsecase_PatientsCannotSchedule(t *testing.T) {
	c := newClinic(t)
	ctx := context.Background()

	_, err := c.surgery.Schedule(ctx, as(c.alice), &dto.ScheduleSurgeryRequest{
		PatientID:     c.alice.ID.String(),
		DoctorID:      c.drsmith.ID.String(),
		SurgeryType:   "Appendectomy",
		ScheduledTime: "2026-11-02T09:30",
	})
	require.ErrorIs(t, err, policy.ErrPermissionDenied)
	notice, ok := policy.Notice(err)
	assert.True(t, ok)
	assert.Equal(t, "Patients do not have permission to schedule surgeries", notice)

	_, err = c.surgery.ScheduleForm(ctx, as(c.alice))
	assert.ErrorIs(t, err, policy.ErrPermissionDenied)

	view, err := c.surgery.List(ctx, as(c.admin))
	require.NoError(t, err)
	assert.Zero(t, view.Total)
}

func TestSurgeryUsecase_AdminCanSchedule(t *testing.T) {
	c := newClinic(t)

	_, err := c.surgery.Schedule(context.Background(), as(c.admin), &dto.ScheduleSurgeryRequest{
		PatientID:     c.bob.ID.String(),
		DoctorID:      c.drsmith.ID.String(),
		SurgeryType:   "Tonsillectomy",
		ScheduledTime: "2026-12-01T14:00",
	})
	assert.NoError(t, err)
}

func TestSurgeryUsecase_EnforcesReferencedRoles(t *testing.T) {
	c := newClinic(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		patientID string
		doctorID  string
		want      error
	}{
		{"patient is a doctor", c.drsmith.ID.String(), c.drsmith.ID.String(), ErrPatientNotFound},
		{"doctor is a patient", c.alice.ID.String(), c.bob.ID.String(), ErrDoctorNotFound},
		{"doctor is an admin", c.alice.ID.String(), c.admin.ID.String(), ErrDoctorNotFound},
		{"unknown patient", uuid.NewString(), c.drsmith.ID.String(), ErrPatientNotFound},
		{"malformed doctor", c.alice.ID.String(), "42", ErrDoctorNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.surgery.Schedule(ctx, as(c.drsmith), &dto.ScheduleSurgeryRequest{
				PatientID:     tt.patientID,
				DoctorID:      tt.doctorID,
				SurgeryType:   "Appendectomy",
				ScheduledTime: "2026-11-02T09:30",
			})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	view, err := c.surgery.List(ctx, as(c.admin))
	require.NoError(t, err)
	assert.Zero(t, view.Total)
}

func TestSurgeryUsecase_RejectsBadScheduledTime(t *testing.T) {
	c := newClinic(t)

	_, err := c.surgery.Schedule(context.Background(), as(c.drsmith), &dto.ScheduleSurgeryRequest{
		PatientID:     c.alice.ID.String(),
		DoctorID:      c.drsmith.ID.String(),
		SurgeryType:   "Appendectomy",
		ScheduledTime: "02/11/2026 09:30",
	})
	assert.ErrorIs(t, err, ErrInvalidScheduledTime)
}

func TestSurgeryUsecase_ScheduleForm(t *testing.T) {
	c := newClinic(t)

	form, err := c.surgery.ScheduleForm(context.Background(), as(c.drsmith))
	require.NoError(t, err)
	require.Len(t, form.Patients, 2)
	require.Len(t, form.Doctors, 1)
	assert.Equal(t, "alice", form.Patients[0].Username)
	assert.Equal(t, "drsmith", form.Doctors[0].Username)
}

func TestSurgeryUsecase_AnonymousIsDenied(t *testing.T) {
	c := newClinic(t)

	_, err := c.surgery.List(context.Background(), nil)
	assert.ErrorIs(t, err, policy.ErrPermissionDenied)
}
