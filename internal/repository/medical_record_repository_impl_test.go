package repository

import (
	"context"
	"testing"

	"hospital-management/internal/domain/entity"
	"hospital-management/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedicalRecordRepository_CreateAndScope(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMedicalRecordRepository()
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice", "pw", entity.RolePatient)
	bob := testutil.CreateUser(t, db, "bob", "pw", entity.RolePatient)

	record := &entity.MedicalRecord{PatientID: alice.ID, Diagnosis: "Flu", Treatment: "Rest"}
	require.NoError(t, repo.Create(ctx, db, record))
	assert.NotZero(t, record.ID)
	assert.False(t, record.CreatedAt.IsZero())

	require.NoError(t, repo.Create(ctx, db, &entity.MedicalRecord{
		PatientID: bob.ID, Diagnosis: "Fracture", Treatment: "Cast", Medications: "Ibuprofen", Notes: "Left arm",
	}))

	all, err := repo.FindAll(ctx, db)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	bobs, err := repo.FindByPatientID(ctx, db, bob.ID)
	require.NoError(t, err)
	require.Len(t, bobs, 1)
	assert.Equal(t, "Fracture", bobs[0].Diagnosis)
	assert.Equal(t, "Ibuprofen", bobs[0].Medications)
	assert.Equal(t, "bob", bobs[0].Patient.Username)
}
