package usecase

import (
	"testing"

	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/policy"
	"hospital-management/internal/repository"
	"hospital-management/internal/testutil"

	"gorm.io/gorm"
)

// clinic seeds patients alice and bob, doctor drsmith and an admin
type clinic struct {
	db      *gorm.DB
	notices *testutil.NoticeStore

	alice, bob, drsmith, admin *entity.User

	users   UserUsecase
	surgery SurgeryUsecase
	records MedicalRecordUsecase
}

func newClinic(t *testing.T) *clinic {
	t.Helper()

	db := testutil.NewDB(t)
	log := testutil.Logger()
	notices := testutil.NewNoticeStore()

	userRepo := repository.NewUserRepository()
	surgeryRepo := repository.NewSurgeryRepository()
	recordRepo := repository.NewMedicalRecordRepository()

	return &clinic{
		db:      db,
		notices: notices,
		alice:   testutil.CreateUser(t, db, "alice", "pw", entity.RolePatient),
		bob:     testutil.CreateUser(t, db, "bob", "pw", entity.RolePatient),
		drsmith: testutil.CreateUser(t, db, "drsmith", "pw", entity.RoleDoctor),
		admin:   testutil.CreateUser(t, db, "admin", "pw", entity.RoleAdmin),
		users:   NewUserUsecase(db, log, userRepo, notices),
		surgery: NewSurgeryUsecase(db, log, userRepo, surgeryRepo),
		records: NewMedicalRecordUsecase(db, log, userRepo, recordRepo, surgeryRepo),
	}
}

func as(user *entity.User) *policy.Principal {
	return policy.NewPrincipal(user)
}
