package usecase

import (
	"context"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/policy"
	"hospital-management/internal/domain/repository"
	"hospital-management/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type UserUsecase interface {
	Dashboard(ctx context.Context, principal *policy.Principal, sessionID string) (*dto.DashboardResponse, error)
	ListPatients(ctx context.Context, principal *policy.Principal) (*dto.DirectoryResponse, error)
	ListDoctors(ctx context.Context, principal *policy.Principal) (*dto.DirectoryResponse, error)
}

type userUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	userRepo repository.UserRepository
	notices  service.NoticeStore
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	notices service.NoticeStore,
) UserUsecase {
	return &userUsecase{
		db:       db,
		log:      log,
		userRepo: userRepo,
		notices:  notices,
	}
}

// Dashboard returns the caller's own account together with any pending
// notices, which are consumed by this call.
func (u *userUsecase) Dashboard(ctx context.Context, principal *policy.Principal, sessionID string) (*dto.DashboardResponse, error) {
	if err := policy.Authorize(principal, policy.ActionViewDashboard, uuid.Nil); err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(ctx, u.db, principal.ID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	notices, err := u.notices.Pop(ctx, sessionID)
	if err != nil {
		// notices are best effort
		u.log.Warnf("Failed to pop notices: %+v", err)
		notices = nil
	}
	if notices == nil {
		notices = []string{}
	}

	return &dto.DashboardResponse{
		User:    *converter.UserToResponse(user),
		Notices: notices,
	}, nil
}

func (u *userUsecase) ListPatients(ctx context.Context, principal *policy.Principal) (*dto.DirectoryResponse, error) {
	if err := policy.Authorize(principal, policy.ActionViewPatientDirectory, uuid.Nil); err != nil {
		return nil, err
	}
	return u.directory(ctx, entity.RolePatient)
}

func (u *userUsecase) ListDoctors(ctx context.Context, principal *policy.Principal) (*dto.DirectoryResponse, error) {
	if err := policy.Authorize(principal, policy.ActionViewDoctorDirectory, uuid.Nil); err != nil {
		return nil, err
	}
	return u.directory(ctx, entity.RoleDoctor)
}

func (u *userUsecase) directory(ctx context.Context, role entity.Role) (*dto.DirectoryResponse, error) {
	users, err := u.userRepo.FindByRole(ctx, u.db, role)
	if err != nil {
		u.log.Warnf("Failed to list %s users: %+v", role, err)
		return nil, err
	}

	return &dto.DirectoryResponse{
		Users: converter.UsersToResponses(users),
		Total: len(users),
	}, nil
}

// findUserWithRole loads id and checks it carries role. A malformed id,
// a missing row and a role mismatch all come back as notFound.
func findUserWithRole(
	ctx context.Context,
	db *gorm.DB,
	userRepo repository.UserRepository,
	rawID string,
	role entity.Role,
	notFound error,
) (*entity.User, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, notFound
	}

	user, err := userRepo.FindByID(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != role {
		return nil, notFound
	}
	return user, nil
}
