package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"hospital-management/config"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/repository"
	"hospital-management/internal/testutil"
	"hospital-management/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type authFixture struct {
	db       *gorm.DB
	sessions *testutil.SessionStore
	usecase  *authUsecase
}

func newAuthFixture(t *testing.T, app config.AppConfig, admin config.AdminConfig) *authFixture {
	t.Helper()

	db := testutil.NewDB(t)
	sessions := testutil.NewSessionStore()
	jwtService := jwt.NewJWTService(config.SessionConfig{Secret: "test-secret", Expiry: time.Hour})

	created, err := NewAuthUsecase(db, testutil.Logger(), repository.NewUserRepository(), jwtService, sessions, app, admin)
	require.NoError(t, err)
	uc := created.(*authUsecase)
	uc.hashCost = bcrypt.MinCost

	return &authFixture{db: db, sessions: sessions, usecase: uc}
}

func devFixture(t *testing.T) *authFixture {
	return newAuthFixture(t,
		config.AppConfig{Env: "development"},
		config.AdminConfig{Bootstrap: true, Username: "admin", Password: config.DefaultAdminPassword},
	)
}

func countUsers(t *testing.T, db *gorm.DB) int64 {
	var count int64
	require.NoError(t, db.Model(&entity.User{}).Count(&count).Error)
	return count
}

func TestAuthUsecase_Register(t *testing.T) {
	f := devFixture(t)
	ctx := context.Background()

	user, err := f.usecase.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: "wonderland", Role: "patient"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "patient", user.Role)

	var stored entity.User
	require.NoError(t, f.db.Where("username = ?", "alice").First(&stored).Error)
	assert.NotEqual(t, "wonderland", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("wonderland")))
}

func TestAuthUsecase_RegisterDuplicateUsername(t *testing.T) {
	f := devFixture(t)
	ctx := context.Background()

	first, err := f.usecase.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: "first", Role: "patient"})
	require.NoError(t, err)

	_, err = f.usecase.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: "second", Role: "doctor"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// the first identity is untouched
	var stored entity.User
	require.NoError(t, f.db.Where("username = ?", "alice").First(&stored).Error)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, entity.RolePatient, stored.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("first")))
	assert.Equal(t, int64(1), countUsers(t, f.db))
}

func TestAuthUsecase_RegisterRejectsUnknownRole(t *testing.T) {
	f := devFixture(t)

	_, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{Username: "eve", Password: "pw", Role: "superuser"})
	assert.ErrorIs(t, err, ErrInvalidRole)
	assert.Zero(t, countUsers(t, f.db))
}

func TestAuthUsecase_RegisterRejectsOverlongPassword(t *testing.T) {
	f := devFixture(t)
	ctx := context.Background()

	_, err := f.usecase.Register(ctx, &dto.RegisterRequest{Username: "eve", Password: strings.Repeat("x", 73), Role: "patient"})
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	// the limit is in bytes, not characters
	_, err = f.usecase.Register(ctx, &dto.RegisterRequest{Username: "eve", Password: strings.Repeat("é", 40), Role: "patient"})
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.Zero(t, countUsers(t, f.db))

	_, err = f.usecase.Register(ctx, &dto.RegisterRequest{Username: "eve", Password: strings.Repeat("x", 72), Role: "patient"})
	assert.NoError(t, err)
}

func TestAuthUsecase_RegisterTrimsUsername(t *testing.T) {
	f := devFixture(t)
	ctx := context.Background()

	user, err := f.usecase.Register(ctx, &dto.RegisterRequest{Username: " alice\t", Password: "wonderland", Role: "patient"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = f.usecase.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: "other", Role: "doctor"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = f.usecase.Register(ctx, &dto.RegisterRequest{Username: "   ", Password: "pw", Role: "patient"})
	assert.ErrorIs(t, err, ErrInvalidUsername)
	assert.Equal(t, int64(1), countUsers(t, f.db))

	session, err := f.usecase.Login(ctx, &dto.LoginRequest{Username: "  alice ", Password: "wonderland"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.User.ID)
}

func TestAuthUsecase_Login(t *testing.T) {
	f := devFixture(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, f.db, "alice", "wonderland", entity.RolePatient)

	session, err := f.usecase.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "wonderland"})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, session.User.ID)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, int64(3600), session.ExpiresIn)
	assert.Equal(t, 1, f.sessions.Len())

	principal, sessionID, err := f.usecase.ResolveSession(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, principal.ID)
	assert.Equal(t, entity.RolePatient, principal.Role)
	assert.Equal(t, session.SessionID, sessionID)
}

func TestAuthUsecase_LoginFailuresAreIndistinguishable(t *testing.T) {
	f := devFixture(t)
	ctx := context.Background()
	testutil.CreateUser(t, f.db, "alice", "wonderland", entity.RolePatient)

	_, wrongPassword := f.usecase.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "looking-glass"})
	_, unknownUser := f.usecase.Login(ctx, &dto.LoginRequest{Username: "mallory", Password: "wonderland"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
	assert.Zero(t, f.sessions.Len())
}

func TestAuthUsecase_UnknownUserComparesAgainstPrebuiltHash(t *testing.T) {
	f := devFixture(t)

	require.NotEmpty(t, f.usecase.dummyHash)
	cost, err := bcrypt.Cost(f.usecase.dummyHash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)

	_, err = f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "nobody", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthUsecase_LogoutRevokesSession(t *testing.T) {
	f := devFixture(t)
	ctx := context.Background()
	testutil.CreateUser(t, f.db, "drsmith", "scalpel", entity.RoleDoctor)

	session, err := f.usecase.Login(ctx, &dto.LoginRequest{Username: "drsmith", Password: "scalpel"})
	require.NoError(t, err)

	principal, sessionID, err := f.usecase.ResolveSession(ctx, session.Token)
	require.NoError(t, err)

	require.NoError(t, f.usecase.Logout(ctx, principal, sessionID))

	_, _, err = f.usecase.ResolveSession(ctx, session.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestAuthUsecase_ResolveSessionRejectsGarbage(t *testing.T) {
	f := devFixture(t)

	_, _, err := f.usecase.ResolveSession(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestAuthUsecase_EnsureDefaultAdminIsIdempotent(t *testing.T) {
	f := devFixture(t)
	ctx := context.Background()

	created, err := f.usecase.EnsureDefaultAdmin(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.usecase.EnsureDefaultAdmin(ctx)
	require.NoError(t, err)
	assert.False(t, created)

	var admins []entity.User
	require.NoError(t, f.db.Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin", admins[0].Username)
	assert.Equal(t, entity.RoleAdmin, admins[0].Role)

	_, err = f.usecase.Login(ctx, &dto.LoginRequest{Username: "admin", Password: config.DefaultAdminPassword})
	assert.NoError(t, err)
}

func TestAuthUsecase_EnsureDefaultAdminRefusesDefaultPasswordInProduction(t *testing.T) {
	f := newAuthFixture(t,
		config.AppConfig{Env: "production"},
		config.AdminConfig{Bootstrap: true, Username: "admin", Password: config.DefaultAdminPassword},
	)

	created, err := f.usecase.EnsureDefaultAdmin(context.Background())
	assert.True(t, errors.Is(err, ErrDefaultAdminCredential))
	assert.False(t, created)
	assert.Zero(t, countUsers(t, f.db))
}

func TestAuthUsecase_EnsureDefaultAdminWithRotatedPassword(t *testing.T) {
	f := newAuthFixture(t,
		config.AppConfig{Env: "production"},
		config.AdminConfig{Bootstrap: true, Username: "root", Password: "a-long-rotated-secret"},
	)

	created, err := f.usecase.EnsureDefaultAdmin(context.Background())
	require.NoError(t, err)
	assert.True(t, created)
}

func TestAuthUsecase_EnsureDefaultAdminRejectsOverlongPassword(t *testing.T) {
	f := newAuthFixture(t,
		config.AppConfig{Env: "production"},
		config.AdminConfig{Bootstrap: true, Username: "root", Password: strings.Repeat("s", 80)},
	)

	created, err := f.usecase.EnsureDefaultAdmin(context.Background())
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.False(t, created)
	assert.Zero(t, countUsers(t, f.db))
}

func TestAuthUsecase_EnsureDefaultAdminDisabled(t *testing.T) {
	f := newAuthFixture(t,
		config.AppConfig{Env: "production"},
		config.AdminConfig{Bootstrap: false, Username: "admin", Password: config.DefaultAdminPassword},
	)

	created, err := f.usecase.EnsureDefaultAdmin(context.Background())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Zero(t, countUsers(t, f.db))
}
