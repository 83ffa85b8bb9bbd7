package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"hospital-management/config"
	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/policy"
	"hospital-management/internal/domain/repository"
	"hospital-management/internal/service"
	"hospital-management/pkg/jwt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error)
	Logout(ctx context.Context, principal *policy.Principal, sessionID string) error
	ResolveSession(ctx context.Context, token string) (*policy.Principal, string, error)
	EnsureDefaultAdmin(ctx context.Context) (bool, error)
}

type authUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
	sessions   service.SessionStore
	appConfig  config.AppConfig
	admin      config.AdminConfig
	hashCost   int
	dummyHash  []byte
}

// maxPasswordBytes is the most bcrypt will hash.
const maxPasswordBytes = 72

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	jwtService *jwt.JWTService,
	sessions service.SessionStore,
	appConfig config.AppConfig,
	admin config.AdminConfig,
) (AuthUsecase, error) {
	// compared against when the username does not exist so a failed login
	// costs the same whether or not the account is real
	dummyHash, err := newDummyHash(bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &authUsecase{
		db:         db,
		log:        log,
		userRepo:   userRepo,
		jwtService: jwtService,
		sessions:   sessions,
		appConfig:  appConfig,
		admin:      admin,
		hashCost:   bcrypt.DefaultCost,
		dummyHash:  dummyHash,
	}, nil
}

func newDummyHash(cost int) ([]byte, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate dummy password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword(secret, cost)
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}
	return hash, nil
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	role, err := entity.ParseRole(req.Role)
	if err != nil {
		return nil, ErrInvalidRole
	}

	user, err := u.createUser(ctx, req.Username, req.Password, role)
	if err != nil {
		return nil, err
	}

	u.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("User registered")
	return converter.UserToResponse(user), nil
}

func (u *authUsecase) createUser(ctx context.Context, username, password string, role entity.Role) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrInvalidUsername
	}
	if len(password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	existing, err := u.userRepo.FindByUsername(ctx, u.db, username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), u.hashCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Username: username,
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := u.userRepo.Create(ctx, u.db, user); err != nil {
		// lost a race with a concurrent registration
		if isDuplicateKeyError(err, "username") {
			return nil, ErrUsernameTaken
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error) {
	user, err := u.userRepo.FindByUsername(ctx, u.db, strings.TrimSpace(req.Username))
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}

	if user == nil {
		bcrypt.CompareHashAndPassword(u.dummyHash, []byte(req.Password))
		return nil, ErrInvalidCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, sessionID, err := u.jwtService.GenerateSessionToken(user.ID, user.Username, user.Role.String())
	if err != nil {
		u.log.Warnf("Failed to generate session token: %+v", err)
		return nil, err
	}

	if err := u.sessions.Save(ctx, user.ID, sessionID, u.jwtService.GetExpiry()); err != nil {
		return nil, err
	}

	return &dto.SessionResponse{
		Token:     token,
		SessionID: sessionID,
		ExpiresIn: int64(u.jwtService.GetExpiry().Seconds()),
		User:      *converter.UserToResponse(user),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, principal *policy.Principal, sessionID string) error {
	if principal == nil || sessionID == "" {
		return nil
	}
	return u.sessions.Delete(ctx, principal.ID, sessionID)
}

// ResolveSession turns a session token into the principal that owns it.
// Any failure is reported as ErrInvalidSession except store errors.
func (u *authUsecase) ResolveSession(ctx context.Context, token string) (*policy.Principal, string, error) {
	claims, err := u.jwtService.ValidateToken(token)
	if err != nil {
		return nil, "", ErrInvalidSession
	}

	live, err := u.sessions.Exists(ctx, claims.UserID, claims.SessionID)
	if err != nil {
		return nil, "", err
	}
	if !live {
		return nil, "", ErrInvalidSession
	}

	user, err := u.userRepo.FindByID(ctx, u.db, claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidSession
	}

	return policy.NewPrincipal(user), claims.SessionID, nil
}

// EnsureDefaultAdmin creates the reserved admin account on first start.
// It reports whether an account was created.
func (u *authUsecase) EnsureDefaultAdmin(ctx context.Context) (bool, error) {
	if !u.admin.Bootstrap {
		admins, err := u.userRepo.CountByRole(ctx, u.db, entity.RoleAdmin)
		if err != nil {
			u.log.Warnf("Failed to count admin users: %+v", err)
			return false, err
		}
		if admins == 0 {
			u.log.Warn("Admin bootstrap is disabled and no admin account exists")
		}
		return false, nil
	}
	if strings.TrimSpace(u.admin.Username) == "" || u.admin.Password == "" {
		return false, errors.New("admin bootstrap requires ADMIN_USERNAME and ADMIN_PASSWORD")
	}
	if u.admin.Password == config.DefaultAdminPassword && !u.appConfig.IsDevelopment() {
		return false, ErrDefaultAdminCredential
	}

	existing, err := u.userRepo.FindByUsername(ctx, u.db, strings.TrimSpace(u.admin.Username))
	if err != nil {
		u.log.Warnf("Failed to look up admin user: %+v", err)
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	user, err := u.createUser(ctx, u.admin.Username, u.admin.Password, entity.RoleAdmin)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return false, nil
		}
		return false, err
	}

	entry := u.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username})
	if u.admin.Password == config.DefaultAdminPassword {
		entry.Warn("Default admin user created with the built-in password; change it before leaving local development")
	} else {
		entry.Info("Default admin user created")
	}
	return true, nil
}
