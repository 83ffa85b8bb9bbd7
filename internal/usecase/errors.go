package usecase

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken          = errors.New("username already exists")
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrInvalidRole            = errors.New("invalid role")
	ErrInvalidUsername        = errors.New("username must not be blank")
	ErrPasswordTooLong        = errors.New("password must be at most 72 bytes")
	ErrInvalidSession         = errors.New("invalid or expired session")
	ErrDefaultAdminCredential = errors.New("default admin credential must be changed outside local development")
	ErrUserNotFound           = errors.New("user not found")
	ErrPatientNotFound        = errors.New("patient not found")
	ErrDoctorNotFound         = errors.New("doctor not found")
	ErrInvalidScheduledTime   = errors.New("invalid scheduled time, use YYYY-MM-DDTHH:MM")
)

// isDuplicateKeyError checks if the error is a unique constraint violation
// on a constraint whose name contains constraintName
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		return pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName))
	}
	// drivers that translate errors lose the constraint name
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
