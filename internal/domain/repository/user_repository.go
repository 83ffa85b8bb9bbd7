package repository

import (
	"context"

	"hospital-management/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *entity.User) error
	FindByUsername(ctx context.Context, db *gorm.DB, username string) (*entity.User, error)
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByRole(ctx context.Context, db *gorm.DB, role entity.Role) ([]entity.User, error)
	CountByRole(ctx context.Context, db *gorm.DB, role entity.Role) (int64, error)
}
