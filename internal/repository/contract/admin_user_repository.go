package contract

import (
	"context"

	"aqua-support-be/internal/entity"

	"github.com/google/uuid"
)

type AdminUserRepository interface {
	Create(ctx context.Context, user *entity.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*entity.AdminUser, error)
	FindById(ctx context.Context, id uuid.UUID) (*entity.AdminUser, error)
}
