package contract

import (
	"context"

	"aqua-support-be/internal/entity"
	"aqua-support-be/internal/repository/specification"

	"github.com/google/uuid"
)

type KbDocumentRepository interface {
	Create(ctx context.Context, doc *entity.KbDocument) error
	Update(ctx context.Context, doc *entity.KbDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KbDocument, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KbDocument, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
