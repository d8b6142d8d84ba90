package contract

import (
	"context"

	"aqua-support-be/internal/entity"
	"aqua-support-be/internal/repository/specification"
)

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *entity.Inquiry) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Inquiry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Inquiry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
