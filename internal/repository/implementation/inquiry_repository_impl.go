package implementation

import (
	"context"
	"errors"

	"aqua-support-be/internal/entity"
	"aqua-support-be/internal/mapper"
	"aqua-support-be/internal/model"
	"aqua-support-be/internal/repository/contract"
	"aqua-support-be/internal/repository/specification"

	"gorm.io/gorm"
)

type InquiryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InquiryMapper
}

func NewInquiryRepository(db *gorm.DB) contract.InquiryRepository {
	return &InquiryRepositoryImpl{
		db:     db,
		mapper: mapper.NewInquiryMapper(),
	}
}

func (r *InquiryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *InquiryRepositoryImpl) Create(ctx context.Context, inquiry *entity.Inquiry) error {
	m := r.mapper.ToModel(inquiry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*inquiry = *r.mapper.ToEntity(m)
	return nil
}

func (r *InquiryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Inquiry, error) {
	var m model.Inquiry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *InquiryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Inquiry, error) {
	var models []*model.Inquiry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *InquiryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Inquiry{}).Count(&count).Error
	return count, err
}
