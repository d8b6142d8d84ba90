package mapper

import (
	"encoding/json"

	"aqua-support-be/internal/entity"
	"aqua-support-be/internal/model"

	"gorm.io/datatypes"
)

type InquiryMapper struct{}

func NewInquiryMapper() *InquiryMapper {
	return &InquiryMapper{}
}

func (m *InquiryMapper) ToEntity(i *model.Inquiry) *entity.Inquiry {
	if i == nil {
		return nil
	}

	var trace []string
	if len(i.Trace) > 0 {
		_ = json.Unmarshal(i.Trace, &trace)
	}

	return &entity.Inquiry{
		Id:               i.Id,
		Question:         i.Question,
		Answer:           i.Answer,
		Intent:           i.Intent,
		BusinessSubtype:  i.BusinessSubtype,
		Resolution:       i.Resolution,
		Confidence:       i.Confidence,
		Attempts:         i.Attempts,
		Escalated:        i.Escalated,
		TradeSecret:      i.TradeSecret,
		AugmentationUsed: i.AugmentationUsed,
		Trace:            trace,
		CreatedAt:        i.CreatedAt,
	}
}

func (m *InquiryMapper) ToModel(i *entity.Inquiry) *model.Inquiry {
	if i == nil {
		return nil
	}

	trace := datatypes.JSON("[]")
	if len(i.Trace) > 0 {
		if raw, err := json.Marshal(i.Trace); err == nil {
			trace = raw
		}
	}

	return &model.Inquiry{
		Id:               i.Id,
		Question:         i.Question,
		Answer:           i.Answer,
		Intent:           i.Intent,
		BusinessSubtype:  i.BusinessSubtype,
		Resolution:       i.Resolution,
		Confidence:       i.Confidence,
		Attempts:         i.Attempts,
		Escalated:        i.Escalated,
		TradeSecret:      i.TradeSecret,
		AugmentationUsed: i.AugmentationUsed,
		Trace:            trace,
		CreatedAt:        i.CreatedAt,
	}
}

func (m *InquiryMapper) ToEntities(inquiries []*model.Inquiry) []*entity.Inquiry {
	entities := make([]*entity.Inquiry, len(inquiries))
	for i, q := range inquiries {
		entities[i] = m.ToEntity(q)
	}
	return entities
}
