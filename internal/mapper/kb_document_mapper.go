package mapper

import (
	"encoding/json"
	"time"

	"aqua-support-be/internal/entity"
	"aqua-support-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type KbDocumentMapper struct{}

func NewKbDocumentMapper() *KbDocumentMapper {
	return &KbDocumentMapper{}
}

func (m *KbDocumentMapper) ToEntity(d *model.KbDocument) *entity.KbDocument {
	if d == nil {
		return nil
	}

	var deletedAt *time.Time
	if d.DeletedAt.Valid {
		t := d.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	var tags []string
	if len(d.Tags) > 0 {
		// Malformed stored tags degrade to an empty list.
		_ = json.Unmarshal(d.Tags, &tags)
	}

	return &entity.KbDocument{
		Id:          d.Id,
		Title:       d.Title,
		Content:     d.Content,
		ContentType: d.ContentType,
		URL:         d.URL,
		Category:    d.Category,
		Tags:        tags,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   d.DeletedAt.Valid,
	}
}

func (m *KbDocumentMapper) ToModel(d *entity.KbDocument) *model.KbDocument {
	if d == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if d.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *d.DeletedAt, Valid: true}
	} else if d.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	tags := datatypes.JSON("[]")
	if len(d.Tags) > 0 {
		if raw, err := json.Marshal(d.Tags); err == nil {
			tags = raw
		}
	}

	return &model.KbDocument{
		Id:          d.Id,
		Title:       d.Title,
		Content:     d.Content,
		ContentType: d.ContentType,
		URL:         d.URL,
		Category:    d.Category,
		Tags:        tags,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *KbDocumentMapper) ToEntities(docs []*model.KbDocument) []*entity.KbDocument {
	entities := make([]*entity.KbDocument, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
