package implementation

import (
	"context"
	"encoding/json"

	"aqua-support-be/internal/entity"
	"aqua-support-be/internal/mapper"
	"aqua-support-be/internal/model"
	"aqua-support-be/internal/repository/contract"
	"aqua-support-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type KbEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KbEmbeddingMapper
}

func NewKbEmbeddingRepository(db *gorm.DB) contract.KbEmbeddingRepository {
	return &KbEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewKbEmbeddingMapper(),
	}
}

func (r *KbEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *KbEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.KbEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *KbEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.KbEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := r.mapper.ToModels(embeddings)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *KbEmbeddingRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.KbEmbedding{}).Error
}

func (r *KbEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KbEmbedding, error) {
	var models []*model.KbEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.KbEmbedding, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *KbEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.KbEmbedding{}).Count(&count).Error
	return count, err
}

// SearchSimilar runs a cosine KNN over kb_embeddings joined with the
// parent documents. All limit candidates are returned in ranked order;
// no similarity threshold is applied here.
func (r *KbEmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredChunk, error) {
	if limit <= 0 {
		limit = 8
	}

	type row struct {
		model.KbEmbedding
		Similarity     float64        `gorm:"column:similarity"`
		DocTitle       string         `gorm:"column:doc_title"`
		DocContentType string         `gorm:"column:doc_content_type"`
		DocURL         string         `gorm:"column:doc_url"`
		DocCategory    string         `gorm:"column:doc_category"`
		DocTags        datatypes.JSON `gorm:"column:doc_tags"`
	}
	var rows []row

	queryVector := pgvector.NewVector(embedding)

	// Cosine distance in pgvector is 1 - cosine_similarity.
	err := r.db.WithContext(ctx).
		Table("kb_embeddings").
		Select(`kb_embeddings.*,
			1 - (embedding_value <=> ?) as similarity,
			kb_documents.title as doc_title,
			kb_documents.content_type as doc_content_type,
			kb_documents.url as doc_url,
			kb_documents.category as doc_category,
			kb_documents.tags as doc_tags`, queryVector).
		Joins("JOIN kb_documents ON kb_documents.id = kb_embeddings.document_id").
		Where("kb_embeddings.deleted_at IS NULL").
		Where("kb_documents.deleted_at IS NULL").
		Order("similarity DESC").
		Limit(limit).
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	chunks := make([]*contract.ScoredChunk, len(rows))
	for i, res := range rows {
		var tags []string
		if len(res.DocTags) > 0 {
			_ = json.Unmarshal(res.DocTags, &tags)
		}
		chunks[i] = &contract.ScoredChunk{
			Embedding: r.mapper.ToEntity(&res.KbEmbedding),
			Document: &entity.KbDocument{
				Id:          res.DocumentId,
				Title:       res.DocTitle,
				ContentType: res.DocContentType,
				URL:         res.DocURL,
				Category:    res.DocCategory,
				Tags:        tags,
			},
			Similarity: res.Similarity,
		}
	}
	return chunks, nil
}
