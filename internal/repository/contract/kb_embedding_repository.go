package contract

import (
	"context"

	"aqua-support-be/internal/entity"
	"aqua-support-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredChunk pairs an embedded chunk with its parent document and the
// raw cosine similarity. The similarity is informational only; adequacy
// judgment happens downstream without it.
type ScoredChunk struct {
	Embedding  *entity.KbEmbedding
	Document   *entity.KbDocument
	Similarity float64
}

type KbEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.KbEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.KbEmbedding) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KbEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilar returns the limit nearest chunks with document
	// metadata. No similarity threshold is applied.
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*ScoredChunk, error)
}
