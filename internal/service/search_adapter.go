package service

import (
	"context"

	"aqua-support-be/internal/repository/unitofwork"
	"aqua-support-be/pkg/store"
)

// VectorSearchAdapter exposes the embedding repository as the search backend
// the retrieval gateway expects. Every match is returned as-is; relevance
// filtering happens model-side, not here.
type VectorSearchAdapter struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewVectorSearchAdapter(uowFactory unitofwork.RepositoryFactory) *VectorSearchAdapter {
	return &VectorSearchAdapter{uowFactory: uowFactory}
}

func (a *VectorSearchAdapter) Search(ctx context.Context, vector []float32, topK int) ([]store.Document, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)

	chunks, err := uow.KbEmbeddingRepository().SearchSimilar(ctx, vector, topK)
	if err != nil {
		return nil, err
	}

	docs := make([]store.Document, 0, len(chunks))
	for _, chunk := range chunks {
		doc := store.Document{
			ID:      chunk.Embedding.DocumentId.String(),
			Content: chunk.Embedding.Chunk,
			Score:   float32(chunk.Similarity),
		}
		if chunk.Document != nil {
			doc.Title = chunk.Document.Title
			doc.ContentType = chunk.Document.ContentType
			doc.URL = chunk.Document.URL
			doc.Category = chunk.Document.Category
			doc.Tags = chunk.Document.Tags
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
