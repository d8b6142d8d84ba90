package entity

import (
	"time"

	"github.com/google/uuid"
)

// KbEmbedding is one embedded chunk of a knowledge base document.
type KbEmbedding struct {
	Id             uuid.UUID
	Chunk          string
	EmbeddingValue []float32
	DocumentId     uuid.UUID
	ChunkIndex     int
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
