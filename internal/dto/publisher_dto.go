package dto

import "github.com/google/uuid"

// PublishEmbedDocumentMessage asks the consumer to (re)embed one document.
type PublishEmbedDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
