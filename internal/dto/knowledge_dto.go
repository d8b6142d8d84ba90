package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDocumentRequest struct {
	Title       string   `json:"title" validate:"required"`
	Content     string   `json:"content" validate:"required"`
	ContentType string   `json:"content_type" validate:"required,oneof=product guide faq article"`
	URL         string   `json:"url" validate:"omitempty,url"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags" validate:"max=10"`
}

type CreateDocumentResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateDocumentRequest struct {
	Id          uuid.UUID
	Title       string   `json:"title" validate:"required"`
	Content     string   `json:"content" validate:"required"`
	ContentType string   `json:"content_type" validate:"required,oneof=product guide faq article"`
	URL         string   `json:"url" validate:"omitempty,url"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags" validate:"max=10"`
}

type ShowDocumentResponse struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	ContentType string     `json:"content_type"`
	URL         string     `json:"url,omitempty"`
	Category    string     `json:"category,omitempty"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type ListDocumentsResponse struct {
	Documents []ShowDocumentResponse `json:"documents"`
	Total     int64                  `json:"total"`
}
