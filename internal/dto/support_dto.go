package dto

import (
	"time"

	"github.com/google/uuid"
)

type AskRequest struct {
	Question string `json:"question" validate:"required,min=3,max=2000"`
}

type AskResponse struct {
	InquiryId        uuid.UUID `json:"inquiry_id"`
	Question         string    `json:"question"`
	Answer           string    `json:"answer"`
	Intent           string    `json:"intent"`
	BusinessSubtype  string    `json:"business_subtype,omitempty"`
	Resolution       string    `json:"resolution"`
	Confidence       float64   `json:"confidence"`
	Attempts         int       `json:"attempts"`
	Escalated        bool      `json:"escalated"`
	AugmentationUsed bool      `json:"augmentation_used"`
	Cached           bool      `json:"cached"`
	CreatedAt        time.Time `json:"created_at"`
}
