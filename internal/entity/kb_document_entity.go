package entity

import (
	"time"

	"github.com/google/uuid"
)

// KbDocument is one knowledge base article, product sheet, guide or FAQ.
type KbDocument struct {
	Id          uuid.UUID
	Title       string
	Content     string
	ContentType string // "product" | "guide" | "faq" | "article"
	URL         string
	Category    string
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
