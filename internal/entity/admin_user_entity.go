package entity

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser can manage the knowledge base and review escalated inquiries.
type AdminUser struct {
	Id           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
