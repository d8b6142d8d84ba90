package entity

import (
	"time"

	"github.com/google/uuid"
)

// Inquiry is the persisted record of one answered or escalated question.
// The agent itself keeps no state between sessions; this log exists for
// support staff review and analytics.
type Inquiry struct {
	Id               uuid.UUID
	Question         string
	Answer           string
	Intent           string
	BusinessSubtype  string
	Resolution       string
	Confidence       float64
	Attempts         int
	Escalated        bool
	TradeSecret      bool
	AugmentationUsed bool
	Trace            []string
	CreatedAt        time.Time
}
