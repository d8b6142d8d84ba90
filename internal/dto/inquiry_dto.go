package dto

import (
	"time"

	"github.com/google/uuid"
)

type ListInquiriesRequest struct {
	Intent    string
	Escalated bool
	Page      int
	PerPage   int
}

type InquiryResponse struct {
	Id               uuid.UUID `json:"id"`
	Question         string    `json:"question"`
	Answer           string    `json:"answer"`
	Intent           string    `json:"intent"`
	BusinessSubtype  string    `json:"business_subtype,omitempty"`
	Resolution       string    `json:"resolution"`
	Confidence       float64   `json:"confidence"`
	Attempts         int       `json:"attempts"`
	Escalated        bool      `json:"escalated"`
	TradeSecret      bool      `json:"trade_secret"`
	AugmentationUsed bool      `json:"augmentation_used"`
	Trace            []string  `json:"trace,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type ListInquiriesResponse struct {
	Inquiries []InquiryResponse `json:"inquiries"`
	Total     int64             `json:"total"`
}
