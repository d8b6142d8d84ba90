package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Inquiry struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Question         string         `gorm:"type:text;not null"`
	Answer           string         `gorm:"type:text"`
	Intent           string         `gorm:"type:varchar(32);index"`
	BusinessSubtype  string         `gorm:"type:varchar(32)"`
	Resolution       string         `gorm:"type:varchar(32);index"`
	Confidence       float64        `gorm:"type:double precision"`
	Attempts         int            `gorm:"default:0"`
	Escalated        bool           `gorm:"index"`
	TradeSecret      bool
	AugmentationUsed bool
	Trace            datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt        time.Time      `gorm:"autoCreateTime;index"`
}

func (Inquiry) TableName() string {
	return "inquiries"
}
