package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type KbDocument struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string         `gorm:"type:text;not null"`
	Content     string         `gorm:"type:text"`
	ContentType string         `gorm:"type:varchar(32);index"`
	URL         string         `gorm:"type:text"`
	Category    string         `gorm:"type:varchar(64);index"`
	Tags        datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (KbDocument) TableName() string {
	return "kb_documents"
}
