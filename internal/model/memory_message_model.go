package model

import (
	"time"

	"github.com/google/uuid"
)

type MemoryMessage struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionKey string    `gorm:"type:varchar(100);not null;index"`
	Role       string    `gorm:"type:varchar(20);not null"`
	Content    string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (MemoryMessage) TableName() string {
	return "conversation_memory"
}
