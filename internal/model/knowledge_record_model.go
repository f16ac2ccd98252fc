package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type KnowledgeRecord struct {
	Id        uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Question  string           `gorm:"type:text;not null"`
	Answer    string           `gorm:"type:text;not null"`
	Embedding *pgvector.Vector `gorm:"type:vector(1024)"` // Zhipu embedding-2 dimensionality
	Category  string           `gorm:"type:varchar(50);index"`
	Keywords  datatypes.JSON   `gorm:"type:jsonb"`
	HitCount  int              `gorm:"default:0"`
	LastHitAt *time.Time
	IsPreset  bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (KnowledgeRecord) TableName() string {
	return "knowledge_records"
}
