package entity

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeRecord is one question/answer pair in the long-term knowledge
// store. The embedding is computed from the question; a nil embedding means
// the provider was unavailable at index time and the record is invisible to
// semantic search until re-indexed.
type KnowledgeRecord struct {
	Id        uuid.UUID
	Question  string
	Answer    string
	Embedding []float32
	Category  string
	Keywords  []string
	HitCount  int
	LastHitAt *time.Time
	IsPreset  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}
