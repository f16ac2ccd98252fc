package mapper

import (
	"encoding/json"
	"time"

	"talentbridge-ai/internal/entity"
	"talentbridge-ai/internal/model"

	"github.com/pgvector/pgvector-go"
)

type KnowledgeMapper struct{}

func NewKnowledgeMapper() *KnowledgeMapper {
	return &KnowledgeMapper{}
}

func (m *KnowledgeMapper) ToEntity(r *model.KnowledgeRecord) *entity.KnowledgeRecord {
	if r == nil {
		return nil
	}

	var embedding []float32
	if r.Embedding != nil {
		embedding = r.Embedding.Slice()
	}

	var keywords []string
	if len(r.Keywords) > 0 {
		// Malformed rows degrade to no keywords rather than failing the read.
		_ = json.Unmarshal(r.Keywords, &keywords)
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.KnowledgeRecord{
		Id:        r.Id,
		Question:  r.Question,
		Answer:    r.Answer,
		Embedding: embedding,
		Category:  r.Category,
		Keywords:  keywords,
		HitCount:  r.HitCount,
		LastHitAt: r.LastHitAt,
		IsPreset:  r.IsPreset,
		CreatedAt: r.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *KnowledgeMapper) ToModel(r *entity.KnowledgeRecord) *model.KnowledgeRecord {
	if r == nil {
		return nil
	}

	var embedding *pgvector.Vector
	if len(r.Embedding) > 0 {
		v := pgvector.NewVector(r.Embedding)
		embedding = &v
	}

	var keywords []byte
	if len(r.Keywords) > 0 {
		keywords, _ = json.Marshal(r.Keywords)
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.KnowledgeRecord{
		Id:        r.Id,
		Question:  r.Question,
		Answer:    r.Answer,
		Embedding: embedding,
		Category:  r.Category,
		Keywords:  keywords,
		HitCount:  r.HitCount,
		LastHitAt: r.LastHitAt,
		IsPreset:  r.IsPreset,
		CreatedAt: r.CreatedAt,
		UpdatedAt: updatedAt,
	}
}
