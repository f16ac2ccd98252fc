package mapper

import (
	"talentbridge-ai/internal/entity"
	"talentbridge-ai/internal/model"
)

type MemoryMapper struct{}

func NewMemoryMapper() *MemoryMapper {
	return &MemoryMapper{}
}

func (m *MemoryMapper) ToEntity(r *model.MemoryMessage) *entity.MemoryMessage {
	if r == nil {
		return nil
	}
	return &entity.MemoryMessage{
		Id:         r.Id,
		SessionKey: r.SessionKey,
		Role:       r.Role,
		Content:    r.Content,
		CreatedAt:  r.CreatedAt,
	}
}

func (m *MemoryMapper) ToModel(r *entity.MemoryMessage) *model.MemoryMessage {
	if r == nil {
		return nil
	}
	return &model.MemoryMessage{
		Id:         r.Id,
		SessionKey: r.SessionKey,
		Role:       r.Role,
		Content:    r.Content,
		CreatedAt:  r.CreatedAt,
	}
}
