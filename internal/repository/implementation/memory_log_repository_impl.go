package implementation

import (
	"context"

	"talentbridge-ai/internal/entity"
	"talentbridge-ai/internal/mapper"
	"talentbridge-ai/internal/model"
	"talentbridge-ai/internal/repository/contract"

	"gorm.io/gorm"
)

type MemoryLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MemoryMapper
}

func NewMemoryLogRepository(db *gorm.DB) contract.MemoryLogRepository {
	return &MemoryLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewMemoryMapper(),
	}
}

func (r *MemoryLogRepositoryImpl) Append(ctx context.Context, message *entity.MemoryMessage) error {
	m := r.mapper.ToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.ToEntity(m)
	return nil
}

func (r *MemoryLogRepositoryImpl) Recent(ctx context.Context, sessionKey string, limit int) ([]*entity.MemoryMessage, error) {
	var models []*model.MemoryMessage
	err := r.db.WithContext(ctx).
		Where("session_key = ?", sessionKey).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	// Reverse so the oldest row comes first.
	entities := make([]*entity.MemoryMessage, len(models))
	for i, m := range models {
		entities[len(models)-1-i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
