package contract

import (
	"context"
	"time"

	"talentbridge-ai/internal/entity"
	"talentbridge-ai/internal/repository/specification"

	"github.com/google/uuid"
)

type KnowledgeRepository interface {
	Create(ctx context.Context, record *entity.KnowledgeRecord) error
	// UpdateAnswer rewrites only the answer and updated_at columns so a
	// concurrent hit-count increment on the same row is never overwritten.
	UpdateAnswer(ctx context.Context, id uuid.UUID, answer string, at time.Time) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// RecordHits atomically increments hit_count and stamps last_hit_at on
	// the given rows. Retrieval calls this for every returned match.
	RecordHits(ctx context.Context, ids []uuid.UUID, at time.Time) error
}
