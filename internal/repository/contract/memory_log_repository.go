package contract

import (
	"context"

	"talentbridge-ai/internal/entity"
)

type MemoryLogRepository interface {
	// Append writes one conversation row. The log is append-only; rows are
	// never updated.
	Append(ctx context.Context, message *entity.MemoryMessage) error
	// Recent returns up to limit rows for the session, oldest first.
	Recent(ctx context.Context, sessionKey string, limit int) ([]*entity.MemoryMessage, error)
}
