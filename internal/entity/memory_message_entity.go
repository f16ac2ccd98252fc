package entity

import (
	"time"

	"github.com/google/uuid"
)

// MemoryMessage is one row of the durable conversation log, the secondary
// tier behind the redis short-term window.
type MemoryMessage struct {
	Id         uuid.UUID
	SessionKey string
	Role       string
	Content    string
	CreatedAt  time.Time
}
