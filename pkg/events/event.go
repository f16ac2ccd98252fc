package events

import "time"

// Event defines the contract for all engine events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "KNOWLEDGE_INDEXED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	// TypeKnowledgeIndexed fires when a question/answer pair is written to
	// the knowledge store, whether inserted or merged into a near-duplicate.
	TypeKnowledgeIndexed = "KNOWLEDGE_INDEXED"

	// TypeKnowledgeHit fires once per search that returned at least one match.
	TypeKnowledgeHit = "KNOWLEDGE_HIT"

	// TypeConversationTurn fires after the orchestrator completes a turn.
	TypeConversationTurn = "CONVERSATION_TURN"
)

func NewKnowledgeIndexed(recordId, question, category string, merged bool) Event {
	return BaseEvent{
		Type: TypeKnowledgeIndexed,
		Data: map[string]interface{}{
			"record_id": recordId,
			"question":  question,
			"category":  category,
			"merged":    merged,
		},
		OccurredAt: time.Now(),
	}
}

func NewKnowledgeHit(query string, matches int, topScore float64) Event {
	return BaseEvent{
		Type: TypeKnowledgeHit,
		Data: map[string]interface{}{
			"query":     query,
			"matches":   matches,
			"top_score": topScore,
		},
		OccurredAt: time.Now(),
	}
}

func NewConversationTurn(sessionKey string, usedRAG, usedTools, fallback bool) Event {
	return BaseEvent{
		Type: TypeConversationTurn,
		Data: map[string]interface{}{
			"session_key": sessionKey,
			"used_rag":    usedRAG,
			"used_tools":  usedTools,
			"fallback":    fallback,
		},
		OccurredAt: time.Now(),
	}
}
