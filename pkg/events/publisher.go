package events

import (
	"encoding/json"

	"talentbridge-ai/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publisher emits engine events for the host application to observe.
// Publishing is fire-and-forget: a failed publish is logged, never returned.
type Publisher interface {
	Publish(evt Event)
}

// WatermillPublisher routes events onto an in-process watermill pub/sub.
// The host subscribes to the topic with the same GoChannel instance.
type WatermillPublisher struct {
	pub   message.Publisher
	topic string
	log   logger.ILogger
}

func NewWatermillPublisher(pub message.Publisher, topic string, log logger.ILogger) *WatermillPublisher {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &WatermillPublisher{pub: pub, topic: topic, log: log}
}

type eventEnvelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt string                 `json:"occurred_at"`
}

func (p *WatermillPublisher) Publish(evt Event) {
	if p.pub == nil {
		return
	}

	payload, err := json.Marshal(eventEnvelope{
		Type:       evt.EventType(),
		Data:       evt.Payload(),
		OccurredAt: evt.Timestamp().Format("2006-01-02T15:04:05.000Z07:00"),
	})
	if err != nil {
		p.log.Error("EVENTS", "Failed to marshal event", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := p.pub.Publish(p.topic, msg); err != nil {
		p.log.Error("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
	}
}

// NopPublisher drops all events. Constructors default to it so event wiring
// stays optional.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
