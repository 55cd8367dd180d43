package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Routing keys of published domain events.
const (
	EventHospitalCreated   = "hospital.created"
	EventHospitalDeleted   = "hospital.deleted"
	EventCampaignCreated   = "campaign.created"
	EventCampaignPublished = "campaign.published"
	EventCampaignFunded    = "campaign.funded"
	EventCampaignDeleted   = "campaign.deleted"
	EventCampaignFollowed  = "campaign.followed"
)

const publishTimeout = 5 * time.Second

// EventPublisher delivers domain events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, key string, v any) error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }

// Event is the body of every domain event.
type Event struct {
	Type       string    `json:"type"`
	ID         uint      `json:"id"`
	UUID       string    `json:"uuid,omitempty"`
	ActorID    *uint     `json:"actor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// emit publishes after the write has committed. The request context may be
// gone by then, so the publish gets its own deadline. Failures are logged.
func emit(ctx context.Context, p EventPublisher, logger *zap.Logger, key string, id uint, uuid string, actorID *uint) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	ev := Event{Type: key, ID: id, UUID: uuid, ActorID: actorID, OccurredAt: time.Now().UTC()}
	if err := p.Publish(ctx, key, ev); err != nil {
		logger.Warn("failed to publish event", zap.String("event", key), zap.Uint("id", id), zap.Error(err))
	}
}
