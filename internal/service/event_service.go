package service

import (
	"context"
	"encoding/json"
	"time"

	"weaponforge-be/internal/entity"
	"weaponforge-be/internal/pkg/logger"
	"weaponforge-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const eventsModule = "EVENTS"

type IEventPublisher interface {
	PublishWeaponCreated(ctx context.Context, weapon *entity.Weapon)
	PublishWeaponShared(ctx context.Context, weapon *entity.Weapon)
}

// EventForwarder receives every event after it is audited. The NATS publisher
// satisfies it.
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

type eventPublisherService struct {
	publisher message.Publisher
	topic     string
	logger    logger.ILogger
}

func NewEventPublisherService(publisher message.Publisher, topic string, log logger.ILogger) IEventPublisher {
	return &eventPublisherService{
		publisher: publisher,
		topic:     topic,
		logger:    log,
	}
}

func (s *eventPublisherService) PublishWeaponCreated(ctx context.Context, weapon *entity.Weapon) {
	s.publish(ctx, events.BaseEvent{
		Type: events.TypeWeaponCreated,
		Data: map[string]interface{}{
			"weapon_id":     weapon.Id.String(),
			"owner_id":      weapon.OwnerId,
			"shared":        weapon.IsShared(),
			"tripo_task_id": weapon.TripoTaskId,
		},
		OccurredAt: weapon.CreatedAt,
	})
}

func (s *eventPublisherService) PublishWeaponShared(ctx context.Context, weapon *entity.Weapon) {
	occurredAt := time.Now()
	if weapon.SharedAt != nil {
		occurredAt = *weapon.SharedAt
	}
	s.publish(ctx, events.BaseEvent{
		Type: events.TypeWeaponShared,
		Data: map[string]interface{}{
			"weapon_id": weapon.Id.String(),
			"share_id":  weapon.ShareId.String(),
			"shared_at": occurredAt,
		},
		OccurredAt: occurredAt,
	})
}

// publish is best effort; the row is already committed when it runs.
func (s *eventPublisherService) publish(ctx context.Context, evt events.BaseEvent) {
	payload, err := json.Marshal(evt)
	if err != nil {
		s.logger.Error(eventsModule, "Failed to encode event", map[string]interface{}{"type": evt.Type, "error": err.Error()})
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	if err := s.publisher.Publish(s.topic, msg); err != nil {
		s.logger.Error(eventsModule, "Failed to publish event", map[string]interface{}{"type": evt.Type, "error": err.Error()})
	}
}

type IEventConsumerService interface {
	Consume(ctx context.Context) error
}

type eventConsumerService struct {
	subscriber message.Subscriber
	topic      string
	audit      logger.ILogger
	forwarder  EventForwarder
}

// NewEventConsumerService audits every weapon event and hands it to forwarder.
// forwarder may be nil.
func NewEventConsumerService(subscriber message.Subscriber, topic string, audit logger.ILogger, forwarder EventForwarder) IEventConsumerService {
	return &eventConsumerService{
		subscriber: subscriber,
		topic:      topic,
		audit:      audit,
		forwarder:  forwarder,
	}
}

func (cs *eventConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *eventConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Always ack: a poisoned message must not loop forever.
	defer msg.Ack()

	var evt events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		cs.audit.Error(eventsModule, "Failed to decode event", map[string]interface{}{"message_id": msg.UUID, "error": err.Error()})
		return
	}

	cs.audit.Info(eventsModule, evt.Type, evt.Data)

	if cs.forwarder == nil {
		return
	}
	if err := cs.forwarder.Publish(ctx, evt); err != nil {
		cs.audit.Error(eventsModule, "Failed to forward event", map[string]interface{}{"type": evt.Type, "error": err.Error()})
	}
}
