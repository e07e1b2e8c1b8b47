package service

import (
	"context"
	"encoding/json"
	"time"

	"supercharged-notes-be/internal/dto"
	"supercharged-notes-be/internal/pkg/logger"
	"supercharged-notes-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber     message.Subscriber
	topicName      string
	eventPublisher events.Publisher // nil when NATS is not configured
	logger         logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:     subscriber,
		topicName:      topicName,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
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

// processMessage always acks: usage records are best effort and a redelivery
// loop against an unreachable bus would only add load.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var usage dto.ChatUsageMessage
	if err := json.Unmarshal(msg.Payload, &usage); err != nil {
		cs.logger.Error("EVENTS", "Failed to unmarshal chat usage", map[string]interface{}{
			"message_uuid": msg.UUID,
			"error":        err.Error(),
		})
		return
	}

	details := map[string]interface{}{
		"user_id":     usage.UserId,
		"mode":        usage.Mode,
		"model":       usage.Model,
		"scope":       usage.Scope,
		"streamed":    usage.Streamed,
		"bytes":       usage.Bytes,
		"outcome":     usage.Outcome,
		"duration_ms": usage.Duration.Milliseconds(),
	}
	cs.logger.Info("EVENTS", "Chat completed", details)

	if cs.eventPublisher == nil {
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	event := events.NewEvent(events.TypeChatCompleted, details, usage.OccurredAt)
	if err := cs.eventPublisher.Publish(pubCtx, event); err != nil {
		cs.logger.Warn("EVENTS", "Failed to forward chat usage to NATS", map[string]interface{}{
			"user_id": usage.UserId,
			"error":   err.Error(),
		})
	}
}
