package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"supercharged-notes-be/internal/constant"
	"supercharged-notes-be/internal/dto"
	"supercharged-notes-be/internal/pkg/logger"
	"supercharged-notes-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingEvents) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingEvents) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestUsageFlowsFromPublisherToEventBus(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	bus := &recordingEvents{}
	consumer := NewConsumerService(pubSub, constant.ChatUsageTopic, bus, logger.NewNop())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService(constant.ChatUsageTopic, pubSub)
	require.NoError(t, publisher.PublishChatUsage(ctx, dto.ChatUsageMessage{
		UserId:     "user-1",
		Mode:       "quick",
		Model:      "quick-m",
		Scope:      "general",
		Outcome:    constant.ChatOutcomeCompleted,
		Duration:   1500 * time.Millisecond,
		OccurredAt: time.Now(),
	}))

	require.Eventually(t, func() bool { return bus.count() == 1 }, 2*time.Second, 10*time.Millisecond)

	bus.mu.Lock()
	defer bus.mu.Unlock()
	ev := bus.events[0]
	assert.Equal(t, events.TypeChatCompleted, ev.EventType())
	assert.Equal(t, "user-1", ev.Payload()["user_id"])
	assert.Equal(t, int64(1500), ev.Payload()["duration_ms"])
	assert.NotContains(t, ev.Payload(), "message")
}

func TestConsumerWithoutEventBus(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	consumer := NewConsumerService(pubSub, constant.ChatUsageTopic, nil, logger.NewNop())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService(constant.ChatUsageTopic, pubSub)
	assert.NoError(t, publisher.PublishChatUsage(ctx, dto.ChatUsageMessage{UserId: "u"}))
}
