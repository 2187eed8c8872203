package services

import (
	"context"

	"github.com/yungbote/calmzone-backend/internal/pkg/logger"
	"github.com/yungbote/calmzone-backend/internal/realtime"
	"github.com/yungbote/calmzone-backend/internal/realtime/bus"
)

// SSEEmitter delivers board events to stream subscribers. Emit is best-effort
// and never fails the request that caused the event.
type SSEEmitter interface {
	Emit(ctx context.Context, msg realtime.SSEMessage)
}

type hubEmitter struct {
	hub *realtime.SSEHub
}

// NewHubEmitter delivers to subscribers of this process only.
func NewHubEmitter(hub *realtime.SSEHub) SSEEmitter {
	return &hubEmitter{hub: hub}
}

func (e *hubEmitter) Emit(_ context.Context, msg realtime.SSEMessage) {
	if e.hub == nil {
		return
	}
	e.hub.Broadcast(msg)
}

type busEmitter struct {
	log *logger.Logger
	bus bus.Bus
	hub *realtime.SSEHub
}

// NewBusEmitter publishes through b; each replica's forwarder feeds its own
// hub. If the publish fails the event still reaches local subscribers.
func NewBusEmitter(log *logger.Logger, b bus.Bus, hub *realtime.SSEHub) SSEEmitter {
	return &busEmitter{log: log.With("service", "BoardEventEmitter"), bus: b, hub: hub}
}

func (e *busEmitter) Emit(ctx context.Context, msg realtime.SSEMessage) {
	err := e.bus.Publish(ctx, msg)
	if err == nil {
		return
	}
	e.log.Warn("board event publish failed; delivering locally only",
		"event", msg.Event,
		"channel", msg.Channel,
		"error", err,
	)
	if e.hub != nil {
		e.hub.Broadcast(msg)
	}
}
