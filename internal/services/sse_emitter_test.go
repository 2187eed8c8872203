package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yungbote/calmzone-backend/internal/data/repos/testutil"
	"github.com/yungbote/calmzone-backend/internal/realtime"
)

type stubBus struct {
	err       error
	published []realtime.SSEMessage
}

func (b *stubBus) Publish(_ context.Context, msg realtime.SSEMessage) error {
	b.published = append(b.published, msg)
	return b.err
}

func (b *stubBus) StartForwarder(context.Context, func(realtime.SSEMessage)) error { return nil }
func (b *stubBus) Close() error                                                    { return nil }

func subscribedHub(t *testing.T) (*realtime.SSEHub, *realtime.SSEClient) {
	t.Helper()
	hub := realtime.NewSSEHub(testutil.Logger(t))
	client := hub.NewSSEClient()
	hub.AddChannel(client, realtime.ChannelBoard)
	t.Cleanup(func() { hub.CloseClient(client) })
	return hub, client
}

func boardEvent() realtime.SSEMessage {
	return realtime.SSEMessage{
		Channel: realtime.ChannelBoard,
		Event:   realtime.SSEEventPostLiked,
		Data:    map[string]any{"likes_count": 1},
	}
}

func TestBusEmitterFallsBackToLocalHub(t *testing.T) {
	hub, client := subscribedHub(t)
	b := &stubBus{err: errors.New("redis: connection refused")}
	NewBusEmitter(testutil.Logger(t), b, hub).Emit(context.Background(), boardEvent())

	if len(b.published) != 1 {
		t.Fatalf("publish attempts=%d", len(b.published))
	}
	select {
	case msg := <-client.Outbound:
		if msg.Event != realtime.SSEEventPostLiked {
			t.Fatalf("event=%s", msg.Event)
		}
	case <-time.After(time.Second):
		t.Fatalf("event not delivered locally after publish failure")
	}
}

func TestBusEmitterLeavesDeliveryToForwarder(t *testing.T) {
	hub, client := subscribedHub(t)
	b := &stubBus{}
	NewBusEmitter(testutil.Logger(t), b, hub).Emit(context.Background(), boardEvent())

	if len(b.published) != 1 {
		t.Fatalf("publish attempts=%d", len(b.published))
	}
	select {
	case msg := <-client.Outbound:
		t.Fatalf("unexpected direct delivery: %+v", msg)
	default:
	}
}

func TestHubEmitterBroadcasts(t *testing.T) {
	hub, client := subscribedHub(t)
	NewHubEmitter(hub).Emit(context.Background(), boardEvent())
	select {
	case <-client.Outbound:
	case <-time.After(time.Second):
		t.Fatalf("event not delivered")
	}
	NewHubEmitter(nil).Emit(context.Background(), boardEvent())
}
