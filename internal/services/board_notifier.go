package services

import (
	"context"

	"github.com/google/uuid"

	types "github.com/yungbote/calmzone-backend/internal/domain"
	"github.com/yungbote/calmzone-backend/internal/realtime"
)

type BoardNotifier interface {
	PostCreated(ctx context.Context, post *types.Post)
	PostLiked(ctx context.Context, postID uuid.UUID, likesCount int)
}

type boardNotifier struct {
	emit SSEEmitter
}

func NewBoardNotifier(emit SSEEmitter) BoardNotifier {
	return &boardNotifier{emit: emit}
}

func (n *boardNotifier) PostCreated(ctx context.Context, post *types.Post) {
	if n == nil || n.emit == nil || post == nil {
		return
	}
	n.emit.Emit(ctx, realtime.SSEMessage{
		Channel: realtime.ChannelBoard,
		Event:   realtime.SSEEventPostCreated,
		Data:    map[string]any{"post": post},
	})
}

// PostLiked carries only the new count; who liked stays off the wire.
func (n *boardNotifier) PostLiked(ctx context.Context, postID uuid.UUID, likesCount int) {
	if n == nil || n.emit == nil || postID == uuid.Nil {
		return
	}
	n.emit.Emit(ctx, realtime.SSEMessage{
		Channel: realtime.ChannelBoard,
		Event:   realtime.SSEEventPostLiked,
		Data:    map[string]any{"post_id": postID, "likes_count": likesCount},
	})
}
