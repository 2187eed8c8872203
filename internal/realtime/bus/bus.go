package bus

import (
	"context"

	"github.com/yungbote/calmzone-backend/internal/realtime"
)

// Bus fans board events out across replicas.
type Bus interface {
	Publish(ctx context.Context, msg realtime.SSEMessage) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error
	Close() error
}
