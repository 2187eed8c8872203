package app

import (
	"github.com/yungbote/calmzone-backend/internal/pkg/clock"
	"github.com/yungbote/calmzone-backend/internal/pkg/logger"
	"github.com/yungbote/calmzone-backend/internal/realtime"
	"github.com/yungbote/calmzone-backend/internal/services"
)

type Services struct {
	Mood  services.MoodService
	Board services.BoardService
	Chat  services.ChatService
}

func wireServices(log *logger.Logger, cfg Config, reposet Repos, clients Clients, hub *realtime.SSEHub) (Services, error) {
	log.Info("Wiring services...")

	loc, err := cfg.MoodLocation()
	if err != nil {
		return Services{}, err
	}

	// With redis the forwarder re-broadcasts into the hub; otherwise emit locally.
	emit := services.NewHubEmitter(hub)
	if clients.BoardBus != nil {
		emit = services.NewBusEmitter(log, clients.BoardBus, hub)
	}

	return Services{
		Mood:  services.NewMoodService(log, reposet.MoodEntry, clock.System(), loc),
		Board: services.NewBoardService(log, reposet.Post, services.NewBoardNotifier(emit)),
		Chat:  services.NewChatService(log, reposet.ChatMessage, clients.Completer, clients.Persona),
	}, nil
}
