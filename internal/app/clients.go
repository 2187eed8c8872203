package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/calmzone-backend/internal/pkg/logger"
	"github.com/yungbote/calmzone-backend/internal/platform/openai"
	"github.com/yungbote/calmzone-backend/internal/platform/persona"
	"github.com/yungbote/calmzone-backend/internal/realtime/bus"
)

type Clients struct {
	Completer openai.Completer
	Persona   persona.Persona
	// BoardBus is nil when REDIS_ADDR is unset.
	BoardBus bus.Bus
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	completer, err := openai.NewClient(log, openai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.OpenAITimeout,
	})
	if err != nil {
		return Clients{}, fmt.Errorf("init openai client: %w", err)
	}

	p, err := persona.Load(cfg.PersonaPath)
	if err != nil {
		return Clients{}, fmt.Errorf("load persona: %w", err)
	}

	var boardBus bus.Bus
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		b, err := bus.NewRedisBus(ctx, log, bus.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			Channel:  cfg.RedisChannel,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis board bus: %w", err)
		}
		boardBus = b
	}

	return Clients{
		Completer: completer,
		Persona:   p,
		BoardBus:  boardBus,
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.BoardBus != nil {
		_ = c.BoardBus.Close()
	}
}
