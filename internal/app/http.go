package app

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/calmzone-backend/internal/http"
	httpH "github.com/yungbote/calmzone-backend/internal/http/handlers"
	"github.com/yungbote/calmzone-backend/internal/pkg/logger"
	"github.com/yungbote/calmzone-backend/internal/realtime"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Mood     *httpH.MoodHandler
	Post     *httpH.PostHandler
	Chat     *httpH.ChatHandler
	Realtime *httpH.RealtimeHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services, hub *realtime.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	var pinger httpH.Pinger
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			pinger = sqlDB
		} else {
			log.Warn("Health check will not ping the database", "error", err)
		}
	}
	return Handlers{
		Health:   httpH.NewHealthHandler(pinger),
		Mood:     httpH.NewMoodHandler(services.Mood),
		Post:     httpH.NewPostHandler(services.Board),
		Chat:     httpH.NewChatHandler(services.Chat),
		Realtime: httpH.NewRealtimeHandler(log, hub),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers) *gin.Engine {
	serviceName := ""
	if cfg.OtelEnabled {
		serviceName = cfg.OtelServiceName
	}
	return http.NewRouter(http.RouterConfig{
		Log:             log,
		ServiceName:     serviceName,
		CORSOrigins:     cfg.CORSOrigins,
		HealthHandler:   handlers.Health,
		MoodHandler:     handlers.Mood,
		PostHandler:     handlers.Post,
		ChatHandler:     handlers.Chat,
		RealtimeHandler: handlers.Realtime,
	})
}
