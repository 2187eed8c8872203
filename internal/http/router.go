package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/calmzone-backend/internal/http/handlers"
	httpMW "github.com/yungbote/calmzone-backend/internal/http/middleware"
	"github.com/yungbote/calmzone-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string

	HealthHandler   *httpH.HealthHandler
	MoodHandler     *httpH.MoodHandler
	PostHandler     *httpH.PostHandler
	ChatHandler     *httpH.ChatHandler
	RealtimeHandler *httpH.RealtimeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.Correlate())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	// Same surface at the root and under /api.
	mount(&r.RouterGroup, cfg)
	mount(r.Group("/api"), cfg)

	return r
}

func mount(g *gin.RouterGroup, cfg RouterConfig) {
	// Moods
	if cfg.MoodHandler != nil {
		g.GET("/moods", cfg.MoodHandler.ListMoods)
		g.POST("/moods", cfg.MoodHandler.RecordMood)
	}

	// Board
	if cfg.PostHandler != nil {
		g.GET("/posts", cfg.PostHandler.ListPosts)
		g.POST("/posts", cfg.PostHandler.CreatePost)
		g.PATCH("/posts", cfg.PostHandler.ToggleLike)
	}
	if cfg.RealtimeHandler != nil {
		g.GET("/posts/stream", cfg.RealtimeHandler.BoardStream)
	}

	// Chat
	if cfg.ChatHandler != nil {
		g.GET("/chat", cfg.ChatHandler.ListHistory)
		g.POST("/chat", cfg.ChatHandler.SendMessage)
	}
}
