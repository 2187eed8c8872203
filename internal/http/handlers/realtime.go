package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/calmzone-backend/internal/pkg/logger"
	"github.com/yungbote/calmzone-backend/internal/realtime"
)

type RealtimeHandler struct {
	log *logger.Logger
	hub *realtime.SSEHub
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.SSEHub) *RealtimeHandler {
	return &RealtimeHandler{log: log.With("handler", "RealtimeHandler"), hub: hub}
}

// GET /posts/stream
func (h *RealtimeHandler) BoardStream(c *gin.Context) {
	client := h.hub.NewSSEClient()
	h.hub.AddChannel(client, realtime.ChannelBoard)
	h.log.Debug("board stream open", "client_id", client.ID)

	h.hub.ServeHTTP(c.Writer, c.Request, client)

	h.hub.CloseClient(client)
	h.log.Debug("board stream closed", "client_id", client.ID)
}
