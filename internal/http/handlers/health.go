package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/calmzone-backend/internal/http/response"
	"github.com/yungbote/calmzone-backend/internal/platform/apierr"
)

const healthPingTimeout = 2 * time.Second

var errDatabaseUnavailable = errors.New("database unavailable")

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

// NewHealthHandler reports 503 while db does not answer. A nil db only checks
// that the process serves requests.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// GET /healthcheck
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			response.RespondError(c, http.StatusServiceUnavailable, apierr.CodeUnavailable, errDatabaseUnavailable)
			return
		}
	}
	c.String(http.StatusOK, "ok")
}
