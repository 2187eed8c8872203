package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/calmzone-backend/internal/http/response"
	"github.com/yungbote/calmzone-backend/internal/platform/apierr"
	"github.com/yungbote/calmzone-backend/internal/services"
)

type MoodHandler struct {
	moods services.MoodService
}

func NewMoodHandler(moods services.MoodService) *MoodHandler {
	return &MoodHandler{moods: moods}
}

type recordMoodReq struct {
	UserHash string `json:"user_hash"`
	Mood     string `json:"mood"`
	Note     string `json:"note"`
}

// GET /moods?user_hash=
func (h *MoodHandler) ListMoods(c *gin.Context) {
	moods, err := h.moods.ListMoods(c.Request.Context(), c.Query("user_hash"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"moods": moods})
}

// POST /moods
func (h *MoodHandler) RecordMood(c *gin.Context) {
	var req recordMoodReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidRequest, err)
		return
	}
	entry, updated, err := h.moods.RecordMood(c.Request.Context(), req.UserHash, req.Mood, req.Note)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"mood": entry, "updated": updated})
}
