package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/calmzone-backend/internal/http/response"
	"github.com/yungbote/calmzone-backend/internal/platform/apierr"
	"github.com/yungbote/calmzone-backend/internal/services"
)

type ChatHandler struct {
	chat services.ChatService
}

func NewChatHandler(chat services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type sendMessageReq struct {
	UserHash string `json:"user_hash"`
	Message  string `json:"message"`
}

// GET /chat?user_hash=
func (h *ChatHandler) ListHistory(c *gin.Context) {
	msgs, err := h.chat.ListHistory(c.Request.Context(), c.Query("user_hash"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"messages": msgs})
}

// POST /chat
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidRequest, err)
		return
	}
	reply, err := h.chat.SendMessage(c.Request.Context(), req.UserHash, req.Message)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"response": reply})
}
