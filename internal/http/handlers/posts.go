package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/calmzone-backend/internal/http/response"
	"github.com/yungbote/calmzone-backend/internal/platform/apierr"
	"github.com/yungbote/calmzone-backend/internal/services"
)

type PostHandler struct {
	board services.BoardService
}

func NewPostHandler(board services.BoardService) *PostHandler {
	return &PostHandler{board: board}
}

type createPostReq struct {
	UserHash string `json:"user_hash"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

type toggleLikeReq struct {
	PostID   string `json:"post_id"`
	UserHash string `json:"user_hash"`
}

// GET /posts?category=&user_hash=
// user_hash is optional and only drives each post's "liked" flag.
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.board.ListPosts(c.Request.Context(), c.Query("category"), c.Query("user_hash"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"posts": posts})
}

// POST /posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req createPostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidRequest, err)
		return
	}
	post, err := h.board.CreatePost(c.Request.Context(), req.UserHash, req.Content, req.Category)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"post": post})
}

// PATCH /posts
func (h *PostHandler) ToggleLike(c *gin.Context) {
	var req toggleLikeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeInvalidRequest, err)
		return
	}
	liked, count, err := h.board.ToggleLike(c.Request.Context(), req.PostID, req.UserHash)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "liked": liked, "likes_count": count})
}
