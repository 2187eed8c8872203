package chat

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	types "github.com/yungbote/calmzone-backend/internal/domain"
	"github.com/yungbote/calmzone-backend/internal/pkg/dbctx"
	"github.com/yungbote/calmzone-backend/internal/pkg/logger"
)

// maxRecent matches persona.MaxHistoryLimit.
const maxRecent = 200

type ChatMessageRepo interface {
	Create(dbc dbctx.Context, rows []*types.ChatMessage) ([]*types.ChatMessage, error)
	// ListRecent returns the newest messages first. limit must be in [1,200].
	ListRecent(dbc dbctx.Context, userHash string, limit int) ([]*types.ChatMessage, error)
	// ListByUser returns the most recent messages in chronological order.
	ListByUser(dbc dbctx.Context, userHash string, limit int) ([]*types.ChatMessage, error)
}

type chatMessageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatMessageRepo(db *gorm.DB, log *logger.Logger) ChatMessageRepo {
	return &chatMessageRepo{db: db, log: log.With("repo", "ChatMessageRepo")}
}

func (r *chatMessageRepo) Create(dbc dbctx.Context, rows []*types.ChatMessage) ([]*types.ChatMessage, error) {
	if len(rows) == 0 {
		return []*types.ChatMessage{}, nil
	}
	if err := dbc.Conn(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *chatMessageRepo) ListRecent(dbc dbctx.Context, userHash string, limit int) ([]*types.ChatMessage, error) {
	if strings.TrimSpace(userHash) == "" {
		return nil, fmt.Errorf("missing user_hash")
	}
	if limit <= 0 || limit > maxRecent {
		return nil, fmt.Errorf("limit %d out of range [1,%d]", limit, maxRecent)
	}
	var out []*types.ChatMessage
	if err := dbc.Conn(r.db).
		Model(&types.ChatMessage{}).
		Where("user_hash = ?", userHash).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *chatMessageRepo) ListByUser(dbc dbctx.Context, userHash string, limit int) ([]*types.ChatMessage, error) {
	out, err := r.ListRecent(dbc, userHash, limit)
	if err != nil {
		return nil, err
	}
	// Normalize to ASC for clients.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
