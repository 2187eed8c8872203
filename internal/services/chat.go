package services

import (
	"context"
	"encoding/json"
	"strings"

	"gorm.io/datatypes"

	"github.com/yungbote/calmzone-backend/internal/data/repos"
	types "github.com/yungbote/calmzone-backend/internal/domain"
	"github.com/yungbote/calmzone-backend/internal/domain/chat"
	"github.com/yungbote/calmzone-backend/internal/pkg/dbctx"
	"github.com/yungbote/calmzone-backend/internal/pkg/logger"
	"github.com/yungbote/calmzone-backend/internal/platform/apierr"
	"github.com/yungbote/calmzone-backend/internal/platform/openai"
	"github.com/yungbote/calmzone-backend/internal/platform/persona"
)

const chatHistoryLimit = 50

type ChatService interface {
	// ListHistory returns owner's most recent messages, oldest first.
	ListHistory(ctx context.Context, owner string) ([]*types.ChatMessage, error)
	// SendMessage records text, asks the completion provider for a reply in
	// the assistant persona and records that reply too.
	SendMessage(ctx context.Context, owner, text string) (string, error)
}

type chatService struct {
	log       *logger.Logger
	repo      repos.ChatMessageRepo
	completer openai.Completer
	persona   persona.Persona
}

func NewChatService(log *logger.Logger, repo repos.ChatMessageRepo, completer openai.Completer, p persona.Persona) ChatService {
	return &chatService{
		log:       log.With("service", "ChatService"),
		repo:      repo,
		completer: completer,
		persona:   p,
	}
}

func (s *chatService) ListHistory(ctx context.Context, owner string) ([]*types.ChatMessage, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, apierr.Required("user_hash")
	}
	rows, err := s.repo.ListByUser(dbctx.Of(ctx), owner, chatHistoryLimit)
	if err != nil {
		s.log.Warn("list chat history failed", "user_hash", owner, "error", err)
		return []*types.ChatMessage{}, nil
	}
	return rows, nil
}

func (s *chatService) SendMessage(ctx context.Context, owner, text string) (string, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return "", apierr.Required("user_hash")
	}
	if strings.TrimSpace(text) == "" {
		return "", apierr.Required("message")
	}
	dbc := dbctx.Of(ctx)

	saved := true
	if _, err := s.repo.Create(dbc, []*types.ChatMessage{{
		UserHash: owner,
		Role:     types.ChatRoleUser,
		Content:  text,
	}}); err != nil {
		saved = false
		s.log.Warn("save user message failed", "user_hash", owner, "error", err)
	}

	history, ok := s.loadHistory(dbc, owner)
	if !saved || !ok {
		history = append(history, openai.Message{Role: types.ChatRoleUser, Content: text})
	}

	completion, err := s.completer.Complete(ctx, openai.CompletionRequest{
		System:      s.persona.SystemPrompt,
		Messages:    history,
		Temperature: s.persona.Temperature,
		MaxTokens:   s.persona.MaxTokens,
	})
	if err != nil {
		s.log.Error("chat completion failed", "user_hash", owner, "error", err)
		return "", apierr.Upstream("Erro ao processar mensagem", err)
	}

	reply := completion.Content
	if strings.TrimSpace(reply) == "" {
		reply = s.persona.FallbackReply
	}

	meta, _ := json.Marshal(map[string]any{
		"prompt_tokens":     completion.PromptTokens,
		"completion_tokens": completion.CompletionTokens,
		"persona":           s.persona.Name,
	})
	if _, err := s.repo.Create(dbc, []*types.ChatMessage{{
		UserHash: owner,
		Role:     types.ChatRoleAssistant,
		Content:  reply,
		Model:    completion.Model,
		Metadata: datatypes.JSON(meta),
	}}); err != nil {
		s.log.Warn("save assistant message failed", "user_hash", owner, "error", err)
	}
	return reply, nil
}

// loadHistory returns the recent turns in chronological order with roles
// mapped for the completion API. ok is false when the store could not be read.
func (s *chatService) loadHistory(dbc dbctx.Context, owner string) ([]openai.Message, bool) {
	rows, err := s.repo.ListRecent(dbc, owner, s.persona.HistoryLimit)
	if err != nil {
		s.log.Warn("load chat history failed", "user_hash", owner, "error", err)
		return []openai.Message{}, false
	}
	out := make([]openai.Message, 0, len(rows)+1)
	for i := len(rows) - 1; i >= 0; i-- {
		out = append(out, openai.Message{
			Role:    chat.CompletionRole(rows[i].Role),
			Content: rows[i].Content,
		})
	}
	return out, true
}
