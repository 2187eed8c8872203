package domain

import (
	"github.com/yungbote/calmzone-backend/internal/domain/board"
	"github.com/yungbote/calmzone-backend/internal/domain/chat"
	"github.com/yungbote/calmzone-backend/internal/domain/mood"
)

type MoodEntry = mood.MoodEntry

type Post = board.Post
type IdentitySet = board.IdentitySet

type ChatMessage = chat.ChatMessage

const (
	ChatRoleUser      = chat.RoleUser
	ChatRoleAssistant = chat.RoleAssistant
)

// Models lists every persisted type, in migration order.
func Models() []interface{} {
	return []interface{}{
		&MoodEntry{},
		&Post{},
		&ChatMessage{},
	}
}
