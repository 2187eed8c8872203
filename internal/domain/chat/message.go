package chat

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// CompletionRole maps a stored role onto the completion API vocabulary.
// Older rows carry "ai"; anything that is not "user" is the assistant.
func CompletionRole(stored string) string {
	if stored == RoleUser {
		return RoleUser
	}
	return RoleAssistant
}

type ChatMessage struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserHash string    `gorm:"column:user_hash;type:text;not null;index:idx_chat_message_user_created,priority:1" json:"user_hash"`

	Role    string `gorm:"column:role;type:text;not null" json:"role"`
	Content string `gorm:"column:content;type:text;not null;default:''" json:"content"`
	Model   string `gorm:"column:model;type:text" json:"model,omitempty"`

	Metadata datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null;index:idx_chat_message_user_created,priority:2" json:"created_at"`
}

func (ChatMessage) TableName() string { return "chat_message" }

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if len(m.Metadata) == 0 {
		m.Metadata = datatypes.JSON([]byte("{}"))
	}
	return nil
}
