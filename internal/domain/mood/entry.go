package mood

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	Happy   = "happy"
	Neutral = "neutral"
	Sad     = "sad"
	Anxious = "anxious"
	Calm    = "calm"
)

// Values lists the accepted moods in display order.
var Values = []string{Happy, Neutral, Sad, Anxious, Calm}

// Legacy clients post the Portuguese labels.
var aliases = map[string]string{
	"feliz":   Happy,
	"neutro":  Neutral,
	"triste":  Sad,
	"ansioso": Anxious,
	"calmo":   Calm,
}

// Normalize maps raw input onto a canonical mood. ok is false when the value is
// not part of the enum.
func Normalize(raw string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	for _, m := range Values {
		if v == m {
			return m, true
		}
	}
	if m, ok := aliases[v]; ok {
		return m, true
	}
	return "", false
}

// MoodEntry is one journal entry. (user_hash, day) is unique.
type MoodEntry struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserHash string    `gorm:"column:user_hash;type:text;not null;uniqueIndex:idx_mood_entry_user_day,priority:1" json:"user_hash"`
	Day      string    `gorm:"column:day;type:text;not null;uniqueIndex:idx_mood_entry_user_day,priority:2" json:"day"`

	Mood string  `gorm:"column:mood;type:text;not null" json:"mood"`
	Note *string `gorm:"column:note;type:text" json:"note"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (MoodEntry) TableName() string { return "mood_entry" }

func (m *MoodEntry) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
