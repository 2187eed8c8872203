package repos

import (
	"github.com/yungbote/calmzone-backend/internal/data/repos/board"
	"github.com/yungbote/calmzone-backend/internal/data/repos/chat"
	"github.com/yungbote/calmzone-backend/internal/data/repos/mood"
	"github.com/yungbote/calmzone-backend/internal/pkg/logger"
	"gorm.io/gorm"
)

type MoodEntryRepo = mood.MoodEntryRepo
type PostRepo = board.PostRepo
type ChatMessageRepo = chat.ChatMessageRepo

func NewMoodEntryRepo(db *gorm.DB, baseLog *logger.Logger) MoodEntryRepo {
	return mood.NewMoodEntryRepo(db, baseLog)
}
func NewPostRepo(db *gorm.DB, baseLog *logger.Logger) PostRepo {
	return board.NewPostRepo(db, baseLog)
}
func NewChatMessageRepo(db *gorm.DB, baseLog *logger.Logger) ChatMessageRepo {
	return chat.NewChatMessageRepo(db, baseLog)
}
