package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/calmzone-backend/internal/data/repos"
	"github.com/yungbote/calmzone-backend/internal/pkg/logger"
)

type Repos struct {
	MoodEntry   repos.MoodEntryRepo
	Post        repos.PostRepo
	ChatMessage repos.ChatMessageRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		MoodEntry:   repos.NewMoodEntryRepo(db, log),
		Post:        repos.NewPostRepo(db, log),
		ChatMessage: repos.NewChatMessageRepo(db, log),
	}
}
