package services

import (
	"context"
	"strings"
	"time"

	"github.com/yungbote/calmzone-backend/internal/data/repos"
	types "github.com/yungbote/calmzone-backend/internal/domain"
	"github.com/yungbote/calmzone-backend/internal/domain/mood"
	"github.com/yungbote/calmzone-backend/internal/pkg/clock"
	"github.com/yungbote/calmzone-backend/internal/pkg/dbctx"
	"github.com/yungbote/calmzone-backend/internal/pkg/logger"
	"github.com/yungbote/calmzone-backend/internal/platform/apierr"
)

const moodListLimit = 30

type MoodService interface {
	ListMoods(ctx context.Context, owner string) ([]*types.MoodEntry, error)
	// RecordMood stores today's mood for owner. A second call on the same day
	// replaces mood and note and reports updated=true.
	RecordMood(ctx context.Context, owner, mood, note string) (entry *types.MoodEntry, updated bool, err error)
}

type moodService struct {
	log   *logger.Logger
	repo  repos.MoodEntryRepo
	clock clock.Clock
	loc   *time.Location
}

func NewMoodService(log *logger.Logger, repo repos.MoodEntryRepo, clk clock.Clock, loc *time.Location) MoodService {
	if clk == nil {
		clk = clock.System()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &moodService{
		log:   log.With("service", "MoodService"),
		repo:  repo,
		clock: clk,
		loc:   loc,
	}
}

func (s *moodService) ListMoods(ctx context.Context, owner string) ([]*types.MoodEntry, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, apierr.Required("user_hash")
	}
	rows, err := s.repo.ListByUser(dbctx.Of(ctx), owner, moodListLimit)
	if err != nil {
		s.log.Warn("list moods failed", "user_hash", owner, "error", err)
		return []*types.MoodEntry{}, nil
	}
	return rows, nil
}

func (s *moodService) RecordMood(ctx context.Context, owner, rawMood, note string) (*types.MoodEntry, bool, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, false, apierr.Required("user_hash")
	}
	if strings.TrimSpace(rawMood) == "" {
		return nil, false, apierr.Required("mood")
	}
	m, ok := mood.Normalize(rawMood)
	if !ok {
		return nil, false, apierr.Validation("mood", "must be one of "+strings.Join(mood.Values, ", "))
	}

	now := s.clock.Now().UTC()
	row := &types.MoodEntry{
		UserHash:  owner,
		Day:       clock.DayOf(now, s.loc),
		Mood:      m,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if strings.TrimSpace(note) != "" {
		row.Note = &note
	}

	entry, updated, err := s.repo.UpsertForDay(dbctx.Of(ctx), row)
	if err != nil {
		s.log.Error("record mood failed", "user_hash", owner, "day", row.Day, "error", err)
		return nil, false, apierr.Upstream("failed to save mood", err)
	}
	s.log.Debug("mood recorded", "user_hash", owner, "day", row.Day, "updated", updated)
	return entry, updated, nil
}
