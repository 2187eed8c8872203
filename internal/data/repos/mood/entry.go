package mood

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/calmzone-backend/internal/domain"
	"github.com/yungbote/calmzone-backend/internal/pkg/dbctx"
	"github.com/yungbote/calmzone-backend/internal/pkg/logger"
)

type MoodEntryRepo interface {
	ListByUser(dbc dbctx.Context, userHash string, limit int) ([]*types.MoodEntry, error)
	GetByUserDay(dbc dbctx.Context, userHash, day string) (*types.MoodEntry, error)
	// UpsertForDay inserts row unless (user_hash, day) already exists, in which
	// case the existing row takes row's mood and note. updated reports which.
	UpsertForDay(dbc dbctx.Context, row *types.MoodEntry) (entry *types.MoodEntry, updated bool, err error)
}

type moodEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMoodEntryRepo(db *gorm.DB, baseLog *logger.Logger) MoodEntryRepo {
	return &moodEntryRepo{db: db, log: baseLog.With("repo", "MoodEntryRepo")}
}

func (r *moodEntryRepo) ListByUser(dbc dbctx.Context, userHash string, limit int) ([]*types.MoodEntry, error) {
	if strings.TrimSpace(userHash) == "" {
		return nil, fmt.Errorf("missing user_hash")
	}
	if limit <= 0 || limit > 365 {
		limit = 30
	}
	var out []*types.MoodEntry
	if err := dbc.Conn(r.db).
		Where("user_hash = ?", userHash).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *moodEntryRepo) GetByUserDay(dbc dbctx.Context, userHash, day string) (*types.MoodEntry, error) {
	var out types.MoodEntry
	err := dbc.Conn(r.db).
		Where("user_hash = ? AND day = ?", userHash, day).
		Take(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *moodEntryRepo) UpsertForDay(dbc dbctx.Context, row *types.MoodEntry) (*types.MoodEntry, bool, error) {
	if row == nil {
		return nil, false, fmt.Errorf("nil mood entry")
	}
	if row.UserHash == "" || row.Day == "" {
		return nil, false, fmt.Errorf("mood entry needs user_hash and day")
	}

	var (
		out     *types.MoodEntry
		updated bool
	)
	err := dbc.Conn(r.db).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_hash"}, {Name: "day"}},
			DoNothing: true,
		}).Create(row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			out = row
			return nil
		}

		existing, err := r.GetByUserDay(dbctx.Context{Ctx: dbc.Ctx, Tx: tx}, row.UserHash, row.Day)
		if err != nil {
			return fmt.Errorf("load existing mood entry: %w", err)
		}
		if err := tx.Model(&types.MoodEntry{}).
			Where("id = ?", existing.ID).
			Updates(map[string]interface{}{
				"mood":       row.Mood,
				"note":       row.Note,
				"updated_at": row.UpdatedAt,
			}).Error; err != nil {
			return fmt.Errorf("update mood entry: %w", err)
		}
		existing.Mood = row.Mood
		existing.Note = row.Note
		existing.UpdatedAt = row.UpdatedAt
		out = existing
		updated = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, updated, nil
}
