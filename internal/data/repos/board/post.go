package board

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/calmzone-backend/internal/domain"
	"github.com/yungbote/calmzone-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/calmzone-backend/internal/pkg/errors"
	"github.com/yungbote/calmzone-backend/internal/pkg/logger"
)

type PostRepo interface {
	Create(dbc dbctx.Context, rows []*types.Post) ([]*types.Post, error)
	// List returns posts newest-first; an empty category lists every post and
	// limit <= 0 means no limit.
	List(dbc dbctx.Context, category string, limit int) ([]*types.Post, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Post, error)
	// SetLikes writes likedBy and its cardinality when the row is still at
	// expectedVersion. It returns pkgerrors.ErrConflict otherwise.
	SetLikes(dbc dbctx.Context, id uuid.UUID, expectedVersion int64, likedBy types.IdentitySet) error
	ScanBatches(dbc dbctx.Context, batchSize int, fn func(batch []*types.Post) error) error
}

type postRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostRepo(db *gorm.DB, baseLog *logger.Logger) PostRepo {
	return &postRepo{db: db, log: baseLog.With("repo", "PostRepo")}
}

func (r *postRepo) Create(dbc dbctx.Context, rows []*types.Post) ([]*types.Post, error) {
	if len(rows) == 0 {
		return []*types.Post{}, nil
	}
	if err := dbc.Conn(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *postRepo) List(dbc dbctx.Context, category string, limit int) ([]*types.Post, error) {
	q := dbc.Conn(r.db).Model(&types.Post{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []*types.Post
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Post, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.ErrNotFound
	}
	var out types.Post
	if err := dbc.Conn(r.db).Where("id = ?", id).Take(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *postRepo) SetLikes(dbc dbctx.Context, id uuid.UUID, expectedVersion int64, likedBy types.IdentitySet) error {
	if id == uuid.Nil {
		return fmt.Errorf("missing post id")
	}
	if likedBy == nil {
		likedBy = types.IdentitySet{}
	}
	res := dbc.Conn(r.db).
		Model(&types.Post{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]interface{}{
			"liked_by":    likedBy,
			"likes_count": len(likedBy),
			"version":     gorm.Expr("version + 1"),
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrConflict
	}
	return nil
}

func (r *postRepo) ScanBatches(dbc dbctx.Context, batchSize int, fn func(batch []*types.Post) error) error {
	if fn == nil {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 200
	}
	var batch []*types.Post
	res := dbc.Conn(r.db).
		Model(&types.Post{}).
		FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
			return fn(batch)
		})
	return res.Error
}
