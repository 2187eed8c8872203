package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/calmzone-backend/internal/data/repos"
	types "github.com/yungbote/calmzone-backend/internal/domain"
	"github.com/yungbote/calmzone-backend/internal/domain/board"
	"github.com/yungbote/calmzone-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/calmzone-backend/internal/pkg/errors"
	"github.com/yungbote/calmzone-backend/internal/pkg/logger"
	"github.com/yungbote/calmzone-backend/internal/platform/apierr"
)

const (
	likeMaxAttempts    = 5
	reconcileBatchSize = 200
)

type BoardService interface {
	// ListPosts returns every post in category, newest first. Liked is set
	// for viewer; an empty viewer leaves it false.
	ListPosts(ctx context.Context, category, viewer string) ([]*types.Post, error)
	CreatePost(ctx context.Context, owner, content, category string) (*types.Post, error)
	// ToggleLike adds owner to the post's likers, or removes them when already
	// present, and returns the resulting state.
	ToggleLike(ctx context.Context, postID, owner string) (liked bool, likesCount int, err error)
	// ReconcileLikeCounts rewrites likes_count for posts whose counter drifted
	// from liked_by and returns how many rows were fixed.
	ReconcileLikeCounts(ctx context.Context) (int, error)
}

type boardService struct {
	log      *logger.Logger
	repo     repos.PostRepo
	notifier BoardNotifier
}

func NewBoardService(log *logger.Logger, repo repos.PostRepo, notifier BoardNotifier) BoardService {
	return &boardService{
		log:      log.With("service", "BoardService"),
		repo:     repo,
		notifier: notifier,
	}
}

func (s *boardService) ListPosts(ctx context.Context, category, viewer string) ([]*types.Post, error) {
	filter := strings.TrimSpace(category)
	if board.IsAllCategory(filter) {
		filter = ""
	}
	rows, err := s.repo.List(dbctx.Of(ctx), filter, 0)
	if err != nil {
		s.log.Warn("list posts failed", "category", filter, "error", err)
		return []*types.Post{}, nil
	}
	if viewer = strings.TrimSpace(viewer); viewer != "" {
		for _, p := range rows {
			p.Liked = p.LikedBy.Contains(viewer)
		}
	}
	return rows, nil
}

func (s *boardService) CreatePost(ctx context.Context, owner, content, category string) (*types.Post, error) {
	owner = strings.TrimSpace(owner)
	content = strings.TrimSpace(content)
	category = strings.TrimSpace(category)
	switch {
	case owner == "":
		return nil, apierr.Required("user_hash")
	case content == "":
		return nil, apierr.Required("content")
	case category == "":
		return nil, apierr.Required("category")
	}

	post := &types.Post{
		UserHash: owner,
		Content:  content,
		Category: category,
		LikedBy:  types.IdentitySet{},
	}
	if _, err := s.repo.Create(dbctx.Of(ctx), []*types.Post{post}); err != nil {
		s.log.Error("create post failed", "user_hash", owner, "error", err)
		return nil, apierr.Upstream("failed to create post", err)
	}
	if s.notifier != nil {
		s.notifier.PostCreated(ctx, post)
	}
	return post, nil
}

func (s *boardService) ToggleLike(ctx context.Context, postID, owner string) (bool, int, error) {
	owner = strings.TrimSpace(owner)
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return false, 0, apierr.Required("post_id")
	}
	if owner == "" {
		return false, 0, apierr.Required("user_hash")
	}
	id, err := uuid.Parse(postID)
	if err != nil {
		return false, 0, apierr.NotFound("post")
	}

	dbc := dbctx.Of(ctx)
	for attempt := 1; attempt <= likeMaxAttempts; attempt++ {
		post, err := s.repo.GetByID(dbc, id)
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return false, 0, apierr.NotFound("post")
		}
		if err != nil {
			return false, 0, apierr.Upstream("failed to load post", err)
		}

		next, liked := post.LikedBy.Toggle(owner)
		err = s.repo.SetLikes(dbc, id, post.Version, next)
		if errors.Is(err, pkgerrors.ErrConflict) {
			s.log.Debug("like toggle lost race; retrying", "post_id", id, "attempt", attempt)
			continue
		}
		if err != nil {
			return false, 0, apierr.Upstream("failed to update likes", err)
		}

		if s.notifier != nil {
			s.notifier.PostLiked(ctx, id, len(next))
		}
		return liked, len(next), nil
	}
	s.log.Warn("like toggle gave up", "post_id", id, "attempts", likeMaxAttempts)
	return false, 0, apierr.Upstream("concurrent like updates, try again", pkgerrors.ErrConflict)
}

func (s *boardService) ReconcileLikeCounts(ctx context.Context) (int, error) {
	dbc := dbctx.Of(ctx)
	fixed := 0
	err := s.repo.ScanBatches(dbc, reconcileBatchSize, func(batch []*types.Post) error {
		for _, p := range batch {
			if err := ctx.Err(); err != nil {
				return err
			}
			clean := p.LikedBy.Dedup()
			if p.LikesCount == len(clean) && len(clean) == len(p.LikedBy) {
				continue
			}
			err := s.repo.SetLikes(dbc, p.ID, p.Version, clean)
			if errors.Is(err, pkgerrors.ErrConflict) {
				// a concurrent toggle already rewrote the count
				continue
			}
			if err != nil {
				return err
			}
			fixed++
		}
		return nil
	})
	if err != nil {
		return fixed, err
	}
	return fixed, nil
}
