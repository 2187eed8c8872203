package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/yungbote/calmzone-backend/internal/data/repos"
	"github.com/yungbote/calmzone-backend/internal/data/repos/testutil"
	types "github.com/yungbote/calmzone-backend/internal/domain"
	"github.com/yungbote/calmzone-backend/internal/pkg/clock"
	"github.com/yungbote/calmzone-backend/internal/pkg/dbctx"
	"github.com/yungbote/calmzone-backend/internal/platform/apierr"
)

type failingMoodRepo struct {
	repos.MoodEntryRepo
}

func (failingMoodRepo) ListByUser(dbctx.Context, string, int) ([]*types.MoodEntry, error) {
	return nil, errors.New("connection refused")
}

func (failingMoodRepo) UpsertForDay(dbctx.Context, *types.MoodEntry) (*types.MoodEntry, bool, error) {
	return nil, false, errors.New("connection refused")
}

func newMoodService(t *testing.T, now time.Time, loc *time.Location) (MoodService, repos.MoodEntryRepo) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	repo := repos.NewMoodEntryRepo(db, log)
	return NewMoodService(log, repo, clock.Fixed(now), loc), repo
}

func TestRecordMoodSameDayUpdatesInPlace(t *testing.T) {
	now := time.Date(2025, 6, 3, 14, 0, 0, 0, time.UTC)
	svc, _ := newMoodService(t, now, nil)
	ctx := context.Background()

	first, updated, err := svc.RecordMood(ctx, "u1", "sad", "rough morning")
	if err != nil {
		t.Fatalf("first record: %v", err)
	}
	if updated {
		t.Fatalf("first record should not be an update")
	}
	second, updated, err := svc.RecordMood(ctx, "u1", "calmo", "")
	if err != nil {
		t.Fatalf("second record: %v", err)
	}
	if !updated {
		t.Fatalf("second record should be an update")
	}
	if second.ID != first.ID {
		t.Fatalf("expected same row, got %s and %s", first.ID, second.ID)
	}
	if second.Mood != "calm" || second.Note != nil {
		t.Fatalf("unexpected entry after update: mood=%s note=%v", second.Mood, second.Note)
	}

	list, err := svc.ListMoods(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("want one entry for the day, got %d", len(list))
	}
}

func TestRecordMoodValidation(t *testing.T) {
	svc, _ := newMoodService(t, time.Now(), nil)
	cases := []struct {
		name  string
		owner string
		mood  string
	}{
		{"missing owner", " ", "happy"},
		{"missing mood", "u1", ""},
		{"unknown mood", "u1", "furious"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.RecordMood(context.Background(), tc.owner, tc.mood, "")
			if got := apierr.StatusOf(err); got != http.StatusBadRequest {
				t.Fatalf("status=%d err=%v", got, err)
			}
		})
	}
	list, _ := svc.ListMoods(context.Background(), "u1")
	if len(list) != 0 {
		t.Fatalf("invalid submissions must not write rows, got %d", len(list))
	}
}

func TestRecordMoodBucketsByConfiguredLocation(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)
	// 01:30 UTC on the 10th is still the 9th in BRT.
	now := time.Date(2025, 3, 10, 1, 30, 0, 0, time.UTC)

	svc, _ := newMoodService(t, now, brt)
	entry, _, err := svc.RecordMood(context.Background(), "u1", "neutral", "")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if entry.Day != "2025-03-09" {
		t.Fatalf("day=%s, want 2025-03-09", entry.Day)
	}

	utcSvc, _ := newMoodService(t, now, time.UTC)
	entry, _, err = utcSvc.RecordMood(context.Background(), "u1", "neutral", "")
	if err != nil {
		t.Fatalf("record utc: %v", err)
	}
	if entry.Day != "2025-03-10" {
		t.Fatalf("day=%s, want 2025-03-10", entry.Day)
	}
}

func TestListMoodsRequiresOwnerAndDegrades(t *testing.T) {
	svc, _ := newMoodService(t, time.Now(), nil)
	if _, err := svc.ListMoods(context.Background(), ""); apierr.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("missing owner should be 400, got %v", err)
	}

	broken := NewMoodService(testutil.Logger(t), failingMoodRepo{}, clock.System(), nil)
	list, err := broken.ListMoods(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list should degrade, got %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", list)
	}

	_, _, err = broken.RecordMood(context.Background(), "u1", "happy", "")
	ae, ok := apierr.As(err)
	if !ok || ae.Status != http.StatusInternalServerError || ae.Details != "connection refused" {
		t.Fatalf("want upstream error with details, got %#v", err)
	}
}
