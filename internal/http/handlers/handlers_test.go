package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/calmzone-backend/internal/data/repos"
	"github.com/yungbote/calmzone-backend/internal/data/repos/testutil"
	"github.com/yungbote/calmzone-backend/internal/pkg/clock"
	"github.com/yungbote/calmzone-backend/internal/platform/openai"
	"github.com/yungbote/calmzone-backend/internal/platform/persona"
	"github.com/yungbote/calmzone-backend/internal/services"
)

type stubCompleter struct {
	reply string
	err   error
}

func (s stubCompleter) Complete(context.Context, openai.CompletionRequest) (openai.Completion, error) {
	if s.err != nil {
		return openai.Completion{}, s.err
	}
	return openai.Completion{Content: s.reply, Model: "gpt-4o"}, nil
}

func newTestEngine(t *testing.T, completer openai.Completer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	log := testutil.Logger(t)
	p, err := persona.Default()
	if err != nil {
		t.Fatalf("persona: %v", err)
	}

	moodH := NewMoodHandler(services.NewMoodService(log, repos.NewMoodEntryRepo(db, log), clock.Fixed(time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)), time.UTC))
	postH := NewPostHandler(services.NewBoardService(log, repos.NewPostRepo(db, log), nil))
	chatH := NewChatHandler(services.NewChatService(log, repos.NewChatMessageRepo(db, log), completer, p))

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}

	r := gin.New()
	r.GET("/healthcheck", NewHealthHandler(sqlDB).HealthCheck)
	r.GET("/moods", moodH.ListMoods)
	r.POST("/moods", moodH.RecordMood)
	r.GET("/posts", postH.ListPosts)
	r.POST("/posts", postH.CreatePost)
	r.PATCH("/posts", postH.ToggleLike)
	r.GET("/chat", chatH.ListHistory)
	r.POST("/chat", chatH.SendMessage)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	out := map[string]any{}
	if ct := rec.Header().Get("Content-Type"); len(ct) >= 16 && ct[:16] == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode %s: %v", rec.Body.String(), err)
		}
	}
	return rec, out
}

func TestHealthCheck(t *testing.T) {
	r := newTestEngine(t, stubCompleter{})
	rec, _ := doJSON(t, r, http.MethodGet, "/healthcheck", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("status=%d body=%q", rec.Code, rec.Body.String())
	}
}

type downPinger struct{}

func (downPinger) PingContext(context.Context) error { return errors.New("dial tcp: connection refused") }

func TestHealthCheckDatabaseDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/healthcheck", NewHealthHandler(downPinger{}).HealthCheck)

	rec, body := doJSON(t, r, http.MethodGet, "/healthcheck", nil)
	if rec.Code != http.StatusServiceUnavailable || body["code"] != "unavailable" {
		t.Fatalf("status=%d body=%v", rec.Code, body)
	}
	if body["error"] != "database unavailable" {
		t.Fatalf("error=%v", body["error"])
	}
}

func TestMoodEndpoints(t *testing.T) {
	r := newTestEngine(t, stubCompleter{})

	rec, body := doJSON(t, r, http.MethodGet, "/moods", nil)
	if rec.Code != http.StatusBadRequest || body["code"] != "invalid_request" {
		t.Fatalf("missing user_hash: status=%d body=%v", rec.Code, body)
	}

	rec, body = doJSON(t, r, http.MethodPost, "/moods", map[string]any{"user_hash": "u1", "mood": "furious"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad mood: status=%d body=%v", rec.Code, body)
	}

	rec, body = doJSON(t, r, http.MethodPost, "/moods", map[string]any{"user_hash": "u1", "mood": "happy", "note": "sol"})
	if rec.Code != http.StatusOK || body["updated"] != false {
		t.Fatalf("first record: status=%d body=%v", rec.Code, body)
	}
	rec, body = doJSON(t, r, http.MethodPost, "/moods", map[string]any{"user_hash": "u1", "mood": "sad"})
	if rec.Code != http.StatusOK || body["updated"] != true {
		t.Fatalf("second record: status=%d body=%v", rec.Code, body)
	}
	entry, _ := body["mood"].(map[string]any)
	if entry["mood"] != "sad" || entry["note"] != nil || entry["day"] != "2025-05-01" {
		t.Fatalf("entry=%v", entry)
	}

	rec, body = doJSON(t, r, http.MethodGet, "/moods?user_hash=u1", nil)
	moods, _ := body["moods"].([]any)
	if rec.Code != http.StatusOK || len(moods) != 1 {
		t.Fatalf("list: status=%d body=%v", rec.Code, body)
	}

	rec, _ = doJSON(t, r, http.MethodPost, "/moods", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: status=%d", rec.Code)
	}
}

func TestPostEndpoints(t *testing.T) {
	r := newTestEngine(t, stubCompleter{})

	rec, body := doJSON(t, r, http.MethodPost, "/posts", map[string]any{"user_hash": "u1", "content": "", "category": "Amor"})
	if rec.Code != http.StatusBadRequest || body["error"] != "content: is required" {
		t.Fatalf("empty content: status=%d body=%v", rec.Code, body)
	}

	rec, body = doJSON(t, r, http.MethodPost, "/posts", map[string]any{"user_hash": "u1", "content": "oi", "category": "Amor"})
	if rec.Code != http.StatusOK {
		t.Fatalf("create: status=%d body=%v", rec.Code, body)
	}
	post, _ := body["post"].(map[string]any)
	id, _ := post["id"].(string)
	if id == "" || post["likes_count"] != float64(0) {
		t.Fatalf("post=%v", post)
	}
	for _, hidden := range []string{"version", "user_hash", "liked_by"} {
		if _, leaked := post[hidden]; leaked {
			t.Fatalf("%s must not be serialized", hidden)
		}
	}

	rec, body = doJSON(t, r, http.MethodPatch, "/posts", map[string]any{"post_id": id, "user_hash": "u2"})
	if rec.Code != http.StatusOK || body["success"] != true || body["liked"] != true || body["likes_count"] != float64(1) {
		t.Fatalf("like: status=%d body=%v", rec.Code, body)
	}
	rec, body = doJSON(t, r, http.MethodGet, "/posts?user_hash=u2", nil)
	listed, _ := body["posts"].([]any)
	if rec.Code != http.StatusOK || len(listed) != 1 {
		t.Fatalf("list as liker: status=%d body=%v", rec.Code, body)
	}
	if p, _ := listed[0].(map[string]any); p["liked"] != true || p["liked_by"] != nil || p["user_hash"] != nil {
		t.Fatalf("list as liker: post=%v", p)
	}

	rec, body = doJSON(t, r, http.MethodPatch, "/posts", map[string]any{"post_id": id, "user_hash": "u2"})
	if rec.Code != http.StatusOK || body["liked"] != false || body["likes_count"] != float64(0) {
		t.Fatalf("unlike: status=%d body=%v", rec.Code, body)
	}

	rec, body = doJSON(t, r, http.MethodPatch, "/posts", map[string]any{"post_id": "00000000-0000-0000-0000-000000000001", "user_hash": "u2"})
	if rec.Code != http.StatusNotFound || body["code"] != "not_found" {
		t.Fatalf("absent: status=%d body=%v", rec.Code, body)
	}
	rec, _ = doJSON(t, r, http.MethodPatch, "/posts", map[string]any{"user_hash": "u2"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing post_id: status=%d", rec.Code)
	}

	doJSON(t, r, http.MethodPost, "/posts", map[string]any{"user_hash": "u1", "content": "trampo", "category": "Trabalho"})
	for _, tc := range []struct {
		query string
		want  int
	}{
		{"/posts", 2},
		{"/posts?category=Todos", 2},
		{"/posts?category=Amor", 1},
	} {
		rec, body = doJSON(t, r, http.MethodGet, tc.query, nil)
		posts, _ := body["posts"].([]any)
		if rec.Code != http.StatusOK || len(posts) != tc.want {
			t.Fatalf("%s: status=%d got=%d want=%d", tc.query, rec.Code, len(posts), tc.want)
		}
	}
}

func TestChatEndpoints(t *testing.T) {
	r := newTestEngine(t, stubCompleter{reply: "Estou aqui."})

	rec, body := doJSON(t, r, http.MethodPost, "/chat", map[string]any{"user_hash": "u1"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing message: status=%d body=%v", rec.Code, body)
	}

	rec, body = doJSON(t, r, http.MethodPost, "/chat", map[string]any{"user_hash": "u1", "message": "Estou triste hoje"})
	if rec.Code != http.StatusOK || body["response"] != "Estou aqui." {
		t.Fatalf("send: status=%d body=%v", rec.Code, body)
	}

	rec, body = doJSON(t, r, http.MethodGet, "/chat?user_hash=u1", nil)
	msgs, _ := body["messages"].([]any)
	if rec.Code != http.StatusOK || len(msgs) != 2 {
		t.Fatalf("history: status=%d body=%v", rec.Code, body)
	}
	first, _ := msgs[0].(map[string]any)
	if first["role"] != "user" || first["content"] != "Estou triste hoje" {
		t.Fatalf("first message=%v", first)
	}

	rec, _ = doJSON(t, r, http.MethodGet, "/chat", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing user_hash: status=%d", rec.Code)
	}
}

func TestChatProviderFailure(t *testing.T) {
	r := newTestEngine(t, stubCompleter{err: errors.New("invalid api key")})
	rec, body := doJSON(t, r, http.MethodPost, "/chat", map[string]any{"user_hash": "u1", "message": "oi"})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d body=%v", rec.Code, body)
	}
	if body["error"] != "Erro ao processar mensagem" || body["details"] == nil {
		t.Fatalf("body=%v", body)
	}
}
