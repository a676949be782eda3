package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordiccodeworks/portfolio-backend/internal/chatbot/domain"
	"github.com/nordiccodeworks/portfolio-backend/internal/chatbot/repository"
	"github.com/nordiccodeworks/portfolio-backend/internal/chatbot/service"
	"github.com/nordiccodeworks/portfolio-backend/internal/queue"
)

type fixedDetector struct{ lang string }

func (d fixedDetector) Detect(string) string { return d.lang }

type fixedCompleter struct {
	response string
	err      error
}

func (c fixedCompleter) Complete(context.Context, string, string) (string, error) {
	return c.response, c.err
}

type nopCache struct{}

func (nopCache) Get(context.Context, string) (string, bool) { return "", false }
func (nopCache) Set(context.Context, string, string)        {}

type nopPublisher struct{}

func (nopPublisher) PublishChatLog(context.Context, queue.ChatLogJob) error { return nil }

func chatRouter(t *testing.T, completer fixedCompleter, lang string) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := service.NewChatService(fixedDetector{lang: lang}, completer, nopCache{}, nopPublisher{})
	h := New(svc, repository.NewChatLogRepository(db))

	r := gin.New()
	passthrough := func(c *gin.Context) { c.Next() }
	h.Register(r.Group("/api/v1/chat"), passthrough)
	return r, mock
}

func postChat(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestChat_Success(t *testing.T) {
	r, _ := chatRouter(t, fixedCompleter{response: "We build web applications."}, "en")

	w := postChat(r, `{"query": "What do you do?", "session_id": "sess-1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		OK        bool   `json:"ok"`
		Response  string `json:"response"`
		Language  string `json:"language"`
		Fallback  bool   `json:"fallback"`
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "We build web applications.", resp.Response)
	assert.Equal(t, "en", resp.Language)
	assert.False(t, resp.Fallback)
	assert.Equal(t, "sess-1", resp.SessionID)
}

func TestChat_GeneratesSessionID(t *testing.T) {
	r, _ := chatRouter(t, fixedCompleter{response: "Hej!"}, "sv")

	w := postChat(r, `{"query": "hej"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID, "the server mints a session id for a fresh visit")
}

func TestChat_EmptyQueryRejected(t *testing.T) {
	r, _ := chatRouter(t, fixedCompleter{}, "en")

	w := postChat(r, `{"query": "   ", "session_id": "sess-1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"query":"required"`)
}

func TestChat_UpstreamFailureStillAnswers(t *testing.T) {
	r, _ := chatRouter(t, fixedCompleter{err: domain.ErrUpstream}, "en")

	w := postChat(r, `{"query": "Are you there?", "session_id": "sess-1"}`)
	require.Equal(t, http.StatusOK, w.Code, "the visitor gets a fallback, never a 5xx")

	var resp struct {
		Fallback bool   `json:"fallback"`
		Response string `json:"response"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Fallback)
	assert.NotEmpty(t, resp.Response)
}

func TestHistory_ReturnsSessionMessages(t *testing.T) {
	r, mock := chatRouter(t, fixedCompleter{}, "en")

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "session_id", "query", "response", "language", "status", "created_at"}).
		AddRow("l1", "sess-1", "hej", "Hej!", "sv", "success", now.Add(-time.Minute)).
		AddRow("l2", "sess-1", "vad gör ni?", "Vi bygger webbappar.", "sv", "success", now)

	mock.ExpectQuery(`FROM chat_logs`).
		WithArgs("sess-1", 50).
		WillReturnRows(rows)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/history/sess-1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"count":2`)
	assert.Contains(t, w.Body.String(), "vad gör ni?")
}

func TestHistory_BadLimit(t *testing.T) {
	r, _ := chatRouter(t, fixedCompleter{}, "en")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/history/sess-1?limit=-3", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "limit")
}
