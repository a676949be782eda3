package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordiccodeworks/portfolio-backend/internal/projects/cache"
	"github.com/nordiccodeworks/portfolio-backend/internal/projects/repository"
	"github.com/nordiccodeworks/portfolio-backend/internal/projects/service"
)

func setupRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	svc := service.NewProjectService(
		repository.NewProjectRepository(db),
		cache.NewProjectCache(client, 5*time.Minute),
	)

	r := gin.New()
	New(svc).Register(r.Group("/api/v1/projects"))
	return r, mock
}

func projectRow(id, title, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "title", "description", "technologies", "status", "start_date", "completion_date",
		"github_link", "live_link", "image_url", "featured", "display_order", "created_at", "updated_at",
	}).AddRow(id, title, "A small portfolio piece", "{Go,PostgreSQL}", status,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil, nil, nil, nil, false, 0, now, now)
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// Walks a project through its whole lifecycle over HTTP.
func TestProjects_Lifecycle(t *testing.T) {
	r, mock := setupRouter(t)
	const id = "11111111-1111-1111-1111-111111111111"

	// Create.
	mock.ExpectQuery(`INSERT INTO projects`).
		WillReturnRows(projectRow(id, "Portfolio Site", "in_progress"))

	w := do(r, http.MethodPost, "/api/v1/projects", `{
		"title": "Portfolio Site",
		"description": "A small portfolio piece",
		"technologies": ["Go", "PostgreSQL"],
		"status": "in_progress",
		"start_date": "2024-01-01"
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		OK      bool `json:"ok"`
		Project struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"project"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.OK)
	assert.Equal(t, id, created.Project.ID)

	// List now includes the new project.
	mock.ExpectQuery(`FROM projects`).
		WithArgs(20).
		WillReturnRows(projectRow(id, "Portfolio Site", "in_progress"))

	w = do(r, http.MethodGet, "/api/v1/projects", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
	assert.Contains(t, w.Body.String(), "Portfolio Site")

	// Update re-reads the record to validate the merge, then patches it.
	mock.ExpectQuery(`FROM projects WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(projectRow(id, "Portfolio Site", "in_progress"))
	mock.ExpectQuery(`UPDATE projects`).
		WillReturnRows(projectRow(id, "Portfolio Site", "completed"))

	w = do(r, http.MethodPatch, "/api/v1/projects/"+id, `{"status": "completed"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"completed"`)

	// Delete.
	mock.ExpectExec(`DELETE FROM projects`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w = do(r, http.MethodDelete, "/api/v1/projects/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	// The mutation evicted the cache, so the read goes back to the store.
	mock.ExpectQuery(`FROM projects WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	w = do(r, http.MethodGet, "/api/v1/projects/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjects_Create_ValidationErrors(t *testing.T) {
	r, mock := setupRouter(t)

	w := do(r, http.MethodPost, "/api/v1/projects", `{
		"description": "missing a title",
		"start_date": "2024-01-01"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"required"`)

	w = do(r, http.MethodPost, "/api/v1/projects", `{
		"title": "Bad dates",
		"description": "x",
		"start_date": "01/01/2024"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "YYYY-MM-DD")

	// No queries should ever have reached the store.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjects_Create_InvalidBody(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(r, http.MethodPost, "/api/v1/projects", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid body")
}

func TestProjects_List_BadFilterParams(t *testing.T) {
	r, mock := setupRouter(t)

	w := do(r, http.MethodGet, "/api/v1/projects?limit=nope", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "limit")

	w = do(r, http.MethodGet, "/api/v1/projects?started_after=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "started_after")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjects_List_UnknownStatusRejected(t *testing.T) {
	r, mock := setupRouter(t)

	w := do(r, http.MethodGet, "/api/v1/projects?status=abandoned", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown status")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjects_Delete_NotFound(t *testing.T) {
	r, mock := setupRouter(t)
	const id = "22222222-2222-2222-2222-222222222222"

	mock.ExpectExec(`DELETE FROM projects`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := do(r, http.MethodDelete, "/api/v1/projects/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
