package delivery_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"seci_service/internal/delivery"
	"seci_service/internal/domain"
	"seci_service/internal/repository"
	"seci_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  string          `json:"Status"`
	Message string          `json:"Message"`
	Data    json.RawMessage `json:"Data"`
}

type fixture struct {
	router *gin.Engine
	stats  *repository.MemoryStats
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	stats := repository.NewMemoryStats()
	categories := usecase.NewCategoryUseCase(repository.NewMemoryCategoryRepository(), stats, logger)
	comments := usecase.NewCommentUseCase(repository.NewMemoryCommentRepository(), logger)

	router := gin.New()
	delivery.NewCategoryHandler(categories, logger).RegisterRoutes(router)
	delivery.NewCommentHandler(comments, logger).RegisterRoutes(router)
	return &fixture{router: router, stats: stats}
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestCategoryHandler_Lifecycle(t *testing.T) {
	f := newFixture(t)

	w, env := f.do(t, http.MethodPost, "/categories", gin.H{"name": "Infrastructure", "description": "Roads"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Success", env.Status)
	var created domain.CategoryResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Infrastructure", created.Name)
	assert.True(t, created.Active)

	w, env = f.do(t, http.MethodGet, "/categories/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched domain.CategoryResponse
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, created, fetched)

	w, _ = f.do(t, http.MethodPut, "/categories/"+created.ID, gin.H{"name": "Infra", "active": false})
	require.Equal(t, http.StatusOK, w.Code)

	w, env = f.do(t, http.MethodGet, "/categories/active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No active categories found", env.Message)
	assert.JSONEq(t, `[]`, string(env.Data))

	w, _ = f.do(t, http.MethodDelete, "/categories/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = f.do(t, http.MethodDelete, "/categories/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Fail", env.Status)
}

func TestCategoryHandler_ErrorStatuses(t *testing.T) {
	f := newFixture(t)

	w, _ := f.do(t, http.MethodPost, "/categories", gin.H{"description": "no name"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = f.do(t, http.MethodPost, "/categories", gin.H{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = f.do(t, http.MethodPost, "/categories", gin.H{"name": "Noise"})
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = f.do(t, http.MethodPost, "/categories", gin.H{"name": "Noise"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = f.do(t, http.MethodGet, "/categories/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = f.do(t, http.MethodGet, "/categories/stats?page=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = f.do(t, http.MethodGet, "/categories/stats?size=1000", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryHandler_FindAllWithStats(t *testing.T) {
	f := newFixture(t)

	for _, name := range []string{"Water", "Air", "Soil"} {
		w, env := f.do(t, http.MethodPost, "/categories", gin.H{"name": name})
		require.Equal(t, http.StatusCreated, w.Code)
		var c domain.CategoryResponse
		require.NoError(t, json.Unmarshal(env.Data, &c))
		if name == "Air" {
			f.stats.Set(c.ID, domain.CategoryStats{ReportCount: 9})
		}
	}

	w, env := f.do(t, http.MethodGet, "/categories/stats?page=0&size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page domain.Page[domain.CategoryWithStatsResponse]
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Air", page.Items[0].Name)
	assert.Equal(t, int64(9), page.Items[0].Stats.ReportCount)
	assert.Equal(t, "Soil", page.Items[1].Name)
}

func TestCommentHandler_CreateAndList(t *testing.T) {
	f := newFixture(t)

	w, env := f.do(t, http.MethodPost, "/comments", gin.H{"userId": "u1", "reportId": "r1", "content": "Still broken"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Still broken", created["content"])
	assert.Contains(t, created, "date")

	w, env = f.do(t, http.MethodGet, "/reports/r1/comments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items         []map[string]interface{} `json:"items"`
		TotalElements int64                    `json:"totalElements"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(1), page.TotalElements)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "u1", page.Items[0]["userId"])

	w, env = f.do(t, http.MethodGet, "/comments/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var single map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &single))
	assert.Equal(t, "r1", single["reportId"])

	w, _ = f.do(t, http.MethodDelete, "/comments/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = f.do(t, http.MethodGet, "/comments/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = f.do(t, http.MethodPost, "/comments", gin.H{"userId": "u1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = f.do(t, http.MethodDelete, "/comments/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	healthy := gin.New()
	delivery.NewHealthHandler("mongo", func(context.Context) error { return nil }).RegisterRoutes(healthy)
	down := gin.New()
	delivery.NewHealthHandler("mongo", func(context.Context) error { return errors.New("no route to host") }).RegisterRoutes(down)

	for _, tc := range []struct {
		router *gin.Engine
		path   string
		want   int
	}{
		{healthy, "/health", http.StatusOK},
		{healthy, "/ready", http.StatusOK},
		{down, "/health", http.StatusServiceUnavailable},
		{down, "/ready", http.StatusServiceUnavailable},
		{down, "/live", http.StatusOK},
	} {
		w := httptest.NewRecorder()
		tc.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		assert.Equal(t, tc.want, w.Code, tc.path)
	}

	w := httptest.NewRecorder()
	down.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"status":"unhealthy","services":{"mongo":"unhealthy"}}`, w.Body.String())
}
