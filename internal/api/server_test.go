package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/triage/internal/domain"
	"github.com/rcliao/triage/internal/service"
	"github.com/rcliao/triage/internal/storage"
)

func testHandler() http.Handler {
	store := storage.NewMemoryStorage()
	clock := func() time.Time {
		return time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	}
	server := NewServer(
		service.NewAnalysisService(store, clock),
		service.NewTaskService(store),
	)
	return server.Handler()
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func TestServer_Health(t *testing.T) {
	recorder := doJSON(t, testHandler(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "OK", recorder.Body.String())
}

func TestServer_Analyze(t *testing.T) {
	body := map[string]interface{}{
		"tasks": []map[string]interface{}{
			{"id": 1, "title": "Fix login bug", "due_date": "2025-06-10", "estimated_hours": 3, "importance": 8},
			{"id": 2, "title": "Routine cleanup"},
		},
	}

	recorder := doJSON(t, testHandler(), http.MethodPost, "/analyze", body)
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp struct {
		Tasks []domain.ScoredTask `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.Len(t, resp.Tasks, 2)

	assert.Equal(t, 1, resp.Tasks[0].ID)
	assert.Equal(t, 69, resp.Tasks[0].Score)
	assert.Equal(t, "Due today", resp.Tasks[0].Reason)
	assert.GreaterOrEqual(t, resp.Tasks[0].Score, resp.Tasks[1].Score)
}

func TestServer_Analyze_ValidationError(t *testing.T) {
	body := map[string]interface{}{
		"tasks": []map[string]interface{}{
			{"id": 1, "title": "a", "dependencies": []int{99}},
		},
	}

	recorder := doJSON(t, testHandler(), http.MethodPost, "/analyze", body)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "unknown task 99")
}

func TestServer_Analyze_BadWeights(t *testing.T) {
	body := map[string]interface{}{
		"tasks":   []map[string]interface{}{{"title": "a"}},
		"weights": map[string]float64{"urgency": 0.9},
	}

	recorder := doJSON(t, testHandler(), http.MethodPost, "/analyze", body)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestServer_Analyze_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewBufferString("{"))
	recorder := httptest.NewRecorder()
	testHandler().ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestServer_Suggest(t *testing.T) {
	body := map[string]interface{}{
		"tasks": []map[string]interface{}{
			{"title": "one", "importance": 9, "due_date": "2025-06-10"},
			{"title": "two", "importance": 8},
			{"title": "three", "importance": 2},
		},
		"n": 2,
	}

	recorder := doJSON(t, testHandler(), http.MethodPost, "/suggest", body)
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp struct {
		Suggestions []domain.Suggestion `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.Len(t, resp.Suggestions, 2)
	assert.Equal(t, "one", resp.Suggestions[0].Title)
	assert.NotEmpty(t, resp.Suggestions[0].Why)
}

func TestServer_Suggest_InvalidCount(t *testing.T) {
	body := map[string]interface{}{
		"tasks": []map[string]interface{}{{"title": "a"}},
		"n":     -2,
	}

	recorder := doJSON(t, testHandler(), http.MethodPost, "/suggest", body)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestServer_TaskCRUD(t *testing.T) {
	handler := testHandler()

	created := doJSON(t, handler, http.MethodPost, "/tasks", map[string]interface{}{
		"title": "Saved task", "importance": 7,
	})
	require.Equal(t, http.StatusCreated, created.Code)

	var task domain.Task
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &task))
	assert.Equal(t, 1, task.ID)
	assert.Equal(t, 7, task.Importance)

	listed := doJSON(t, handler, http.MethodGet, "/tasks", nil)
	require.Equal(t, http.StatusOK, listed.Code)
	var tasks []domain.Task
	require.NoError(t, json.Unmarshal(listed.Body.Bytes(), &tasks))
	assert.Len(t, tasks, 1)

	got := doJSON(t, handler, http.MethodGet, "/tasks/1", nil)
	assert.Equal(t, http.StatusOK, got.Code)

	deleted := doJSON(t, handler, http.MethodDelete, "/tasks/1", nil)
	assert.Equal(t, http.StatusNoContent, deleted.Code)

	missing := doJSON(t, handler, http.MethodGet, "/tasks/1", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestServer_CreateTask_Invalid(t *testing.T) {
	recorder := doJSON(t, testHandler(), http.MethodPost, "/tasks", map[string]interface{}{
		"title": "",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestServer_AnalyzeWithSavedTasks(t *testing.T) {
	handler := testHandler()

	created := doJSON(t, handler, http.MethodPost, "/tasks", map[string]interface{}{
		"title": "Saved base",
	})
	require.Equal(t, http.StatusCreated, created.Code)

	recorder := doJSON(t, handler, http.MethodPost, "/analyze", map[string]interface{}{
		"tasks":         []map[string]interface{}{{"title": "ad-hoc", "dependencies": []int{1}}},
		"include_saved": true,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp struct {
		Tasks []domain.ScoredTask `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Len(t, resp.Tasks, 2)
}

func TestServer_MethodNotAllowed(t *testing.T) {
	recorder := doJSON(t, testHandler(), http.MethodGet, "/analyze", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)

	recorder = doJSON(t, testHandler(), http.MethodDelete, "/tasks", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
}

func TestServer_InvalidTaskID(t *testing.T) {
	recorder := doJSON(t, testHandler(), http.MethodGet, "/tasks/abc", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestServer_RequestIDHeader(t *testing.T) {
	recorder := doJSON(t, testHandler(), http.MethodGet, "/health", nil)
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}
