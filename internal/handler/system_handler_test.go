package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestDocumentRoundTrip(t *testing.T) {
	api := setupTestAPI(t)

	body := []byte(`{"habits":[],"habitData":{}}`)
	c, w := newTestContext(t, http.MethodPut, "/api/documents/habits_2025_5", body)
	c.Params = gin.Params{{Key: "key", Value: "habits_2025_5"}}
	api.PutDocument(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	c, w = newTestContext(t, http.MethodGet, "/api/documents/habits_2025_5", nil)
	c.Params = gin.Params{{Key: "key", Value: "habits_2025_5"}}
	api.GetDocument(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := doc["habits"]; !ok {
		t.Fatalf("unexpected document: %s", w.Body.String())
	}
}

func TestGetDocumentMissing(t *testing.T) {
	api := setupTestAPI(t)

	c, w := newTestContext(t, http.MethodGet, "/api/documents/nope", nil)
	c.Params = gin.Params{{Key: "key", Value: "nope"}}
	api.GetDocument(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

// 清库后任务与习惯消失，档案保留
func TestClearAll(t *testing.T) {
	api := setupTestAPI(t)
	createTestTask(t, api, "2025-06-01", "写周报")
	createTestHabit(t, api, "2025-06", "晨跑")

	body, _ := json.Marshal(map[string]any{"name": "小王"})
	c, w := newTestContext(t, http.MethodPut, "/api/profile", body)
	api.UpdateProfile(c)
	if w.Code != http.StatusOK {
		t.Fatalf("profile update: got %d", w.Code)
	}

	c, w = newTestContext(t, http.MethodDelete, "/api/clear-all", nil)
	api.ClearAll(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	c, w = newTestContext(t, http.MethodGet, "/api/tasks/2025-06-01", nil)
	c.Params = gin.Params{{Key: "date", Value: "2025-06-01"}}
	api.ListTasks(c)

	var tasks struct {
		Tasks []any `json:"tasks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(tasks.Tasks) != 0 {
		t.Fatalf("expected tasks cleared, got %+v", tasks.Tasks)
	}

	c, w = newTestContext(t, http.MethodGet, "/api/habits/2025-06", nil)
	c.Params = gin.Params{{Key: "month", Value: "2025-06"}}
	api.GetHabitMonth(c)

	var view struct {
		Habits []any `json:"habits"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(view.Habits) != 0 {
		t.Fatalf("expected habits cleared, got %+v", view.Habits)
	}

	c, w = newTestContext(t, http.MethodGet, "/api/profile", nil)
	api.GetProfile(c)

	var profile map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &profile); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if profile["name"] != "小王" {
		t.Fatalf("expected profile preserved, got %+v", profile)
	}
}
