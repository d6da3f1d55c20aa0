package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCreateAndListGoals(t *testing.T) {
	api := setupTestAPI(t)

	body, _ := json.Marshal(map[string]any{"title": "读完十本书", "targetDate": "2025-12-31"})
	c, w := newTestContext(t, http.MethodPost, "/api/goals", body)
	api.CreateGoal(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	c, w = newTestContext(t, http.MethodGet, "/api/goals", nil)
	api.ListGoals(c)

	var resp struct {
		Goals []struct {
			Title      string `json:"title"`
			TargetDate string `json:"targetDate"`
		} `json:"goals"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Goals) != 1 || resp.Goals[0].Title != "读完十本书" {
		t.Fatalf("unexpected goals: %+v", resp.Goals)
	}
}

func TestCreateGoalValidation(t *testing.T) {
	api := setupTestAPI(t)

	body, _ := json.Marshal(map[string]any{"title": "  "})
	c, w := newTestContext(t, http.MethodPost, "/api/goals", body)
	api.CreateGoal(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for blank title, got %d", w.Code)
	}

	body, _ = json.Marshal(map[string]any{"title": "x", "targetDate": "31/12/2025"})
	c, w = newTestContext(t, http.MethodPost, "/api/goals", body)
	api.CreateGoal(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for bad deadline, got %d", w.Code)
	}
}

func TestUpdateGoalNotFound(t *testing.T) {
	api := setupTestAPI(t)

	body, _ := json.Marshal(map[string]any{"completed": true})
	c, w := newTestContext(t, http.MethodPut, "/api/goals/nope", body)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	api.UpdateGoal(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestDeleteGoalTolerant(t *testing.T) {
	api := setupTestAPI(t)

	c, w := newTestContext(t, http.MethodDelete, "/api/goals/nope", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	api.DeleteGoal(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}
