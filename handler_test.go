package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// setupTestRouter wires a full stack on an in-memory store and the shared
// test catalog. Returns the router and the controller for direct state checks.
func setupTestRouter(t *testing.T) (*gin.Engine, *logController) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &logStore{kv: newMemoryKV()}
	lc := newLogController(context.Background(), store, newFoodCatalog(testCatalogItems), zap.NewNop(), testDate)

	router := gin.New()
	h := &Handler{controller: lc}
	h.registerRoutes(router)
	return router, lc
}

// doJSON sends a request with a JSON body and returns the recorder.
func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSnapshotEndpoint_FreshSession(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, "GET", "/api/snapshot", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var snap snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("failed to parse snapshot: %v", err)
	}
	if snap.Profile != nil {
		t.Error("fresh session should have no profile")
	}
	for _, slot := range mealSlots {
		if snap.Meals[slot] == nil {
			t.Errorf("slot %s absent from snapshot JSON", slot)
		}
	}
}

func TestProfileEndpoint_Valid(t *testing.T) {
	router, _ := setupTestRouter(t)

	body := `{"gender":"male","age":25,"weight_kg":70,"height_cm":175,"activity_level":"moderate"}`
	w := doJSON(router, "POST", "/api/profile", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var snap snapshot
	json.Unmarshal(w.Body.Bytes(), &snap)
	if snap.Profile == nil || snap.Profile.DailyTargetExpenditure != 2594 {
		t.Errorf("snapshot profile = %+v, want target 2594", snap.Profile)
	}
}

func TestProfileEndpoint_MissingFields(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, "POST", "/api/profile", `{"gender":"male","age":25}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !strings.Contains(resp["error"], "weight_kg") || !strings.Contains(resp["error"], "height_cm") {
		t.Errorf("error %q should name the missing fields", resp["error"])
	}
}

func TestLogFoodEndpoint_Success(t *testing.T) {
	router, lc := setupTestRouter(t)

	w := doJSON(router, "POST", "/api/log/food", `{"slot":"dinner","query":"雞"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var snap snapshot
	json.Unmarshal(w.Body.Bytes(), &snap)
	if len(snap.Meals[slotDinner]) != 1 || snap.Meals[slotDinner][0].Name != "雞腿" {
		t.Errorf("snapshot dinner = %+v, want the first catalog match 雞腿", snap.Meals[slotDinner])
	}
	if len(lc.log.Meals[slotDinner]) != 1 {
		t.Error("controller state not mutated")
	}
}

// TestLogFoodEndpoint_Empty: blank submissions are silently ignored, per the
// empty-input rule — 204, no body, no state change.
func TestLogFoodEndpoint_Empty(t *testing.T) {
	router, lc := setupTestRouter(t)

	w := doJSON(router, "POST", "/api/log/food", `{"slot":"lunch","query":"   "}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}
	if len(lc.log.Meals[slotLunch]) != 0 {
		t.Error("empty query mutated the log")
	}
}

func TestLogFoodEndpoint_NotFound(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, "POST", "/api/log/food", `{"slot":"lunch","query":"牛排"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLogFoodEndpoint_BadSlot(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, "POST", "/api/log/food", `{"slot":"snack","query":"白飯"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLogExerciseEndpoint_Success(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, "POST", "/api/log/exercise", `{"description":"慢跑 30 分鐘","calories":"250"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var snap snapshot
	json.Unmarshal(w.Body.Bytes(), &snap)
	if len(snap.Exercise) != 1 || snap.Exercise[0].CaloriesBurned != 250 {
		t.Errorf("snapshot exercise = %+v, want one 250 kcal entry", snap.Exercise)
	}
	if snap.Totals.BurnedCalories != 250 {
		t.Errorf("burned total = %d, want 250", snap.Totals.BurnedCalories)
	}
}

func TestLogExerciseEndpoint_BlankDescription(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, "POST", "/api/log/exercise", `{"description":"","calories":"100"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteEndpoint_RemovesByPosition(t *testing.T) {
	router, lc := setupTestRouter(t)

	doJSON(router, "POST", "/api/log/food", `{"slot":"lunch","query":"白飯"}`)
	doJSON(router, "POST", "/api/log/food", `{"slot":"lunch","query":"炒青菜"}`)

	w := doJSON(router, "DELETE", "/api/log/lunch/0", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(lc.log.Meals[slotLunch]) != 1 || lc.log.Meals[slotLunch][0].Name != "炒青菜" {
		t.Errorf("lunch after delete = %+v, want only 炒青菜", lc.log.Meals[slotLunch])
	}
}

func TestDeleteEndpoint_OutOfRange(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, "DELETE", "/api/log/breakfast/5", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteEndpoint_NonIntegerIndex(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, "DELETE", "/api/log/breakfast/first", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCatalogEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, "GET", "/api/catalog", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var all []foodItem
	json.Unmarshal(w.Body.Bytes(), &all)
	if len(all) != len(testCatalogItems) {
		t.Errorf("catalog has %d entries, want %d", len(all), len(testCatalogItems))
	}

	w = doJSON(router, "GET", "/api/catalog/search?q=雞", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var matches []foodItem
	json.Unmarshal(w.Body.Bytes(), &matches)
	if len(matches) != 2 {
		t.Errorf("search returned %d matches, want 2", len(matches))
	}

	w = doJSON(router, "GET", "/api/catalog/search", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing q, got %d", w.Code)
	}
}
