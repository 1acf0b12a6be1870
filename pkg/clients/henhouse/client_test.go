package henhouse

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/mamadbah2/henhouse/internal/domain/models"
)

func TestActPostsActionRequest(t *testing.T) {
	var got models.ActionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/actions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"money":900,"gameStarted":true,"chickens":[{"id":"c1","breed":"egg","breedName":"Layer"}]}`))
	}))
	defer srv.Close()

	state, err := NewClient(srv.URL+"/").Act(context.Background(), models.ActionRequest{Type: models.ActionBuyChicken, Breed: models.BreedEgg})
	if err != nil {
		t.Fatalf("Act: %v", err)
	}
	if got.Type != models.ActionBuyChicken || got.Breed != models.BreedEgg {
		t.Errorf("unexpected request body %+v", got)
	}
	if state.Money != 900 || len(state.Chickens) != 1 || state.Chickens[0].BreedName != "Layer" {
		t.Errorf("unexpected state %+v", state)
	}
}

func TestLeaderboardDecodesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "3" {
			t.Errorf("expected limit=3, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"playerName":"Awa","profit":120},{"playerName":"Binta","profit":-40}]}`))
	}))
	defer srv.Close()

	results, err := NewClient(srv.URL).Leaderboard(context.Background(), 3)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(results) != 2 || results[0].PlayerName != "Awa" || results[1].Profit != -40 {
		t.Errorf("unexpected results %+v", results)
	}
}

func TestAPIErrorsAreSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"results storage is disabled"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Leaderboard(context.Background(), 0)
	if err == nil || !strings.Contains(err.Error(), "results storage is disabled") {
		t.Fatalf("expected api error message, got %v", err)
	}
}

func TestActionsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Command(context.Background(), "/buy chicken egg", ""); err == nil {
		t.Fatalf("expected error")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected a single attempt, got %d", got)
	}
}
