package efficiency

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Christbey/picksports-sub004/internal/models"
)

func testClientConfig(baseURL string) ClientConfig {
	cfg := DefaultClientConfig(baseURL)
	cfg.MaxRetries = 2
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = 5 * time.Millisecond
	cfg.RateLimit = 1000
	return cfg
}

func TestClientForTeam(t *testing.T) {
	teamID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("season") != "2025" {
			t.Errorf("season query = %q, want 2025", r.URL.Query().Get("season"))
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sekrit" {
			t.Errorf("authorization = %q", got)
		}
		json.NewEncoder(w).Encode(efficiencyResponse{
			TeamID:          teamID,
			Season:          2025,
			OffensiveRating: 114.2,
			DefensiveRating: 109.8,
			Tempo:           99.1,
		})
	}))
	defer server.Close()

	cfg := testClientConfig(server.URL)
	cfg.APIKey = "sekrit"
	client := NewClient(cfg, nil)

	eff, err := client.ForTeam(context.Background(), teamID, 2025)
	if err != nil {
		t.Fatalf("ForTeam: %v", err)
	}
	if eff.OffensiveRating != 114.2 || eff.Tempo != 99.1 {
		t.Errorf("unexpected response: %+v", eff)
	}
}

func TestClientMapsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(testClientConfig(server.URL), nil)
	_, err := client.ForTeam(context.Background(), uuid.New(), 2025)
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls int32
	teamID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(efficiencyResponse{TeamID: teamID, Season: 2025, Tempo: 98})
	}))
	defer server.Close()

	client := NewClient(testClientConfig(server.URL), nil)
	eff, err := client.ForTeam(context.Background(), teamID, 2025)
	if err != nil {
		t.Fatalf("ForTeam: %v", err)
	}
	if eff.Tempo != 98 {
		t.Errorf("tempo = %v", eff.Tempo)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

type countingSource struct {
	calls int
	eff   *models.TeamEfficiency
}

func (s *countingSource) ForTeam(_ context.Context, _ uuid.UUID, _ int) (*models.TeamEfficiency, error) {
	s.calls++
	if s.eff == nil {
		return nil, models.ErrNotFound
	}
	return s.eff, nil
}

func TestCachedSourceMemoizesHits(t *testing.T) {
	teamID := uuid.New()
	inner := &countingSource{eff: &models.TeamEfficiency{TeamID: teamID, Tempo: 97}}
	cached := NewCachedSource(inner, time.Minute)

	for i := 0; i < 3; i++ {
		eff, err := cached.ForTeam(context.Background(), teamID, 2025)
		if err != nil {
			t.Fatalf("ForTeam: %v", err)
		}
		if eff.Tempo != 97 {
			t.Errorf("tempo = %v", eff.Tempo)
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
}

func TestCachedSourceMemoizesMisses(t *testing.T) {
	inner := &countingSource{}
	cached := NewCachedSource(inner, time.Minute)
	teamID := uuid.New()

	for i := 0; i < 3; i++ {
		if _, err := cached.ForTeam(context.Background(), teamID, 2025); !errors.Is(err, models.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
}
