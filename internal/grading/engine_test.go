package grading

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Christbey/picksports-sub004/internal/models"
)

type fakeGradeStore struct {
	pred  *models.Prediction
	saves int
}

func (s *fakeGradeStore) GetByGameID(_ context.Context, _ uuid.UUID) (*models.Prediction, error) {
	if s.pred == nil {
		return nil, models.ErrNotFound
	}
	return s.pred, nil
}

func (s *fakeGradeStore) SaveGrading(_ context.Context, pred *models.Prediction) error {
	s.pred = pred
	s.saves++
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func finalGame(homeScore, awayScore int) *models.Game {
	return &models.Game{
		ID:        uuid.New(),
		Sport:     "nba",
		Status:    models.StatusFinal,
		HomeScore: &homeScore,
		AwayScore: &awayScore,
	}
}

func TestApplyGrades(t *testing.T) {
	pred := &models.Prediction{
		ID:              uuid.New(),
		PredictedSpread: 3,
		PredictedTotal:  145,
	}
	gradedAt := time.Date(2025, 11, 2, 4, 0, 0, 0, time.UTC)

	ApplyGrades(finalGame(80, 70), pred, gradedAt)

	if *pred.ActualSpread != 10 {
		t.Errorf("actual spread = %v, want 10", *pred.ActualSpread)
	}
	if *pred.ActualTotal != 150 {
		t.Errorf("actual total = %v, want 150", *pred.ActualTotal)
	}
	if *pred.SpreadError != 7 {
		t.Errorf("spread error = %v, want 7", *pred.SpreadError)
	}
	if *pred.TotalError != 5 {
		t.Errorf("total error = %v, want 5", *pred.TotalError)
	}
	if !*pred.WinnerCorrect {
		t.Error("winner should be correct: predicted home, home won")
	}
	if !pred.GradedAt.Equal(gradedAt) {
		t.Errorf("graded at = %v, want %v", pred.GradedAt, gradedAt)
	}
}

func TestWinnerCorrectSignMatch(t *testing.T) {
	cases := []struct {
		name      string
		predicted float64
		actual    float64
		want      bool
	}{
		{"home predicted, home won", 6.5, 3, true},
		{"home predicted, away won", 6.5, -3, false},
		{"away predicted, away won", -2, -10, true},
		{"away predicted, home won", -2, 1, false},
		{"push with near-zero prediction", 0.3, 0, true},
		{"push with real prediction", 0.8, 0, false},
		{"push with negative near-zero prediction", -0.4, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := winnerCorrect(tc.predicted, tc.actual); got != tc.want {
				t.Errorf("winnerCorrect(%v, %v) = %v, want %v", tc.predicted, tc.actual, got, tc.want)
			}
		})
	}
}

func TestGradeSkipsNonFinalGames(t *testing.T) {
	store := &fakeGradeStore{}
	engine, err := NewEngine(store, quietLogger())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	game := finalGame(80, 70)
	game.Status = models.StatusInProgress
	pred := &models.Prediction{ID: uuid.New()}

	if err := engine.Grade(context.Background(), game, pred); err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if store.saves != 0 {
		t.Error("grading saved for non-final game")
	}
	if pred.IsGraded() {
		t.Error("prediction marked graded for non-final game")
	}
}

func TestRegradeOverwrites(t *testing.T) {
	store := &fakeGradeStore{}
	engine, err := NewEngine(store, quietLogger())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	pred := &models.Prediction{ID: uuid.New(), PredictedSpread: 3, PredictedTotal: 145}

	if err := engine.Grade(context.Background(), finalGame(80, 70), pred); err != nil {
		t.Fatalf("first Grade: %v", err)
	}
	firstSpread := *pred.ActualSpread

	// A score correction arrives; re-grading replaces, never duplicates
	if err := engine.Grade(context.Background(), finalGame(82, 70), pred); err != nil {
		t.Fatalf("second Grade: %v", err)
	}
	if store.saves != 2 {
		t.Errorf("saves = %d, want 2", store.saves)
	}
	if *pred.ActualSpread == firstSpread {
		t.Error("re-grade did not overwrite actual spread")
	}
	if *pred.ActualSpread != 12 {
		t.Errorf("actual spread = %v, want 12", *pred.ActualSpread)
	}
}

func TestSummarize(t *testing.T) {
	rows := []GradedValues{
		{SpreadError: 4, TotalError: 10, WinnerCorrect: true},
		{SpreadError: 6, TotalError: 6, WinnerCorrect: true},
		{SpreadError: 2, TotalError: 8, WinnerCorrect: false},
	}
	r := Summarize(rows)
	if r.Graded != 3 || r.WinnerHits != 2 {
		t.Errorf("counts = %d/%d, want 3/2", r.Graded, r.WinnerHits)
	}
	if r.MeanSpreadError != 4 {
		t.Errorf("mean spread error = %v, want 4", r.MeanSpreadError)
	}
	if r.MeanTotalError != 8 {
		t.Errorf("mean total error = %v, want 8", r.MeanTotalError)
	}

	empty := Summarize(nil)
	if empty.Graded != 0 || empty.WinnerHitRate != 0 {
		t.Errorf("empty report = %+v", empty)
	}
}
