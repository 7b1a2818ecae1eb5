package live

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Christbey/picksports-sub004/internal/models"
	"github.com/Christbey/picksports-sub004/internal/prediction"
	"github.com/Christbey/picksports-sub004/internal/sports"
)

type fakeOverlayStore struct {
	pred    *models.Prediction
	set     *models.LiveOverlay
	cleared bool
}

func (s *fakeOverlayStore) GetByGameID(_ context.Context, _ uuid.UUID) (*models.Prediction, error) {
	if s.pred == nil {
		return nil, models.ErrNotFound
	}
	return s.pred, nil
}

func (s *fakeOverlayStore) SetLiveOverlay(_ context.Context, _ uuid.UUID, overlay *models.LiveOverlay) error {
	s.set = overlay
	return nil
}

func (s *fakeOverlayStore) ClearLiveOverlay(_ context.Context, _ uuid.UUID) error {
	s.cleared = true
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func basePrediction() *models.Prediction {
	return &models.Prediction{
		ID:              uuid.New(),
		GameID:          uuid.New(),
		PredictedSpread: 4,
		PredictedTotal:  220,
		WinProbability:  0.65,
	}
}

func liveGame(pred *models.Prediction) *models.Game {
	home, away := 60, 55
	period := 3
	return &models.Game{
		ID:         pred.GameID,
		Sport:      "nba",
		Status:     models.StatusInProgress,
		Period:     &period,
		Clock:      "6:00",
		HomeScore:  &home,
		AwayScore:  &away,
	}
}

func TestUpdateWritesOverlayForLiveGame(t *testing.T) {
	pred := basePrediction()
	store := &fakeOverlayStore{pred: pred}
	updater, err := NewUpdater(store, quietLogger())
	if err != nil {
		t.Fatalf("NewUpdater: %v", err)
	}

	profile, _ := sports.ProfileFor("nba")
	overlay, err := updater.Update(context.Background(), liveGame(pred), profile)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if overlay == nil || store.set == nil {
		t.Fatal("overlay not written for live game")
	}
	if overlay.SecondsRemaining == nil {
		t.Error("clock sport overlay missing seconds remaining")
	}
	if overlay.OutsRemaining != nil {
		t.Error("clock sport overlay has outs remaining set")
	}
}

func TestUpdateClearsOverlayWhenGameEnds(t *testing.T) {
	pred := basePrediction()
	now := time.Now()
	pred.LiveUpdatedAt = &now

	store := &fakeOverlayStore{pred: pred}
	updater, err := NewUpdater(store, quietLogger())
	if err != nil {
		t.Fatalf("NewUpdater: %v", err)
	}

	game := liveGame(pred)
	game.Status = models.StatusFinal

	profile, _ := sports.ProfileFor("nba")
	overlay, err := updater.Update(context.Background(), game, profile)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if overlay != nil {
		t.Error("overlay returned for final game")
	}
	if !store.cleared {
		t.Error("stale overlay not cleared when game went final")
	}
}

func TestUpdateClearIsIdempotent(t *testing.T) {
	// No overlay set: a final game must not trigger a clear write
	pred := basePrediction()
	store := &fakeOverlayStore{pred: pred}
	updater, _ := NewUpdater(store, quietLogger())

	game := liveGame(pred)
	game.Status = models.StatusFinal

	profile, _ := sports.ProfileFor("nba")
	if _, err := updater.Update(context.Background(), game, profile); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if store.cleared {
		t.Error("clear issued with no overlay present")
	}
}

func TestUpdateToleratesMalformedClock(t *testing.T) {
	pred := basePrediction()
	store := &fakeOverlayStore{pred: pred}
	updater, _ := NewUpdater(store, quietLogger())

	game := liveGame(pred)
	game.Clock = "garbage"

	profile, _ := sports.ProfileFor("nba")
	overlay, err := updater.Update(context.Background(), game, profile)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if overlay != nil || store.set != nil {
		t.Error("overlay written despite malformed clock")
	}
}

func TestUpdateSkipsGameWithoutPrediction(t *testing.T) {
	store := &fakeOverlayStore{}
	updater, _ := NewUpdater(store, quietLogger())

	pred := basePrediction()
	profile, _ := sports.ProfileFor("nba")
	overlay, err := updater.Update(context.Background(), liveGame(pred), profile)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if overlay != nil {
		t.Error("overlay produced for game without prediction")
	}
}

func TestComputeOverlayBlendsScoreAndPrior(t *testing.T) {
	pred := basePrediction()
	game := liveGame(pred)

	profile, _ := sports.ProfileFor("nba")
	overlay, err := ComputeOverlay(game, pred, profile)
	if err != nil {
		t.Fatalf("ComputeOverlay: %v", err)
	}

	elapsed, _ := ElapsedFraction(game, profile.Clock)
	remaining := 1 - elapsed

	if want := 5 + pred.PredictedSpread*remaining; math.Abs(overlay.PredictedSpread-want) > 1e-9 {
		t.Errorf("live spread = %v, want %v", overlay.PredictedSpread, want)
	}
	if want := 115 + pred.PredictedTotal*remaining; math.Abs(overlay.PredictedTotal-want) > 1e-9 {
		t.Errorf("live total = %v, want %v", overlay.PredictedTotal, want)
	}
}

func TestComputeOverlayOvertimeKeepsBlending(t *testing.T) {
	pred := basePrediction()
	pred.WinProbability = 0.55

	game := liveGame(pred)
	home, away, period := 101, 99, 5
	game.HomeScore, game.AwayScore = &home, &away
	game.Period = &period
	game.Clock = "4:00"

	profile, _ := sports.ProfileFor("nba")
	overlay, err := ComputeOverlay(game, pred, profile)
	if err != nil {
		t.Fatalf("ComputeOverlay: %v", err)
	}

	// A 2-point lead with 4:00 on the OT clock is far from decided
	if overlay.WinProbability >= prediction.MaxProbability {
		t.Errorf("OT probability collapsed to %v with time remaining", overlay.WinProbability)
	}
	if overlay.WinProbability <= 0.5 {
		t.Errorf("leading team probability = %v, want > 0.5", overlay.WinProbability)
	}
	if overlay.SecondsRemaining == nil || *overlay.SecondsRemaining != 240 {
		t.Errorf("seconds remaining = %v, want 240", overlay.SecondsRemaining)
	}
}

func TestComputeOverlayExtraInningsKeepsBlending(t *testing.T) {
	pred := basePrediction()
	pred.PredictedSpread = 0.5
	pred.PredictedTotal = 8.5
	pred.WinProbability = 0.52

	home, away, outs := 5, 4, 56
	game := &models.Game{
		ID:           pred.GameID,
		Sport:        "mlb",
		Status:       models.StatusInProgress,
		OutsRecorded: &outs,
		HomeScore:    &home,
		AwayScore:    &away,
	}

	profile, _ := sports.ProfileFor("mlb")
	overlay, err := ComputeOverlay(game, pred, profile)
	if err != nil {
		t.Fatalf("ComputeOverlay: %v", err)
	}

	if overlay.WinProbability >= prediction.MaxProbability {
		t.Errorf("extras probability collapsed to %v with outs remaining", overlay.WinProbability)
	}
	if overlay.WinProbability <= 0.5 {
		t.Errorf("leading team probability = %v, want > 0.5", overlay.WinProbability)
	}
	if overlay.OutsRemaining == nil || *overlay.OutsRemaining != 16 {
		t.Errorf("outs remaining = %v, want 16", overlay.OutsRemaining)
	}
}

func TestBlendProbabilityCollapsesAtFullTime(t *testing.T) {
	profile, _ := sports.ProfileFor("nba")

	if p := BlendProbability(0.65, 3, 1, profile); p != prediction.MaxProbability {
		t.Errorf("home leading at full time: %v, want %v", p, prediction.MaxProbability)
	}
	if p := BlendProbability(0.65, -3, 1, profile); p != prediction.MinProbability {
		t.Errorf("home trailing at full time: %v, want %v", p, prediction.MinProbability)
	}
	if p := BlendProbability(0.65, 0, 1, profile); p != 0.5 {
		t.Errorf("tied at full time: %v, want 0.5", p)
	}
}

func TestBlendProbabilityMatchesPriorAtTipoff(t *testing.T) {
	profile, _ := sports.ProfileFor("nba")
	// Tied game with no time elapsed reduces to the pre-game prior
	if p := BlendProbability(0.65, 0, 0, profile); math.Abs(p-0.65) > 1e-9 {
		t.Errorf("p = %v, want 0.65", p)
	}
}

func TestBlendProbabilityMonotoneInMargin(t *testing.T) {
	profile, _ := sports.ProfileFor("nba")
	prev := -1.0
	for margin := -30.0; margin <= 30; margin += 5 {
		p := BlendProbability(0.5, margin, 0.6, profile)
		if p <= prev {
			t.Fatalf("probability not increasing at margin %v: %v <= %v", margin, p, prev)
		}
		if p < prediction.MinProbability || p > prediction.MaxProbability {
			t.Fatalf("probability %v out of bounds at margin %v", p, margin)
		}
		prev = p
	}
}

func TestBlendProbabilityScoreDominatesLate(t *testing.T) {
	profile, _ := sports.ProfileFor("nba")
	// The same 10-point lead means more with less time left
	early := BlendProbability(0.5, 10, 0.2, profile)
	late := BlendProbability(0.5, 10, 0.9, profile)
	if late <= early {
		t.Errorf("late p %v not greater than early p %v", late, early)
	}
}
