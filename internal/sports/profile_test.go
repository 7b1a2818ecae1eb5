package sports

import (
	"errors"
	"testing"
	"time"

	"github.com/Christbey/picksports-sub004/internal/models"
)

func TestProfileFor(t *testing.T) {
	for _, sport := range []string{NFL, CFB, NBA, CBB, MLB, NHL, Soccer} {
		p, err := ProfileFor(sport)
		if err != nil {
			t.Fatalf("ProfileFor(%s): %v", sport, err)
		}
		if p.Sport != sport {
			t.Errorf("profile sport = %q, want %q", p.Sport, sport)
		}
		if p.BaseKFactor <= 0 || p.EloToPoints <= 0 {
			t.Errorf("%s profile has unusable constants: %+v", sport, p)
		}
	}

	if _, err := ProfileFor("cricket"); !errors.Is(err, models.ErrUnknownSport) {
		t.Errorf("err = %v, want ErrUnknownSport", err)
	}

	// Case-insensitive lookup
	if _, err := ProfileFor("NBA"); err != nil {
		t.Errorf("uppercase lookup failed: %v", err)
	}
}

func TestClockConfigShape(t *testing.T) {
	mlb, _ := ProfileFor(MLB)
	if !mlb.Clock.OutBased() {
		t.Error("baseball must be out-based")
	}
	if mlb.Clock.TotalOuts != 54 {
		t.Errorf("total outs = %d, want 54", mlb.Clock.TotalOuts)
	}

	nba, _ := ProfileFor(NBA)
	if nba.Clock.OutBased() {
		t.Error("basketball must be clock-based")
	}
	if got := nba.Clock.RegulationSeconds(); got != 4*12*60 {
		t.Errorf("regulation seconds = %d, want %d", got, 4*12*60)
	}
}

func TestCurrentSeason(t *testing.T) {
	nba, _ := ProfileFor(NBA)
	// A January game belongs to the season that started the prior autumn
	jan := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	if got := nba.CurrentSeason(jan); got != 2025 {
		t.Errorf("january season = %d, want 2025", got)
	}
	nov := time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC)
	if got := nba.CurrentSeason(nov); got != 2025 {
		t.Errorf("november season = %d, want 2025", got)
	}

	mlb, _ := ProfileFor(MLB)
	jul := time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC)
	if got := mlb.CurrentSeason(jul); got != 2025 {
		t.Errorf("july season = %d, want 2025", got)
	}
}

func TestAllCoversEverySport(t *testing.T) {
	profiles := All()
	if len(profiles) != 7 {
		t.Fatalf("profiles = %d, want 7", len(profiles))
	}
	seen := make(map[string]bool)
	for _, p := range profiles {
		seen[p.Sport] = true
	}
	for _, sport := range []string{NFL, CFB, NBA, CBB, MLB, NHL, Soccer} {
		if !seen[sport] {
			t.Errorf("missing profile for %s", sport)
		}
	}
}
