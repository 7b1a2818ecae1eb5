package live

import (
	"math"
	"testing"

	"github.com/Christbey/picksports-sub004/internal/models"
	"github.com/Christbey/picksports-sub004/internal/sports"
)

func intPtr(v int) *int { return &v }

var nbaClock = sports.ClockConfig{Periods: 4, PeriodMinutes: 12, OvertimeMinutes: 5}
var mlbClock = sports.ClockConfig{TotalOuts: 54, ExtraInningsOuts: 18}

func TestParseClock(t *testing.T) {
	cases := []struct {
		clock   string
		want    int
		wantErr bool
	}{
		{"5:30", 330, false},
		{"0:00", 0, false},
		{"12:00", 720, false},
		{" 1:05 ", 65, false},
		{"", 0, true},
		{"5", 0, true},
		{"5:75", 0, true},
		{"-1:30", 0, true},
		{"a:bc", 0, true},
		{"1:2:3", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.clock)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", tc.clock)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tc.clock, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.clock, got, tc.want)
		}
	}
}

func TestSecondsRemaining(t *testing.T) {
	game := &models.Game{Period: intPtr(2), Clock: "5:30"}
	got, err := SecondsRemaining(game, nbaClock)
	if err != nil {
		t.Fatalf("SecondsRemaining: %v", err)
	}
	// Two full periods left plus 5:30 in the current one
	if want := 2*720 + 330; got != want {
		t.Errorf("remaining = %d, want %d", got, want)
	}
}

func TestSecondsRemainingOvertimeCapped(t *testing.T) {
	// A bogus 12:00 clock in overtime is capped to the 5-minute OT length
	game := &models.Game{Period: intPtr(5), Clock: "12:00"}
	got, err := SecondsRemaining(game, nbaClock)
	if err != nil {
		t.Fatalf("SecondsRemaining: %v", err)
	}
	if want := 300; got != want {
		t.Errorf("OT remaining = %d, want %d", got, want)
	}
}

func TestSecondsRemainingEmptyClockAtPeriodBreak(t *testing.T) {
	game := &models.Game{Period: intPtr(3), Clock: ""}
	got, err := SecondsRemaining(game, nbaClock)
	if err != nil {
		t.Fatalf("SecondsRemaining: %v", err)
	}
	if want := 720; got != want {
		t.Errorf("remaining = %d, want %d", got, want)
	}
}

func TestOutsRemaining(t *testing.T) {
	cases := []struct {
		recorded int
		want     int
	}{
		{0, 54},
		{27, 27},
		{53, 1},
		{54, 18}, // extra innings just began, full cushion left
		{60, 12}, // mid-extras
		{71, 1},
		{72, 0},  // cushion exhausted
		{100, 0}, // past the cushion entirely
	}
	for _, tc := range cases {
		game := &models.Game{OutsRecorded: intPtr(tc.recorded)}
		got, err := OutsRemaining(game, mlbClock)
		if err != nil {
			t.Errorf("OutsRemaining(%d): %v", tc.recorded, err)
			continue
		}
		if got != tc.want {
			t.Errorf("OutsRemaining(%d) = %d, want %d", tc.recorded, got, tc.want)
		}
	}

	if _, err := OutsRemaining(&models.Game{}, mlbClock); err == nil {
		t.Error("expected error for missing outs")
	}
	if _, err := OutsRemaining(&models.Game{OutsRecorded: intPtr(-3)}, mlbClock); err == nil {
		t.Error("expected error for negative outs")
	}
}

func TestElapsedFraction(t *testing.T) {
	halftime := &models.Game{Period: intPtr(2), Clock: "0:00"}
	got, err := ElapsedFraction(halftime, nbaClock)
	if err != nil {
		t.Fatalf("ElapsedFraction: %v", err)
	}
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("halftime elapsed = %v, want 0.5", got)
	}

	midGame := &models.Game{OutsRecorded: intPtr(27)}
	got, err = ElapsedFraction(midGame, mlbClock)
	if err != nil {
		t.Fatalf("ElapsedFraction: %v", err)
	}
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("outs elapsed = %v, want 0.5", got)
	}
}

func TestElapsedFractionOvertime(t *testing.T) {
	// Time still on the OT clock: elapsed stays strictly below 1
	running := &models.Game{Period: intPtr(5), Clock: "3:00"}
	got, err := ElapsedFraction(running, nbaClock)
	if err != nil {
		t.Fatalf("ElapsedFraction: %v", err)
	}
	if want := 1 - 180.0/2880.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("OT elapsed = %v, want %v", got, want)
	}
	if got >= 1 {
		t.Errorf("OT elapsed = %v, must stay below 1 while the clock runs", got)
	}

	// OT clock expired: now the game really is over
	expired := &models.Game{Period: intPtr(5), Clock: "0:00"}
	got, err = ElapsedFraction(expired, nbaClock)
	if err != nil {
		t.Fatalf("ElapsedFraction: %v", err)
	}
	if got != 1 {
		t.Errorf("expired OT elapsed = %v, want 1", got)
	}
}

func TestElapsedFractionExtraInnings(t *testing.T) {
	// Mid-extras: the cushion keeps elapsed below 1
	extras := &models.Game{OutsRecorded: intPtr(56)}
	got, err := ElapsedFraction(extras, mlbClock)
	if err != nil {
		t.Fatalf("ElapsedFraction: %v", err)
	}
	if got >= 1 {
		t.Errorf("extras elapsed = %v, must stay below 1 with outs left", got)
	}

	exhausted := &models.Game{OutsRecorded: intPtr(72)}
	got, err = ElapsedFraction(exhausted, mlbClock)
	if err != nil {
		t.Fatalf("ElapsedFraction: %v", err)
	}
	if got != 1 {
		t.Errorf("exhausted extras elapsed = %v, want 1", got)
	}
}
