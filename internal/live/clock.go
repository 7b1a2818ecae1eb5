// Package live computes in-game win probability overlays by blending the
// pre-game prior with the current score and remaining game time.
package live

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Christbey/picksports-sub004/internal/models"
	"github.com/Christbey/picksports-sub004/internal/sports"
)

// ParseClock converts a mm:ss game clock into seconds remaining in the
// current period.
func ParseClock(clock string) (int, error) {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock %q", clock)
	}
	minutes, err := strconv.Atoi(parts[0])
	if err != nil || minutes < 0 {
		return 0, fmt.Errorf("malformed clock minutes %q", clock)
	}
	seconds, err := strconv.Atoi(parts[1])
	if err != nil || seconds < 0 || seconds > 59 {
		return 0, fmt.Errorf("malformed clock seconds %q", clock)
	}
	return minutes*60 + seconds, nil
}

// SecondsRemaining computes total game seconds remaining from the period and
// clock, handling regulation plus a single capped overtime allowance. An
// empty clock at a period break counts the full remaining periods.
func SecondsRemaining(game *models.Game, clock sports.ClockConfig) (int, error) {
	if clock.OutBased() {
		return 0, fmt.Errorf("sport is out-based, not clock-based")
	}
	period := 1
	if game.Period != nil {
		period = *game.Period
	}
	if period < 1 {
		period = 1
	}

	periodSeconds := clock.PeriodMinutes * 60

	inPeriod := 0
	if game.Clock != "" {
		parsed, err := ParseClock(game.Clock)
		if err != nil {
			return 0, err
		}
		inPeriod = parsed
	}

	if period > clock.Periods {
		// Overtime: only the capped OT clock remains
		otSeconds := clock.OvertimeMinutes * 60
		if inPeriod > otSeconds {
			inPeriod = otSeconds
		}
		return inPeriod, nil
	}

	remainingFull := (clock.Periods - period) * periodSeconds
	if inPeriod > periodSeconds {
		inPeriod = periodSeconds
	}
	return remainingFull + inPeriod, nil
}

// OutsRemaining computes outs left in a baseball game, allowing the
// configured extra-innings cushion past regulation.
func OutsRemaining(game *models.Game, clock sports.ClockConfig) (int, error) {
	if !clock.OutBased() {
		return 0, fmt.Errorf("sport is clock-based, not out-based")
	}
	if game.OutsRecorded == nil {
		return 0, fmt.Errorf("outs not recorded")
	}
	recorded := *game.OutsRecorded
	if recorded < 0 {
		return 0, fmt.Errorf("malformed outs %d", recorded)
	}
	limit := clock.TotalOuts + clock.ExtraInningsOuts
	if recorded >= limit {
		return 0, nil
	}
	if recorded >= clock.TotalOuts {
		// Extra innings: the unused cushion is all that is left
		return limit - recorded, nil
	}
	return clock.TotalOuts - recorded, nil
}

// ElapsedFraction returns how much of the game has elapsed, in [0, 1],
// measured against regulation length. It reaches 1 only when no time (or no
// outs) actually remains: overtime and extra innings stay strictly below 1
// while their clock runs, so the probability blend keeps applying instead of
// collapsing the moment regulation ends.
func ElapsedFraction(game *models.Game, clock sports.ClockConfig) (float64, error) {
	if clock.OutBased() {
		outs, err := OutsRemaining(game, clock)
		if err != nil {
			return 0, err
		}
		elapsed := 1 - float64(outs)/float64(clock.TotalOuts)
		return clampFraction(elapsed), nil
	}

	seconds, err := SecondsRemaining(game, clock)
	if err != nil {
		return 0, err
	}
	regulation := clock.RegulationSeconds()
	if regulation <= 0 {
		return 0, fmt.Errorf("profile has no regulation length")
	}
	elapsed := 1 - float64(seconds)/float64(regulation)
	return clampFraction(elapsed), nil
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
