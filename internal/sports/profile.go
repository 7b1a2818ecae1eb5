// Package sports defines per-sport tuning profiles for the rating and
// prediction engines. A Profile replaces the per-sport subclassing in the
// legacy system: every engine takes a Profile at call time and no
// sport-specific code paths exist outside of it.
package sports

import (
	"strings"
	"time"

	"github.com/Christbey/picksports-sub004/internal/models"
)

// Supported sport keys
const (
	NFL    = "nfl"
	CFB    = "cfb"
	NBA    = "nba"
	CBB    = "cbb"
	MLB    = "mlb"
	NHL    = "nhl"
	Soccer = "soccer"
)

// DampenerConfig controls strength-of-schedule damping of the K-factor.
// When enabled the effective K shrinks as the pre-game rating gap widens,
// clamped at Floor so extreme mismatches never zero out the update.
type DampenerConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Floor   float64 `mapstructure:"floor" validate:"gte=0,lte=1"`
	Span    float64 `mapstructure:"span" validate:"gt=0"`
}

// ClockConfig describes how game time works for a sport. Out-based sports
// (baseball) leave the clock fields zero and set TotalOuts.
type ClockConfig struct {
	Periods          int `mapstructure:"periods"`
	PeriodMinutes    int `mapstructure:"period_minutes"`
	OvertimeMinutes  int `mapstructure:"overtime_minutes"`
	TotalOuts        int `mapstructure:"total_outs"`
	ExtraInningsOuts int `mapstructure:"extra_innings_outs"`
}

// RegulationSeconds returns the length of regulation in seconds
func (c ClockConfig) RegulationSeconds() int {
	return c.Periods * c.PeriodMinutes * 60
}

// OutBased reports whether the sport tracks outs instead of a clock
func (c ClockConfig) OutBased() bool {
	return c.TotalOuts > 0
}

// Profile holds all tunable constants for one sport. The numeric defaults
// below are calibration starting points, overridable via configuration.
type Profile struct {
	Sport         string  `mapstructure:"sport" validate:"required"`
	BaseKFactor   float64 `mapstructure:"base_k_factor" validate:"gt=0"`
	HomeAdvantage float64 `mapstructure:"home_advantage" validate:"gte=0"`
	// EloToPoints divides the rating differential to produce a point spread
	EloToPoints float64 `mapstructure:"elo_to_points" validate:"gt=0"`
	Dampener    DampenerConfig `mapstructure:"dampener"`
	Clock       ClockConfig    `mapstructure:"clock"`
	// AverageTeamScore seeds the predicted total when efficiency data is thin
	AverageTeamScore float64 `mapstructure:"average_team_score" validate:"gt=0"`
	// Live blend constants: pointValue = LivePointBase + LivePointGrowth*elapsed^2
	LivePointBase   float64 `mapstructure:"live_point_base" validate:"gt=0"`
	LivePointGrowth float64 `mapstructure:"live_point_growth" validate:"gte=0"`
	// Offseason regression toward the 1500 mean
	RegressionFactor        float64 `mapstructure:"regression_factor" validate:"gte=0,lte=1"`
	PitcherRegressionFactor float64 `mapstructure:"pitcher_regression_factor" validate:"gte=0,lte=1"`
	// Fuzzy-match acceptance threshold for provider team names
	TeamMatchThreshold float64 `mapstructure:"team_match_threshold" validate:"gte=0,lte=1"`
	// Months (1-12) bounding the regular season, used by sweep windows
	SeasonStartMonth int `mapstructure:"season_start_month" validate:"min=1,max=12"`
	SeasonEndMonth   int `mapstructure:"season_end_month" validate:"min=1,max=12"`
}

// CurrentSeason labels the season containing the given instant. Seasons that
// span the new year are labeled by their starting calendar year, so a January
// NBA game still belongs to the prior year's season.
func (p Profile) CurrentSeason(now time.Time) int {
	year := now.UTC().Year()
	if p.SeasonStartMonth > p.SeasonEndMonth && int(now.UTC().Month()) < p.SeasonStartMonth {
		return year - 1
	}
	return year
}

// defaults are calibration starting points per sport, not authoritative values
var defaults = map[string]Profile{
	NFL: {
		Sport: NFL, BaseKFactor: 20, HomeAdvantage: 48, EloToPoints: 25,
		Dampener: DampenerConfig{Enabled: true, Floor: 0.5, Span: 800},
		Clock:    ClockConfig{Periods: 4, PeriodMinutes: 15, OvertimeMinutes: 10},
		AverageTeamScore: 22.5, LivePointBase: 0.12, LivePointGrowth: 0.30,
		RegressionFactor: 1.0 / 3.0, TeamMatchThreshold: 0.85,
		SeasonStartMonth: 9, SeasonEndMonth: 2,
	},
	CFB: {
		Sport: CFB, BaseKFactor: 24, HomeAdvantage: 55, EloToPoints: 22,
		Dampener: DampenerConfig{Enabled: true, Floor: 0.5, Span: 700},
		Clock:    ClockConfig{Periods: 4, PeriodMinutes: 15, OvertimeMinutes: 10},
		AverageTeamScore: 28, LivePointBase: 0.10, LivePointGrowth: 0.28,
		RegressionFactor: 1.0 / 3.0, TeamMatchThreshold: 0.80,
		SeasonStartMonth: 8, SeasonEndMonth: 1,
	},
	NBA: {
		Sport: NBA, BaseKFactor: 20, HomeAdvantage: 70, EloToPoints: 25,
		Dampener: DampenerConfig{Enabled: true, Floor: 0.5, Span: 800},
		Clock:    ClockConfig{Periods: 4, PeriodMinutes: 12, OvertimeMinutes: 5},
		AverageTeamScore: 112, LivePointBase: 0.08, LivePointGrowth: 0.22,
		RegressionFactor: 0.25, TeamMatchThreshold: 0.85,
		SeasonStartMonth: 10, SeasonEndMonth: 6,
	},
	CBB: {
		Sport: CBB, BaseKFactor: 26, HomeAdvantage: 90, EloToPoints: 25,
		Dampener: DampenerConfig{Enabled: true, Floor: 0.5, Span: 650},
		Clock:    ClockConfig{Periods: 2, PeriodMinutes: 20, OvertimeMinutes: 5},
		AverageTeamScore: 72, LivePointBase: 0.10, LivePointGrowth: 0.25,
		RegressionFactor: 1.0 / 3.0, TeamMatchThreshold: 0.80,
		SeasonStartMonth: 11, SeasonEndMonth: 4,
	},
	MLB: {
		Sport: MLB, BaseKFactor: 6, HomeAdvantage: 24, EloToPoints: 55,
		Dampener: DampenerConfig{Enabled: false, Floor: 0.5, Span: 800},
		Clock:    ClockConfig{TotalOuts: 54, ExtraInningsOuts: 18},
		AverageTeamScore: 4.5, LivePointBase: 0.35, LivePointGrowth: 0.55,
		RegressionFactor: 1.0 / 3.0, PitcherRegressionFactor: 0.2,
		TeamMatchThreshold: 0.85,
		SeasonStartMonth:   4, SeasonEndMonth: 10,
	},
	NHL: {
		Sport: NHL, BaseKFactor: 8, HomeAdvantage: 33, EloToPoints: 120,
		Dampener: DampenerConfig{Enabled: false, Floor: 0.5, Span: 800},
		Clock:    ClockConfig{Periods: 3, PeriodMinutes: 20, OvertimeMinutes: 5},
		AverageTeamScore: 3, LivePointBase: 0.55, LivePointGrowth: 0.75,
		RegressionFactor: 0.3, TeamMatchThreshold: 0.85,
		SeasonStartMonth: 10, SeasonEndMonth: 6,
	},
	Soccer: {
		Sport: Soccer, BaseKFactor: 20, HomeAdvantage: 60, EloToPoints: 180,
		Dampener: DampenerConfig{Enabled: true, Floor: 0.5, Span: 800},
		Clock:    ClockConfig{Periods: 2, PeriodMinutes: 45, OvertimeMinutes: 0},
		AverageTeamScore: 1.4, LivePointBase: 0.70, LivePointGrowth: 0.90,
		RegressionFactor: 0.25, TeamMatchThreshold: 0.85,
		SeasonStartMonth: 8, SeasonEndMonth: 5,
	},
}

// ProfileFor returns the built-in profile for a sport key
func ProfileFor(sport string) (Profile, error) {
	p, ok := defaults[strings.ToLower(sport)]
	if !ok {
		return Profile{}, models.ErrUnknownSport
	}
	return p, nil
}

// All returns the built-in profiles for every supported sport
func All() []Profile {
	out := make([]Profile, 0, len(defaults))
	for _, key := range []string{NFL, CFB, NBA, CBB, MLB, NHL, Soccer} {
		out = append(out, defaults[key])
	}
	return out
}
