package grading

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Christbey/picksports-sub004/internal/matching"
	"github.com/Christbey/picksports-sub004/internal/models"
)

// PropStore lists ungraded props and persists grades. SaveGrade must apply
// the graded_at IS NULL guard so racing workers double-write benignly.
type PropStore interface {
	ListUngraded(ctx context.Context, sport string, season *int) ([]*models.PlayerProp, error)
	SaveGrade(ctx context.Context, prop *models.PlayerProp) error
}

// StatSource lists realized stat lines for a game
type StatSource interface {
	ListByGame(ctx context.Context, gameID uuid.UUID) ([]*models.PlayerStatLine, error)
}

// PropGradeResult reports one grading batch. Unmatched props stay ungraded
// for operator visibility; they are never guessed.
type PropGradeResult struct {
	Graded    int
	Unmatched int
	Failed    int
	HitRate   float64
	AvgError  float64
}

// PropGrader grades player prop lines against realized stat lines, resolving
// provider player names by exact id first and fuzzy match second.
type PropGrader struct {
	props  PropStore
	stats  StatSource
	logger *logrus.Logger
}

// NewPropGrader creates a prop grader
func NewPropGrader(props PropStore, stats StatSource, logger *logrus.Logger) (*PropGrader, error) {
	if props == nil {
		return nil, fmt.Errorf("prop store is required")
	}
	if stats == nil {
		return nil, fmt.Errorf("stat source is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &PropGrader{props: props, stats: stats, logger: logger}, nil
}

// GradeProps grades every ungraded prop tied to a finished game with
// recorded scores. Per-prop failures are counted, not fatal.
func (g *PropGrader) GradeProps(ctx context.Context, sport string, season *int) (PropGradeResult, error) {
	props, err := g.props.ListUngraded(ctx, sport, season)
	if err != nil {
		return PropGradeResult{}, fmt.Errorf("failed to list ungraded props: %w", err)
	}

	var result PropGradeResult
	var hits int
	errorSum := decimal.Zero
	statsByGame := make(map[uuid.UUID][]*models.PlayerStatLine)

	for _, prop := range props {
		lines, ok := statsByGame[prop.GameID]
		if !ok {
			lines, err = g.stats.ListByGame(ctx, prop.GameID)
			if err != nil {
				result.Failed++
				g.logger.WithFields(logrus.Fields{"game_id": prop.GameID, "error": err}).
					Warn("Failed to load stat lines, continuing")
				continue
			}
			statsByGame[prop.GameID] = lines
		}

		stat := ResolveStatLine(prop, lines)
		if stat == nil {
			result.Unmatched++
			continue
		}
		if prop.PlayerID == nil {
			// Persist the name-based resolution so later batches match by id
			resolved := stat.PlayerID
			prop.PlayerID = &resolved
		}

		actual, err := stat.StatValue(prop.Market)
		if errors.Is(err, models.ErrUnknownMarket) {
			result.Failed++
			g.logger.WithField("market", prop.Market).Warn("Unknown prop market, continuing")
			continue
		}

		gradeProp(prop, actual, time.Now().UTC())
		if err := g.props.SaveGrade(ctx, prop); err != nil {
			result.Failed++
			g.logger.WithFields(logrus.Fields{"prop_id": prop.ID, "error": err}).
				Warn("Failed to save prop grade, continuing")
			continue
		}

		result.Graded++
		if *prop.HitOver {
			hits++
		}
		errorSum = errorSum.Add(*prop.Error)
	}

	if result.Graded > 0 {
		result.HitRate = float64(hits) / float64(result.Graded)
		result.AvgError, _ = errorSum.Div(decimal.NewFromInt(int64(result.Graded))).Float64()
	}

	g.logger.WithFields(logrus.Fields{
		"sport":     sport,
		"graded":    result.Graded,
		"unmatched": result.Unmatched,
		"failed":    result.Failed,
	}).Info("Prop grading complete")

	return result, nil
}

// ResolveStatLine finds the stat line for a prop: exact player id match
// first, then the best fuzzy name match at or above the player threshold.
// Nil means no confident match; the prop stays ungraded.
func ResolveStatLine(prop *models.PlayerProp, lines []*models.PlayerStatLine) *models.PlayerStatLine {
	if prop.PlayerID != nil {
		for _, line := range lines {
			if line.PlayerID == *prop.PlayerID {
				return line
			}
		}
	}

	names := make([]string, len(lines))
	for i, line := range lines {
		names[i] = line.PlayerName
	}
	idx, _ := matching.BestMatch(prop.PlayerName, names, matching.PlayerNameThreshold)
	if idx < 0 {
		return nil
	}
	return lines[idx]
}

func gradeProp(prop *models.PlayerProp, actual float64, gradedAt time.Time) {
	actualDec := decimal.NewFromFloat(actual)
	hitOver := actualDec.GreaterThan(prop.Line)
	errVal := actualDec.Sub(prop.Line).Abs()

	prop.ActualValue = &actualDec
	prop.HitOver = &hitOver
	prop.Error = &errVal
	prop.GradedAt = &gradedAt
}
