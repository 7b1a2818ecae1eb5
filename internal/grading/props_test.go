package grading

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Christbey/picksports-sub004/internal/models"
)

type fakePropStore struct {
	props []*models.PlayerProp
	saved []*models.PlayerProp
}

func (s *fakePropStore) ListUngraded(_ context.Context, _ string, _ *int) ([]*models.PlayerProp, error) {
	return s.props, nil
}

func (s *fakePropStore) SaveGrade(_ context.Context, prop *models.PlayerProp) error {
	s.saved = append(s.saved, prop)
	return nil
}

type fakeStatSource struct {
	byGame map[uuid.UUID][]*models.PlayerStatLine
	calls  int
}

func (s *fakeStatSource) ListByGame(_ context.Context, gameID uuid.UUID) ([]*models.PlayerStatLine, error) {
	s.calls++
	return s.byGame[gameID], nil
}

func statLine(gameID uuid.UUID, name string, points, rebounds, assists float64) *models.PlayerStatLine {
	return &models.PlayerStatLine{
		ID:         uuid.New(),
		GameID:     gameID,
		PlayerID:   uuid.New(),
		PlayerName: name,
		Points:     points,
		Rebounds:   rebounds,
		Assists:    assists,
	}
}

func prop(gameID uuid.UUID, player, market string, line float64) *models.PlayerProp {
	return &models.PlayerProp{
		ID:         uuid.New(),
		GameID:     gameID,
		PlayerName: player,
		Market:     market,
		Line:       decimal.NewFromFloat(line),
	}
}

func TestGradePropsOverAndUnder(t *testing.T) {
	gameID := uuid.New()
	props := &fakePropStore{props: []*models.PlayerProp{
		prop(gameID, "LeBron James", models.MarketPoints, 25.5),
		prop(gameID, "Anthony Davis", models.MarketRebounds, 12.5),
	}}
	stats := &fakeStatSource{byGame: map[uuid.UUID][]*models.PlayerStatLine{
		gameID: {
			statLine(gameID, "LeBron James", 30, 8, 9),
			statLine(gameID, "Anthony Davis", 22, 10, 3),
		},
	}}

	grader, err := NewPropGrader(props, stats, quietLogger())
	if err != nil {
		t.Fatalf("NewPropGrader: %v", err)
	}

	result, err := grader.GradeProps(context.Background(), "nba", nil)
	if err != nil {
		t.Fatalf("GradeProps: %v", err)
	}
	if result.Graded != 2 || result.Unmatched != 0 || result.Failed != 0 {
		t.Fatalf("result = %+v, want 2 graded", result)
	}

	over := props.props[0]
	if !*over.HitOver {
		t.Error("30 points over 25.5 should hit over")
	}
	if want := decimal.NewFromFloat(4.5); !over.Error.Equal(want) {
		t.Errorf("over error = %v, want %v", over.Error, want)
	}

	under := props.props[1]
	if *under.HitOver {
		t.Error("10 rebounds under 12.5 should not hit over")
	}
	if want := decimal.NewFromFloat(2.5); !under.Error.Equal(want) {
		t.Errorf("under error = %v, want %v", under.Error, want)
	}

	if result.HitRate != 0.5 {
		t.Errorf("hit rate = %v, want 0.5", result.HitRate)
	}
	if result.AvgError != 3.5 {
		t.Errorf("avg error = %v, want 3.5", result.AvgError)
	}
}

func TestGradePropsCompositeMarket(t *testing.T) {
	gameID := uuid.New()
	props := &fakePropStore{props: []*models.PlayerProp{
		prop(gameID, "Nikola Jokic", models.MarketPointsReboundsAssists, 45.5),
	}}
	stats := &fakeStatSource{byGame: map[uuid.UUID][]*models.PlayerStatLine{
		gameID: {statLine(gameID, "Nikola Jokic", 25, 13, 9)},
	}}

	grader, _ := NewPropGrader(props, stats, quietLogger())
	result, err := grader.GradeProps(context.Background(), "nba", nil)
	if err != nil {
		t.Fatalf("GradeProps: %v", err)
	}
	if result.Graded != 1 {
		t.Fatalf("graded = %d, want 1", result.Graded)
	}

	graded := props.props[0]
	if want := decimal.NewFromInt(47); !graded.ActualValue.Equal(want) {
		t.Errorf("actual = %v, want %v", graded.ActualValue, want)
	}
	if !*graded.HitOver {
		t.Error("47 over 45.5 should hit over")
	}
}

func TestGradePropsUnmatchedStaysUngraded(t *testing.T) {
	gameID := uuid.New()
	props := &fakePropStore{props: []*models.PlayerProp{
		prop(gameID, "Completely Different Person", models.MarketPoints, 20.5),
	}}
	stats := &fakeStatSource{byGame: map[uuid.UUID][]*models.PlayerStatLine{
		gameID: {statLine(gameID, "LeBron James", 30, 8, 9)},
	}}

	grader, _ := NewPropGrader(props, stats, quietLogger())
	result, err := grader.GradeProps(context.Background(), "nba", nil)
	if err != nil {
		t.Fatalf("GradeProps: %v", err)
	}
	if result.Unmatched != 1 || result.Graded != 0 {
		t.Errorf("result = %+v, want 1 unmatched", result)
	}
	if props.props[0].IsGraded() {
		t.Error("unmatched prop was graded")
	}
	if len(props.saved) != 0 {
		t.Error("unmatched prop was saved")
	}
}

func TestGradePropsBacksFillsResolvedPlayerID(t *testing.T) {
	gameID := uuid.New()
	props := &fakePropStore{props: []*models.PlayerProp{
		prop(gameID, "Lebron James", models.MarketPoints, 25.5),
	}}
	line := statLine(gameID, "LeBron James", 30, 8, 9)
	stats := &fakeStatSource{byGame: map[uuid.UUID][]*models.PlayerStatLine{
		gameID: {line},
	}}

	grader, _ := NewPropGrader(props, stats, quietLogger())
	result, err := grader.GradeProps(context.Background(), "nba", nil)
	if err != nil {
		t.Fatalf("GradeProps: %v", err)
	}
	if result.Graded != 1 {
		t.Fatalf("graded = %d, want 1", result.Graded)
	}

	// Name resolution is persisted so the next batch matches by id
	graded := props.props[0]
	if graded.PlayerID == nil {
		t.Fatal("resolved player id not written back")
	}
	if *graded.PlayerID != line.PlayerID {
		t.Errorf("player id = %v, want %v", *graded.PlayerID, line.PlayerID)
	}
}

func TestGradePropsCachesStatLinesPerGame(t *testing.T) {
	gameID := uuid.New()
	props := &fakePropStore{props: []*models.PlayerProp{
		prop(gameID, "LeBron James", models.MarketPoints, 25.5),
		prop(gameID, "LeBron James", models.MarketAssists, 7.5),
		prop(gameID, "LeBron James", models.MarketRebounds, 8.5),
	}}
	stats := &fakeStatSource{byGame: map[uuid.UUID][]*models.PlayerStatLine{
		gameID: {statLine(gameID, "LeBron James", 30, 8, 9)},
	}}

	grader, _ := NewPropGrader(props, stats, quietLogger())
	if _, err := grader.GradeProps(context.Background(), "nba", nil); err != nil {
		t.Fatalf("GradeProps: %v", err)
	}
	if stats.calls != 1 {
		t.Errorf("stat source calls = %d, want 1", stats.calls)
	}
}

func TestResolveStatLinePrefersPlayerID(t *testing.T) {
	gameID := uuid.New()
	target := statLine(gameID, "J. Smith", 20, 5, 5)
	decoy := statLine(gameID, "John Smith", 10, 2, 2)

	p := prop(gameID, "John Smith", models.MarketPoints, 15.5)
	p.PlayerID = &target.PlayerID

	got := ResolveStatLine(p, []*models.PlayerStatLine{decoy, target})
	if got != target {
		t.Error("id match should beat a better name match")
	}
}

func TestResolveStatLineFuzzyThreshold(t *testing.T) {
	gameID := uuid.New()

	// Ten characters, three edits apart: similarity exactly 0.70
	atThreshold := statLine(gameID, "abcdefgxyz", 10, 0, 0)
	p := prop(gameID, "abcdefghij", models.MarketPoints, 5.5)
	if got := ResolveStatLine(p, []*models.PlayerStatLine{atThreshold}); got == nil {
		t.Error("similarity at the threshold should match")
	}

	// Four edits apart: similarity 0.60, below the threshold
	below := statLine(gameID, "abcdefwxyz", 10, 0, 0)
	p2 := prop(gameID, "abcdefghij", models.MarketPoints, 5.5)
	if got := ResolveStatLine(p2, []*models.PlayerStatLine{below}); got != nil {
		t.Error("similarity below the threshold must not match")
	}
}
