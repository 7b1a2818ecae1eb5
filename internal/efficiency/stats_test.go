package efficiency

import (
	"math"
	"testing"
)

func TestPossessions(t *testing.T) {
	// 60 FGA, 10 OREB, 12 TO, 20 FTA -> 60 - 10 + 12 + 8 = 70
	if got := Possessions(60, 10, 12, 20); math.Abs(got-70) > 1e-9 {
		t.Errorf("Possessions = %v, want 70", got)
	}
	if got := Possessions(0, 0, 0, 0); got != 0 {
		t.Errorf("Possessions(0,0,0,0) = %v, want 0", got)
	}
}

func TestPointsPerPossession(t *testing.T) {
	if got := PointsPerPossession(105, 70); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("PPP = %v, want 1.5", got)
	}
	if got := PointsPerPossession(100, 0); got != 0 {
		t.Errorf("PPP with zero possessions = %v, want 0", got)
	}
	if got := PointsPerPossession(100, -5); got != 0 {
		t.Errorf("PPP with negative possessions = %v, want 0", got)
	}
}
