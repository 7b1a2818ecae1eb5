package elo

// Outcome distinguishes why a rating call did or did not apply a change.
// Callers and tests need to tell "nothing to do" apart from "already done".
type Outcome int

const (
	// OutcomeRated means the game was rated and both teams updated
	OutcomeRated Outcome = iota
	// OutcomeSkipped means a history row already existed and the game was left alone
	OutcomeSkipped
	// OutcomeNoOp means the game was not ratable (not final, missing scores)
	OutcomeNoOp
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRated:
		return "rated"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeNoOp:
		return "noop"
	}
	return "unknown"
}

// RatingResult is the outcome of rating a single game. HomeChange and
// AwayChange are exact negations of each other when Outcome is OutcomeRated,
// and both zero otherwise.
type RatingResult struct {
	Outcome    Outcome
	Reason     string
	HomeChange float64
	AwayChange float64
	HomeRating float64
	AwayRating float64
}

// SweepResult reports counts from a chronological rating sweep. Per-game
// failures are counted, never fatal to the sweep.
type SweepResult struct {
	Processed int
	Skipped   int
	Failed    int
}
