// Package efficiency provides access to precomputed per-team rate stats and
// the small amount of shared stat math the prediction pipeline needs. The
// ratings themselves are computed upstream; this package only reads them.
package efficiency

// Possessions estimates team possessions from box-score counts using the
// standard basketball estimator: FGA - OREB + TO + 0.4*FTA.
func Possessions(fieldGoalAttempts, offensiveRebounds, turnovers, freeThrowAttempts float64) float64 {
	return fieldGoalAttempts - offensiveRebounds + turnovers + 0.4*freeThrowAttempts
}

// PointsPerPossession converts raw points over an estimated possession count
func PointsPerPossession(points, possessions float64) float64 {
	if possessions <= 0 {
		return 0
	}
	return points / possessions
}
