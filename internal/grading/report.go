package grading

// Report is a read-only rollup over graded predictions. It never mutates
// grading state.
type Report struct {
	Sport           string  `json:"sport,omitempty"`
	Season          int     `json:"season,omitempty"`
	Graded          int     `json:"graded"`
	WinnerHits      int     `json:"winner_hits"`
	WinnerHitRate   float64 `json:"winner_hit_rate"`
	MeanSpreadError float64 `json:"mean_spread_error"`
	MeanTotalError  float64 `json:"mean_total_error"`
}

// Summarize aggregates grading fields already loaded into memory. Ungraded
// predictions are ignored.
func Summarize(rows []GradedValues) Report {
	var r Report
	var spreadSum, totalSum float64
	for _, row := range rows {
		r.Graded++
		spreadSum += row.SpreadError
		totalSum += row.TotalError
		if row.WinnerCorrect {
			r.WinnerHits++
		}
	}
	if r.Graded > 0 {
		r.WinnerHitRate = float64(r.WinnerHits) / float64(r.Graded)
		r.MeanSpreadError = spreadSum / float64(r.Graded)
		r.MeanTotalError = totalSum / float64(r.Graded)
	}
	return r
}

// GradedValues is one graded prediction's contribution to a report
type GradedValues struct {
	SpreadError   float64
	TotalError    float64
	WinnerCorrect bool
}
