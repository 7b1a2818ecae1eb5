package matching

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"University of Kansas", "kansas"},
		{"Ohio State University", "ohio state"},
		{"St. Mary's", "st marys"},
		{"Texas A&M", "texas a m"},
		{"  Wake   Forest  ", "wake forest"},
		{"Miami-Dade", "miami dade"},
		{"The Citadel", "citadel"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity("Duke", "Duke"); got != 1 {
		t.Errorf("identical names = %v, want 1", got)
	}
	if got := Similarity("University of Kansas", "Kansas"); got != 1 {
		t.Errorf("normalized-identical names = %v, want 1", got)
	}
	if got := Similarity("", ""); got != 0 {
		t.Errorf("empty names = %v, want 0", got)
	}

	a, b := Similarity("Gonzaga", "Gonzage"), Similarity("Gonzage", "Gonzaga")
	if a != b {
		t.Errorf("similarity not symmetric: %v vs %v", a, b)
	}
	if a < 0.8 {
		t.Errorf("one-letter typo scored %v, expected high similarity", a)
	}

	if got := Similarity("Duke", "Gonzaga"); got > 0.5 {
		t.Errorf("unrelated names scored %v", got)
	}
}

func TestSimilarityTokenReorder(t *testing.T) {
	// Reordered tokens edit-distance poorly but share every token
	if got := Similarity("james lebron", "lebron james"); got != 1 {
		t.Errorf("reordered tokens = %v, want 1", got)
	}
}

func TestBestMatch(t *testing.T) {
	candidates := []string{"LeBron James", "Anthony Davis", "Austin Reaves"}

	idx, score := BestMatch("Lebron James", candidates, PlayerNameThreshold)
	if idx != 0 {
		t.Fatalf("best index = %d, want 0", idx)
	}
	if score < PlayerNameThreshold {
		t.Errorf("score %v below threshold", score)
	}

	idx, _ = BestMatch("Stephen Curry", candidates, PlayerNameThreshold)
	if idx != -1 {
		t.Errorf("unrelated name matched index %d", idx)
	}

	idx, _ = BestMatch("anyone", nil, PlayerNameThreshold)
	if idx != -1 {
		t.Errorf("empty candidates matched index %d", idx)
	}
}

func TestSimilarityExactThreshold(t *testing.T) {
	// Ten characters with three edits: ratio exactly 0.70
	got := Similarity("abcdefghij", "abcdefgxyz")
	if math.Abs(got-0.7) > 1e-12 {
		t.Errorf("similarity = %v, want 0.7", got)
	}
	if idx, _ := BestMatch("abcdefghij", []string{"abcdefgxyz"}, 0.70); idx != 0 {
		t.Error("score equal to threshold must be accepted")
	}
	if idx, _ := BestMatch("abcdefghij", []string{"abcdefwxyz"}, 0.70); idx != -1 {
		t.Error("score below threshold must be rejected")
	}
}
