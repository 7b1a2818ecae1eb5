// Package matching provides the fuzzy name reconciliation shared by prop
// grading and odds-provider team mapping. The contract is the acceptance
// threshold and the directional-conflict veto, not a specific algorithm.
package matching

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// PlayerNameThreshold is the minimum similarity for resolving a prop's
// player name against a stat line when no player id is available.
const PlayerNameThreshold = 0.70

// Normalize lowercases a name, strips institutional filler words, and
// collapses whitespace so provider spellings compare cleanly.
func Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "&", " ")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, "-", " ")
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		switch f {
		case "university", "college", "univ", "the", "of":
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// Similarity returns a normalized edit-distance ratio in [0, 1] between two
// already raw names. Equal strings score 1. The score is symmetric.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		if na == "" {
			return 0
		}
		return 1
	}
	longest := len([]rune(na))
	if l := len([]rune(nb)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(na, nb)
	ratio := 1 - float64(dist)/float64(longest)

	// Token-set fallback: names with reordered tokens ("Smith, John" vs
	// "John Smith") edit-distance poorly but share every token.
	if tokens := tokenSetRatio(na, nb); tokens > ratio {
		ratio = tokens
	}
	if ratio < 0 {
		return 0
	}
	return ratio
}

func tokenSetRatio(a, b string) float64 {
	ta, tb := strings.Fields(a), strings.Fields(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	set := make(map[string]bool, len(ta))
	for _, t := range ta {
		set[t] = true
	}
	shared := 0
	for _, t := range tb {
		if set[t] {
			shared++
		}
	}
	union := len(set)
	for _, t := range tb {
		if !set[t] {
			union++
		}
	}
	return float64(shared) / float64(union)
}

// BestMatch scores name against each candidate and returns the index of the
// best candidate at or above threshold, or -1 when nothing qualifies.
// Below-threshold is "no match", never a guess.
func BestMatch(name string, candidates []string, threshold float64) (int, float64) {
	bestIdx, bestScore := -1, 0.0
	for i, c := range candidates {
		score := Similarity(name, c)
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	if bestScore < threshold {
		return -1, bestScore
	}
	return bestIdx, bestScore
}
