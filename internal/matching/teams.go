package matching

import "strings"

// mascotSuffixes are trailing nickname words a provider may append to a team
// name ("Michigan Wolverines"). Stripping them first keeps the similarity
// comparison on the institution name itself.
var mascotSuffixes = []string{
	"wolverines", "buckeyes", "tigers", "bulldogs", "wildcats", "eagles",
	"cardinals", "bears", "lions", "panthers", "hawks", "spartans",
	"trojans", "sooners", "longhorns", "aggies", "gators", "seminoles",
	"hurricanes", "crimson tide", "fighting irish", "blue devils",
	"tar heels", "jayhawks", "hoosiers", "razorbacks", "volunteers",
	"cornhuskers", "warriors", "knights", "rebels", "cougars", "huskies",
	"broncos", "rams", "owls", "falcons", "raiders", "mustangs",
}

// directionalTokens can flip a match to a geographically different program
// even when the rest of the name is nearly identical.
var directionalTokens = []string{
	"north", "south", "east", "west", "northern", "southern",
	"eastern", "western", "central", "state", "a m", "tech",
}

// StripMascot removes a known trailing mascot from a provider team name
func StripMascot(name string) string {
	n := Normalize(name)
	for _, suffix := range mascotSuffixes {
		if strings.HasSuffix(n, " "+suffix) {
			return strings.TrimSpace(strings.TrimSuffix(n, " "+suffix))
		}
	}
	return n
}

// DirectionalConflict reports whether exactly one of the two names carries a
// directional or qualifier token. "North Carolina" vs "South Carolina" and
// "Miami" vs "Miami (OH)" style collisions must never be paired on score
// alone.
func DirectionalConflict(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	for _, token := range directionalTokens {
		inA := containsToken(na, token)
		inB := containsToken(nb, token)
		if inA != inB {
			return true
		}
	}
	return false
}

func containsToken(name, token string) bool {
	fields := strings.Fields(name)
	tokenFields := strings.Fields(token)
	if len(tokenFields) == 1 {
		for _, f := range fields {
			if f == token {
				return true
			}
		}
		return false
	}
	return strings.Contains(" "+name+" ", " "+token+" ")
}

// TeamCandidate pairs a canonical team name with the caller's identifier
type TeamCandidate struct {
	Key  string
	Name string
}

// MatchTeam reconciles a provider team name against canonical team records.
// Order of attempts: exact normalized match, substring containment, then
// similarity at or above threshold. A directional conflict rejects the pair
// regardless of score. Returns the matched key or "" for no match.
func MatchTeam(providerName string, candidates []TeamCandidate, threshold float64) string {
	stripped := StripMascot(providerName)
	if stripped == "" {
		return ""
	}

	for _, c := range candidates {
		if Normalize(c.Name) == stripped && !DirectionalConflict(stripped, c.Name) {
			return c.Key
		}
	}

	for _, c := range candidates {
		cn := Normalize(c.Name)
		if cn == "" {
			continue
		}
		if (strings.Contains(cn, stripped) || strings.Contains(stripped, cn)) &&
			!DirectionalConflict(stripped, c.Name) {
			return c.Key
		}
	}

	bestKey, bestScore := "", 0.0
	for _, c := range candidates {
		if DirectionalConflict(stripped, c.Name) {
			continue
		}
		if score := Similarity(stripped, c.Name); score > bestScore {
			bestKey, bestScore = c.Key, score
		}
	}
	if bestScore < threshold {
		return ""
	}
	return bestKey
}
