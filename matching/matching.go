// Package matching implements tag-set containment matching between users and
// challenge teams, plus the catalog of valid tags and activity types.
package matching

// Policy controls how many teams a user may be assigned to within a single
// challenge when several of its tag-sets match.
type Policy string

const (
	// PolicyFirstMatch assigns the first matching tag-set only, so a user
	// holds at most one assignment per challenge.
	PolicyFirstMatch Policy = "firstMatch"
	// PolicyAllMatches assigns every matching tag-set.
	PolicyAllMatches Policy = "allMatches"
)

// ParsePolicy maps a config string to a Policy, defaulting to firstMatch.
func ParsePolicy(s string) Policy {
	if Policy(s) == PolicyAllMatches {
		return PolicyAllMatches
	}
	return PolicyFirstMatch
}

// Contains reports whether candidate includes every tag in required.
// An empty required set is vacuously contained; challenge validation rejects
// empty tag-sets before they reach the matcher.
func Contains(required, candidate []string) bool {
	for _, tag := range required {
		found := false
		for _, c := range candidate {
			if c == tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Matches reports whether at least one of the user's tag-sets fully contains
// the required tag-set. There is no partial credit or weighting.
func Matches(required []string, userTagSets [][]string) bool {
	for _, set := range userTagSets {
		if Contains(required, set) {
			return true
		}
	}
	return false
}

// MatchChallenge evaluates a user's tag-sets against a challenge's required
// tag-sets in order and returns the indices of the matched entries. Under
// PolicyFirstMatch the result holds at most one index.
func MatchChallenge(userTagSets, challengeTags [][]string, policy Policy) []int {
	var matched []int
	for i, required := range challengeTags {
		if Matches(required, userTagSets) {
			matched = append(matched, i)
			if policy == PolicyFirstMatch {
				break
			}
		}
	}
	return matched
}
