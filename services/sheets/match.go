package sheets

import (
	"strings"

	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// MatchTitle finds the sheet tab for a month. Candidates are tried in
// order; for each one an exact match wins over a case-insensitive match,
// which wins over a substring match.
func MatchTitle(titles []string, candidates []string) (string, bool) {
	for _, want := range candidates {
		for _, title := range titles {
			if title == want {
				return title, true
			}
		}
		for _, title := range titles {
			if strings.EqualFold(title, want) {
				return title, true
			}
		}
		lowerWant := strings.ToLower(want)
		for _, title := range titles {
			if strings.Contains(strings.ToLower(title), lowerWant) {
				return title, true
			}
		}
	}
	return "", false
}

// SuggestTitle picks the tab name closest to want, for "sheet not found"
// error messages. Returns "" when nothing is similar enough.
func SuggestTitle(titles []string, want string) string {
	if len(titles) == 0 {
		return ""
	}

	cm := closestmatch.New(titles, []int{2, 3})
	best := cm.Closest(strings.ToLower(want))
	if best == "" {
		return ""
	}

	if similarity(strings.ToLower(best), strings.ToLower(want)) < 0.4 {
		return ""
	}
	return best
}

func similarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(distance)/maxLen
}
