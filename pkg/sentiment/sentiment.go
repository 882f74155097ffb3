package sentiment

import "strings"

// Bounded keyword lexicon. Substring match, so "downgrade" counts for "down".
var positiveWords = []string{
	"beat", "growth", "upgrade", "surge", "profit", "strong", "rally", "bull",
}

var negativeWords = []string{
	"crash", "panic", "default", "lawsuit", "fraud", "halt", "sanction",
	"loss", "down", "bear",
}

// Score rates free text in [-1.0, 1.0] by counting lexicon hits.
// No hits on either side yields exactly 0.0.
func Score(text string) float64 {
	if text == "" {
		return 0.0
	}

	lower := strings.ToLower(text)

	hits := 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			hits++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			hits--
		}
	}

	if hits == 0 {
		return 0.0
	}

	score := float64(hits) / 3.0
	if score > 1.0 {
		return 1.0
	}
	if score < -1.0 {
		return -1.0
	}
	return score
}
