// Package sentiment derives a sentiment label for an utterance. The text
// path is a pure keyword decision table; the audio path defers to Deepgram
// and fails open to neutral on any integration trouble.
package sentiment

import (
	"strings"

	"assistlink-go/internal/types"
)

var negativeWords = []string{
	"angry", "frustrated", "annoyed", "terrible", "horrible", "worst",
	"hate", "ridiculous", "unacceptable", "disgusting", "furious",
	"outraged", "stupid", "useless", "pathetic", "scam", "fraud",
	"steal", "cheat", "liar", "incompetent", "never", "nothing", "waste",
}

var strongNegativeWords = []string{
	"furious", "outraged", "scam", "fraud", "steal",
	"cheat", "liar", "pathetic", "disgusting",
}

// Multi-word frustration phrases. Each phrase counts at most once, same as
// the single-word terms.
var frustrationPhrases = []string{
	"not working", "doesn't work", "does not work",
	"fed up", "no one is helping", "nobody is helping",
	"wasted my time", "waste of time", "not happy",
	"very disappointed", "so disappointed", "sick of", "had enough",
}

// AnalyzeText runs the deterministic keyword decision table. Matching is
// substring containment, preserved from the original rule set even where it
// produces false positives inside longer words.
func AnalyzeText(message string) types.SentimentResult {
	lower := strings.ToLower(message)

	negative := countPresent(lower, negativeWords)
	strong := countPresent(lower, strongNegativeWords)
	frustration := countPresent(lower, frustrationPhrases)

	switch {
	case strong > 0 || negative >= 3 || frustration >= 2:
		return types.SentimentResult{
			Sentiment:  types.SentimentNegative,
			Confidence: 0.95,
			Details:    "High dissatisfaction detected. Customer shows strong negative emotions.",
		}
	case frustration >= 1 || negative >= 1:
		return types.SentimentResult{
			Sentiment:  types.SentimentNegative,
			Confidence: 0.80,
			Details:    "Some frustration detected. Monitoring for escalation.",
		}
	default:
		return types.SentimentResult{
			Sentiment:  types.SentimentPositive,
			Confidence: 0.80,
			Details:    "Customer appears calm and engaged.",
		}
	}
}

func countPresent(s string, terms []string) int {
	n := 0
	for _, t := range terms {
		if strings.Contains(s, t) {
			n++
		}
	}
	return n
}
