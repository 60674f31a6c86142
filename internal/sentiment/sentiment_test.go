package sentiment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"assistlink-go/internal/sentiment"
	"assistlink-go/internal/types"
)

func TestAnalyzeTextDecisionTable(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		sentiment  string
		confidence float64
	}{
		{"strong negative term", "this is a scam", types.SentimentNegative, 0.95},
		{"strong negative overrides count", "I am furious", types.SentimentNegative, 0.95},
		{"three negative terms", "this is terrible, horrible, the worst", types.SentimentNegative, 0.95},
		{"two frustration phrases", "the app is not working and I am fed up", types.SentimentNegative, 0.95},
		{"single negative term", "I am annoyed about this charge", types.SentimentNegative, 0.80},
		{"single frustration phrase", "the card machine is not working", types.SentimentNegative, 0.80},
		{"no signals", "When is my bill generated?", types.SentimentPositive, 0.80},
		{"polite message", "could you help me check my balance please", types.SentimentPositive, 0.80},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := sentiment.AnalyzeText(tc.message)
			assert.Equal(t, tc.sentiment, res.Sentiment)
			assert.InDelta(t, tc.confidence, res.Confidence, 0.001)
			assert.NotEmpty(t, res.Details)
		})
	}
}

func TestAnalyzeTextStrongNegativeAlwaysHighConfidence(t *testing.T) {
	for _, msg := range []string{
		"fraud", "you are a liar", "pathetic service", "they steal money",
		"outraged by this", "cheat", "disgusting behaviour",
	} {
		res := sentiment.AnalyzeText(msg)
		assert.Equal(t, types.SentimentNegative, res.Sentiment, msg)
		assert.InDelta(t, 0.95, res.Confidence, 0.001, msg)
	}
}

func TestAnalyzeTextSubstringQuirk(t *testing.T) {
	// "scam" hides inside "scampi": containment matching flags it anyway.
	// Preserved behavior, not a bug to fix.
	res := sentiment.AnalyzeText("the restaurant served scampi")
	assert.Equal(t, types.SentimentNegative, res.Sentiment)
	assert.InDelta(t, 0.95, res.Confidence, 0.001)
}

func TestAnalyzeTextIsDeterministic(t *testing.T) {
	first := sentiment.AnalyzeText("I hate this useless card")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, sentiment.AnalyzeText("I hate this useless card"))
	}
}
