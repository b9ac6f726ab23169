package services

import (
	"math"

	"github.com/jonreiter/govader"
)

type SentimentScorer interface {
	// Polarity returns a value in [-1, 1]. It is deterministic for a given text.
	Polarity(text string) float64
}

type vaderSentimentScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewSentimentScorer() SentimentScorer {
	return &vaderSentimentScorer{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
	}
}

// Polarity implements SentimentScorer using the VADER compound score.
func (s *vaderSentimentScorer) Polarity(text string) float64 {
	compound := s.analyzer.PolarityScores(text).Compound
	if math.IsNaN(compound) {
		return 0
	}
	return math.Max(-1, math.Min(1, compound))
}
