package services

import (
	"math"

	"alfredoptarigan/interview-evaluator/internal/models"
)

const maxScore = 100.0

// CalculateBreakdown pairs scores with criteria by position. Pairing stops at
// the shorter of the two, so missing trailing criteria are absent from the
// breakdown rather than zero. Each contribution and the final sum are capped
// at 100. An infinite score on a zero weight contributes nothing.
func CalculateBreakdown(scores []float64, criteria []Criterion) (models.Breakdown, float64) {
	n := min(len(scores), len(criteria))

	breakdown := make(models.Breakdown, 0, n)
	var total float64
	for i := 0; i < n; i++ {
		contribution := scores[i] * criteria[i].Weight
		if math.IsNaN(contribution) {
			contribution = 0
		}
		contribution = math.Min(contribution, maxScore)
		breakdown = append(breakdown, models.CriterionScore{
			Criterion:    criteria[i].Name,
			RawScore:     scores[i],
			Weight:       criteria[i].Weight,
			Contribution: contribution,
		})
		total += contribution
	}

	return breakdown, math.Min(total, maxScore)
}
