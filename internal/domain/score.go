package domain

import "math"

const (
	// AnswerWeight is how much a single quiz answer adds to its category.
	AnswerWeight = 2

	// QuestionCount is the size of the fixed question set every participant answers.
	QuestionCount = 7

	// maxCategorySpread is the largest possible per-category difference between
	// two participants: one answers everything into a category, the other nothing.
	maxCategorySpread = AnswerWeight * QuestionCount

	// compatibilityCurve compresses the high end of the distance scale so that
	// near matches stay visually differentiated. Tuned for the event UI; the
	// displayed percentages depend on this exact value.
	compatibilityCurve = 0.6
)

// maxDistance is the diagonal of the score hypercube.
var maxDistance = math.Sqrt(float64(NumCategories * maxCategorySpread * maxCategorySpread))

// ScoreVector holds one score per category, in Categories order.
type ScoreVector [NumCategories]int

// ScoresFromAnswers converts ordered quiz answers into a score vector.
// Each non-nil answer adds AnswerWeight to its category; nil answers are skipped.
// Unknown category labels are skipped as well — the boundary validates them.
func ScoresFromAnswers(answers []*string) ScoreVector {
	var v ScoreVector
	for _, a := range answers {
		if a == nil {
			continue
		}
		if i, ok := categoryIndex[Category(*a)]; ok {
			v[i] += AnswerWeight
		}
	}
	return v
}

// IsZero reports whether the vector carries no signal at all.
func (v ScoreVector) IsZero() bool {
	for _, s := range v {
		if s != 0 {
			return false
		}
	}
	return true
}

// Dominant returns the category with the highest score. Ties break towards
// the earlier category in Categories order.
func (v ScoreVector) Dominant() Category {
	best := 0
	for i := 1; i < NumCategories; i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return Categories[best]
}

// Compatibility converts the Euclidean distance between two score vectors into
// a 0-100 percentage. Raw sums are comparable because every participant answers
// the same fixed question set. A vector with no signal on either side yields 0.
func Compatibility(a, b ScoreVector) int {
	if a.IsZero() || b.IsZero() {
		return 0
	}

	var sum float64
	for i := 0; i < NumCategories; i++ {
		d := float64(a[i] - b[i])
		sum += d * d
	}
	ratio := math.Sqrt(sum) / maxDistance
	if ratio > 1 {
		ratio = 1
	}

	return int(math.Round(100 * (1 - math.Pow(ratio, compatibilityCurve))))
}
