// Package clarify turns the gaps in a diagnosis into a short, prioritised
// list of clarifying questions.
package clarify

import (
	"sort"

	"github.com/sant0-9/sharpen/internal/diagnose"
	"github.com/sant0-9/sharpen/internal/rubric"
)

// Question asks the user for the information behind one missing criterion
type Question struct {
	Criterion rubric.Criterion `json:"criterion"`
	Text      string           `json:"question"`
}

// Generate returns at most limit questions, one per missing criterion, ordered by
// descending criterion weight. Equal weights keep rubric order.
func Generate(d diagnose.Diagnosis, limit int) []Question {
	missing := d.Missing()

	// Missing is already in rubric order, so a stable sort gives the tie-break.
	sort.SliceStable(missing, func(i, j int) bool {
		return missing[i].Weight() > missing[j].Weight()
	})

	if limit < 0 {
		limit = 0
	}
	if limit < len(missing) {
		missing = missing[:limit]
	}

	questions := make([]Question, 0, len(missing))
	for _, c := range missing {
		questions = append(questions, Question{
			Criterion: c,
			Text:      c.Question(),
		})
	}
	return questions
}
