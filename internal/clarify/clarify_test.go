package clarify

import (
	"encoding/json"
	"testing"

	"github.com/sant0-9/sharpen/internal/diagnose"
	"github.com/sant0-9/sharpen/internal/rubric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func criteria(qs []Question) []rubric.Criterion {
	out := make([]rubric.Criterion, len(qs))
	for i, q := range qs {
		out[i] = q.Criterion
	}
	return out
}

func TestGeneratePriorityOrder(t *testing.T) {
	// missing: constraints, context, uncertainty
	d := diagnose.NewDiagnosis(rubric.Outcome, rubric.OutputFormat, rubric.ProcessRubric)

	got := Generate(d, 2)
	require.Len(t, got, 2)
	assert.Equal(t, []rubric.Criterion{rubric.Constraints, rubric.Context}, criteria(got))
	assert.Equal(t, rubric.Constraints.Question(), got[0].Text)
	assert.Equal(t, rubric.Context.Question(), got[1].Text)
}

func TestGenerateTieBreakUsesRubricOrder(t *testing.T) {
	d := diagnose.NewDiagnosis()

	got := Generate(d, rubric.Count)
	assert.Equal(t, []rubric.Criterion{
		rubric.Outcome,
		rubric.OutputFormat,
		rubric.Constraints,
		rubric.Context,
		rubric.ProcessRubric,
		rubric.Uncertainty,
	}, criteria(got))
}

func TestGenerateZeroDiagnosisHasNoDuplicates(t *testing.T) {
	var d diagnose.Diagnosis

	got := Generate(d, rubric.Count)
	require.Len(t, got, rubric.Count)

	seen := map[rubric.Criterion]bool{}
	for _, q := range got {
		assert.False(t, seen[q.Criterion], "duplicate question for %s", q.Criterion)
		seen[q.Criterion] = true
	}
	assert.Equal(t, rubric.Outcome, got[0].Criterion)
}

func TestGenerateBounded(t *testing.T) {
	tests := []struct {
		name      string
		satisfied []rubric.Criterion
		max       int
		wantLen   int
	}{
		{"zero max", nil, 0, 0},
		{"negative max", nil, -3, 0},
		{"max below missing", nil, 3, 3},
		{"max above missing", []rubric.Criterion{rubric.Outcome, rubric.Context}, 10, 4},
		{"nothing missing", rubric.All(), 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := diagnose.NewDiagnosis(tt.satisfied...)
			got := Generate(d, tt.max)

			assert.Len(t, got, tt.wantLen)
			assert.NotNil(t, got)

			seen := map[rubric.Criterion]bool{}
			for _, q := range got {
				assert.False(t, seen[q.Criterion], "duplicate %s", q.Criterion)
				seen[q.Criterion] = true
				assert.False(t, d.Has(q.Criterion), "question for satisfied %s", q.Criterion)
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	d := diagnose.Diagnose("I'm a teacher. Never use jargon.")

	assert.Equal(t, Generate(d, 3), Generate(d, 3))
}

func TestGenerateDoesNotTouchDiagnosis(t *testing.T) {
	d := diagnose.NewDiagnosis(rubric.Context)
	before := d.Missing()

	Generate(d, 5)

	assert.Equal(t, before, d.Missing())
}

func TestQuestionJSON(t *testing.T) {
	data, err := json.Marshal(Question{Criterion: rubric.OutputFormat, Text: "Which format?"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"criterion":"outputFormat","question":"Which format?"}`, string(data))
}
