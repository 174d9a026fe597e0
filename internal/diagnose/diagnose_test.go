package diagnose

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/sant0-9/sharpen/internal/rubric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullPrompt = `My goal is to onboard new engineers to our codebase.
Write a summary in markdown with 5 bullet points. Do not include internal secrets.
The audience is junior developers. Work step by step and verify each claim.
If you are unsure, state your assumptions.`

func TestDiagnose(t *testing.T) {
	tests := []struct {
		name        string
		prompt      string
		wantMissing []rubric.Criterion
	}{
		{
			name:        "fully specified",
			prompt:      fullPrompt,
			wantMissing: []rubric.Criterion{},
		},
		{
			name:        "bare task",
			prompt:      "write a poem",
			wantMissing: rubric.All(),
		},
		{
			name:   "goal format and process only",
			prompt: "The goal is a project summary as a markdown table. Go step by step.",
			wantMissing: []rubric.Criterion{
				rubric.Constraints,
				rubric.Context,
				rubric.Uncertainty,
			},
		},
		{
			name:   "constraints and context only",
			prompt: "I'm a teacher. Never use jargon.",
			wantMissing: []rubric.Criterion{
				rubric.Outcome,
				rubric.OutputFormat,
				rubric.ProcessRubric,
				rubric.Uncertainty,
			},
		},
		{
			name:   "uncertainty only",
			prompt: "Ask me clarifying questions if anything is ambiguous.",
			wantMissing: []rubric.Criterion{
				rubric.Outcome,
				rubric.OutputFormat,
				rubric.Constraints,
				rubric.Context,
				rubric.ProcessRubric,
			},
		},
		{
			name:        "case insensitive",
			prompt:      strings.ToUpper(fullPrompt),
			wantMissing: []rubric.Criterion{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Diagnose(tt.prompt)
			assert.Equal(t, tt.wantMissing, d.Missing())
		})
	}
}

func TestDiagnosePartitionsRubric(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"\n\t",
		"abcd",
		fullPrompt,
		"日本語のプロンプト",
		strings.Repeat("must ", 1000),
		"```json\n{}\n```",
	}

	for _, in := range inputs {
		assertPartition(t, Diagnose(in), in)
	}
	assertPartition(t, Diagnosis{}, "zero value")
}

func assertPartition(t *testing.T, d Diagnosis, name string) {
	t.Helper()
	seen := map[rubric.Criterion]int{}
	for _, c := range d.Satisfied() {
		seen[c]++
	}
	for _, c := range d.Missing() {
		seen[c]++
	}
	require.Len(t, seen, rubric.Count, "input %q", name)
	for c, n := range seen {
		assert.Equal(t, 1, n, "criterion %s counted %d times for %q", c, n, name)
	}
}

func TestZeroDiagnosis(t *testing.T) {
	var d Diagnosis

	assert.Equal(t, rubric.All(), d.Missing())
	assert.Empty(t, d.Satisfied())
	assert.Zero(t, d.Score())

	findings := d.Findings()
	require.Len(t, findings, rubric.Count)
	for i, f := range findings {
		assert.Equal(t, rubric.Criterion(i), f.Criterion)
	}
	assert.Equal(t, rubric.Uncertainty, d.Finding(rubric.Uncertainty).Criterion)
}

func TestDiagnoseEmptyIsAllMissing(t *testing.T) {
	for _, in := range []string{"", "    "} {
		d := Diagnose(in)
		assert.Empty(t, d.Satisfied())
		assert.Equal(t, rubric.All(), d.Missing())
		assert.Zero(t, d.Score())
	}
}

func TestDiagnoseDeterministic(t *testing.T) {
	first := Diagnose(fullPrompt)

	var wg sync.WaitGroup
	results := make([]Diagnosis, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Diagnose(fullPrompt)
		}(i)
	}
	wg.Wait()

	for _, d := range results {
		assert.Equal(t, first.Findings(), d.Findings())
	}
}

func TestFindings(t *testing.T) {
	d := Diagnose("The goal is to ship. I want it so that users are happy.")

	f := d.Finding(rubric.Outcome)
	assert.True(t, f.Satisfied)
	assert.Equal(t, []string{"goal", "want", "so that"}, f.Cues)
	assert.Equal(t, 1.0, f.Confidence)
	assert.Equal(t, "found: goal, want, so that", f.Note)

	missing := d.Finding(rubric.Uncertainty)
	assert.False(t, missing.Satisfied)
	assert.Zero(t, missing.Confidence)
	assert.NotEmpty(t, missing.Note)
}

func TestFindingsAreCopies(t *testing.T) {
	d := Diagnose(fullPrompt)

	fs := d.Findings()
	fs[0].Satisfied = false
	fs[0].Cues[0] = "mutated"

	again := d.Finding(rubric.Outcome)
	assert.True(t, again.Satisfied)
	assert.NotEqual(t, "mutated", again.Cues[0])
}

func TestScore(t *testing.T) {
	assert.InDelta(t, 1.0, Diagnose(fullPrompt).Score(), 1e-9)
	assert.InDelta(t, 0.45, NewDiagnosis(rubric.Outcome, rubric.Constraints).Score(), 1e-9)
}

func TestNewDiagnosis(t *testing.T) {
	d := NewDiagnosis(rubric.Context, rubric.Outcome, rubric.Criterion(99))

	assert.Equal(t, []rubric.Criterion{rubric.Outcome, rubric.Context}, d.Satisfied())
	assert.True(t, d.Has(rubric.Context))
	assert.False(t, d.Has(rubric.Uncertainty))
	assert.False(t, d.Has(rubric.Criterion(99)))
}

func TestDiagnosisJSON(t *testing.T) {
	data, err := json.Marshal(NewDiagnosis(rubric.Outcome))
	require.NoError(t, err)

	var got struct {
		Satisfied []string `json:"satisfied"`
		Missing   []string `json:"missing"`
		Findings  []struct {
			Criterion string `json:"criterion"`
			Satisfied bool   `json:"satisfied"`
		} `json:"findings"`
		Score float64 `json:"score"`
	}
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, []string{"outcome"}, got.Satisfied)
	assert.Equal(t, []string{"outputFormat", "constraints", "context", "processRubric", "uncertainty"}, got.Missing)
	require.Len(t, got.Findings, rubric.Count)
	assert.Equal(t, "outcome", got.Findings[0].Criterion)
	assert.True(t, got.Findings[0].Satisfied)
	assert.InDelta(t, 0.25, got.Score, 1e-9)
}
