package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildRefineSystem(t *testing.T) {
	system := BuildRefineSystem("")

	assert.NotEmpty(t, system)
	assert.Contains(t, system, `"prompt"`)
	assert.Contains(t, system, `"changes"`)
	assert.NotContains(t, system, "STYLE GUIDE")
}

func TestBuildRefineSystemWithStyle(t *testing.T) {
	system := BuildRefineSystem("\n- Keep it under 120 words.\n")

	assert.True(t, strings.HasPrefix(system, BuildRefineSystem("")))
	assert.True(t, strings.HasSuffix(system, "STYLE GUIDE (follow it unless it contradicts the user's answers):\n- Keep it under 120 words."))
}

func TestBuildRefineUser(t *testing.T) {
	got := BuildRefineUser(RefineInput{
		Original:  "  write a poem  ",
		Satisfied: []string{"outcome"},
		Missing:   []string{"outputFormat", "context"},
		Answers: []Answer{
			{Criterion: "outputFormat", Question: "Which format?", Text: " four stanzas "},
			{Criterion: "context", Question: "Who is it for?", Text: "   "},
		},
	})

	want := "ORIGINAL PROMPT:\nwrite a poem\n\n" +
		"ALREADY COVERED: outcome\n" +
		"MISSING: outputFormat, context\n" +
		"\nANSWERS:\n" +
		"- [outputFormat] Which format?\n  four stanzas\n"
	assert.Equal(t, want, got)
}

func TestBuildRefineUserWithoutAnswers(t *testing.T) {
	got := BuildRefineUser(RefineInput{Original: "x"})

	assert.Equal(t, "ORIGINAL PROMPT:\nx\n\n", got)
	assert.NotContains(t, got, "ANSWERS")
}
