// Package diagnose scores a draft prompt against the rubric using surface
// heuristics. Every check is a pure function of the prompt text.
package diagnose

import (
	"regexp"
	"strings"

	"github.com/sant0-9/sharpen/internal/rubric"
)

type cue struct {
	name string
	re   *regexp.Regexp
}

func newCue(name, pattern string) cue {
	return cue{name: name, re: regexp.MustCompile(`(?i)` + pattern)}
}

type check struct {
	cues   []cue
	absent string
}

var checks = [...]check{
	rubric.Outcome: {
		absent: "no goal or description of the desired result",
		cues: []cue{
			newCue("goal", `\b(goal|objective|purpose|aim)\b`),
			newCue("want", `\b(i|we) (want|need|would like|'d like)\b|\bi'd like\b`),
			newCue("so that", `\b(so that|in order to)\b`),
			newCue("result", `\b(end result|deliverable|outcome|success (means|looks like|is))\b`),
			newCue("should produce", `\bshould (produce|result in|return|output|generate)\b`),
		},
	},
	rubric.OutputFormat: {
		absent: "no output format or structure requested",
		cues: []cue{
			newCue("format", `\b(format(ted)?|structure[ds]?|layout|template|schema)\b`),
			newCue("data format", `\b(json|yaml|csv|xml|markdown|html)\b`),
			newCue("list", `\b(bullet(ed)?( points?| list)?|numbered list|checklist|table|outline)\b`),
			newCue("length", `\b\d+\s*(words?|sentences?|paragraphs?|bullets?|items?|lines?|characters?)\b`),
			newCue("sections", `\b(headings?|sections?|code blocks?)\b`),
		},
	},
	rubric.Constraints: {
		absent: "no limits, exclusions or requirements stated",
		cues: []cue{
			newCue("must", `\b(must|must not|required?|mandatory)\b`),
			newCue("negative", `\b(do not|don't|never|avoid|without|exclude|excluding)\b`),
			newCue("limit", `\b(at most|at least|no more than|no less than|maximum|minimum|limit(ed)? to|under \d+|within)\b`),
			newCue("only", `\bonly\b`),
			newCue("budget", `\b(deadline|budget|time limit)\b`),
		},
	},
	rubric.Context: {
		absent: "no audience or background given",
		cues: []cue{
			newCue("audience", `\b(audience|readers?|stakeholders?|customers?|beginners?|experts?|non-technical)\b`),
			newCue("background", `\b(background|context|situation|currently|previously)\b`),
			newCue("about me", `\b(i am|i'm|we are|we're) (a|an|the|working|building)\b`),
			newCue("team", `\b(my|our) (team|company|project|product|manager|boss|client|codebase)\b`),
			newCue("because", `\bbecause\b`),
		},
	},
	rubric.ProcessRubric: {
		absent: "no steps, process or evaluation criteria",
		cues: []cue{
			newCue("steps", `\b(step[- ]by[- ]step|steps?|first,? .* then|finally)\b`),
			newCue("process", `\b(process|workflow|approach|methodology|procedure)\b`),
			newCue("criteria", `\b(criteria|criterion|rubric|checklist|evaluate|score|grade)\b`),
			newCue("verify", `\b(verify|double[- ]check|check (that|your|for)|review (it|your))\b`),
			newCue("think", `\b(think through|reason about|before (you )?answer(ing)?)\b`),
		},
	},
	rubric.Uncertainty: {
		absent: "nothing on what to do when information is missing or unclear",
		cues: []cue{
			newCue("unsure", `\b(unsure|not sure|uncertain|unclear|ambiguous)\b`),
			newCue("assumptions", `\b(assum(e|es|ing|ption|ptions))\b`),
			newCue("ask", `\b(ask (me|clarifying|questions?|for clarification)|clarify)\b`),
			newCue("unknown", `\b(don't know|do not know|unknown|missing information|say so)\b`),
			newCue("confidence", `\b(confidence|caveats?|flag (any|anything|it))\b`),
		},
	},
}

var _ = [1]struct{}{}[rubric.Count-len(checks)]

// Diagnose evaluates prompt against every criterion. It never fails; an empty
// prompt yields a diagnosis with every criterion missing.
func Diagnose(prompt string) Diagnosis {
	prompt = strings.TrimSpace(prompt)

	var d Diagnosis
	for _, c := range rubric.All() {
		d.findings[c] = evaluate(c, prompt)
	}
	return d
}

func evaluate(c rubric.Criterion, prompt string) Finding {
	ch := checks[c]
	f := Finding{Criterion: c, Note: ch.absent}
	if prompt == "" {
		return f
	}

	for _, cu := range ch.cues {
		if cu.re.MatchString(prompt) {
			f.Cues = append(f.Cues, cu.name)
		}
	}
	if len(f.Cues) == 0 {
		return f
	}

	f.Satisfied = true
	f.Note = "found: " + strings.Join(f.Cues, ", ")
	f.Confidence = min(1, 0.5+0.25*float64(len(f.Cues)-1))
	return f
}
