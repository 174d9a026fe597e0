// Package rubric defines the fixed set of prompt quality criteria and the
// read-only tables keyed by them.
package rubric

import "fmt"

// Criterion is one dimension of prompt quality
type Criterion int

// Declaration order is the tie-break order used when weights are equal.
const (
	Outcome Criterion = iota
	OutputFormat
	Constraints
	Context
	ProcessRubric
	Uncertainty

	numCriteria
)

// Count is the number of rubric criteria
const Count = int(numCriteria)

// QuestionSetVersion identifies the revision of the question templates
const QuestionSetVersion = "2024-11"

var keys = [...]string{
	Outcome:       "outcome",
	OutputFormat:  "outputFormat",
	Constraints:   "constraints",
	Context:       "context",
	ProcessRubric: "processRubric",
	Uncertainty:   "uncertainty",
}

var labels = [...]string{
	Outcome:       "Outcome",
	OutputFormat:  "Output format",
	Constraints:   "Constraints",
	Context:       "Context",
	ProcessRubric: "Process / rubric",
	Uncertainty:   "Uncertainty handling",
}

var weights = [...]float64{
	Outcome:       0.25,
	OutputFormat:  0.25,
	Constraints:   0.20,
	Context:       0.15,
	ProcessRubric: 0.10,
	Uncertainty:   0.05,
}

var questions = [...]string{
	Outcome:       "What should the result be? Describe what a successful answer looks like and what you will do with it.",
	OutputFormat:  "What format do you want the answer in (e.g. bullet list, table, JSON, a specific length)?",
	Constraints:   "Are there any limits or things to avoid (length, tone, scope, tools, topics that are off-limits)?",
	Context:       "Who is this for and what background should the model know (audience, domain, current situation)?",
	ProcessRubric: "Should the model follow particular steps or judge its answer against specific criteria?",
	Uncertainty:   "What should the model do when it is unsure or information is missing (ask, state assumptions, say it doesn't know)?",
}

// Every table must have exactly one entry per criterion; a missing or extra
// entry makes one of these index expressions out of range at compile time.
var (
	_ = [1]struct{}{}[Count-len(keys)]
	_ = [1]struct{}{}[Count-len(labels)]
	_ = [1]struct{}{}[Count-len(weights)]
	_ = [1]struct{}{}[Count-len(questions)]
)

// All returns every criterion in declaration order
func All() []Criterion {
	all := make([]Criterion, Count)
	for i := range all {
		all[i] = Criterion(i)
	}
	return all
}

// Valid reports whether c is one of the declared criteria
func (c Criterion) Valid() bool {
	return c >= 0 && c < numCriteria
}

// String returns the criterion key, e.g. "outputFormat"
func (c Criterion) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Criterion(%d)", int(c))
	}
	return keys[c]
}

// Label returns a human readable name
func (c Criterion) Label() string {
	if !c.Valid() {
		return c.String()
	}
	return labels[c]
}

// Weight returns the priority weight used to order clarifying questions
func (c Criterion) Weight() float64 {
	if !c.Valid() {
		return 0
	}
	return weights[c]
}

// Question returns the clarifying question template for c
func (c Criterion) Question() string {
	if !c.Valid() {
		return ""
	}
	return questions[c]
}

func (c Criterion) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid criterion %d", int(c))
	}
	return []byte(keys[c]), nil
}

func (c *Criterion) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Parse maps a criterion key back to its Criterion
func Parse(key string) (Criterion, error) {
	for i, k := range keys {
		if k == key {
			return Criterion(i), nil
		}
	}
	return 0, fmt.Errorf("unknown criterion: %q", key)
}
