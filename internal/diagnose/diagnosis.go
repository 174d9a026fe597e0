package diagnose

import (
	"encoding/json"

	"github.com/sant0-9/sharpen/internal/rubric"
)

// Finding is the per-criterion outcome of a diagnosis
type Finding struct {
	Criterion  rubric.Criterion `json:"criterion"`
	Satisfied  bool             `json:"satisfied"`
	Note       string           `json:"note"`
	Confidence float64          `json:"confidence"`
	Cues       []string         `json:"cues,omitempty"`
}

// Diagnosis classifies every rubric criterion as satisfied or missing.
// It is immutable; accessors return copies.
type Diagnosis struct {
	findings [rubric.Count]Finding
}

// NewDiagnosis builds a diagnosis where exactly the given criteria are satisfied
func NewDiagnosis(satisfied ...rubric.Criterion) Diagnosis {
	var d Diagnosis
	for _, c := range rubric.All() {
		d.findings[c] = Finding{Criterion: c, Note: "not mentioned"}
	}
	for _, c := range satisfied {
		if !c.Valid() {
			continue
		}
		d.findings[c].Satisfied = true
		d.findings[c].Note = "provided"
		d.findings[c].Confidence = 1
	}
	return d
}

// Satisfied returns the criteria judged present, in rubric order
func (d Diagnosis) Satisfied() []rubric.Criterion {
	return d.filter(true)
}

// Missing returns the criteria judged absent, in rubric order
func (d Diagnosis) Missing() []rubric.Criterion {
	return d.filter(false)
}

// Has reports whether c was satisfied
func (d Diagnosis) Has(c rubric.Criterion) bool {
	return c.Valid() && d.findings[c].Satisfied
}

// Finding returns the finding for one criterion
func (d Diagnosis) Finding(c rubric.Criterion) Finding {
	if !c.Valid() {
		return Finding{Criterion: c}
	}
	return d.finding(c)
}

// Findings returns one finding per criterion, in rubric order
func (d Diagnosis) Findings() []Finding {
	out := make([]Finding, 0, rubric.Count)
	for _, c := range rubric.All() {
		out = append(out, d.finding(c))
	}
	return out
}

// Score is the summed weight of satisfied criteria, between 0 and 1
func (d Diagnosis) Score() float64 {
	var score float64
	for _, c := range d.Satisfied() {
		score += c.Weight()
	}
	return score
}

func (d Diagnosis) filter(satisfied bool) []rubric.Criterion {
	out := []rubric.Criterion{}
	for _, c := range rubric.All() {
		if d.findings[c].Satisfied == satisfied {
			out = append(out, c)
		}
	}
	return out
}

// finding copies the stored finding for c. The criterion comes from the
// index so a zero Diagnosis still reports every criterion once.
func (d Diagnosis) finding(c rubric.Criterion) Finding {
	f := d.findings[c]
	f.Criterion = c
	if f.Cues != nil {
		f.Cues = append([]string(nil), f.Cues...)
	}
	return f
}

type diagnosisJSON struct {
	Satisfied []rubric.Criterion `json:"satisfied"`
	Missing   []rubric.Criterion `json:"missing"`
	Findings  []Finding          `json:"findings"`
	Score     float64            `json:"score"`
}

func (d Diagnosis) MarshalJSON() ([]byte, error) {
	return json.Marshal(diagnosisJSON{
		Satisfied: d.Satisfied(),
		Missing:   d.Missing(),
		Findings:  d.Findings(),
		Score:     d.Score(),
	})
}
