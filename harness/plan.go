package harness

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Plan is an optional YAML document that tunes a run without touching
// the suite: per-case weight overrides and known-failure suppressions.
//
//	weights:
//	  "events/declarative/onClick": 3
//	suppress:
//	  - test: "events/declarative/onCLICK"
//	    reason: "casing fold not implemented yet"
//
// Weight keys match case IDs exactly; suppression patterns are regular
// expressions matched against the full case ID.
type Plan struct {
	Weights  map[string]int `yaml:"weights"`
	Suppress []Suppression  `yaml:"suppress"`
}

// Suppression marks failures of matching cases as expected.
type Suppression struct {
	Test   string `yaml:"test"`
	Reason string `yaml:"reason"`

	re *regexp.Regexp
}

// LoadPlan reads and validates a plan file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePlan(data)
}

// ParsePlan parses plan YAML and compiles its suppression patterns.
func ParsePlan(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	for i := range p.Suppress {
		re, err := regexp.Compile(p.Suppress[i].Test)
		if err != nil {
			return nil, fmt.Errorf("invalid plan suppression %q: %w", p.Suppress[i].Test, err)
		}
		p.Suppress[i].re = re
	}
	return &p, nil
}

// WeightFor returns the plan's weight override for a case, or the
// default. Safe to call on a nil plan.
func (p *Plan) WeightFor(id CaseID, def int) int {
	if p == nil {
		return def
	}
	if w, ok := p.Weights[id.String()]; ok {
		return w
	}
	return def
}

// SuppressionFor returns the reason a case's failures are suppressed,
// if any. Safe to call on a nil plan.
func (p *Plan) SuppressionFor(id CaseID) (string, bool) {
	if p == nil {
		return "", false
	}
	s := id.String()
	for _, sup := range p.Suppress {
		if sup.re.MatchString(s) {
			if sup.Reason == "" {
				return "suppressed by plan", true
			}
			return sup.Reason, true
		}
	}
	return "", false
}
