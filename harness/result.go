// Package harness is the conformance test harness: a suite declaration
// surface with per-case weights, a scratch DOM environment that
// isolates every case, and a runner that reports weighted results.
package harness

import (
	"encoding/json"
	"strings"
	"time"
)

// Status represents the outcome of a single test case.
type Status int

const (
	// StatusPass means every assertion in the case held.
	StatusPass Status = iota
	// StatusFail means an assertion mismatch or a panic in the case body.
	StatusFail
	// StatusSkip means the case did not run.
	StatusSkip
	// StatusError means the harness could not establish the case's
	// isolation boundary. Unlike a failure, this is a harness fault.
	StatusError
)

// String returns a human-readable status string.
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusFail:
		return "FAIL"
	case StatusSkip:
		return "SKIP"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// CaseID is the slash-joined path of a test case through its describe
// groups.
type CaseID []string

func (id CaseID) String() string {
	return strings.Join(id, "/")
}

// Plus returns a new CaseID with the given name appended.
func (id CaseID) Plus(name string) CaseID {
	return append(append(CaseID(nil), id...), name)
}

// CaseResult is the recorded outcome of one test case. Weight is a
// reporting multiplier only; it never affects pass/fail semantics.
type CaseResult struct {
	ID         CaseID
	Status     Status
	Weight     int
	Errors     []error
	Duration   time.Duration
	SkipReason string

	// Suppressed marks a failure listed in the test plan. Suppressed
	// failures are reported but do not fail the run.
	Suppressed     bool
	SuppressReason string
}

// Results aggregates the outcomes of a suite run.
type Results struct {
	Cases              []CaseResult
	Failures           []CaseResult
	SuppressedFailures []CaseResult
}

func (r *Results) add(res CaseResult) {
	r.Cases = append(r.Cases, res)
	if res.Status == StatusFail || res.Status == StatusError {
		if res.Suppressed {
			r.SuppressedFailures = append(r.SuppressedFailures, res)
		} else {
			r.Failures = append(r.Failures, res)
		}
	}
}

// OK reports whether the run had no non-suppressed failures or errors.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Counts returns the number of cases per outcome.
func (r Results) Counts() (passed, failed, skipped, errored int) {
	for _, c := range r.Cases {
		switch c.Status {
		case StatusPass:
			passed++
		case StatusFail:
			failed++
		case StatusSkip:
			skipped++
		case StatusError:
			errored++
		}
	}
	return
}

// TotalWeight returns the summed weight of all non-skipped cases.
func (r Results) TotalWeight() int {
	total := 0
	for _, c := range r.Cases {
		if c.Status != StatusSkip {
			total += c.Weight
		}
	}
	return total
}

// PassedWeight returns the summed weight of passing cases.
func (r Results) PassedWeight() int {
	total := 0
	for _, c := range r.Cases {
		if c.Status == StatusPass {
			total += c.Weight
		}
	}
	return total
}

// WeightedScore returns passed weight over total weight, in [0, 1].
// A run with no executed cases scores 0.
func (r Results) WeightedScore() float64 {
	total := r.TotalWeight()
	if total == 0 {
		return 0
	}
	return float64(r.PassedWeight()) / float64(total)
}

// JSON export model. Errors are flattened to strings and durations to
// milliseconds so external graders can consume the report directly.

type jsonReport struct {
	Cases   []jsonCase  `json:"cases"`
	Summary jsonSummary `json:"summary"`
}

type jsonCase struct {
	ID             string   `json:"id"`
	Status         string   `json:"status"`
	Weight         int      `json:"weight"`
	Errors         []string `json:"errors,omitempty"`
	DurationMillis int64    `json:"durationMillis"`
	SkipReason     string   `json:"skipReason,omitempty"`
	Suppressed     bool     `json:"suppressed,omitempty"`
	SuppressReason string   `json:"suppressReason,omitempty"`
}

type jsonSummary struct {
	Passed        int     `json:"passed"`
	Failed        int     `json:"failed"`
	Skipped       int     `json:"skipped"`
	Errored       int     `json:"errored"`
	TotalWeight   int     `json:"totalWeight"`
	PassedWeight  int     `json:"passedWeight"`
	WeightedScore float64 `json:"weightedScore"`
}

// ExportJSON serializes the results for external scoring layers.
func (r Results) ExportJSON() ([]byte, error) {
	report := jsonReport{Cases: make([]jsonCase, 0, len(r.Cases))}
	for _, c := range r.Cases {
		jc := jsonCase{
			ID:             c.ID.String(),
			Status:         c.Status.String(),
			Weight:         c.Weight,
			DurationMillis: c.Duration.Milliseconds(),
			SkipReason:     c.SkipReason,
			Suppressed:     c.Suppressed,
			SuppressReason: c.SuppressReason,
		}
		for _, err := range c.Errors {
			jc.Errors = append(jc.Errors, err.Error())
		}
		report.Cases = append(report.Cases, jc)
	}

	passed, failed, skipped, errored := r.Counts()
	report.Summary = jsonSummary{
		Passed:        passed,
		Failed:        failed,
		Skipped:       skipped,
		Errored:       errored,
		TotalWeight:   r.TotalWeight(),
		PassedWeight:  r.PassedWeight(),
		WeightedScore: r.WeightedScore(),
	}
	return json.MarshalIndent(report, "", "  ")
}
