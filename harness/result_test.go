package harness

import (
	"errors"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusString(t *testing.T) {
	assert.Equal(t, "PASS", StatusPass.String())
	assert.Equal(t, "FAIL", StatusFail.String())
	assert.Equal(t, "SKIP", StatusSkip.String())
	assert.Equal(t, "ERROR", StatusError.String())
	assert.Equal(t, "UNKNOWN", Status(42).String())
}

func TestCaseID(t *testing.T) {
	id := CaseID{"events", "declarative"}
	assert.Equal(t, "events/declarative", id.String())

	child := id.Plus("casing")
	assert.Equal(t, "events/declarative/casing", child.String())
	assert.Equal(t, "events/declarative", id.String(), "Plus must not mutate the receiver")
}

func TestResultsAggregation(t *testing.T) {
	var r Results
	r.add(CaseResult{ID: CaseID{"a"}, Status: StatusPass, Weight: 1})
	r.add(CaseResult{ID: CaseID{"b"}, Status: StatusFail, Weight: 2})
	r.add(CaseResult{ID: CaseID{"c"}, Status: StatusFail, Weight: 1, Suppressed: true, SuppressReason: "known"})
	r.add(CaseResult{ID: CaseID{"d"}, Status: StatusError, Weight: 1})

	assert.Len(t, r.Failures, 2)
	assert.Len(t, r.SuppressedFailures, 1)
	assert.False(t, r.OK())
}

func TestExportJSONReportShape(t *testing.T) {
	var r Results
	r.add(CaseResult{
		ID:       CaseID{"children", "renders"},
		Status:   StatusPass,
		Weight:   2,
		Duration: 5 * time.Millisecond,
	})
	r.add(CaseResult{
		ID:             CaseID{"events", "casing"},
		Status:         StatusFail,
		Weight:         3,
		Errors:         []error{errors.New(`flag text = "false", want "true"`)},
		Duration:       2 * time.Millisecond,
		Suppressed:     true,
		SuppressReason: "known casing gap",
	})
	r.add(CaseResult{
		ID:         CaseID{"children", "skipped"},
		Status:     StatusSkip,
		Weight:     1,
		SkipReason: "not applicable",
	})

	data, err := r.ExportJSON()
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "report", data)
}
