package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSuite(t *testing.T, cfg RunConfig, declare func(*Suite)) Results {
	t.Helper()
	suite := NewSuite("test")
	declare(suite)
	results, err := Run(suite, cfg)
	require.NoError(t, err)
	return results
}

func TestRunExecutesInDeclarationOrder(t *testing.T) {
	var order []string
	results := runSuite(t, RunConfig{}, func(suite *Suite) {
		suite.Describe("a", func(s *S) {
			s.It("first", func(*T) { order = append(order, "a/first") })
			s.Describe("nested", func(s *S) {
				s.It("second", func(*T) { order = append(order, "a/nested/second") })
			})
			s.It("third", func(*T) { order = append(order, "a/third") })
		})
		suite.Describe("b", func(s *S) {
			s.It("fourth", func(*T) { order = append(order, "b/fourth") })
		})
	})

	assert.Equal(t, []string{"a/first", "a/nested/second", "a/third", "b/fourth"}, order)
	require.Len(t, results.Cases, 4)
	assert.Equal(t, "a/nested/second", results.Cases[1].ID.String())
	assert.True(t, results.OK())
}

func TestHookOrdering(t *testing.T) {
	var order []string
	runSuite(t, RunConfig{}, func(suite *Suite) {
		suite.Describe("outer", func(s *S) {
			s.BeforeEach(func(*T) { order = append(order, "before outer") })
			s.AfterEach(func(*T) { order = append(order, "after outer") })
			s.Describe("inner", func(s *S) {
				s.BeforeEach(func(*T) { order = append(order, "before inner") })
				s.AfterEach(func(*T) { order = append(order, "after inner") })
				s.It("case", func(*T) { order = append(order, "case") })
			})
		})
	})

	assert.Equal(t, []string{
		"before outer", "before inner", "case", "after inner", "after outer",
	}, order)
}

func TestFailureDoesNotStopTheSuite(t *testing.T) {
	var ran []string
	results := runSuite(t, RunConfig{}, func(suite *Suite) {
		suite.Describe("g", func(s *S) {
			s.It("fails", func(t *T) {
				ran = append(ran, "fails")
				t.Errorf("boom")
			})
			s.It("passes", func(*T) { ran = append(ran, "passes") })
		})
	})

	assert.Equal(t, []string{"fails", "passes"}, ran)
	require.Len(t, results.Cases, 2)
	assert.Equal(t, StatusFail, results.Cases[0].Status)
	assert.Equal(t, StatusPass, results.Cases[1].Status)
	assert.False(t, results.OK())
	require.Len(t, results.Cases[0].Errors, 1)
	assert.EqualError(t, results.Cases[0].Errors[0], "boom")
}

func TestFatalfAbortsOnlyTheBody(t *testing.T) {
	afterRan := false
	cleanupRan := false
	reached := false
	results := runSuite(t, RunConfig{}, func(suite *Suite) {
		suite.Describe("g", func(s *S) {
			s.AfterEach(func(*T) { afterRan = true })
			s.It("fatal", func(t *T) {
				t.Defer(func() { cleanupRan = true })
				t.Fatalf("stop here")
				reached = true
			})
		})
	})

	assert.False(t, reached, "Fatalf must abort the case body")
	assert.True(t, afterRan, "AfterEach must run after a fatal failure")
	assert.True(t, cleanupRan, "Defer cleanups must run after a fatal failure")
	assert.Equal(t, StatusFail, results.Cases[0].Status)
}

func TestPanicBecomesFailure(t *testing.T) {
	results := runSuite(t, RunConfig{}, func(suite *Suite) {
		suite.Describe("g", func(s *S) {
			s.It("panics", func(*T) { panic("kaboom") })
			s.It("passes", func(*T) {})
		})
	})

	require.Len(t, results.Cases, 2)
	assert.Equal(t, StatusFail, results.Cases[0].Status)
	require.Len(t, results.Cases[0].Errors, 1)
	assert.Contains(t, results.Cases[0].Errors[0].Error(), "kaboom")
	assert.Equal(t, StatusPass, results.Cases[1].Status)
}

func TestSkip(t *testing.T) {
	results := runSuite(t, RunConfig{}, func(suite *Suite) {
		suite.Describe("g", func(s *S) {
			s.It("skipped", func(t *T) {
				t.SkipWithReason("not today")
				t.Errorf("unreachable")
			})
		})
	})

	require.Len(t, results.Cases, 1)
	assert.Equal(t, StatusSkip, results.Cases[0].Status)
	assert.Equal(t, "not today", results.Cases[0].SkipReason)
	assert.Empty(t, results.Cases[0].Errors)
	assert.True(t, results.OK())
}

func TestScratchIsolation(t *testing.T) {
	env, err := NewEnv()
	require.NoError(t, err)

	runSuite(t, RunConfig{Env: env}, func(suite *Suite) {
		suite.Describe("g", func(s *S) {
			s.It("writes", func(t *T) {
				require.True(t, t.Scratch().AsNode().IsConnected())
				require.False(t, t.Scratch().AsNode().HasChildNodes())
				el := t.Doc().CreateElement("div")
				el.SetId("leftover")
				t.Scratch().AsNode().AppendChild(el.AsNode())
				t.Loop().QueueTask(func() { t.Errorf("task leaked across cases") })
			})
			s.It("observes", func(t *T) {
				assert.False(t, t.Scratch().AsNode().HasChildNodes(),
					"scratch must start empty")
				assert.Nil(t, t.Doc().GetElementById("leftover"),
					"previous case content must be gone")
				assert.False(t, t.Loop().HasPending(),
					"queued work must not cross a case boundary")
			})
		})
	})

	assert.Nil(t, env.Scratch(), "no scratch container live after the run")
}

func TestFilterSelectsCases(t *testing.T) {
	var ran []string
	var include, exclude RegexList
	require.NoError(t, include.Set("^g/"))
	require.NoError(t, exclude.Set("skip-me"))

	results := runSuite(t, RunConfig{
		Filter: Filter{MustMatch: include, MustNotMatch: exclude},
	}, func(suite *Suite) {
		suite.Describe("g", func(s *S) {
			s.It("keep", func(*T) { ran = append(ran, "keep") })
			s.It("skip-me", func(*T) { ran = append(ran, "skip-me") })
		})
		suite.Describe("other", func(s *S) {
			s.It("out", func(*T) { ran = append(ran, "out") })
		})
	})

	assert.Equal(t, []string{"keep"}, ran)
	assert.Len(t, results.Cases, 1)
}

func TestPlanWeightsAndSuppressions(t *testing.T) {
	plan, err := ParsePlan([]byte(`
weights:
  "g/important": 5
suppress:
  - test: "g/known-bad"
    reason: "tracked upstream"
`))
	require.NoError(t, err)

	results := runSuite(t, RunConfig{Plan: plan}, func(suite *Suite) {
		suite.Describe("g", func(s *S) {
			s.It("important", func(*T) {})
			s.It("known-bad", func(t *T) { t.Errorf("still broken") })
		})
	})

	require.Len(t, results.Cases, 2)
	assert.Equal(t, 5, results.Cases[0].Weight)
	assert.Equal(t, StatusFail, results.Cases[1].Status)
	assert.True(t, results.Cases[1].Suppressed)
	assert.Equal(t, "tracked upstream", results.Cases[1].SuppressReason)
	assert.True(t, results.OK(), "suppressed failures must not fail the run")
	require.Len(t, results.SuppressedFailures, 1)
}

func TestWeightedScore(t *testing.T) {
	results := runSuite(t, RunConfig{}, func(suite *Suite) {
		suite.Describe("g", func(s *S) {
			s.ItWeighted("pass", 3, func(*T) {})
			s.ItWeighted("fail", 1, func(t *T) { t.Errorf("no") })
			s.It("skip", func(t *T) { t.Skip() })
		})
	})

	passed, failed, skipped, errored := results.Counts()
	assert.Equal(t, 1, passed)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 0, errored)
	assert.Equal(t, 4, results.TotalWeight())
	assert.Equal(t, 3, results.PassedWeight())
	assert.InDelta(t, 0.75, results.WeightedScore(), 1e-9)
}
