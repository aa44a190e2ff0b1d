package harness

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/AYColumbia/wcconform/dom"
	"github.com/AYColumbia/wcconform/eventloop"
)

// DefaultWeight is the weight of a case declared with It.
const DefaultWeight = 1

// Suite is a declared tree of test cases. Build one with NewSuite and
// Describe, then execute it with Run.
type Suite struct {
	name string
	root *group
}

type group struct {
	name   string
	parent *group
	before []func(*T)
	after  []func(*T)
	items  []item
}

// item preserves declaration order across nested groups and cases.
type item struct {
	group *group
	tc    *testCase
}

type testCase struct {
	name   string
	weight int
	fn     func(*T)
}

// NewSuite creates an empty suite.
func NewSuite(name string) *Suite {
	return &Suite{name: name, root: &group{}}
}

// Name returns the suite's name.
func (s *Suite) Name() string { return s.name }

// Describe adds a top-level group of cases.
func (s *Suite) Describe(name string, body func(*S)) {
	g := &group{name: name, parent: s.root}
	s.root.items = append(s.root.items, item{group: g})
	body(&S{g: g})
}

// S is the declaration scope passed to Describe bodies.
type S struct {
	g *group
}

// Describe adds a nested group.
func (s *S) Describe(name string, body func(*S)) {
	g := &group{name: name, parent: s.g}
	s.g.items = append(s.g.items, item{group: g})
	body(&S{g: g})
}

// BeforeEach registers a hook run before every case in this group and
// its subgroups. Outer hooks run first.
func (s *S) BeforeEach(fn func(*T)) {
	s.g.before = append(s.g.before, fn)
}

// AfterEach registers a hook run after every case in this group and
// its subgroups, even when the case failed. Inner hooks run first.
func (s *S) AfterEach(fn func(*T)) {
	s.g.after = append(s.g.after, fn)
}

// It declares a case with the default weight.
func (s *S) It(name string, fn func(*T)) {
	s.ItWeighted(name, DefaultWeight, fn)
}

// ItWeighted declares a case with an explicit reporting weight.
func (s *S) ItWeighted(name string, weight int, fn func(*T)) {
	s.g.items = append(s.g.items, item{tc: &testCase{name: name, weight: weight, fn: fn}})
}

// RunConfig controls a suite run. The zero value runs every case with
// no reporting against a fresh environment.
type RunConfig struct {
	Filter   Filter
	Reporter Reporter
	Plan     *Plan

	// Env, when non-nil, is reused instead of building a fresh one.
	// Callers that register custom elements up front pass it here.
	Env *Env
}

// Run executes every case the filter selects, in declaration order,
// and returns the aggregated results. Case failures do not produce an
// error; the returned error covers environment construction only.
func Run(s *Suite, cfg RunConfig) (Results, error) {
	env := cfg.Env
	if env == nil {
		var err error
		env, err = NewEnv()
		if err != nil {
			return Results{}, err
		}
	}
	reporter := cfg.Reporter
	if reporter == nil {
		reporter = NullReporter{}
	}

	r := &runner{env: env, cfg: cfg, reporter: reporter}
	r.walk(s.root, nil)
	reporter.SuiteFinished(r.results)
	return r.results, nil
}

type runner struct {
	env      *Env
	cfg      RunConfig
	reporter Reporter
	results  Results
}

func (r *runner) walk(g *group, id CaseID) {
	for _, it := range g.items {
		if it.group != nil {
			r.walk(it.group, id.Plus(it.group.name))
			continue
		}
		r.runCase(it.tc, g, id.Plus(it.tc.name))
	}
}

func (r *runner) runCase(tc *testCase, g *group, id CaseID) {
	if !r.cfg.Filter.Match(id) {
		return
	}
	weight := r.cfg.Plan.WeightFor(id, tc.weight)

	r.reporter.CaseStarted(id)
	start := time.Now()

	res := CaseResult{ID: id, Weight: weight}
	var debugLines []string
	scratch, err := r.env.SetUp()
	if err != nil {
		res.Status = StatusError
		res.Errors = []error{err}
		r.reporter.CaseError(id, err)
	} else {
		t := &T{env: r.env, scratch: scratch, id: id, weight: weight, reporter: r.reporter}
		t.run(tc.fn, hooksFor(g))
		res = t.result(weight)
		debugLines = t.debugLog
	}
	r.env.TearDown()
	res.Duration = time.Since(start)

	if res.Status == StatusSkip {
		r.reporter.CaseSkipped(id, res.SkipReason)
		r.results.add(res)
		return
	}
	if res.Status != StatusPass {
		if reason, ok := r.cfg.Plan.SuppressionFor(id); ok {
			res.Suppressed = true
			res.SuppressReason = reason
		}
	}
	r.reporter.CaseFinished(res, debugLines)
	r.results.add(res)
}

type hooks struct {
	before []func(*T)
	after  []func(*T)
}

// hooksFor collects BeforeEach hooks outermost-first and AfterEach
// hooks innermost-first along the group chain.
func hooksFor(g *group) hooks {
	var h hooks
	for cur := g; cur != nil; cur = cur.parent {
		h.before = append(append([]func(*T){}, cur.before...), h.before...)
		h.after = append(h.after, cur.after...)
	}
	return h
}

// T is the scope passed to hooks and case bodies. Fatalf, FailNow and
// Skip abort the case body by panicking with the T itself; the runner
// recovers that sentinel.
type T struct {
	env     *Env
	scratch *dom.Element
	id      CaseID
	weight  int

	failed     bool
	skipped    bool
	skipReason string
	errors     []error
	cleanups   []func()
	debugLog   []string
	reporter   Reporter
}

// ID returns the case's slash-joined identifier path.
func (t *T) ID() CaseID { return t.id }

// Weight returns the case's effective reporting weight.
func (t *T) Weight() int { return t.weight }

// Scratch returns the case's connected scratch container.
func (t *T) Scratch() *dom.Element { return t.scratch }

// Doc returns the shared document.
func (t *T) Doc() *dom.Document { return t.env.Document() }

// Loop returns the shared event loop.
func (t *T) Loop() *eventloop.Loop { return t.env.Loop() }

// Tick drains the microtask queue, letting deferred renderer work run.
func (t *T) Tick() { t.env.Loop().Tick() }

// Errorf records a failure and continues the case.
func (t *T) Errorf(format string, args ...any) {
	err := fmt.Errorf(format, args...)
	t.errors = append(t.errors, err)
	t.failed = true
	t.reporter.CaseError(t.id, err)
}

// Fatalf records a failure and aborts the case body.
func (t *T) Fatalf(format string, args ...any) {
	t.Errorf(format, args...)
	panic(t)
}

// FailNow aborts the case body; a failure must already be recorded.
func (t *T) FailNow() {
	t.failed = true
	panic(t)
}

// Skip marks the case skipped and aborts its body.
func (t *T) Skip() {
	t.skipped = true
	panic(t)
}

// SkipWithReason marks the case skipped with a reason and aborts.
func (t *T) SkipWithReason(reason string) {
	t.skipReason = reason
	t.Skip()
}

// Defer registers a cleanup run after the case and its AfterEach
// hooks, in reverse registration order, on every exit path.
func (t *T) Defer(fn func()) {
	t.cleanups = append(t.cleanups, fn)
}

// Debug records a line of diagnostic output attached to the case.
func (t *T) Debug(format string, args ...any) {
	t.debugLog = append(t.debugLog, fmt.Sprintf(format, args...))
}

// run executes hooks and the case body with panic recovery. A panic
// with the T sentinel is a controlled abort; anything else is recorded
// as a failure with its stack.
func (t *T) run(fn func(*T), h hooks) {
	t.protect(func() {
		for _, hook := range h.before {
			hook(t)
		}
		fn(t)
	})
	for _, hook := range h.after {
		hook := hook
		t.protect(func() { hook(t) })
	}
	for i := len(t.cleanups) - 1; i >= 0; i-- {
		cleanup := t.cleanups[i]
		t.protect(cleanup)
	}
}

func (t *T) protect(fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if sentinel, ok := r.(*T); ok && sentinel == t {
			return
		}
		t.Errorf("unexpected panic: %v\n%s", r, debug.Stack())
	}()
	fn()
}

func (t *T) result(weight int) CaseResult {
	res := CaseResult{ID: t.id, Weight: weight, Errors: t.errors}
	switch {
	case t.skipped && !t.failed:
		res.Status = StatusSkip
		res.SkipReason = t.skipReason
	case t.failed:
		res.Status = StatusFail
	default:
		res.Status = StatusPass
	}
	return res
}
