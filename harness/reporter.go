package harness

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter receives progress events while a suite runs. Implementations
// must tolerate being called for cases they never saw start (skips).
type Reporter interface {
	CaseStarted(id CaseID)
	CaseError(id CaseID, err error)
	CaseFinished(res CaseResult, debug []string)
	CaseSkipped(id CaseID, reason string)
	SuiteFinished(results Results)
}

var (
	consolePassColor     = color.New(color.FgGreen)
	consoleFailColor     = color.New(color.FgRed)
	consoleSkipColor     = color.New(color.FgYellow)
	consoleSuppressColor = color.New(color.FgMagenta)
	consoleDebugColor    = color.New(color.Faint)
)

// ConsoleReporter writes human-readable progress to an io.Writer.
type ConsoleReporter struct {
	// Out is where output goes, typically os.Stdout.
	Out io.Writer

	// DebugAll echoes each case's debug output even when it passes.
	// Debug output of failed cases is always shown.
	DebugAll bool
}

func (c *ConsoleReporter) CaseStarted(id CaseID) {}

func (c *ConsoleReporter) CaseError(id CaseID, err error) {
	fmt.Fprintf(c.Out, "  %s\n", err)
}

func (c *ConsoleReporter) CaseFinished(res CaseResult, debug []string) {
	switch res.Status {
	case StatusPass:
		fmt.Fprintf(c.Out, "%s %s\n", consolePassColor.Sprint("PASS"), res.ID)
		if c.DebugAll {
			c.printDebug(debug)
		}
	case StatusFail, StatusError:
		label := consoleFailColor.Sprint(res.Status.String())
		if res.Suppressed {
			label = consoleSuppressColor.Sprintf("%s (suppressed: %s)", res.Status, res.SuppressReason)
		}
		fmt.Fprintf(c.Out, "%s %s\n", label, res.ID)
		c.printDebug(debug)
	}
}

func (c *ConsoleReporter) CaseSkipped(id CaseID, reason string) {
	if reason == "" {
		fmt.Fprintf(c.Out, "%s %s\n", consoleSkipColor.Sprint("SKIP"), id)
		return
	}
	fmt.Fprintf(c.Out, "%s %s (%s)\n", consoleSkipColor.Sprint("SKIP"), id, reason)
}

func (c *ConsoleReporter) SuiteFinished(results Results) {
	passed, failed, skipped, errored := results.Counts()
	fmt.Fprintf(c.Out, "\n%d passed, %d failed, %d skipped, %d errored\n",
		passed, failed, skipped, errored)
	fmt.Fprintf(c.Out, "weighted score: %d/%d (%.1f%%)\n",
		results.PassedWeight(), results.TotalWeight(), results.WeightedScore()*100)
	if len(results.SuppressedFailures) > 0 {
		fmt.Fprintf(c.Out, "%s\n", consoleSuppressColor.Sprintf(
			"%d failure(s) suppressed by the test plan", len(results.SuppressedFailures)))
	}
}

func (c *ConsoleReporter) printDebug(debug []string) {
	for _, line := range debug {
		fmt.Fprintf(c.Out, "  %s\n", consoleDebugColor.Sprintf("DEBUG %s", line))
	}
}

// NullReporter discards all events. Useful for programmatic runs that
// only care about the returned Results.
type NullReporter struct{}

func (NullReporter) CaseStarted(id CaseID)                       {}
func (NullReporter) CaseError(id CaseID, err error)              {}
func (NullReporter) CaseFinished(res CaseResult, debug []string) {}
func (NullReporter) CaseSkipped(id CaseID, reason string)        {}
func (NullReporter) SuiteFinished(results Results)               {}

// MultiReporter fans events out to several reporters in order.
type MultiReporter []Reporter

func (m MultiReporter) CaseStarted(id CaseID) {
	for _, r := range m {
		r.CaseStarted(id)
	}
}

func (m MultiReporter) CaseError(id CaseID, err error) {
	for _, r := range m {
		r.CaseError(id, err)
	}
}

func (m MultiReporter) CaseFinished(res CaseResult, debug []string) {
	for _, r := range m {
		r.CaseFinished(res, debug)
	}
}

func (m MultiReporter) CaseSkipped(id CaseID, reason string) {
	for _, r := range m {
		r.CaseSkipped(id, reason)
	}
}

func (m MultiReporter) SuiteFinished(results Results) {
	for _, r := range m {
		r.SuiteFinished(results)
	}
}
