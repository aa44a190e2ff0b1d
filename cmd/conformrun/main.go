// Command conformrun executes the web component interop suite outside
// of go test and reports weighted results.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/AYColumbia/wcconform/conformance"
	"github.com/AYColumbia/wcconform/harness"
)

func main() {
	var runFilters, skipFilters harness.RegexList
	flag.Var(&runFilters, "run", "regex a case ID must match to run (repeatable)")
	flag.Var(&skipFilters, "skip", "regex of case IDs to skip (repeatable)")
	jsonPath := flag.String("json", "", "write a JSON report to this file")
	planPath := flag.String("plan", "", "YAML test plan with weight overrides and suppressions")
	debugAll := flag.Bool("debug-all", false, "show captured debug output for passing cases too")
	flag.Parse()

	var plan *harness.Plan
	if *planPath != "" {
		var err error
		plan, err = harness.LoadPlan(*planPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "conformrun: %v\n", err)
			os.Exit(2)
		}
	}

	env, err := conformance.NewEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "conformrun: %v\n", err)
		os.Exit(2)
	}

	results, err := harness.Run(conformance.DefaultSuite(), harness.RunConfig{
		Filter:   harness.Filter{MustMatch: runFilters, MustNotMatch: skipFilters},
		Reporter: &harness.ConsoleReporter{Out: os.Stdout, DebugAll: *debugAll},
		Plan:     plan,
		Env:      env,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "conformrun: %v\n", err)
		os.Exit(2)
	}

	if *jsonPath != "" {
		data, err := results.ExportJSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "conformrun: encoding report: %v\n", err)
			os.Exit(2)
		}
		if err := os.WriteFile(*jsonPath, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "conformrun: writing report: %v\n", err)
			os.Exit(2)
		}
	}

	if !results.OK() {
		os.Exit(1)
	}
}
