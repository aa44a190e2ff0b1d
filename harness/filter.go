package harness

import (
	"regexp"
	"strings"
)

// RegexList is a repeatable flag value holding compiled patterns.
type RegexList []*regexp.Regexp

// String implements flag.Value.
func (l *RegexList) String() string {
	var parts []string
	for _, r := range *l {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ", ")
}

// Set implements flag.Value, compiling and appending a pattern.
func (l *RegexList) Set(value string) error {
	re, err := regexp.Compile(value)
	if err != nil {
		return err
	}
	*l = append(*l, re)
	return nil
}

// AnyMatch reports whether any pattern matches the string.
func (l RegexList) AnyMatch(s string) bool {
	for _, r := range l {
		if r.MatchString(s) {
			return true
		}
	}
	return false
}

// Filter selects which cases run. An empty MustMatch list matches
// everything; MustNotMatch always wins over MustMatch.
type Filter struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

// Match reports whether a case with the given ID should run.
func (f Filter) Match(id CaseID) bool {
	s := id.String()
	if len(f.MustMatch) > 0 && !f.MustMatch.AnyMatch(s) {
		return false
	}
	return !f.MustNotMatch.AnyMatch(s)
}
