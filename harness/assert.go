package harness

import (
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/AYColumbia/wcconform/dom"
)

// Assertion helpers on T. All Expect* helpers record failures with
// Errorf and return whether the assertion held; Require* helpers abort
// the case instead.

// ExpectEqual compares two values structurally and reports a diff on
// mismatch.
func (t *T) ExpectEqual(want, got any) bool {
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("value mismatch (-want +got):\n%s", diff)
		return false
	}
	return true
}

// ExpectTrue fails with the given message unless cond holds.
func (t *T) ExpectTrue(cond bool, format string, args ...any) bool {
	if !cond {
		t.Errorf(format, args...)
	}
	return cond
}

// RequireQuery finds exactly the first match for a selector under the
// scratch container, aborting the case when there is none.
func (t *T) RequireQuery(selector string) *dom.Element {
	el := t.scratch.QuerySelector(selector)
	if el == nil {
		t.Fatalf("no element matches %q under the scratch container", selector)
	}
	return el
}

// ExpectText asserts an element's text content.
func (t *T) ExpectText(el *dom.Element, want string) bool {
	got := el.TextContent()
	if got != want {
		t.Errorf("text content = %q, want %q", got, want)
		return false
	}
	return true
}

// ExpectValue asserts that an element carries a payload under the
// given name as either a property or an attribute. A property match is
// structural; an attribute match compares against the payload's string
// form. Framework integrations legitimately differ on which side of
// the property/attribute divide a value lands, so either satisfies the
// check.
func (t *T) ExpectValue(el *dom.Element, name string, want any) bool {
	prop, hasProp := el.Prop(name)
	if hasProp && cmp.Equal(want, prop) {
		return true
	}
	if el.HasAttribute(name) && el.GetAttribute(name) == fmt.Sprint(want) {
		return true
	}
	switch {
	case hasProp && el.HasAttribute(name):
		t.Errorf("neither property %q = %#v nor attribute %q = %q matches %#v",
			name, prop, name, el.GetAttribute(name), want)
	case hasProp:
		t.Errorf("property %q = %#v, want %#v (no such attribute)", name, prop, want)
	case el.HasAttribute(name):
		t.Errorf("attribute %q = %q, want %q (no such property)", name, el.GetAttribute(name), fmt.Sprint(want))
	default:
		t.Errorf("element has neither property nor attribute %q", name)
	}
	return false
}
