// Package conformance holds the interop fixtures and the suite that
// exercises them: minimal components, each isolating one behavior of
// the renderer against native custom elements.
package conformance

import (
	"fmt"
	"strconv"

	"github.com/AYColumbia/wcconform/dom"
	"github.com/AYColumbia/wcconform/render"
)

// Custom element names used by the fixtures.
const (
	TagEmpty  = "x-empty"
	TagPanel  = "x-panel"
	TagProp   = "x-prop"
	TagListen = "x-listen"
)

// panelShadowMarkup is the fixed shadow content x-panel renders.
const panelShadowMarkup = "<h1>Test h1</h1><p>Test p</p>"

// RegisterNativeElements defines the custom elements the fixtures
// render. Call it once per document; the definitions persist across
// test cases.
func RegisterNativeElements(doc *dom.Document) error {
	reg := doc.CustomElements()

	if err := reg.Define(TagEmpty, dom.CustomElementDefinition{}); err != nil {
		return fmt.Errorf("defining %s: %w", TagEmpty, err)
	}

	if err := reg.Define(TagPanel, dom.CustomElementDefinition{
		Connected: func(el *dom.Element) {
			if el.GetShadowRoot() != nil {
				return
			}
			sr, err := el.AttachShadow(dom.ShadowRootModeOpen)
			if err != nil {
				return
			}
			sr.SetInnerHTML(panelShadowMarkup)
		},
	}); err != nil {
		return fmt.Errorf("defining %s: %w", TagPanel, err)
	}

	// x-prop reflects its observed attributes into properties, the way
	// an upgraded element class would. Payloads set before upgrade live
	// in attributes; upgrade replays them here.
	if err := reg.Define(TagProp, dom.CustomElementDefinition{
		ObservedAttributes: []string{"flagged", "amount", "label"},
		AttributeChanged: func(el *dom.Element, name, old, value string) {
			el.SetProp(name, value)
		},
	}); err != nil {
		return fmt.Errorf("defining %s: %w", TagProp, err)
	}

	if err := reg.Define(TagListen, dom.CustomElementDefinition{}); err != nil {
		return fmt.Errorf("defining %s: %w", TagListen, err)
	}
	return nil
}

// boolText renders a tracked flag the way the event fixtures display
// it: literal "false" or "true" text.
func boolText(b bool) string {
	return strconv.FormatBool(b)
}

// Empty is the no-children fixture: a bare custom element.
type Empty struct{}

func (Empty) Render() *render.VNode {
	return render.H(TagEmpty, nil)
}

// Panel is the children-via-shadow-boundary fixture. The element's
// heading and paragraph come from its shadow subtree; light children
// passed here stay outside the boundary. ShowDummy swaps the whole
// panel for an alternate view.
type Panel struct {
	ShowDummy bool
	OnPanel   render.Ref
}

func (p *Panel) Render() *render.VNode {
	if p.ShowDummy {
		return render.H("div", render.Props{"id": "dummy"}, "Dummy view")
	}
	return render.H(TagPanel, render.Props{"ref": p.OnPanel})
}

// CountingPanel renders a panel with a variable number of light-DOM
// children and reflects their count in an output's text content.
type CountingPanel struct {
	Items []string
}

func (c *CountingPanel) Render() *render.VNode {
	children := make([]*render.VNode, 0, len(c.Items))
	for _, item := range c.Items {
		children = append(children, render.H("span", nil, item))
	}
	return render.H("div", nil,
		render.H(TagPanel, nil, children),
		render.H("output", render.Props{"id": "count"}, strconv.Itoa(len(c.Items))),
	)
}

// PropCarrier is the property/attribute fixture: one payload of every
// shape the renderer must coerce across the property/attribute divide.
type PropCarrier struct {
	Flagged bool
	Amount  int
	Label   string
	Letters []string
	Repo    map[string]string
}

func (p *PropCarrier) Render() *render.VNode {
	return render.H(TagProp, render.Props{
		"flagged": p.Flagged,
		"amount":  p.Amount,
		"label":   p.Label,
		"letters": p.Letters,
		"repo":    p.Repo,
	})
}

// DefaultPropCarrier returns the fixture with the canonical payloads.
func DefaultPropCarrier() *PropCarrier {
	return &PropCarrier{
		Flagged: true,
		Amount:  42,
		Label:   "Preact",
		Letters: []string{"P", "r", "e", "a", "c", "t"},
		Repo:    map[string]string{"org": "developit", "repo": "preact"},
	}
}

// ImperativeFlag is the imperative-event fixture: the listener is
// attached through the DOM API after render, and the flag text only
// changes after a forced re-render.
type ImperativeFlag struct {
	Clicked bool
	OnHost  render.Ref
}

func (f *ImperativeFlag) Render() *render.VNode {
	return render.H("div", nil,
		render.H(TagListen, render.Props{"id": "host", "ref": f.OnHost}),
		render.H("output", render.Props{"id": "flag"}, boolText(f.Clicked)),
	)
}

// CasingFlags is the declarative-event fixture: the same logical click
// listener declared under five spelling conventions at once, each
// tracking its own flag.
type CasingFlags struct {
	Lower  bool
	Kebab  bool
	Camel  bool
	Caps   bool
	Pascal bool
}

func (c *CasingFlags) Render() *render.VNode {
	return render.H("div", nil,
		render.H(TagListen, render.Props{
			"id":       "target",
			"onclick":  func() { c.Lower = true },
			"on-click": func() { c.Kebab = true },
			"onClick":  func() { c.Camel = true },
			"onCLICK":  func() { c.Caps = true },
			"OnClick":  func() { c.Pascal = true },
		}),
		render.H("output", render.Props{"id": "lower"}, boolText(c.Lower)),
		render.H("output", render.Props{"id": "kebab"}, boolText(c.Kebab)),
		render.H("output", render.Props{"id": "camel"}, boolText(c.Camel)),
		render.H("output", render.Props{"id": "caps"}, boolText(c.Caps)),
		render.H("output", render.Props{"id": "pascal"}, boolText(c.Pascal)),
	)
}

// CustomEventFlag listens declaratively for a custom event whose name
// must keep its exact casing.
type CustomEventFlag struct {
	Fired bool
}

func (c *CustomEventFlag) Render() *render.VNode {
	return render.H("div", nil,
		render.H(TagListen, render.Props{
			"id":          "target",
			"onTestEvent": func() { c.Fired = true },
		}),
		render.H("output", render.Props{"id": "flag"}, boolText(c.Fired)),
	)
}
