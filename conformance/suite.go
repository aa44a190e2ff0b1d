package conformance

import (
	"github.com/AYColumbia/wcconform/dom"
	"github.com/AYColumbia/wcconform/harness"
	"github.com/AYColumbia/wcconform/render"
)

// NewEnv builds a harness environment with the fixture elements
// already defined, so every case runs define-then-render by default.
// Cases that probe the opposite upgrade order create their own
// document instead.
func NewEnv() (*harness.Env, error) {
	env, err := harness.NewEnv()
	if err != nil {
		return nil, err
	}
	if err := RegisterNativeElements(env.Document()); err != nil {
		return nil, err
	}
	return env, nil
}

// DefaultSuite declares every interop case. Weights mark the cases an
// external grader treats as more important; they never change
// pass/fail behavior.
func DefaultSuite() *harness.Suite {
	suite := harness.NewSuite("web component interop")

	suite.Describe("children", func(s *harness.S) {
		s.It("renders a custom element with no children", func(t *harness.T) {
			if err := render.Render(render.H(TagEmpty, nil), t.Scratch()); err != nil {
				t.Fatalf("render: %v", err)
			}
			matches := t.Scratch().QuerySelectorAll(TagEmpty)
			t.ExpectTrue(len(matches) == 1, "found %d %s elements, want exactly 1", len(matches), TagEmpty)
		})

		s.ItWeighted("renders children through the shadow boundary", 2, func(t *harness.T) {
			panel := mountPanel(t)
			expectPanelShadow(t, panel)
		})

		s.ItWeighted("reflects light children appended after one tick", 2, func(t *harness.T) {
			c := &CountingPanel{}
			inst := mustMount(t, c, nil)

			t.ExpectText(t.RequireQuery("#count"), "0")

			t.Loop().QueueMicrotask(func() {
				c.Items = []string{"P", "r", "e"}
				if err := inst.ForceUpdate(); err != nil {
					t.Errorf("re-render: %v", err)
				}
			})
			t.Tick()

			t.ExpectText(t.RequireQuery("#count"), "3")
			panel := t.RequireQuery(TagPanel)
			t.ExpectTrue(panel.ChildElementCount() == 3,
				"panel has %d light children, want 3", panel.ChildElementCount())
		})

		s.ItWeighted("toggles between shadow view and dummy view", 3, func(t *harness.T) {
			var panel *dom.Element
			c := &Panel{OnPanel: func(el *dom.Element) { panel = el }}
			inst := mustMount(t, c, nil)

			if !t.ExpectTrue(panel != nil, "panel ref was not captured") {
				t.FailNow()
			}
			expectPanelShadow(t, panel)

			c.ShowDummy = true
			if err := inst.ForceUpdate(); err != nil {
				t.Fatalf("re-render: %v", err)
			}
			t.ExpectText(t.RequireQuery("#dummy"), "Dummy view")
			t.ExpectTrue(t.Scratch().QuerySelector(TagPanel) == nil,
				"panel still present in the dummy view")

			c.ShowDummy = false
			if err := inst.ForceUpdate(); err != nil {
				t.Fatalf("re-render: %v", err)
			}
			expectPanelShadow(t, t.RequireQuery(TagPanel))
		})
	})

	suite.Describe("properties", func(s *harness.S) {
		payloadChecks := func(t *harness.T, el *dom.Element) {
			t.ExpectValue(el, "flagged", true)
			t.ExpectValue(el, "amount", 42)
			t.ExpectValue(el, "label", "Preact")
			t.ExpectValue(el, "letters", []string{"P", "r", "e", "a", "c", "t"})
			t.ExpectValue(el, "repo", map[string]string{"org": "developit", "repo": "preact"})
		}

		s.ItWeighted("carries payloads onto an upgraded element", 2, func(t *harness.T) {
			mustMount(t, DefaultPropCarrier(), nil)
			payloadChecks(t, t.RequireQuery(TagProp))
		})

		s.ItWeighted("carries payloads across a late upgrade", 2, func(t *harness.T) {
			// A separate document whose registry is still empty, so the
			// element renders before its definition arrives.
			env, err := harness.NewEnv()
			if err != nil {
				t.Fatalf("environment: %v", err)
			}
			scratch, err := env.SetUp()
			if err != nil {
				t.Fatalf("scratch: %v", err)
			}
			t.Defer(env.TearDown)

			if _, err := render.Mount(DefaultPropCarrier(), scratch, nil); err != nil {
				t.Fatalf("mount: %v", err)
			}
			el := scratch.QuerySelector(TagProp)
			if el == nil {
				t.Fatalf("no %s element rendered", TagProp)
			}
			t.ExpectTrue(!el.IsUpgraded(), "element upgraded before its definition")

			// Primitive payloads must already be observable as attributes.
			t.ExpectValue(el, "flagged", true)
			t.ExpectValue(el, "amount", 42)
			t.ExpectValue(el, "label", "Preact")

			if err := RegisterNativeElements(env.Document()); err != nil {
				t.Fatalf("defining elements: %v", err)
			}
			t.ExpectTrue(el.IsUpgraded(), "element not upgraded after its definition")
			payloadChecks(t, el)
		})
	})

	suite.Describe("events", func(s *harness.S) {
		s.ItWeighted("imperative listener flips the flag once", 2, func(t *harness.T) {
			var host *dom.Element
			c := &ImperativeFlag{OnHost: func(el *dom.Element) { host = el }}
			inst := mustMount(t, c, nil)

			if !t.ExpectTrue(host != nil, "host ref was not captured") {
				t.FailNow()
			}
			t.ExpectText(t.RequireQuery("#flag"), "false")

			clicks := 0
			host.AddEventListener("click", func(*dom.Event) {
				clicks++
				c.Clicked = true
			})
			host.Click()
			if err := inst.ForceUpdate(); err != nil {
				t.Fatalf("re-render: %v", err)
			}

			t.ExpectText(t.RequireQuery("#flag"), "true")
			t.ExpectTrue(clicks == 1, "listener fired %d times for one click", clicks)
		})

		s.ItWeighted("declarative listeners fire under all five casings", 3, func(t *harness.T) {
			c := &CasingFlags{}
			inst := mustMount(t, c, nil)

			for _, id := range []string{"lower", "kebab", "camel", "caps", "pascal"} {
				t.ExpectText(t.RequireQuery("#"+id), "false")
			}

			t.RequireQuery("#target").Click()
			if err := inst.ForceUpdate(); err != nil {
				t.Fatalf("re-render: %v", err)
			}
			for _, id := range []string{"lower", "kebab", "camel", "caps", "pascal"} {
				t.ExpectText(t.RequireQuery("#"+id), "true")
			}
		})

		s.It("custom event names keep their exact casing", func(t *harness.T) {
			c := &CustomEventFlag{}
			inst := mustMount(t, c, nil)
			target := t.RequireQuery("#target")

			target.DispatchEvent(dom.NewCustomEvent("testevent", nil))
			if err := inst.ForceUpdate(); err != nil {
				t.Fatalf("re-render: %v", err)
			}
			t.ExpectText(t.RequireQuery("#flag"), "false")

			t.RequireQuery("#target").DispatchEvent(dom.NewCustomEvent("TestEvent", nil))
			if err := inst.ForceUpdate(); err != nil {
				t.Fatalf("re-render: %v", err)
			}
			t.ExpectText(t.RequireQuery("#flag"), "true")
		})
	})

	return suite
}

// mustMount mounts a component into the case's scratch container,
// aborting the case on failure.
func mustMount(t *harness.T, c render.Component, capture func(*render.Instance)) *render.Instance {
	inst, err := render.Mount(c, t.Scratch(), capture)
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	return inst
}

// mountPanel renders the panel fixture with a ref capture and returns
// the captured element.
func mountPanel(t *harness.T) *dom.Element {
	var panel *dom.Element
	c := &Panel{OnPanel: func(el *dom.Element) { panel = el }}
	mustMount(t, c, nil)
	if panel == nil {
		t.Fatalf("panel ref was not captured")
	}
	return panel
}

// expectPanelShadow asserts the fixed shadow content of x-panel.
func expectPanelShadow(t *harness.T, panel *dom.Element) {
	sr := panel.ShadowRoot()
	if sr == nil {
		t.Fatalf("panel has no open shadow root")
	}
	h1 := sr.QuerySelector("h1")
	if h1 == nil {
		t.Fatalf("shadow root has no h1")
	}
	t.ExpectText(h1, "Test h1")
	p := sr.QuerySelector("p")
	if p == nil {
		t.Fatalf("shadow root has no p")
	}
	t.ExpectText(p, "Test p")
}
