package dom

import "testing"

func TestDefineValidatesNames(t *testing.T) {
	doc := NewDocument()
	reg := doc.CustomElements()

	for _, name := range []string{"", "div", "X-Upper", "1-bad", "-lead"} {
		if err := reg.Define(name, CustomElementDefinition{}); err == nil {
			t.Errorf("expected Define(%q) to fail", name)
		}
	}

	if err := reg.Define("x-good", CustomElementDefinition{}); err != nil {
		t.Fatalf("unexpected error defining x-good: %v", err)
	}
	if !reg.Defined("x-good") {
		t.Error("expected x-good to be defined")
	}
	if err := reg.Define("x-good", CustomElementDefinition{}); err == nil {
		t.Error("expected a duplicate Define to fail")
	}
}

func TestDefineThenRenderUpgradesImmediately(t *testing.T) {
	doc := NewDocument()

	connected := 0
	err := doc.CustomElements().Define("x-widget", CustomElementDefinition{
		Connected: func(*Element) { connected++ },
	})
	if err != nil {
		t.Fatalf("unexpected error defining x-widget: %v", err)
	}

	el := doc.CreateElement("x-widget")
	if !el.IsUpgraded() {
		t.Error("expected the element to be upgraded on creation")
	}
	if connected != 0 {
		t.Error("expected Connected not to fire before the element connects")
	}

	doc.Body().AsNode().AppendChild(el.AsNode())
	if connected != 1 {
		t.Errorf("expected Connected to fire once on insertion, fired %d times", connected)
	}
}

func TestRenderThenDefineUpgradesPending(t *testing.T) {
	doc := NewDocument()

	first := doc.CreateElement("x-widget")
	second := doc.CreateElement("x-widget")
	doc.Body().AsNode().AppendChild(first.AsNode())

	if first.IsUpgraded() || second.IsUpgraded() {
		t.Fatal("expected elements to stay unupgraded before Define")
	}

	var upgradeOrder []*Element
	var connected []*Element
	err := doc.CustomElements().Define("x-widget", CustomElementDefinition{
		ObservedAttributes: []string{"label"},
		AttributeChanged: func(el *Element, name, old, value string) {
			upgradeOrder = append(upgradeOrder, el)
		},
		Connected: func(el *Element) { connected = append(connected, el) },
	})
	if err != nil {
		t.Fatalf("unexpected error defining x-widget: %v", err)
	}

	if !first.IsUpgraded() || !second.IsUpgraded() {
		t.Error("expected Define to upgrade previously created elements")
	}
	if len(connected) != 1 || connected[0] != first {
		t.Errorf("expected Connected only for the connected element, got %d calls", len(connected))
	}
	if len(upgradeOrder) != 0 {
		t.Error("expected no AttributeChanged calls without observed attributes present")
	}
}

func TestUpgradeReplaysObservedAttributes(t *testing.T) {
	doc := NewDocument()

	el := doc.CreateElement("x-widget")
	el.SetAttribute("label", "hello")
	el.SetAttribute("ignored", "x")

	type change struct{ name, old, value string }
	var changes []change
	err := doc.CustomElements().Define("x-widget", CustomElementDefinition{
		ObservedAttributes: []string{"label"},
		AttributeChanged: func(el *Element, name, old, value string) {
			changes = append(changes, change{name, old, value})
		},
	})
	if err != nil {
		t.Fatalf("unexpected error defining x-widget: %v", err)
	}

	if len(changes) != 1 {
		t.Fatalf("expected one replayed attribute change, got %d", len(changes))
	}
	if changes[0] != (change{"label", "", "hello"}) {
		t.Errorf("expected replay of label with empty old value, got %+v", changes[0])
	}

	el.SetAttribute("label", "goodbye")
	if len(changes) != 2 {
		t.Fatalf("expected a change notification after upgrade, got %d", len(changes))
	}
	if changes[1] != (change{"label", "hello", "goodbye"}) {
		t.Errorf("expected old value carried through, got %+v", changes[1])
	}

	el.SetAttribute("ignored", "y")
	if len(changes) != 2 {
		t.Error("expected no notification for unobserved attributes")
	}
}

func TestDisconnectedCallback(t *testing.T) {
	doc := NewDocument()

	var events []string
	err := doc.CustomElements().Define("x-widget", CustomElementDefinition{
		Connected:    func(*Element) { events = append(events, "connected") },
		Disconnected: func(*Element) { events = append(events, "disconnected") },
	})
	if err != nil {
		t.Fatalf("unexpected error defining x-widget: %v", err)
	}

	el := doc.CreateElement("x-widget")
	doc.Body().AsNode().AppendChild(el.AsNode())
	el.Remove()
	doc.Body().AsNode().AppendChild(el.AsNode())

	want := []string{"connected", "disconnected", "connected"}
	if len(events) != len(want) {
		t.Fatalf("expected lifecycle %v, got %v", want, events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("expected lifecycle %v, got %v", want, events)
		}
	}
}
