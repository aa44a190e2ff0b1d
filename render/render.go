package render

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AYColumbia/wcconform/dom"
)

// Ref is the value type of the "ref" prop: a callback invoked exactly
// once per mount with the realized element.
type Ref func(*dom.Element)

// Listener props accept func(*dom.Event) or func().
type eventFunc = func(*dom.Event)

// Render clears the container and realizes the vnode tree into it.
// A nil vnode just clears the container.
func Render(v *VNode, container *dom.Element) error {
	if container == nil {
		return fmt.Errorf("render: nil container")
	}
	return renderInto(v, container)
}

func renderInto(v *VNode, container *dom.Element) error {
	node := container.AsNode()
	for node.FirstChild() != nil {
		node.RemoveChild(node.FirstChild())
	}
	if v == nil {
		return nil
	}

	var refs []func()
	realized, err := realize(v, node.OwnerDocument(), &refs)
	if err != nil {
		return err
	}
	node.AppendChild(realized)

	// Refs fire after the tree is attached so callbacks see connected
	// elements.
	for _, fire := range refs {
		fire()
	}
	return nil
}

// realize builds the native subtree for a vnode. Ref callbacks are
// collected rather than fired; the caller runs them after attachment.
func realize(v *VNode, doc *dom.Document, refs *[]func()) (*dom.Node, error) {
	if v.isText {
		return doc.CreateTextNode(v.Text), nil
	}

	el, err := doc.CreateElementWithError(v.Tag)
	if err != nil {
		return nil, err
	}
	if err := applyProps(el, v.Props, refs); err != nil {
		return nil, err
	}
	for _, child := range v.Children {
		realized, err := realize(child, doc, refs)
		if err != nil {
			return nil, err
		}
		el.AsNode().AppendChild(realized)
	}
	return el.AsNode(), nil
}

// applyProps applies each prop as an event listener, a ref, a property,
// an attribute, or some combination, per the interop rules under test.
func applyProps(el *dom.Element, props Props, refs *[]func()) error {
	for name, value := range props {
		switch {
		case name == "ref":
			fire, err := refCallback(el, value)
			if err != nil {
				return err
			}
			*refs = append(*refs, fire)

		case isEventProp(name):
			if err := addListener(el, eventNameOf(name), value); err != nil {
				return err
			}

		case value == nil:
			el.RemoveAttribute(name)
			el.DeleteProp(name)

		default:
			applyValue(el, name, value)
		}
	}
	return nil
}

func refCallback(el *dom.Element, value any) (func(), error) {
	switch ref := value.(type) {
	case Ref:
		if ref == nil {
			return func() {}, nil
		}
		return func() { ref(el) }, nil
	case func(*dom.Element):
		if ref == nil {
			return func() {}, nil
		}
		return func() { ref(el) }, nil
	default:
		return nil, fmt.Errorf("render: ref prop must be func(*dom.Element), got %T", value)
	}
}

// isEventProp reports whether a prop name declares an event listener:
// an "on"/"On" prefix followed by a non-empty event name.
func isEventProp(name string) bool {
	return len(name) > 2 && (strings.HasPrefix(name, "on") || strings.HasPrefix(name, "On"))
}

// builtinEvents is the set of standard DOM event types. Declarative
// listener names whose lowercase form is one of these are normalized to
// it, so onclick, on-click, onClick, onCLICK, and OnClick all listen
// for "click". Anything else keeps its exact spelling: event dispatch
// is case-sensitive, and custom event names with different casings are
// different events.
var builtinEvents = map[string]bool{
	"blur": true, "change": true, "click": true, "dblclick": true,
	"error": true, "focus": true, "input": true, "keydown": true,
	"keypress": true, "keyup": true, "load": true, "mousedown": true,
	"mousemove": true, "mouseout": true, "mouseover": true,
	"mouseup": true, "scroll": true, "submit": true,
}

// eventNameOf maps a listener prop name to the event type it listens for.
func eventNameOf(propName string) string {
	name := propName[2:]
	name = strings.TrimPrefix(name, "-")
	if builtinEvents[strings.ToLower(name)] {
		return strings.ToLower(name)
	}
	return name
}

func addListener(el *dom.Element, eventType string, value any) error {
	var listener dom.EventListener
	switch fn := value.(type) {
	case dom.EventListener:
		listener = fn
	case eventFunc:
		listener = fn
	case func():
		listener = func(*dom.Event) { fn() }
	default:
		return fmt.Errorf("render: listener for %q must be a func, got %T", eventType, value)
	}
	el.AddEventListener(eventType, listener)
	return nil
}

// applyValue applies a non-nil, non-event prop. Primitive values go to
// the attribute surface, and additionally to the property surface
// unless the element is a custom element still awaiting upgrade —
// before upgrade there is no element class to hold properties, which is
// exactly the ambiguity the property/attribute fixtures tolerate.
// Composite values (slices, maps, structs, pointers) are never
// stringly-typed; they always go to the property surface only.
func applyValue(el *dom.Element, name string, value any) {
	if !isPrimitive(value) {
		el.SetProp(name, value)
		return
	}

	pendingUpgrade := el.IsCustomElement() && !el.IsUpgraded()
	if !pendingUpgrade {
		el.SetProp(name, value)
	}

	if b, ok := value.(bool); ok {
		if b {
			el.SetAttribute(name, "true")
		} else {
			el.RemoveAttribute(name)
		}
		return
	}
	el.SetAttribute(name, fmt.Sprint(value))
}

func isPrimitive(value any) bool {
	switch reflect.ValueOf(value).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
