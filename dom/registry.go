package dom

import "strings"

// CustomElementDefinition describes the behavior of a custom element:
// lifecycle callbacks plus the set of attributes it observes.
type CustomElementDefinition struct {
	// Name is the hyphenated element name, e.g. "x-panel".
	Name string

	// ObservedAttributes lists the attributes whose changes are
	// reported through AttributeChanged.
	ObservedAttributes []string

	// Connected is invoked when an upgraded element becomes connected
	// to the document.
	Connected func(*Element)

	// Disconnected is invoked when a connected, upgraded element is
	// removed from the document.
	Disconnected func(*Element)

	// AttributeChanged is invoked when an observed attribute of an
	// upgraded element changes. At upgrade time it fires once for every
	// observed attribute already present, with old set to "".
	AttributeChanged func(el *Element, name, old, value string)
}

// CustomElementRegistry tracks custom element definitions for one
// document and upgrades elements when their definition arrives.
//
// Upgrade timing is observable: an element created before its
// definition carries renderer-set payloads in attributes; once Define
// runs, the definition's callbacks may reflect them into properties.
type CustomElementRegistry struct {
	doc     *Document
	defs    map[string]*CustomElementDefinition
	pending []*Element // created custom elements awaiting a definition
}

func newCustomElementRegistry(doc *Document) *CustomElementRegistry {
	return &CustomElementRegistry{
		doc:  doc,
		defs: make(map[string]*CustomElementDefinition),
	}
}

// Define registers a definition. Elements with the same name that were
// created earlier are upgraded immediately, in creation order.
// Returns a SyntaxError for invalid names and a NotSupportedError for
// duplicate registrations.
func (r *CustomElementRegistry) Define(name string, def CustomElementDefinition) error {
	if !isValidCustomElementName(name) {
		return ErrSyntax("\"" + name + "\" is not a valid custom element name")
	}
	if _, exists := r.defs[name]; exists {
		return ErrNotSupported("the name \"" + name + "\" has already been used with this registry")
	}

	def.Name = name
	r.defs[name] = &def

	remaining := r.pending[:0]
	for _, el := range r.pending {
		if el.LocalName() == name {
			r.upgrade(el, &def)
		} else {
			remaining = append(remaining, el)
		}
	}
	r.pending = remaining
	return nil
}

// Get returns the definition registered under name, or nil.
func (r *CustomElementRegistry) Get(name string) *CustomElementDefinition {
	return r.defs[name]
}

// Defined reports whether a definition is registered under name.
func (r *CustomElementRegistry) Defined(name string) bool {
	_, ok := r.defs[name]
	return ok
}

// elementCreated is called by the document for every created element.
// Custom elements are upgraded immediately when their definition exists,
// or queued for a later Define.
func (r *CustomElementRegistry) elementCreated(el *Element) {
	if !el.IsCustomElement() {
		return
	}
	if def, ok := r.defs[el.LocalName()]; ok {
		r.upgrade(el, def)
		return
	}
	r.pending = append(r.pending, el)
}

// upgrade applies a definition to an element: observed attributes
// already present are reported, then the connected callback fires if
// the element is already in the document.
func (r *CustomElementRegistry) upgrade(el *Element, def *CustomElementDefinition) {
	data := el.AsNode().elementData
	if data.upgraded {
		return
	}
	data.upgraded = true

	if def.AttributeChanged != nil {
		for _, name := range def.ObservedAttributes {
			if el.HasAttribute(name) {
				def.AttributeChanged(el, name, "", el.GetAttribute(name))
			}
		}
	}

	if el.AsNode().IsConnected() {
		el.invokeConnected()
	}
}

// isValidCustomElementName checks the custom element name rules this
// suite relies on: lowercase, starts with a letter, contains a hyphen.
func isValidCustomElementName(name string) bool {
	if name == "" || name[0] < 'a' || name[0] > 'z' {
		return false
	}
	if !strings.Contains(name, "-") {
		return false
	}
	if strings.ToLower(name) != name {
		return false
	}
	return isValidElementName(name)
}
