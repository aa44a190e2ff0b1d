package dom

import (
	"strings"
)

// Element represents an Element node. It is a typed view over *Node.
type Element Node

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node {
	return (*Node)(e)
}

// NodeType returns ElementNode (1).
func (e *Element) NodeType() NodeType {
	return ElementNode
}

// TagName returns the tag name in uppercase, e.g. "X-PANEL".
func (e *Element) TagName() string {
	if e.AsNode().elementData == nil {
		return ""
	}
	return e.AsNode().elementData.tagName
}

// LocalName returns the lowercase local name, e.g. "x-panel".
func (e *Element) LocalName() string {
	if e.AsNode().elementData == nil {
		return ""
	}
	return e.AsNode().elementData.localName
}

// Id returns the element's id attribute.
func (e *Element) Id() string {
	return e.GetAttribute("id")
}

// SetId sets the element's id attribute.
func (e *Element) SetId(id string) {
	e.SetAttribute("id", id)
}

// ClassName returns the element's class attribute.
func (e *Element) ClassName() string {
	return e.GetAttribute("class")
}

// SetClassName sets the element's class attribute.
func (e *Element) SetClassName(className string) {
	e.SetAttribute("class", className)
}

// classes returns the class attribute split into tokens.
func (e *Element) classes() []string {
	return strings.Fields(e.ClassName())
}

// HasClass returns true if the class attribute contains the given token.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.classes() {
		if c == name {
			return true
		}
	}
	return false
}

// Attributes returns the element's attribute map.
func (e *Element) Attributes() *NamedNodeMap {
	data := e.AsNode().elementData
	if data.attributes == nil {
		data.attributes = newNamedNodeMap(e)
	}
	return data.attributes
}

// GetAttribute returns the value of the attribute, or "" if absent.
func (e *Element) GetAttribute(name string) string {
	attr := e.Attributes().GetNamedItem(name)
	if attr == nil {
		return ""
	}
	return attr.value
}

// HasAttribute returns true if the attribute is present.
func (e *Element) HasAttribute(name string) bool {
	return e.Attributes().GetNamedItem(name) != nil
}

// SetAttribute sets an attribute. On an upgraded custom element this
// fires the AttributeChanged callback for observed attributes.
func (e *Element) SetAttribute(name, value string) {
	old, had := e.Attributes().setAttr(name, value)
	if had && old == value {
		return
	}
	e.notifyAttributeChanged(name, old, value, had)
}

// RemoveAttribute removes an attribute if present.
func (e *Element) RemoveAttribute(name string) {
	old, had := e.Attributes().removeAttr(name)
	if had {
		e.notifyAttributeChanged(name, old, "", true)
	}
}

// ToggleAttribute toggles a boolean attribute. With force, it is added
// or removed unconditionally. Returns whether the attribute is present
// afterwards.
func (e *Element) ToggleAttribute(name string, force ...bool) bool {
	has := e.HasAttribute(name)
	want := !has
	if len(force) > 0 {
		want = force[0]
	}
	if want == has {
		return has
	}
	if want {
		e.SetAttribute(name, "")
	} else {
		e.RemoveAttribute(name)
	}
	return want
}

// Prop returns the element's direct property with the given name.
// The second return reports presence, distinguishing a stored nil.
func (e *Element) Prop(name string) (any, bool) {
	props := e.AsNode().elementData.props
	if props == nil {
		return nil, false
	}
	v, ok := props[name]
	return v, ok
}

// SetProp sets a direct property on the element.
func (e *Element) SetProp(name string, value any) {
	data := e.AsNode().elementData
	if data.props == nil {
		data.props = make(map[string]any)
	}
	data.props[name] = value
}

// DeleteProp removes a direct property from the element.
func (e *Element) DeleteProp(name string) {
	if props := e.AsNode().elementData.props; props != nil {
		delete(props, name)
	}
}

// HasProp returns true if the element has the given direct property.
func (e *Element) HasProp(name string) bool {
	_, ok := e.Prop(name)
	return ok
}

// Children returns the element's child elements.
func (e *Element) Children() []*Element {
	var out []*Element
	for child := e.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			out = append(out, (*Element)(child))
		}
	}
	return out
}

// ChildElementCount returns the number of child elements.
func (e *Element) ChildElementCount() int {
	count := 0
	for child := e.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			count++
		}
	}
	return count
}

// FirstElementChild returns the first child element, or nil.
func (e *Element) FirstElementChild() *Element {
	for child := e.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// LastElementChild returns the last child element, or nil.
func (e *Element) LastElementChild() *Element {
	for child := e.AsNode().lastChild; child != nil; child = child.prevSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// Remove detaches this element from its parent.
func (e *Element) Remove() {
	if parent := e.AsNode().parentNode; parent != nil {
		parent.RemoveChild(e.AsNode())
	}
}

// TextContent returns the text content of the element's light tree.
func (e *Element) TextContent() string {
	return e.AsNode().TextContent()
}

// SetTextContent replaces the element's children with a single text node.
func (e *Element) SetTextContent(text string) {
	e.AsNode().SetTextContent(text)
}

// Matches reports whether this element matches a simple selector:
// "*", tag, "#id", ".class", or a compound like "x-panel#main.active".
func (e *Element) Matches(selector string) bool {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return false
	}
	if selector == "*" {
		return true
	}

	tag, id, classes, err := parseSimpleSelector(selector)
	if err != nil {
		return false
	}
	if tag != "" && tag != e.LocalName() {
		return false
	}
	if id != "" && id != e.Id() {
		return false
	}
	for _, c := range classes {
		if !e.HasClass(c) {
			return false
		}
	}
	return true
}

// parseSimpleSelector splits a compound simple selector into tag, id,
// and class parts. Combinators and pseudo-classes are not supported.
func parseSimpleSelector(selector string) (tag, id string, classes []string, err error) {
	if strings.ContainsAny(selector, " >+~:[") {
		return "", "", nil, ErrSyntax("unsupported selector: " + selector)
	}
	rest := selector
	for rest != "" {
		switch rest[0] {
		case '#':
			end := nextDelimiter(rest[1:])
			id = rest[1 : 1+end]
			rest = rest[1+end:]
			if id == "" {
				return "", "", nil, ErrSyntax("empty id selector")
			}
		case '.':
			end := nextDelimiter(rest[1:])
			class := rest[1 : 1+end]
			rest = rest[1+end:]
			if class == "" {
				return "", "", nil, ErrSyntax("empty class selector")
			}
			classes = append(classes, class)
		default:
			end := nextDelimiter(rest)
			tag = strings.ToLower(rest[:end])
			rest = rest[end:]
		}
	}
	return tag, id, classes, nil
}

// nextDelimiter returns the index of the next '#' or '.' in s, or len(s).
func nextDelimiter(s string) int {
	if i := strings.IndexAny(s, "#."); i >= 0 {
		return i
	}
	return len(s)
}

// QuerySelector returns the first descendant element matching the
// selector, or nil. Shadow trees are not searched.
func (e *Element) QuerySelector(selector string) *Element {
	results := querySelectorAll(e.AsNode(), selector, true)
	if len(results) == 0 {
		return nil
	}
	return results[0]
}

// QuerySelectorAll returns all descendant elements matching the selector.
func (e *Element) QuerySelectorAll(selector string) []*Element {
	return querySelectorAll(e.AsNode(), selector, false)
}

func querySelectorAll(root *Node, selector string, firstOnly bool) []*Element {
	var results []*Element
	var traverse func(*Node) bool
	traverse = func(node *Node) bool {
		for child := node.firstChild; child != nil; child = child.nextSibling {
			if child.nodeType == ElementNode {
				el := (*Element)(child)
				if el.Matches(selector) {
					results = append(results, el)
					if firstOnly {
						return true
					}
				}
				if traverse(child) {
					return true
				}
			}
		}
		return false
	}
	traverse(root)
	return results
}

// ShadowRoot returns the open shadow root attached to this element, or
// nil. Closed shadow roots are not exposed here.
func (e *Element) ShadowRoot() *ShadowRoot {
	sr := e.AsNode().elementData.shadowRoot
	if sr == nil || sr.Mode() == ShadowRootModeClosed {
		return nil
	}
	return sr
}

// GetShadowRoot returns the attached shadow root regardless of mode.
func (e *Element) GetShadowRoot() *ShadowRoot {
	return e.AsNode().elementData.shadowRoot
}

// AttachShadow attaches a shadow tree to this element and returns its root.
// Valid hosts are custom elements (hyphenated names) and the usual set of
// built-in container elements.
func (e *Element) AttachShadow(mode ShadowRootMode) (*ShadowRoot, error) {
	if !e.canAttachShadow() {
		return nil, ErrNotSupported("Failed to execute 'attachShadow' on 'Element': This element does not support attachShadow")
	}
	if e.AsNode().elementData.shadowRoot != nil {
		return nil, ErrNotSupported("Failed to execute 'attachShadow' on 'Element': Shadow root cannot be created on a host which already hosts a shadow tree.")
	}
	if mode != ShadowRootModeOpen && mode != ShadowRootModeClosed {
		return nil, ErrNotSupported("Failed to execute 'attachShadow' on 'Element': The provided value '" + string(mode) + "' is not a valid enum value of type ShadowRootMode.")
	}

	sr := newShadowRoot(e, mode)
	e.AsNode().elementData.shadowRoot = sr
	return sr, nil
}

var builtinShadowHosts = map[string]bool{
	"article": true, "aside": true, "blockquote": true, "body": true,
	"div": true, "footer": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "main": true,
	"nav": true, "p": true, "section": true, "span": true,
}

func (e *Element) canAttachShadow() bool {
	localName := e.LocalName()
	if strings.Contains(localName, "-") {
		return true
	}
	return builtinShadowHosts[localName]
}

// IsCustomElement returns true if the element has a hyphenated name,
// making it a candidate for custom element upgrade.
func (e *Element) IsCustomElement() bool {
	return strings.Contains(e.LocalName(), "-")
}

// IsUpgraded reports whether a custom element definition has been
// applied to this element.
func (e *Element) IsUpgraded() bool {
	return e.AsNode().elementData.upgraded
}

// definition returns the custom element definition for this element, or
// nil if none is registered.
func (e *Element) definition() *CustomElementDefinition {
	doc := e.AsNode().ownerDoc
	if doc == nil {
		return nil
	}
	return doc.CustomElements().Get(e.LocalName())
}

// invokeConnected calls the Connected callback once per connection.
func (e *Element) invokeConnected() {
	data := e.AsNode().elementData
	if !data.upgraded || data.connectedCalled {
		return
	}
	def := e.definition()
	if def == nil {
		return
	}
	data.connectedCalled = true
	if def.Connected != nil {
		def.Connected(e)
	}
}

// invokeDisconnected calls the Disconnected callback after removal.
func (e *Element) invokeDisconnected() {
	data := e.AsNode().elementData
	if !data.upgraded || !data.connectedCalled {
		return
	}
	data.connectedCalled = false
	def := e.definition()
	if def != nil && def.Disconnected != nil {
		def.Disconnected(e)
	}
}

// notifyAttributeChanged fires the AttributeChanged callback for
// observed attributes of upgraded custom elements.
func (e *Element) notifyAttributeChanged(name, old, value string, had bool) {
	data := e.AsNode().elementData
	if !data.upgraded {
		return
	}
	def := e.definition()
	if def == nil || def.AttributeChanged == nil {
		return
	}
	for _, observed := range def.ObservedAttributes {
		if observed == name {
			def.AttributeChanged(e, name, old, value)
			return
		}
	}
}

// Event convenience methods delegating to the underlying node.

// AddEventListener registers an event listener on this element.
func (e *Element) AddEventListener(eventType string, callback EventListener, opts ...ListenerOptions) ListenerHandle {
	return e.AsNode().AddEventListener(eventType, callback, opts...)
}

// RemoveEventListener unregisters a listener by handle.
func (e *Element) RemoveEventListener(eventType string, handle ListenerHandle) {
	e.AsNode().RemoveEventListener(eventType, handle)
}

// DispatchEvent dispatches an event at this element.
func (e *Element) DispatchEvent(event *Event) bool {
	return e.AsNode().DispatchEvent(event)
}

// Click dispatches a synthetic bubbling, cancelable "click" event.
func (e *Element) Click() {
	e.DispatchEvent(NewEvent("click", true, true))
}
