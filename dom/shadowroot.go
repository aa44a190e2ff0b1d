package dom

import "strings"

// ShadowRootMode indicates whether the shadow root is open or closed.
type ShadowRootMode string

const (
	// ShadowRootModeOpen means the shadow root is reachable through
	// Element.ShadowRoot.
	ShadowRootModeOpen ShadowRootMode = "open"
	// ShadowRootModeClosed means the shadow root is hidden from
	// Element.ShadowRoot.
	ShadowRootModeClosed ShadowRootMode = "closed"
)

// ShadowRoot is the root of a shadow tree: a DocumentFragment-like node
// that encapsulates a DOM subtree attached to a host element. Content
// below a shadow root is invisible to light-DOM traversal and queries.
type ShadowRoot struct {
	node *Node // underlying node (uses DocumentFragmentNode type)
	mode ShadowRootMode
	host *Element
}

// newShadowRoot creates a shadow root attached to the given host element.
func newShadowRoot(host *Element, mode ShadowRootMode) *ShadowRoot {
	node := newNode(DocumentFragmentNode, "#document-fragment", host.AsNode().ownerDoc)
	sr := &ShadowRoot{
		node: node,
		mode: mode,
		host: host,
	}
	node.shadowRoot = sr
	return sr
}

// AsNode returns the underlying Node.
func (sr *ShadowRoot) AsNode() *Node {
	return sr.node
}

// NodeType returns DocumentFragmentNode (11).
func (sr *ShadowRoot) NodeType() NodeType {
	return DocumentFragmentNode
}

// Mode returns the mode of this shadow root ("open" or "closed").
func (sr *ShadowRoot) Mode() ShadowRootMode {
	return sr.mode
}

// Host returns the element that hosts this shadow root.
func (sr *ShadowRoot) Host() *Element {
	return sr.host
}

// OwnerDocument returns the host element's document.
func (sr *ShadowRoot) OwnerDocument() *Document {
	return sr.node.ownerDoc
}

// ChildElementCount returns the number of child elements.
func (sr *ShadowRoot) ChildElementCount() int {
	count := 0
	for child := sr.node.firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			count++
		}
	}
	return count
}

// FirstElementChild returns the first child element, or nil.
func (sr *ShadowRoot) FirstElementChild() *Element {
	for child := sr.node.firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// GetElementById returns the element in the shadow tree with the given id.
func (sr *ShadowRoot) GetElementById(id string) *Element {
	if id == "" {
		return nil
	}
	return findElementById(sr.node, id)
}

// QuerySelector returns the first element in the shadow tree matching
// the selector, or nil.
func (sr *ShadowRoot) QuerySelector(selector string) *Element {
	results := querySelectorAll(sr.node, selector, true)
	if len(results) == 0 {
		return nil
	}
	return results[0]
}

// QuerySelectorAll returns all elements in the shadow tree matching the selector.
func (sr *ShadowRoot) QuerySelectorAll(selector string) []*Element {
	return querySelectorAll(sr.node, selector, false)
}

// TextContent returns the text content of the shadow tree.
func (sr *ShadowRoot) TextContent() string {
	return sr.node.TextContent()
}

// InnerHTML serializes the shadow tree's content.
func (sr *ShadowRoot) InnerHTML() string {
	var sb strings.Builder
	for child := sr.node.firstChild; child != nil; child = child.nextSibling {
		serializeNode(child, &sb)
	}
	return sb.String()
}

// SetInnerHTML replaces the shadow tree's content with parsed markup.
func (sr *ShadowRoot) SetInnerHTML(markup string) error {
	for sr.node.firstChild != nil {
		sr.node.RemoveChild(sr.node.firstChild)
	}
	if markup == "" {
		return nil
	}

	context := sr.host
	if context == nil {
		context = sr.node.ownerDoc.CreateElement("div")
	}
	nodes, err := parseHTMLFragment(markup, context)
	if err != nil {
		return err
	}
	for _, node := range nodes {
		sr.node.AppendChild(node)
	}
	return nil
}

// Append appends nodes or strings (as text nodes) to this shadow root.
func (sr *ShadowRoot) Append(nodes ...any) {
	for _, item := range nodes {
		switch v := item.(type) {
		case *Node:
			sr.node.AppendChild(v)
		case *Element:
			sr.node.AppendChild(v.AsNode())
		case string:
			sr.node.AppendChild(sr.node.ownerDoc.CreateTextNode(v))
		}
	}
}

// ReplaceChildren replaces all children with the given nodes.
func (sr *ShadowRoot) ReplaceChildren(nodes ...any) {
	for sr.node.firstChild != nil {
		sr.node.RemoveChild(sr.node.firstChild)
	}
	sr.Append(nodes...)
}
