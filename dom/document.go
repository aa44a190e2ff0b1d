package dom

import (
	"strings"
)

// Document represents a Document node. It is a typed view over *Node.
type Document Node

// NewDocument creates a new HTML document with the usual
// html/head/body skeleton, so rendered content is connected.
func NewDocument() *Document {
	node := newNode(DocumentNode, "#document", nil)
	node.documentData = &documentData{}
	doc := (*Document)(node)
	node.ownerDoc = doc
	node.documentData.customElements = newCustomElementRegistry(doc)

	html := doc.CreateElement("html")
	node.AppendChild(html.AsNode())
	node.documentData.documentElement = html.AsNode()
	html.AsNode().AppendChild(doc.CreateElement("head").AsNode())
	html.AsNode().AppendChild(doc.CreateElement("body").AsNode())

	return doc
}

// AsNode returns the underlying Node.
func (d *Document) AsNode() *Node {
	return (*Node)(d)
}

// NodeType returns DocumentNode (9).
func (d *Document) NodeType() NodeType {
	return DocumentNode
}

// NodeName returns "#document".
func (d *Document) NodeName() string {
	return "#document"
}

// DocumentElement returns the root <html> element.
func (d *Document) DocumentElement() *Element {
	if d.AsNode().documentData.documentElement != nil {
		return (*Element)(d.AsNode().documentData.documentElement)
	}
	for child := d.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// Head returns the document's <head> element, or nil.
func (d *Document) Head() *Element {
	return d.childOfDocumentElement("head")
}

// Body returns the document's <body> element, or nil.
func (d *Document) Body() *Element {
	return d.childOfDocumentElement("body")
}

func (d *Document) childOfDocumentElement(localName string) *Element {
	root := d.DocumentElement()
	if root == nil {
		return nil
	}
	for child := root.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode && (*Element)(child).LocalName() == localName {
			return (*Element)(child)
		}
	}
	return nil
}

// CustomElements returns the document's custom element registry.
func (d *Document) CustomElements() *CustomElementRegistry {
	return d.AsNode().documentData.customElements
}

// CreateElement creates a new element with the given tag name.
// This method ignores errors for convenience; use CreateElementWithError
// for proper error handling.
func (d *Document) CreateElement(tagName string) *Element {
	el, _ := d.CreateElementWithError(tagName)
	return el
}

// CreateElementWithError creates a new element with the given tag name.
// Returns an InvalidCharacterError if the tag name is not a valid name.
// In this HTML document the tag name is lowercased for the local name
// and uppercased for TagName, per the DOM spec.
func (d *Document) CreateElementWithError(tagName string) (*Element, error) {
	if !isValidElementName(tagName) {
		return nil, ErrInvalidCharacter("The string contains invalid characters.")
	}

	localName := strings.ToLower(tagName)
	node := newNode(ElementNode, strings.ToUpper(tagName), d)
	node.elementData = &elementData{
		localName: localName,
		tagName:   strings.ToUpper(tagName),
	}
	node.elementData.attributes = newNamedNodeMap((*Element)(node))

	el := (*Element)(node)

	// A definition registered before creation upgrades the element
	// immediately; otherwise the registry tracks it for a later Define.
	d.CustomElements().elementCreated(el)

	return el, nil
}

// CreateTextNode creates a new text node with the given data.
func (d *Document) CreateTextNode(data string) *Node {
	node := newNode(TextNode, "#text", d)
	node.nodeValue = &data
	return node
}

// CreateComment creates a new comment node with the given data.
func (d *Document) CreateComment(data string) *Node {
	node := newNode(CommentNode, "#comment", d)
	node.nodeValue = &data
	return node
}

// CreateDocumentFragment creates a new empty document fragment.
func (d *Document) CreateDocumentFragment() *DocumentFragment {
	node := newNode(DocumentFragmentNode, "#document-fragment", d)
	return (*DocumentFragment)(node)
}

// GetElementById returns the element with the given id, or nil.
// Shadow trees are not searched.
func (d *Document) GetElementById(id string) *Element {
	if id == "" {
		return nil
	}
	return findElementById(d.AsNode(), id)
}

func findElementById(node *Node, id string) *Element {
	for child := node.firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			el := (*Element)(child)
			if el.Id() == id {
				return el
			}
			if result := findElementById(child, id); result != nil {
				return result
			}
		}
	}
	return nil
}

// QuerySelector returns the first element in the document matching the
// selector, or nil.
func (d *Document) QuerySelector(selector string) *Element {
	results := querySelectorAll(d.AsNode(), selector, true)
	if len(results) == 0 {
		return nil
	}
	return results[0]
}

// QuerySelectorAll returns all elements in the document matching the selector.
func (d *Document) QuerySelectorAll(selector string) []*Element {
	return querySelectorAll(d.AsNode(), selector, false)
}

// isValidElementName checks tag names: a letter followed by letters,
// digits, hyphens, underscores, or periods. This covers the HTML name
// production as far as this suite exercises it.
func isValidElementName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r == '-' || r == '_' || r == '.' || (r >= '0' && r <= '9')):
		default:
			return false
		}
	}
	return true
}

// DocumentFragment represents a DocumentFragment node.
type DocumentFragment Node

// AsNode returns the underlying Node.
func (df *DocumentFragment) AsNode() *Node {
	return (*Node)(df)
}

// NodeType returns DocumentFragmentNode (11).
func (df *DocumentFragment) NodeType() NodeType {
	return DocumentFragmentNode
}

// AppendChild adds a node to the end of the fragment's children.
func (df *DocumentFragment) AppendChild(child *Node) *Node {
	return df.AsNode().AppendChild(child)
}

// QuerySelector returns the first element in the fragment matching the
// selector, or nil.
func (df *DocumentFragment) QuerySelector(selector string) *Element {
	results := querySelectorAll(df.AsNode(), selector, true)
	if len(results) == 0 {
		return nil
	}
	return results[0]
}
