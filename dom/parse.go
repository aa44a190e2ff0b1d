package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// parseHTMLFragment parses an HTML fragment in the context of an
// element, using golang.org/x/net/html. The returned nodes are owned by
// the context element's document but not yet attached to it.
func parseHTMLFragment(markup string, context *Element) ([]*Node, error) {
	tagName := context.LocalName()
	contextNode := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(tagName)),
		Data:     tagName,
	}

	nodes, err := html.ParseFragment(strings.NewReader(markup), contextNode)
	if err != nil {
		return nil, err
	}

	result := make([]*Node, 0, len(nodes))
	doc := context.AsNode().ownerDoc
	for _, n := range nodes {
		result = append(result, convertHTMLNode(n, doc))
	}
	return result, nil
}

// convertHTMLNode converts an html.Node subtree to a dom.Node subtree.
func convertHTMLNode(n *html.Node, doc *Document) *Node {
	var node *Node

	switch n.Type {
	case html.TextNode:
		node = doc.CreateTextNode(n.Data)
	case html.ElementNode:
		el := doc.CreateElement(n.Data)
		for _, attr := range n.Attr {
			el.SetAttribute(attr.Key, attr.Val)
		}
		node = el.AsNode()
	case html.CommentNode:
		node = doc.CreateComment(n.Data)
	default:
		node = doc.CreateTextNode(n.Data)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		node.AppendChild(convertHTMLNode(c, doc))
	}
	return node
}
