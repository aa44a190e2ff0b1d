// Package render applies declarative element trees to a dom container:
// it realizes vnodes as native elements, applies props as attributes,
// properties, or event listeners, and supports imperative re-rendering
// of mounted components.
package render

import "fmt"

// Props holds the declared props of an element vnode.
type Props map[string]any

// VNode is one node of a declarative tree: either an element with
// props and children, or a text node.
type VNode struct {
	Tag      string
	Props    Props
	Children []*VNode

	Text   string
	isText bool
}

// H builds an element vnode. Children may be *VNode, string, int
// (rendered as text), []*VNode, or nil (skipped).
func H(tag string, props Props, children ...any) *VNode {
	v := &VNode{Tag: tag, Props: props}
	appendChildren(v, children)
	return v
}

func appendChildren(v *VNode, children []any) {
	for _, child := range children {
		switch c := child.(type) {
		case nil:
			// skipped
		case *VNode:
			if c != nil {
				v.Children = append(v.Children, c)
			}
		case []*VNode:
			for _, cc := range c {
				if cc != nil {
					v.Children = append(v.Children, cc)
				}
			}
		case string:
			v.Children = append(v.Children, Text(c))
		case int:
			v.Children = append(v.Children, Text(fmt.Sprintf("%d", c)))
		default:
			v.Children = append(v.Children, Text(fmt.Sprint(c)))
		}
	}
}

// Text builds a text vnode.
func Text(s string) *VNode {
	return &VNode{Text: s, isText: true}
}

// IsText reports whether the vnode is a text node.
func (v *VNode) IsText() bool {
	return v.isText
}
