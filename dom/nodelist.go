package dom

// NodeList is a live view over a node's children. Length, Item, and
// ForEach walk the sibling chain at call time, so mutations made after
// the list was obtained are reflected.
type NodeList struct {
	parent *Node
}

func newNodeList(parent *Node) *NodeList {
	return &NodeList{parent: parent}
}

// Length returns the current number of children.
func (nl *NodeList) Length() int {
	count := 0
	for child := nl.parent.firstChild; child != nil; child = child.nextSibling {
		count++
	}
	return count
}

// Item returns the child at the given index, or nil if the index is out of bounds.
func (nl *NodeList) Item(index int) *Node {
	if index < 0 {
		return nil
	}
	i := 0
	for child := nl.parent.firstChild; child != nil; child = child.nextSibling {
		if i == index {
			return child
		}
		i++
	}
	return nil
}

// ForEach calls the given function for each child in order.
func (nl *NodeList) ForEach(fn func(node *Node, index int)) {
	i := 0
	for child := nl.parent.firstChild; child != nil; child = child.nextSibling {
		fn(child, i)
		i++
	}
}
