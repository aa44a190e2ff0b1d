package dom

// Attr represents an attribute of an Element.
type Attr struct {
	ownerElement *Element
	name         string
	value        string
}

// NewAttr creates a new Attr with the given name and value.
func NewAttr(name, value string) *Attr {
	return &Attr{name: name, value: value}
}

// Name returns the attribute name.
func (a *Attr) Name() string {
	return a.name
}

// Value returns the attribute value.
func (a *Attr) Value() string {
	return a.value
}

// SetValue sets the attribute value.
func (a *Attr) SetValue(value string) {
	a.value = value
}

// OwnerElement returns the element that owns this attribute.
func (a *Attr) OwnerElement() *Element {
	return a.ownerElement
}

// NamedNodeMap represents the ordered collection of Attr objects backing
// Element.Attributes. Insertion order is preserved.
type NamedNodeMap struct {
	ownerElement *Element
	attrs        []*Attr
}

// newNamedNodeMap creates a new NamedNodeMap for the given element.
func newNamedNodeMap(element *Element) *NamedNodeMap {
	return &NamedNodeMap{
		ownerElement: element,
		attrs:        make([]*Attr, 0),
	}
}

// Length returns the number of attributes in the map.
func (nm *NamedNodeMap) Length() int {
	return len(nm.attrs)
}

// Item returns the attribute at the given index, or nil if out of bounds.
func (nm *NamedNodeMap) Item(index int) *Attr {
	if index < 0 || index >= len(nm.attrs) {
		return nil
	}
	return nm.attrs[index]
}

// GetNamedItem returns the attribute with the given name, or nil if not found.
func (nm *NamedNodeMap) GetNamedItem(name string) *Attr {
	for _, attr := range nm.attrs {
		if attr.name == name {
			return attr
		}
	}
	return nil
}

// setAttr adds or replaces an attribute, returning the previous value
// and whether one was present.
func (nm *NamedNodeMap) setAttr(name, value string) (string, bool) {
	for _, existing := range nm.attrs {
		if existing.name == name {
			old := existing.value
			existing.value = value
			return old, true
		}
	}
	nm.attrs = append(nm.attrs, &Attr{
		ownerElement: nm.ownerElement,
		name:         name,
		value:        value,
	})
	return "", false
}

// removeAttr removes the attribute with the given name, returning the
// removed value and whether one was present.
func (nm *NamedNodeMap) removeAttr(name string) (string, bool) {
	for i, existing := range nm.attrs {
		if existing.name == name {
			nm.attrs = append(nm.attrs[:i], nm.attrs[i+1:]...)
			existing.ownerElement = nil
			return existing.value, true
		}
	}
	return "", false
}
