package render

import (
	"fmt"

	"github.com/AYColumbia/wcconform/dom"
)

// Component is a renderable unit: a plain Go struct whose Render method
// produces the vnode tree for its current state.
type Component interface {
	Render() *VNode
}

// Instance is the handle to a mounted component. It substitutes for
// direct return-value access to the mounted tree: fixtures capture it
// through the callback passed to Mount and use it to force re-renders.
type Instance struct {
	component Component
	container *dom.Element
}

// Mount renders the component into the container and returns its
// instance handle. If capture is non-nil it is invoked exactly once,
// after the first render completes.
func Mount(c Component, container *dom.Element, capture func(*Instance)) (*Instance, error) {
	if c == nil {
		return nil, fmt.Errorf("render: nil component")
	}
	if container == nil {
		return nil, fmt.Errorf("render: nil container")
	}

	inst := &Instance{component: c, container: container}
	if err := inst.ForceUpdate(); err != nil {
		return nil, err
	}
	if capture != nil {
		capture(inst)
	}
	return inst, nil
}

// Component returns the mounted component.
func (i *Instance) Component() Component {
	return i.component
}

// Container returns the element the component is mounted in.
func (i *Instance) Container() *dom.Element {
	return i.container
}

// ForceUpdate immediately re-evaluates the component's output and
// re-applies it to the container, bypassing any change detection.
func (i *Instance) ForceUpdate() error {
	return renderInto(i.component.Render(), i.container)
}
