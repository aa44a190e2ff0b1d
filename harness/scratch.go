package harness

import (
	"fmt"

	"github.com/AYColumbia/wcconform/dom"
	"github.com/AYColumbia/wcconform/eventloop"
)

// Env owns the document and event loop shared by a suite run, plus the
// per-case scratch container. The document and its custom element
// registrations persist across cases; only the scratch subtree is
// replaced between cases.
type Env struct {
	doc     *dom.Document
	loop    *eventloop.Loop
	appRoot *dom.Element
	scratch *dom.Element
}

// NewEnv builds a fresh document with an app root attached to its body.
func NewEnv() (*Env, error) {
	doc := dom.NewDocument()
	body := doc.Body()
	if body == nil {
		return nil, fmt.Errorf("document has no body")
	}
	appRoot := doc.CreateElement("div")
	appRoot.SetId("app")
	if _, err := body.AsNode().AppendChildWithError(appRoot.AsNode()); err != nil {
		return nil, fmt.Errorf("attaching app root: %w", err)
	}
	return &Env{
		doc:     doc,
		loop:    eventloop.New(),
		appRoot: appRoot,
	}, nil
}

// Document returns the shared document.
func (e *Env) Document() *dom.Document { return e.doc }

// Loop returns the shared event loop.
func (e *Env) Loop() *eventloop.Loop { return e.loop }

// Scratch returns the current case's container, or nil between cases.
func (e *Env) Scratch() *dom.Element { return e.scratch }

// SetUp creates a fresh connected scratch container for one case.
// At most one scratch container is live at a time; a second SetUp
// without an intervening TearDown is a harness fault.
func (e *Env) SetUp() (*dom.Element, error) {
	if e.scratch != nil {
		return nil, fmt.Errorf("scratch container already live")
	}
	scratch := e.doc.CreateElement("div")
	scratch.SetAttribute("data-scratch", "")
	if _, err := e.appRoot.AsNode().AppendChildWithError(scratch.AsNode()); err != nil {
		return nil, fmt.Errorf("attaching scratch container: %w", err)
	}
	if !scratch.AsNode().IsConnected() {
		return nil, fmt.Errorf("scratch container not connected after attach")
	}
	e.scratch = scratch
	return scratch, nil
}

// TearDown detaches the scratch subtree and drops any queued work, so
// nothing a case scheduled can observe a later case's tree. It runs no
// matter how the case exited.
func (e *Env) TearDown() {
	for {
		first := e.appRoot.AsNode().FirstChild()
		if first == nil {
			break
		}
		e.appRoot.AsNode().RemoveChild(first)
	}
	e.scratch = nil
	e.loop.Clear()
}
