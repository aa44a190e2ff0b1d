package dom

import (
	"strings"
	"testing"
)

func TestDocumentSkeleton(t *testing.T) {
	doc := NewDocument()

	if doc.DocumentElement() == nil {
		t.Fatal("expected a document element")
	}
	if doc.DocumentElement().TagName() != "HTML" {
		t.Errorf("expected document element HTML, got %s", doc.DocumentElement().TagName())
	}
	if doc.Head() == nil || doc.Head().TagName() != "HEAD" {
		t.Error("expected a HEAD element")
	}
	if doc.Body() == nil || doc.Body().TagName() != "BODY" {
		t.Error("expected a BODY element")
	}
	if !doc.Body().AsNode().IsConnected() {
		t.Error("expected the body to be connected")
	}
}

func TestCreateElement(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("DIV")

	if el.TagName() != "DIV" {
		t.Errorf("expected tag name DIV, got %s", el.TagName())
	}
	if el.LocalName() != "div" {
		t.Errorf("expected local name div, got %s", el.LocalName())
	}
	if el.AsNode().IsConnected() {
		t.Error("expected a created element to start disconnected")
	}
}

func TestAppendChild(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div")
	child := doc.CreateElement("span")

	parent.AsNode().AppendChild(child.AsNode())

	if child.AsNode().ParentNode() != parent.AsNode() {
		t.Error("expected the child's parent to be set")
	}
	if parent.AsNode().FirstChild() != child.AsNode() {
		t.Error("expected the child to be the first child")
	}
	if parent.ChildElementCount() != 1 {
		t.Errorf("expected 1 child element, got %d", parent.ChildElementCount())
	}
}

func TestAppendChildMovesNode(t *testing.T) {
	doc := NewDocument()
	a := doc.CreateElement("div")
	b := doc.CreateElement("div")
	child := doc.CreateElement("span")

	a.AsNode().AppendChild(child.AsNode())
	b.AsNode().AppendChild(child.AsNode())

	if a.AsNode().HasChildNodes() {
		t.Error("expected the first parent to have no children after the move")
	}
	if child.AsNode().ParentNode() != b.AsNode() {
		t.Error("expected the child to be reparented")
	}
}

func TestAppendChildRejectsAncestor(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div")
	child := doc.CreateElement("div")
	parent.AsNode().AppendChild(child.AsNode())

	_, err := child.AsNode().AppendChildWithError(parent.AsNode())
	if err == nil {
		t.Fatal("expected an error inserting an ancestor under its descendant")
	}
	domErr, ok := err.(*DOMError)
	if !ok || domErr.Name != "HierarchyRequestError" {
		t.Errorf("expected HierarchyRequestError, got %v", err)
	}
}

func TestDocumentRejectsTextChild(t *testing.T) {
	doc := NewDocument()
	text := doc.CreateTextNode("loose")

	_, err := doc.AsNode().AppendChildWithError(text)
	if err == nil {
		t.Fatal("expected an error inserting text directly under a document")
	}
}

func TestInsertBefore(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("ul")
	first := doc.CreateElement("li")
	second := doc.CreateElement("li")

	parent.AsNode().AppendChild(second.AsNode())
	parent.AsNode().InsertBefore(first.AsNode(), second.AsNode())

	if parent.AsNode().FirstChild() != first.AsNode() {
		t.Error("expected the inserted node first")
	}
	if first.AsNode().NextSibling() != second.AsNode() {
		t.Error("expected sibling links to connect the two items")
	}
}

func TestInsertBeforeWrongParent(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div")
	other := doc.CreateElement("div")
	ref := doc.CreateElement("span")
	other.AsNode().AppendChild(ref.AsNode())

	_, err := parent.AsNode().InsertBeforeWithError(doc.CreateElement("b").AsNode(), ref.AsNode())
	if err == nil {
		t.Fatal("expected an error when the reference node is not a child")
	}
	domErr, ok := err.(*DOMError)
	if !ok || domErr.Name != "NotFoundError" {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestRemoveChild(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div")
	child := doc.CreateElement("span")
	parent.AsNode().AppendChild(child.AsNode())

	removed := parent.AsNode().RemoveChild(child.AsNode())

	if removed != child.AsNode() {
		t.Error("expected RemoveChild to return the removed node")
	}
	if child.AsNode().ParentNode() != nil {
		t.Error("expected the removed node's parent to be cleared")
	}
	if child.AsNode().NextSibling() != nil || child.AsNode().PreviousSibling() != nil {
		t.Error("expected the removed node's sibling links to be cleared")
	}
}

func TestFragmentInsertMovesAllChildren(t *testing.T) {
	doc := NewDocument()
	frag := doc.CreateDocumentFragment()
	frag.AppendChild(doc.CreateElement("a").AsNode())
	frag.AppendChild(doc.CreateElement("b").AsNode())

	target := doc.CreateElement("div")
	target.AsNode().AppendChild(frag.AsNode())

	if target.ChildElementCount() != 2 {
		t.Errorf("expected 2 children after fragment insert, got %d", target.ChildElementCount())
	}
	if frag.AsNode().HasChildNodes() {
		t.Error("expected the fragment to be emptied")
	}
}

func TestChildNodesAreLive(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	children := div.AsNode().ChildNodes()

	if children.Length() != 0 {
		t.Errorf("expected an empty child list, got %d", children.Length())
	}

	a := doc.CreateElement("a")
	b := doc.CreateElement("b")
	div.AsNode().AppendChild(a.AsNode())
	div.AsNode().AppendChild(b.AsNode())

	if children.Length() != 2 {
		t.Errorf("expected the list to reflect 2 appended children, got %d", children.Length())
	}
	if children.Item(0) != a.AsNode() || children.Item(1) != b.AsNode() {
		t.Error("expected Item to return children in insertion order")
	}
	if children.Item(-1) != nil || children.Item(2) != nil {
		t.Error("expected nil for out-of-range indexes")
	}

	var names []string
	children.ForEach(func(node *Node, index int) {
		names = append(names, node.NodeName())
	})
	if len(names) != 2 || names[0] != "A" || names[1] != "B" {
		t.Errorf("expected ForEach to visit A then B, got %v", names)
	}

	div.AsNode().RemoveChild(a.AsNode())
	if children.Length() != 1 || children.Item(0) != b.AsNode() {
		t.Error("expected the list to reflect the removal")
	}
}

func TestTextContent(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	span := doc.CreateElement("span")
	span.AsNode().AppendChild(doc.CreateTextNode("Hello, "))
	div.AsNode().AppendChild(span.AsNode())
	div.AsNode().AppendChild(doc.CreateTextNode("World"))
	div.AsNode().AppendChild(doc.CreateComment("ignored"))

	if got := div.TextContent(); got != "Hello, World" {
		t.Errorf("expected text content %q, got %q", "Hello, World", got)
	}

	div.SetTextContent("replaced")
	if div.AsNode().ChildNodes().Length() != 1 {
		t.Errorf("expected a single text child after SetTextContent, got %d", div.AsNode().ChildNodes().Length())
	}
	if got := div.TextContent(); got != "replaced" {
		t.Errorf("expected text content %q, got %q", "replaced", got)
	}
}

func TestAttributes(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")

	if el.HasAttribute("data-x") {
		t.Error("expected no attribute before SetAttribute")
	}
	el.SetAttribute("data-x", "1")
	if !el.HasAttribute("data-x") {
		t.Error("expected the attribute after SetAttribute")
	}
	if got := el.GetAttribute("data-x"); got != "1" {
		t.Errorf("expected attribute value 1, got %q", got)
	}

	el.SetAttribute("data-x", "2")
	if got := el.GetAttribute("data-x"); got != "2" {
		t.Errorf("expected attribute value 2 after overwrite, got %q", got)
	}
	if el.Attributes().Length() != 1 {
		t.Errorf("expected 1 attribute, got %d", el.Attributes().Length())
	}

	el.RemoveAttribute("data-x")
	if el.HasAttribute("data-x") {
		t.Error("expected the attribute to be removed")
	}
}

func TestToggleAttribute(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("button")

	if !el.ToggleAttribute("disabled") {
		t.Error("expected ToggleAttribute to report the attribute was added")
	}
	if el.ToggleAttribute("disabled") {
		t.Error("expected ToggleAttribute to report the attribute was removed")
	}
	if el.HasAttribute("disabled") {
		t.Error("expected the attribute gone after the second toggle")
	}
	if !el.ToggleAttribute("disabled", true) {
		t.Error("expected forced toggle to add the attribute")
	}
	if !el.ToggleAttribute("disabled", true) {
		t.Error("expected forced toggle to keep the attribute")
	}
}

func TestProps(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("x-widget")

	if _, ok := el.Prop("data"); ok {
		t.Error("expected no property before SetProp")
	}
	el.SetProp("data", []string{"a", "b"})
	v, ok := el.Prop("data")
	if !ok {
		t.Fatal("expected the property after SetProp")
	}
	if got := v.([]string); len(got) != 2 || got[0] != "a" {
		t.Errorf("expected the stored slice back, got %v", got)
	}

	el.DeleteProp("data")
	if el.HasProp("data") {
		t.Error("expected the property to be deleted")
	}
}

func TestGetElementById(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	el.SetId("main")
	doc.Body().AsNode().AppendChild(el.AsNode())

	if doc.GetElementById("main") != el {
		t.Error("expected GetElementById to find the element")
	}
	if doc.GetElementById("missing") != nil {
		t.Error("expected nil for an unknown id")
	}
}

func TestMatches(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	el.SetId("main")
	el.SetClassName("card wide")

	cases := []struct {
		selector string
		want     bool
	}{
		{"div", true},
		{"span", false},
		{"#main", true},
		{"#other", false},
		{".card", true},
		{".wide", true},
		{".narrow", false},
		{"div#main.card", true},
		{"div#main.narrow", false},
		{"*", true},
	}
	for _, tc := range cases {
		if got := el.Matches(tc.selector); got != tc.want {
			t.Errorf("Matches(%q) = %v, want %v", tc.selector, got, tc.want)
		}
	}
}

func TestQuerySelector(t *testing.T) {
	doc := NewDocument()
	root := doc.CreateElement("div")
	list := doc.CreateElement("ul")
	item := doc.CreateElement("li")
	item.SetClassName("active")
	list.AsNode().AppendChild(item.AsNode())
	root.AsNode().AppendChild(list.AsNode())

	if root.QuerySelector("li") != item {
		t.Error("expected QuerySelector to find the nested item")
	}
	if root.QuerySelector(".active") != item {
		t.Error("expected QuerySelector to match by class")
	}
	if root.QuerySelector(".inactive") != nil {
		t.Error("expected nil for a selector with no matches")
	}
	if got := len(root.QuerySelectorAll("*")); got != 2 {
		t.Errorf("expected 2 descendants, got %d", got)
	}
}

func TestShadowRootAttachment(t *testing.T) {
	doc := NewDocument()
	host := doc.CreateElement("x-host")

	sr, err := host.AttachShadow(ShadowRootModeOpen)
	if err != nil {
		t.Fatalf("unexpected error attaching shadow root: %v", err)
	}
	if host.ShadowRoot() != sr {
		t.Error("expected the open shadow root to be exposed")
	}
	if _, err := host.AttachShadow(ShadowRootModeOpen); err == nil {
		t.Error("expected an error attaching a second shadow root")
	}

	img := doc.CreateElement("img")
	if _, err := img.AttachShadow(ShadowRootModeOpen); err == nil {
		t.Error("expected an error attaching a shadow root to img")
	}
	span := doc.CreateElement("span")
	if _, err := span.AttachShadow(ShadowRootModeOpen); err != nil {
		t.Errorf("unexpected error attaching a shadow root to span: %v", err)
	}
}

func TestClosedShadowRootHidden(t *testing.T) {
	doc := NewDocument()
	host := doc.CreateElement("x-host")

	sr, err := host.AttachShadow(ShadowRootModeClosed)
	if err != nil {
		t.Fatalf("unexpected error attaching shadow root: %v", err)
	}
	if host.ShadowRoot() != nil {
		t.Error("expected a closed shadow root to be hidden")
	}
	if host.GetShadowRoot() != sr {
		t.Error("expected GetShadowRoot to return the closed root")
	}
}

func TestShadowContentIsEncapsulated(t *testing.T) {
	doc := NewDocument()
	host := doc.CreateElement("x-host")
	doc.Body().AsNode().AppendChild(host.AsNode())

	sr, err := host.AttachShadow(ShadowRootModeOpen)
	if err != nil {
		t.Fatalf("unexpected error attaching shadow root: %v", err)
	}
	if err := sr.SetInnerHTML("<h1>inside</h1>"); err != nil {
		t.Fatalf("unexpected error setting shadow content: %v", err)
	}

	if host.QuerySelector("h1") != nil {
		t.Error("expected shadow content to be invisible to light-DOM queries")
	}
	if host.TextContent() != "" {
		t.Errorf("expected shadow content excluded from text content, got %q", host.TextContent())
	}
	h1 := sr.QuerySelector("h1")
	if h1 == nil {
		t.Fatal("expected the shadow query to find the heading")
	}
	if h1.TextContent() != "inside" {
		t.Errorf("expected heading text %q, got %q", "inside", h1.TextContent())
	}
	if !h1.AsNode().IsConnected() {
		t.Error("expected shadow content of a connected host to be connected")
	}
}

func TestInnerHTMLRoundTrip(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	if err := div.SetInnerHTML(`<span class="x">a &amp; b</span><!--note-->`); err != nil {
		t.Fatalf("unexpected error parsing markup: %v", err)
	}

	span := div.QuerySelector("span.x")
	if span == nil {
		t.Fatal("expected the parsed span")
	}
	if span.TextContent() != "a & b" {
		t.Errorf("expected entity-decoded text, got %q", span.TextContent())
	}

	got := div.InnerHTML()
	if !strings.Contains(got, `<span class="x">a &amp; b</span>`) {
		t.Errorf("expected serialized span in %q", got)
	}
	if !strings.Contains(got, "<!--note-->") {
		t.Errorf("expected serialized comment in %q", got)
	}
}
