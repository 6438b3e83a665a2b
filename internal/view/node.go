// Package view builds the marketplace HTML as a typed node tree and renders
// it through golang.org/x/net/html, which escapes all text and attributes.
package view

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attribute is one key/value pair on an element.
type Attribute struct {
	Key string
	Val string
}

// Node is an element or, when Tag is empty, a text node.
type Node struct {
	Tag      string
	Text     string
	Attrs    []Attribute
	Children []*Node
}

// Part is anything that can be passed to El: an Option or a child *Node.
type Part interface {
	apply(n *Node)
}

// Option sets something on the element being built.
type Option func(n *Node)

func (o Option) apply(n *Node) { o(n) }

func (c *Node) apply(n *Node) {
	if c != nil {
		n.Children = append(n.Children, c)
	}
}

// El builds an element. Nil children are skipped, so optional sections can be
// written inline.
func El(tag string, parts ...Part) *Node {
	n := &Node{Tag: tag}
	for _, p := range parts {
		if p != nil {
			p.apply(n)
		}
	}
	return n
}

// Text builds a text node.
func Text(s string) *Node {
	return &Node{Text: s}
}

// Attr sets an attribute.
func Attr(key, val string) Option {
	return func(n *Node) {
		n.Attrs = append(n.Attrs, Attribute{Key: key, Val: val})
	}
}

// Class sets the class attribute.
func Class(names ...string) Option {
	return Attr("class", strings.Join(names, " "))
}

// ID sets the id attribute.
func ID(id string) Option {
	return Attr("id", id)
}

// Group attaches several children at once.
func Group(children ...*Node) Option {
	return func(n *Node) {
		for _, c := range children {
			c.apply(n)
		}
	}
}

// If returns part when cond holds, otherwise nil.
func If(cond bool, part Part) Part {
	if cond {
		return part
	}
	return nil
}

// Attribute returns the value of key and whether it is set.
func (n *Node) Attribute(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasClass reports whether name is one of the element's classes.
func (n *Node) HasClass(name string) bool {
	v, _ := n.Attribute("class")
	for _, c := range strings.Fields(v) {
		if c == name {
			return true
		}
	}
	return false
}

// TextContent concatenates the text of n and its descendants.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.walk(func(c *Node) bool {
		if c.Tag == "" {
			b.WriteString(c.Text)
		}
		return true
	})
	return b.String()
}

// Find returns the first node in document order matching match.
func (n *Node) Find(match func(*Node) bool) *Node {
	var found *Node
	n.walk(func(c *Node) bool {
		if found == nil && match(c) {
			found = c
		}
		return found == nil
	})
	return found
}

// FindAll returns every node in document order matching match.
func (n *Node) FindAll(match func(*Node) bool) []*Node {
	var found []*Node
	n.walk(func(c *Node) bool {
		if match(c) {
			found = append(found, c)
		}
		return true
	})
	return found
}

// ByID matches elements with the given id.
func ByID(id string) func(*Node) bool {
	return func(n *Node) bool {
		v, ok := n.Attribute("id")
		return ok && v == id
	}
}

// ByClass matches elements carrying the given class.
func ByClass(name string) func(*Node) bool {
	return func(n *Node) bool {
		return n.HasClass(name)
	}
}

func (n *Node) walk(visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.walk(visit) {
			return false
		}
	}
	return true
}

func (n *Node) toHTML() *html.Node {
	if n.Tag == "" {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}

	out := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	for _, a := range n.Attrs {
		out.Attr = append(out.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	for _, c := range n.Children {
		out.AppendChild(c.toHTML())
	}
	return out
}

// Render writes n as an HTML fragment.
func Render(w io.Writer, n *Node) error {
	return html.Render(w, n.toHTML())
}

// RenderDocument writes n as a complete document with an HTML5 doctype.
func RenderDocument(w io.Writer, n *Node) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(n.toHTML())
	return html.Render(w, doc)
}
