package shard

import (
	"encoding/xml"
	"errors"
	"io"

	errs "github.com/ArthurRichard/energytrace/internal/errors"
)

// Node is the generic tree view discovery needs from the index document.
type Node interface {
	Tag() string
	Attr(name string) (string, bool)
	// Text returns the character data directly inside the node.
	Text() string
	Children() []Node
}

// Element is the Node implementation produced by ParseIndex.
type Element struct {
	Name  string
	Attrs []xml.Attr
	Data  string
	Kids  []*Element
}

var _ Node = (*Element)(nil)

func (e *Element) Tag() string { return e.Name }

func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}

	return "", false
}

func (e *Element) Text() string { return e.Data }

func (e *Element) Children() []Node {
	nodes := make([]Node, len(e.Kids))
	for i, k := range e.Kids {
		nodes[i] = k
	}

	return nodes
}

// ParseIndex reads an XML document into an Element tree and returns its root.
func ParseIndex(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true

	var (
		root  *Element
		stack []*Element
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errs.Formatf("index: %v", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local, Attrs: t.Copy().Attr}
			if len(stack) == 0 {
				if root != nil {
					return nil, errs.Formatf("index: multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Kids = append(parent.Kids, el)
			}
			stack = append(stack, el)
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Data += string(t)
			}
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}

	if root == nil {
		return nil, errs.Formatf("index: empty document")
	}

	return root, nil
}

// Walk calls fn for n and every descendant in document order.
func Walk(n Node, fn func(Node)) {
	fn(n)
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}
