package ingest

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

type xmlNode struct {
	XMLName xml.Name
	Content string    `xml:",chardata"`
	Nodes   []xmlNode `xml:",any"`
}

// parseTree decodes a whole document. Anything other than whitespace,
// comments or processing instructions after the root element is rejected.
func parseTree(doc []byte) (*xmlNode, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))
	dec.CharsetReader = charset.NewReaderLabel
	var root xmlNode
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no root element")
		}
		return nil, err
	}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return &root, nil
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return nil, fmt.Errorf("junk after document element: <%s>", t.Name.Local)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return nil, errors.New("junk after document element")
			}
		}
	}
}

// child returns the first direct child named name.
func (n *xmlNode) child(name string) *xmlNode {
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == name {
			return &n.Nodes[i]
		}
	}
	return nil
}

// find resolves a lookup path below n. A plain name selects a direct child;
// a path starting with ".//" selects, in document order, the first match of
// the remaining steps under any descendant. Steps are separated by '/'.
func (n *xmlNode) find(path string) *xmlNode {
	if rest, ok := strings.CutPrefix(path, ".//"); ok {
		steps := strings.Split(rest, "/")
		var found *xmlNode
		n.walk(func(d *xmlNode) bool {
			if d.XMLName.Local != steps[0] {
				return true
			}
			if m := d.descend(steps[1:]); m != nil {
				found = m
				return false
			}
			return true
		})
		return found
	}
	return n.descend(strings.Split(path, "/"))
}

func (n *xmlNode) descend(steps []string) *xmlNode {
	cur := n
	for _, s := range steps {
		if cur = cur.child(s); cur == nil {
			return nil
		}
	}
	return cur
}

// walk visits every descendant of n (not n itself) in document order until
// fn returns false.
func (n *xmlNode) walk(fn func(*xmlNode) bool) bool {
	for i := range n.Nodes {
		if !fn(&n.Nodes[i]) {
			return false
		}
		if !n.Nodes[i].walk(fn) {
			return false
		}
	}
	return true
}
