package discovery

import (
	"encoding/xml"
	"io"
	"strings"
)

// xmlElement is a minimal parsed XML tree node. Device description
// documents are small, so materializing the whole tree is cheap and makes
// the namespace fallback below straightforward.
type xmlElement struct {
	name     xml.Name
	text     strings.Builder
	children []*xmlElement
}

// parseXML parses a description document into an element tree.
func parseXML(r io.Reader) (*xmlElement, error) {
	decoder := xml.NewDecoder(r)

	var root *xmlElement
	var stack []*xmlElement

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			elem := &xmlElement{name: t.Name}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, elem)
			} else if root == nil {
				root = elem
			}
			stack = append(stack, elem)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}

	if root == nil {
		return nil, io.ErrUnexpectedEOF
	}
	return root, nil
}

// findText locates the first element named local anywhere under root and
// returns its trimmed text.
//
// Description documents may declare a default namespace on the root
// element, in which case every element's qualified name carries the
// namespace URI and a plain local-name query would miss it. The lookup
// therefore tries the root's namespace first, then falls back to a
// namespace-unaware match. A missing element and an element with
// empty or whitespace-only text are both reported as "" - callers cannot
// and should not distinguish them.
func findText(root *xmlElement, local string) string {
	if ns := root.name.Space; ns != "" {
		if elem := findElement(root, local, ns, true); elem != nil {
			if text := strings.TrimSpace(elem.text.String()); text != "" {
				return text
			}
		}
	}
	if elem := findElement(root, local, "", false); elem != nil {
		return strings.TrimSpace(elem.text.String())
	}
	return ""
}

// findElement walks the tree depth-first for the first element whose local
// name matches. When matchSpace is set the element's namespace must equal
// space as well.
func findElement(elem *xmlElement, local, space string, matchSpace bool) *xmlElement {
	if elem.name.Local == local && (!matchSpace || elem.name.Space == space) {
		return elem
	}
	for _, child := range elem.children {
		if found := findElement(child, local, space, matchSpace); found != nil {
			return found
		}
	}
	return nil
}
