package dom

import "strings"

// QuerySelector returns the first descendant of n (or n itself) matching
// sel, in document order.
//
// Supported selectors: tag, .class, #id, tag.class, tag#id, [attr],
// [attr=val], and descendant combinations separated by spaces.
func (n *Node) QuerySelector(sel string) *Node {
	matches := n.QuerySelectorAll(sel)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// QuerySelectorAll returns every node under n matching sel, in document
// order and without duplicates.
func (n *Node) QuerySelectorAll(sel string) []*Node {
	parts := strings.Fields(sel)
	if len(parts) == 0 {
		return nil
	}

	matches := matchSimple(n, parseSimpleSelector(parts[0]), true)
	for i := 1; i < len(parts); i++ {
		m := parseSimpleSelector(parts[i])
		seen := make(map[*Node]bool)
		var next []*Node
		for _, parent := range matches {
			for _, c := range matchSimple(parent, m, false) {
				if !seen[c] {
					seen[c] = true
					next = append(next, c)
				}
			}
		}
		matches = next
	}
	return matches
}

// matchSimple finds all nodes under root matching a single selector part.
func matchSimple(root *Node, s simpleSelector, includeRoot bool) []*Node {
	var results []*Node
	var walk func(*Node, bool)
	walk = func(x *Node, self bool) {
		if self && matchesSelector(x, s) {
			results = append(results, x)
		}
		for _, c := range x.children {
			walk(c, true)
		}
	}
	walk(root, includeRoot)
	return results
}

type simpleSelector struct {
	tag     string
	id      string
	class   string
	attrKey string
	attrVal string
}

// parseSimpleSelector parses "tag.class", "#id", "tag[attr=val]", etc.
func parseSimpleSelector(sel string) simpleSelector {
	var s simpleSelector

	if idx := strings.IndexByte(sel, '['); idx >= 0 {
		attrPart := strings.TrimRight(sel[idx+1:], "]")
		sel = sel[:idx]
		if eqIdx := strings.IndexByte(attrPart, '='); eqIdx >= 0 {
			s.attrKey = attrPart[:eqIdx]
			s.attrVal = strings.Trim(attrPart[eqIdx+1:], `"'`)
		} else {
			s.attrKey = attrPart
		}
	}

	if idx := strings.IndexByte(sel, '#'); idx >= 0 {
		s.id = sel[idx+1:]
		sel = sel[:idx]
	}

	if idx := strings.IndexByte(sel, '.'); idx >= 0 {
		s.class = sel[idx+1:]
		sel = sel[:idx]
	}

	s.tag = sel
	return s
}

func matchesSelector(n *Node, s simpleSelector) bool {
	if !n.IsElement() {
		return false
	}
	if s.tag != "" && s.tag != "*" && n.Tag() != s.tag {
		return false
	}
	if s.id != "" {
		if id, _ := n.GetAttribute("id"); id != s.id {
			return false
		}
	}
	if s.class != "" {
		found := false
		for _, c := range strings.Fields(n.ClassName()) {
			if c == s.class {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if s.attrKey != "" {
		val, ok := n.GetAttribute(s.attrKey)
		if !ok {
			return false
		}
		if s.attrVal != "" && val != s.attrVal {
			return false
		}
	}
	return true
}
