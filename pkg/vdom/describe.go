package vdom

import "fmt"

// TreeInfo is a JSON-friendly description of a render tree.
type TreeInfo struct {
	Kind     string            `json:"kind"`
	Name     string            `json:"name,omitempty"`
	Key      string            `json:"key,omitempty"`
	Text     string            `json:"text,omitempty"`
	Props    map[string]string `json:"props,omitempty"`
	Context  string            `json:"context,omitempty"`
	Hooks    *HookInfo         `json:"hooks,omitempty"`
	Children []TreeInfo        `json:"children,omitempty"`
}

// HookInfo summarizes a component's hook instance.
type HookInfo struct {
	ID      uint64 `json:"id"`
	Slots   int    `json:"slots"`
	Renders int    `json:"renders"`
	Mounted bool   `json:"mounted"`
}

// Describe returns a TreeInfo for t.
func Describe(t *Tree) TreeInfo {
	if t == nil {
		return TreeInfo{}
	}
	if t.IsLeaf() {
		return TreeInfo{Kind: KindText.String(), Text: t.TextValue()}
	}

	l := t.Live
	info := TreeInfo{
		Kind:  l.Kind.String(),
		Name:  l.Name(),
		Props: describeProps(l.Props),
	}
	if l.Key != nil {
		info.Key = fmt.Sprint(l.Key)
	}
	if l.Context != nil {
		info.Context = l.Context.String()
	}
	if h := l.Hooks; h != nil {
		info.Hooks = &HookInfo{
			ID:      h.ID(),
			Slots:   h.SlotCount(),
			Renders: h.RenderCount(),
			Mounted: h.Mounted(),
		}
	}
	for _, c := range l.Children {
		info.Children = append(info.Children, Describe(c))
	}
	return info
}
