package vdom

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vango-dev/weft/pkg/dom"
	"github.com/vango-dev/weft/pkg/hooks"
)

// eventAliases maps listener prop names to dom event types.
var eventAliases = map[string]string{
	"onClick":       "click",
	"onContextMenu": "contextmenu",
	"onDoubleClick": "dblclick",
	"onMouseDown":   "mousedown",
	"onMouseUp":     "mouseup",
	"onMouseEnter":  "mouseenter",
	"onMouseLeave":  "mouseleave",
	"onMouseMove":   "mousemove",
	"onMouseOut":    "mouseout",
	"onMouseOver":   "mouseover",

	"onBlur":     "blur",
	"onFocus":    "focus",
	"onFocusIn":  "focusin",
	"onFocusOut": "focusout",

	"onKeyDown":  "keydown",
	"onKeyPress": "keypress",
	"onKeyUp":    "keyup",

	"onInput":  "input",
	"onChange": "change",
	"onSubmit": "submit",

	"onDrag":      "drag",
	"onDragEnd":   "dragend",
	"onDragEnter": "dragenter",
	"onDragExit":  "dragexit",
	"onDragLeave": "dragleave",
	"onDragOver":  "dragover",
	"onDragStart": "dragstart",
	"onDrop":      "drop",
}

// EventName returns the dom event a listener prop is bound to.
func EventName(prop string) (string, bool) {
	ev, ok := eventAliases[prop]
	return ev, ok
}

// IsEventAlias reports whether prop names a listener.
func IsEventAlias(prop string) bool {
	_, ok := eventAliases[prop]
	return ok
}

// EventAliases returns the listener prop names, sorted.
func EventAliases() []string {
	names := make([]string, 0, len(eventAliases))
	for k := range eventAliases {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// ignoredProps never reach the output element.
func ignoredProp(key string) bool {
	return key == "children" || key == "key" || key == "ref"
}

// ApplyProps reflects props onto a freshly created element and returns the
// number of mutations made.
func ApplyProps(el *dom.Node, props Props) int {
	ops := 0
	for _, key := range sortedKeys(props) {
		if setProp(el, key, props[key], true) {
			ops++
		}
	}
	return ops
}

// UpdateProps moves el from oldProps to newProps: removed keys are cleared
// and keys whose value is not Same are set again. It returns the number of
// mutations made.
func UpdateProps(el *dom.Node, oldProps, newProps Props) int {
	ops := 0
	for _, key := range sortedKeys(oldProps) {
		if _, ok := newProps[key]; !ok {
			if removeProp(el, key) {
				ops++
			}
		}
	}
	for _, key := range sortedKeys(newProps) {
		next := newProps[key]
		if prev, ok := oldProps[key]; ok && hooks.Same(prev, next) {
			continue
		}
		if next == nil {
			if removeProp(el, key) {
				ops++
			}
			continue
		}
		if setProp(el, key, next, false) {
			ops++
		}
	}
	return ops
}

func setProp(el *dom.Node, key string, value any, initial bool) bool {
	if value == nil || ignoredProp(key) {
		return false
	}

	if ev, ok := eventAliases[key]; ok {
		fn := listenerOf(value)
		if fn == nil {
			return false
		}
		el.BindListener(key, ev, fn)
		return true
	}

	switch key {
	case "className", "class":
		next := ToText(value)
		if !initial && classNamesMatch(el.ClassName(), next) {
			return false
		}
		el.SetClassName(next)
		return true

	case "style":
		switch s := value.(type) {
		case string:
			el.SetStyleText(s)
		case map[string]string:
			el.AssignStyle(s)
		case map[string]any:
			decls := make(map[string]string, len(s))
			for k, v := range s {
				decls[k] = ToText(v)
			}
			el.AssignStyle(decls)
		default:
			return false
		}
		return true

	case "htmlFor":
		key = "for"
	}

	if b, ok := value.(bool); ok {
		if !b {
			if !el.HasAttribute(key) {
				return false
			}
			el.RemoveAttribute(key)
			return true
		}
		el.SetAttribute(key, "")
		return true
	}

	el.SetAttribute(key, ToText(value))
	return true
}

func removeProp(el *dom.Node, key string) bool {
	if ignoredProp(key) {
		return false
	}
	if _, ok := eventAliases[key]; ok {
		return el.UnbindListener(key)
	}
	switch key {
	case "className", "class":
		key = "class"
	case "htmlFor":
		key = "for"
	}
	if !el.HasAttribute(key) {
		return false
	}
	el.RemoveAttribute(key)
	return true
}

// listenerOf adapts a listener prop value to a dom.Listener.
func listenerOf(v any) dom.Listener {
	switch fn := v.(type) {
	case dom.Listener:
		return fn
	case func(*dom.Event):
		return fn
	case func():
		return func(*dom.Event) { fn() }
	default:
		return nil
	}
}

// classNamesMatch compares class lists as sets of names, ignoring order
// and whitespace.
func classNamesMatch(current, next string) bool {
	if current == next {
		return true
	}
	a, b := strings.Fields(current), strings.Fields(next)
	if len(a) != len(b) {
		return false
	}
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortedKeys(p Props) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// describeProps renders props for debugging output.
func describeProps(p Props) map[string]string {
	if len(p) == 0 {
		return nil
	}
	out := make(map[string]string, len(p))
	for k, v := range p {
		if ignoredProp(k) {
			continue
		}
		if IsEventAlias(k) {
			out[k] = "func"
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	return out
}
