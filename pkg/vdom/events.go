package vdom

import "github.com/vango-dev/weft/pkg/dom"

// Listener props accept func(*dom.Event), dom.Listener or func().

// on creates a listener Attr for the given alias.
func on(prop string, handler any) Attr {
	return Attr{Key: prop, Value: handler}
}

// OnClick handles click events.
func OnClick(handler any) Attr { return on("onClick", handler) }

// OnDoubleClick handles dblclick events.
func OnDoubleClick(handler any) Attr { return on("onDoubleClick", handler) }

// OnMouseEnter handles mouseenter events.
func OnMouseEnter(handler any) Attr { return on("onMouseEnter", handler) }

// OnMouseLeave handles mouseleave events.
func OnMouseLeave(handler any) Attr { return on("onMouseLeave", handler) }

// OnKeyDown handles keydown events.
func OnKeyDown(handler any) Attr { return on("onKeyDown", handler) }

// OnKeyUp handles keyup events.
func OnKeyUp(handler any) Attr { return on("onKeyUp", handler) }

// OnInput handles input events.
func OnInput(handler any) Attr { return on("onInput", handler) }

// OnChange handles change events.
func OnChange(handler any) Attr { return on("onChange", handler) }

// OnSubmit handles submit events.
func OnSubmit(handler any) Attr { return on("onSubmit", handler) }

// OnFocus handles focus events.
func OnFocus(handler any) Attr { return on("onFocus", handler) }

// OnBlur handles blur events.
func OnBlur(handler any) Attr { return on("onBlur", handler) }

// EventValue returns the string carried in an event's Detail, as set by
// input and change dispatchers.
func EventValue(ev *dom.Event) string {
	if ev == nil {
		return ""
	}
	return ToText(ev.Detail)
}
