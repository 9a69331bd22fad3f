package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Key sets the node's reconciliation key.
func Key(key any) Attr { return attr("key", key) }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the className prop (space-separated).
func Class(classes ...string) Attr { return attr("className", strings.Join(classes, " ")) }

// StyleAttr sets the style prop from CSS text.
func StyleAttr(style string) Attr { return attr("style", style) }

// Styles sets the style prop from declarations.
func Styles(decls map[string]string) Attr { return attr("style", decls) }

// Data sets a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// TitleAttr sets the title attribute.
func TitleAttr(title string) Attr { return attr("title", title) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Value sets the value attribute.
func Value(value string) Attr { return attr("value", value) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// For sets the for attribute of a label.
func For(id string) Attr { return attr("htmlFor", id) }

// Disabled toggles the disabled attribute.
func Disabled(on bool) Attr { return attr("disabled", on) }

// Checked toggles the checked attribute.
func Checked(on bool) Attr { return attr("checked", on) }

// Hidden toggles the hidden attribute.
func Hidden(on bool) Attr { return attr("hidden", on) }
