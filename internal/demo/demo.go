// Package demo is the component tree the weft CLI renders and inspects.
package demo

import (
	"fmt"
	"strings"
	"time"

	"github.com/vango-dev/weft/pkg/dom"
	"github.com/vango-dev/weft/pkg/hooks"
	"github.com/vango-dev/weft/pkg/scheduler"
	"github.com/vango-dev/weft/pkg/vdom"
)

// Theme carries the color scheme.
var Theme = vdom.CreateContext("light", "theme")

// Subscribe registers fn for clock ticks and returns a cancel func.
type Subscribe func(fn func(time.Time)) (cancel func())

// Options configures App.
type Options struct {
	Theme     string
	Start     int
	Now       time.Time
	Subscribe Subscribe
	Todos     []string

	// Overlay is where the notice portal renders. Nil renders the notice
	// inline.
	Overlay *dom.Node
}

// Counter shows a count and a button that increments it.
var Counter = vdom.Define("Counter", func(p vdom.Props) any {
	count, setCount := hooks.UseState(p.Int("start"))
	inc := hooks.UseCallback(func() {
		setCount.Update(func(n int) int { return n + 1 })
	}, hooks.On(setCount))
	return vdom.Div(vdom.Class("counter"),
		vdom.Span(vdom.ID("count"), vdom.Textf("Count: %d", count)),
		vdom.Button(vdom.ID("inc"), vdom.OnClick(inc), "+"),
	)
})

// ThemeBadge shows the theme provided above it.
var ThemeBadge = vdom.Define("ThemeBadge", func(vdom.Props) any {
	theme := Theme.Use()
	return vdom.Span(vdom.Class("badge badge-"+theme), theme)
})

// Clock shows the time, updated by the subscription it receives.
var Clock = vdom.Define("Clock", func(p vdom.Props) any {
	now, setNow := hooks.UseState(vdom.Prop[time.Time](p, "now"))
	subscribe := vdom.Prop[Subscribe](p, "subscribe")
	hooks.UseEffect(func() hooks.Cleanup {
		if subscribe == nil {
			return nil
		}
		cancel := subscribe(func(t time.Time) { setNow.Set(t.Truncate(time.Second)) })
		return hooks.Cleanup(cancel)
	}, hooks.On())
	return vdom.Code(vdom.ID("clock"), now.UTC().Format("15:04:05"))
})

// TodoList keeps a list of items with an input to add more.
var TodoList = vdom.Define("TodoList", func(p vdom.Props) any {
	items, setItems := hooks.UseState(vdom.Prop[[]string](p, "items"))
	draft := hooks.UseRef("")
	remaining := hooks.UseMemo(func() int {
		n := 0
		for _, it := range items {
			if !strings.HasPrefix(it, doneMark) {
				n++
			}
		}
		return n
	}, hooks.On(items))

	add := func() {
		text := strings.TrimSpace(draft.Current)
		if text == "" {
			return
		}
		draft.Current = ""
		setItems.Update(func(prev []string) []string {
			return append(append([]string(nil), prev...), text)
		})
	}

	return vdom.Section(vdom.Class("todos"),
		vdom.H2(vdom.Textf("Todo (%d left)", remaining)),
		vdom.Ul(toggleable(items, setItems)),
		vdom.Input(vdom.Name("todo"), vdom.Placeholder("Add item"),
			vdom.OnInput(func(ev *dom.Event) { draft.Current = vdom.EventValue(ev) }),
		),
		vdom.Button(vdom.ID("add"), vdom.OnClick(add), "Add"),
	)
})

const doneMark = "✓ "

func toggleable(items []string, set hooks.Setter[[]string]) []any {
	out := make([]any, 0, len(items))
	for i, it := range items {
		toggle := func() {
			set.Update(func(prev []string) []string {
				next := append([]string(nil), prev...)
				if rest, ok := strings.CutPrefix(next[i], doneMark); ok {
					next[i] = rest
				} else {
					next[i] = doneMark + next[i]
				}
				return next
			})
		}
		out = append(out, vdom.Li(vdom.OnClick(toggle), it))
	}
	return out
}

// Notice shows a dismissible message through a portal.
var Notice = vdom.Define("Notice", func(p vdom.Props) any {
	open, setOpen := hooks.UseState(true)
	overlay := vdom.Prop[*dom.Node](p, "overlay")

	body := vdom.Div(vdom.Class("notice"), vdom.Role("status"),
		vdom.Span("Rendered by weft"),
		vdom.Button(vdom.ID("dismiss"), vdom.OnClick(func() { setOpen.Set(false) }), "×"),
	)
	var content any = body
	if overlay != nil {
		content = vdom.Portal(overlay, body)
	}
	return vdom.Fragment(
		vdom.If(open, content),
		vdom.If(!open, vdom.Button(vdom.ID("reopen"), vdom.OnClick(func() { setOpen.Set(true) }), "Show notice")),
	)
})

// App is the whole demo.
func App(opts Options) *vdom.Node {
	theme := opts.Theme
	if theme == "" {
		theme = "dark"
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	return Theme.Provide(theme, vdom.Main(vdom.ID("demo"),
		vdom.Header(vdom.H1("weft demo"), vdom.H(ThemeBadge)),
		vdom.H(Counter, vdom.Props{"start": opts.Start}),
		vdom.H(Clock, vdom.Props{"now": now, "subscribe": opts.Subscribe}),
		vdom.H(TodoList, vdom.Props{"items": opts.Todos}),
		vdom.H(Notice, vdom.Props{"overlay": opts.Overlay}),
	))
}

// Page is a document prepared for the demo: #app holds the root and
// #overlay receives portals.
type Page struct {
	Doc     *dom.Document
	App     *dom.Node
	Overlay *dom.Node
}

// NewPage creates the demo document.
func NewPage(title string) *Page {
	doc := dom.NewDocument()
	t := doc.CreateElement("title")
	t.SetTextContent(title)
	doc.Head().AppendChild(t)

	app := doc.CreateElement("div")
	app.SetAttribute("id", "app")
	overlay := doc.CreateElement("aside")
	overlay.SetAttribute("id", "overlay")
	doc.Body().AppendChild(app)
	doc.Body().AppendChild(overlay)
	return &Page{Doc: doc, App: app, Overlay: overlay}
}

// HTML returns the whole document.
func (p *Page) HTML() string {
	return "<!DOCTYPE html>" + p.Doc.Root().OuterHTML()
}

// Mount renders the demo into page on rt. opts.Overlay defaults to the
// page's overlay.
func Mount(rt *scheduler.Runtime, page *Page, opts Options) error {
	if opts.Overlay == nil {
		opts.Overlay = page.Overlay
	}
	if err := rt.Render(page.App, App(opts)); err != nil {
		return fmt.Errorf("mount demo: %w", err)
	}
	return nil
}

// Ticker returns a Subscribe that delivers ticks every interval through
// rt.Dispatch, so setters run on the runtime goroutine.
func Ticker(rt *scheduler.Runtime, interval time.Duration) Subscribe {
	return func(fn func(time.Time)) func() {
		t := time.NewTicker(interval)
		done := make(chan struct{})
		go func() {
			for {
				select {
				case now := <-t.C:
					rt.Dispatch(func() { fn(now) })
				case <-done:
					return
				}
			}
		}()
		return func() {
			t.Stop()
			close(done)
		}
	}
}
