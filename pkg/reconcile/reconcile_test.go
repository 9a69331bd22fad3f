package reconcile

import (
	"errors"
	"testing"

	"github.com/vango-dev/weft/pkg/dom"
	"github.com/vango-dev/weft/pkg/hooks"
	"github.com/vango-dev/weft/pkg/vdom"
)

type harness struct {
	t         *testing.T
	doc       *dom.Document
	container *dom.Node
	tree      *vdom.Tree
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	doc := dom.NewDocument()
	container := doc.CreateElement("div")
	container.SetAttribute("id", "root")
	doc.Body().AppendChild(container)
	return &harness{t: t, doc: doc, container: container}
}

// render builds node against the previous tree and syncs it.
func (h *harness) render(node any) Stats {
	h.t.Helper()
	next, err := Build(node, h.tree, nil)
	if err != nil {
		h.t.Fatalf("Build: %v", err)
	}
	stats := Sync(h.container, h.tree, next)
	h.tree = next
	return stats
}

func (h *harness) html() string { return h.container.InnerHTML() }

func (h *harness) expect(want string) {
	h.t.Helper()
	if got := h.html(); got != want {
		h.t.Fatalf("html = %q\n          want %q", got, want)
	}
}

func TestMountElements(t *testing.T) {
	h := newHarness(t)
	h.render(vdom.Div(vdom.Class("box"),
		vdom.Span("Count: ", 0),
		vdom.Button("+"),
		nil,
	))
	h.expect(`<div class="box"><span>Count: 0</span><button>+</button></div>`)

	if h.tree.IsLeaf() || h.tree.Live.Element == nil {
		t.Fatal("root should be an interior tree with a bound element")
	}
	if n := len(h.tree.Live.Children); n != 3 {
		t.Errorf("materialized children = %d, want 3", n)
	}
	if !h.tree.Live.Children[2].IsLeaf() {
		t.Error("nil child should become a leaf")
	}
}

func TestMountPrimitiveRoot(t *testing.T) {
	h := newHarness(t)
	h.render("hello")
	h.expect("hello")
	h.render(42)
	h.expect("42")
}

func TestRerenderIsIdempotent(t *testing.T) {
	h := newHarness(t)
	view := func() *vdom.Node {
		return vdom.Ul(vdom.ID("list"),
			vdom.Li("a"),
			vdom.Fragment(vdom.Li("b"), "text"),
			vdom.Li(vdom.Strong("c")),
		)
	}
	h.render(view())
	before := h.html()
	nodes := h.container.QuerySelectorAll("*")

	stats := h.render(view())
	if h.html() != before {
		t.Fatalf("html changed: %q -> %q", before, h.html())
	}
	after := h.container.QuerySelectorAll("*")
	if len(after) != len(nodes) {
		t.Fatalf("node count changed")
	}
	for i := range nodes {
		if nodes[i] != after[i] {
			t.Errorf("element %d (%s) was recreated", i, nodes[i])
		}
	}
	if stats.Ops() != 0 {
		t.Errorf("idempotent render applied %d ops: %+v", stats.Ops(), stats)
	}
}

func TestPositionalReplaceAndAppend(t *testing.T) {
	h := newHarness(t)
	h.render(vdom.Div(vdom.Span("0"), vdom.Span("1"), vdom.Span("2")))
	root := h.tree.Live.Element
	first, middle, last := root.ChildAt(0), root.ChildAt(1), root.ChildAt(2)

	stats := h.render(vdom.Div(vdom.Span("0"), vdom.P("1"), vdom.Span("2"), vdom.Span("3")))
	h.expect("<div><span>0</span><p>1</p><span>2</span><span>3</span></div>")

	if root.ChildAt(0) != first || root.ChildAt(2) != last {
		t.Error("untouched positions changed identity")
	}
	if root.ChildAt(1) == middle || middle.Parent() != nil {
		t.Error("changed position should be a new node and the old one detached")
	}
	if stats.Replaced != 1 {
		t.Errorf("Replaced = %d, want 1", stats.Replaced)
	}
}

func TestRemoveTrailingChildren(t *testing.T) {
	h := newHarness(t)
	h.render(vdom.Ul(vdom.Li("a"), vdom.Li("b"), "tail"))
	h.render(vdom.Ul(vdom.Li("a")))
	h.expect("<ul><li>a</li></ul>")
}

func TestTextUpdatesInPlace(t *testing.T) {
	h := newHarness(t)
	h.render(vdom.P("Count: ", 0))
	txt := h.tree.Live.Children[1].Text

	stats := h.render(vdom.P("Count: ", 1))
	h.expect("<p>Count: 1</p>")
	if h.tree.Live.Children[1].Text != txt {
		t.Error("text node should be reused")
	}
	if stats.TextUpdates != 1 {
		t.Errorf("TextUpdates = %d, want 1", stats.TextUpdates)
	}
}

func TestLeafElementSwap(t *testing.T) {
	h := newHarness(t)
	h.render(vdom.Div("a", "b", "c"))
	h.render(vdom.Div("a", vdom.Em("b"), "c"))
	h.expect("<div>a<em>b</em>c</div>")
	h.render(vdom.Div("a", "b", "c"))
	h.expect("<div>abc</div>")
}

func TestFragmentGrowsInPlace(t *testing.T) {
	h := newHarness(t)
	h.render(vdom.Div(vdom.Fragment("a"), vdom.Hr()))
	h.render(vdom.Div(vdom.Fragment("a", vdom.Br(), "b"), vdom.Hr()))
	h.expect("<div>a<br/>b<hr/></div>")
	h.render(vdom.Div(vdom.Fragment(), vdom.Hr()))
	h.expect("<div><hr/></div>")
}

func TestPropsPatched(t *testing.T) {
	h := newHarness(t)
	h.render(vdom.Input(vdom.Type("text"), vdom.Value("a"), vdom.Disabled(true)))
	el := h.tree.Live.Element
	h.render(vdom.Input(vdom.Type("text"), vdom.Value("b")))
	h.expect(`<input type="text" value="b"/>`)
	if h.tree.Live.Element != el {
		t.Error("element should be reused")
	}
}

func TestKeyChangeReplaces(t *testing.T) {
	h := newHarness(t)
	h.render(vdom.Div(vdom.Key("a"), "x"))
	el := h.tree.Live.Element
	h.render(vdom.Div(vdom.Key("b"), "x"))
	if h.tree.Live.Element == el {
		t.Error("a key change should produce a new element")
	}
	if el.Parent() != nil {
		t.Error("old element should be detached")
	}
	h.expect("<div>x</div>")
}

func TestComponentStateCarriesAcrossBuilds(t *testing.T) {
	h := newHarness(t)
	var setCount hooks.Setter[int]
	counter := vdom.Define("Counter", func(p vdom.Props) any {
		n, set := hooks.UseState(p.Int("start"))
		setCount = set
		return vdom.Span(p.String("label"), n)
	})

	h.render(vdom.Div(vdom.H(counter, vdom.Props{"start": 5, "label": "n="})))
	h.expect("<div><span>n=5</span></div>")
	inst := h.tree.Live.Children[0].Live.Hooks
	span := h.tree.Live.Element.FirstChild()

	setCount.Set(6)
	h.render(vdom.Div(vdom.H(counter, vdom.Props{"start": 5, "label": "n="})))
	h.expect("<div><span>n=6</span></div>")

	if h.tree.Live.Children[0].Live.Hooks != inst {
		t.Error("hook instance should carry forward")
	}
	if h.tree.Live.Element.FirstChild() != span {
		t.Error("component output element should be reused")
	}
	if inst.RenderCount() != 2 {
		t.Errorf("RenderCount = %d, want 2", inst.RenderCount())
	}
}

func TestComponentSwapDisposesOldInstance(t *testing.T) {
	h := newHarness(t)
	cleaned := 0
	withEffect := vdom.Define("WithEffect", func(vdom.Props) any {
		hooks.UseEffect(func() hooks.Cleanup {
			return func() { cleaned++ }
		}, hooks.On())
		return vdom.Span("a")
	})
	plain := vdom.Define("Plain", func(vdom.Props) any { return vdom.Span("b") })

	h.render(vdom.Div(vdom.H(withEffect)))
	inst := h.tree.Live.Children[0].Live.Hooks
	if err := inst.RunEffects(); err != nil {
		t.Fatal(err)
	}

	stats := h.render(vdom.Div(vdom.H(plain)))
	h.expect("<div><span>b</span></div>")
	if cleaned != 1 {
		t.Errorf("cleanup ran %d times, want 1", cleaned)
	}
	if len(stats.Disposed) != 1 || stats.Disposed[0] != inst || !inst.Unmounted() {
		t.Errorf("Disposed = %v", stats.Disposed)
	}
	if h.tree.Live.Children[0].Live.Hooks == inst {
		t.Error("a different component must not reuse the instance")
	}
}

func TestComponentReturningSliceAndNil(t *testing.T) {
	h := newHarness(t)
	many := vdom.Define("Many", func(vdom.Props) any { return []any{"a", vdom.Strong("b")} })
	none := vdom.Define("None", func(vdom.Props) any { return nil })

	h.render(vdom.Div(vdom.H(many), vdom.H(none), "z"))
	h.expect("<div>a<strong>b</strong>z</div>")
}

func TestProviderContext(t *testing.T) {
	h := newHarness(t)
	theme := vdom.CreateContext("light", "Theme")
	consumer := vdom.Define("Consumer", func(vdom.Props) any {
		return vdom.Span(theme.Use())
	})

	h.render(vdom.Div(
		theme.Provide("dark", vdom.Section(vdom.H(consumer))),
		vdom.H(consumer),
	))
	h.expect("<div><section><span>dark</span></section><span>light</span></div>")

	provider := h.tree.Live.Children[0].Live
	if provider.Context == nil || provider.Context.Value != "dark" {
		t.Errorf("provider context = %v", provider.Context)
	}
}

func TestProviderArityError(t *testing.T) {
	theme := vdom.CreateContext("light")
	_, err := Build(vdom.H(theme.Provider, vdom.Props{"value": "x"}, "a", "b"), nil, nil)
	if !errors.Is(err, vdom.ErrProviderArity) {
		t.Fatalf("err = %v, want ErrProviderArity", err)
	}
}

func TestComponentPanics(t *testing.T) {
	boom := vdom.Define("Boom", func(vdom.Props) any { panic("kaboom") })
	_, err := Build(vdom.Div(vdom.H(boom)), nil, nil)
	if !errors.Is(err, ErrComponentPanic) {
		t.Fatalf("err = %v, want ErrComponentPanic", err)
	}

	plain := errors.New("bad props")
	failing := vdom.Define("Failing", func(vdom.Props) any { panic(plain) })
	_, err = Build(vdom.H(failing), nil, nil)
	if !errors.Is(err, ErrComponentPanic) || !errors.Is(err, plain) {
		t.Fatalf("err = %v, want ErrComponentPanic wrapping the cause", err)
	}
}

func TestHookOrderViolationSurfaces(t *testing.T) {
	flip := true
	cond := vdom.Define("Conditional", func(vdom.Props) any {
		if flip {
			hooks.UseState(0)
		} else {
			hooks.UseRef(0)
		}
		return nil
	})
	h := newHarness(t)
	h.render(vdom.H(cond))
	inst := h.tree.Live.Hooks

	flip = false
	_, err := Build(vdom.H(cond), h.tree, nil)
	if !errors.Is(err, hooks.ErrHookOrder) {
		t.Fatalf("err = %v, want ErrHookOrder", err)
	}
	if !inst.Unmounted() {
		t.Error("instance should be unmounted")
	}
}

func TestPortal(t *testing.T) {
	h := newHarness(t)
	modal := h.doc.CreateElement("div")
	modal.SetAttribute("id", "modal")
	h.doc.Body().AppendChild(modal)

	view := func(open bool, label string) *vdom.Node {
		var p any
		if open {
			p = vdom.Portal(modal, vdom.P(label))
		}
		return vdom.Div(vdom.Span("app"), p, vdom.Span("end"))
	}

	h.render(view(true, "hi"))
	h.expect("<div><span>app</span><span>end</span></div>")
	if got := modal.InnerHTML(); got != "<p>hi</p>" {
		t.Fatalf("modal = %q", got)
	}
	para := modal.FirstChild()

	h.render(view(true, "again"))
	if modal.FirstChild() != para || modal.InnerHTML() != "<p>again</p>" {
		t.Errorf("portal children should be patched in place, got %q", modal.InnerHTML())
	}

	portal := h.tree.Live.Children[1].Live
	if portal.TreeParent != h.tree.Live || portal.PortalOrigin() != h.tree.Live {
		t.Error("portal should remember its declared parent")
	}

	h.render(view(false, ""))
	if modal.HasChildNodes() {
		t.Errorf("modal should be empty, got %q", modal.InnerHTML())
	}
	h.expect("<div><span>app</span><span>end</span></div>")
}

func TestPortalRetarget(t *testing.T) {
	h := newHarness(t)
	a := h.doc.CreateElement("aside")
	b := h.doc.CreateElement("aside")
	h.doc.Body().AppendChild(a)
	h.doc.Body().AppendChild(b)

	h.render(vdom.Div(vdom.Portal(a, "x")))
	h.render(vdom.Div(vdom.Portal(b, "x")))
	if a.HasChildNodes() {
		t.Error("old target should be cleared")
	}
	if b.InnerHTML() != "x" {
		t.Errorf("new target = %q", b.InnerHTML())
	}
}

func TestPortalInsideComponentResolvesSelector(t *testing.T) {
	h := newHarness(t)
	overlay := h.doc.CreateElement("div")
	overlay.SetClassName("overlay")
	h.doc.Body().AppendChild(overlay)

	modal := vdom.Define("Modal", func(vdom.Props) any {
		p, err := vdom.CreatePortalSelector(h.doc, ".overlay", "content")
		if err != nil {
			panic(err)
		}
		return p
	})
	missing := vdom.Define("Missing", func(vdom.Props) any {
		p, err := vdom.CreatePortalSelector(h.doc, "#nowhere")
		if err != nil {
			panic(err)
		}
		return p
	})

	h.render(vdom.H(modal))
	if overlay.InnerHTML() != "content" {
		t.Errorf("overlay = %q", overlay.InnerHTML())
	}
	if _, err := Build(vdom.H(missing), nil, nil); !errors.Is(err, vdom.ErrMissingPortalTarget) {
		t.Errorf("err = %v, want ErrMissingPortalTarget", err)
	}
}

func TestTeardown(t *testing.T) {
	h := newHarness(t)
	side := h.doc.CreateElement("aside")
	h.doc.Body().AppendChild(side)
	comp := vdom.Define("C", func(vdom.Props) any {
		return vdom.Fragment(vdom.P("x"), vdom.Portal(side, "y"))
	})
	h.render(vdom.Div(vdom.H(comp)))
	inst := h.tree.Live.Children[0].Live.Hooks

	stats := Teardown(h.container, h.tree)
	if h.container.HasChildNodes() || side.HasChildNodes() {
		t.Error("teardown should clear the container and portal targets")
	}
	if len(stats.Disposed) != 1 || !inst.Unmounted() {
		t.Errorf("Disposed = %v", stats.Disposed)
	}
}

func TestReplaceKeepsSharedPortalTarget(t *testing.T) {
	h := newHarness(t)
	modal := h.doc.CreateElement("div")
	h.doc.Body().AppendChild(modal)

	h.render(vdom.Div(vdom.Span(vdom.Portal(modal, "old"))))
	h.render(vdom.Div(vdom.P(vdom.Portal(modal, "new"))))
	h.expect("<div><p></p></div>")
	if modal.InnerHTML() != "new" {
		t.Errorf("modal = %q, want new", modal.InnerHTML())
	}
}
