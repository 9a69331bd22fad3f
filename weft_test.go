package weft_test

import (
	"errors"
	"testing"

	"github.com/vango-dev/weft"
	"github.com/vango-dev/weft/pkg/hooks"
	"github.com/vango-dev/weft/pkg/scheduler"
	"github.com/vango-dev/weft/pkg/vdom"
)

func TestFacadeRoundTrip(t *testing.T) {
	theme := weft.CreateContext("light", "theme")
	var bump weft.Setter[int]

	Badge := weft.Define("Badge", func(p weft.Props) any {
		doubled := weft.UseMemo(func() int { return p.Int("n") * 2 }, weft.On(p.Int("n")))
		return weft.H("b", theme.Use(), ":", doubled)
	})
	App := weft.Define("App", func(weft.Props) any {
		n, set := weft.UseState(1)
		bump = set
		return theme.Provide("dark", weft.H(Badge, weft.Props{"n": n}))
	})

	doc := weft.NewDocument()
	rt := weft.NewRuntime(scheduler.WithoutPaint())
	if err := rt.Render(doc.Body(), weft.H(App)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := doc.Body().InnerHTML(); got != "<b>dark:2</b>" {
		t.Fatalf("html = %q", got)
	}

	bump.Set(5)
	if err := rt.Tick(); err != nil {
		t.Fatal(err)
	}
	if got := doc.Body().InnerHTML(); got != "<b>dark:10</b>" {
		t.Errorf("html = %q", got)
	}
	if !rt.Unmount(doc.Body()) {
		t.Error("Unmount reported no root")
	}
}

func TestDefaultRuntime(t *testing.T) {
	doc := weft.NewDocument()
	container := doc.Body()

	if err := weft.Render(container, weft.Fragment("a", "b")); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := weft.Render(container, "again"); !errors.Is(err, scheduler.ErrAlreadyMounted) {
		t.Errorf("err = %v, want ErrAlreadyMounted", err)
	}
	if weft.Default() != weft.Default() {
		t.Error("Default should return one runtime")
	}
	if err := weft.Tick(); err != nil {
		t.Fatal(err)
	}
	if !weft.Unmount(container) {
		t.Error("Unmount reported no root")
	}
	if container.HasChildNodes() {
		t.Error("container not cleared")
	}
}

func TestCreatePortalRejectsNilTarget(t *testing.T) {
	if _, err := weft.CreatePortal(nil, "x"); !errors.Is(err, vdom.ErrMissingPortalTarget) {
		t.Errorf("err = %v, want ErrMissingPortalTarget", err)
	}
	doc := weft.NewDocument()
	if _, err := weft.CreatePortalSelector(doc, "#missing", "x"); !errors.Is(err, vdom.ErrMissingPortalTarget) {
		t.Errorf("selector err = %v, want ErrMissingPortalTarget", err)
	}
}

func TestHooksOutsideRenderPanic(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, hooks.ErrInvalidHookContext) {
			t.Errorf("recovered %v, want ErrInvalidHookContext", r)
		}
	}()
	weft.UseRef(0)
}
