package vdom

import (
	"errors"
	"testing"

	"github.com/vango-dev/weft/pkg/dom"
)

func TestCreatePortal(t *testing.T) {
	doc := dom.NewDocument()
	modal := doc.CreateElement("div")
	modal.SetAttribute("id", "modal")
	doc.Body().AppendChild(modal)

	p, err := CreatePortal(modal, "a", []any{"b"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Kind != KindPortal || p.Target != modal || len(p.Children) != 2 {
		t.Errorf("portal = %+v", p)
	}

	if _, err := CreatePortal(nil); !errors.Is(err, ErrMissingPortalTarget) {
		t.Errorf("nil target: err = %v", err)
	}
	if _, err := CreatePortal(doc.CreateTextNode("x")); !errors.Is(err, ErrMissingPortalTarget) {
		t.Errorf("text target: err = %v", err)
	}

	p, err = CreatePortalSelector(doc, "#modal", "hi")
	if err != nil || p.Target != modal {
		t.Errorf("selector portal = %v, %v", p, err)
	}
	if _, err := CreatePortalSelector(doc, "#nope"); !errors.Is(err, ErrMissingPortalTarget) {
		t.Errorf("missing selector: err = %v", err)
	}
}

func TestCreatePortalSelectorNilRoot(t *testing.T) {
	var doc *dom.Document
	var node *dom.Node
	for _, root := range []Querier{nil, doc, node} {
		if _, err := CreatePortalSelector(root, "#modal"); !errors.Is(err, ErrMissingPortalTarget) {
			t.Errorf("root %T: err = %v, want ErrMissingPortalTarget", root, err)
		}
	}
}

func TestPortalPanicsOnMissingTarget(t *testing.T) {
	defer func() {
		err, _ := recover().(error)
		if !errors.Is(err, ErrMissingPortalTarget) {
			t.Errorf("recovered %v", err)
		}
	}()
	Portal(nil)
}
