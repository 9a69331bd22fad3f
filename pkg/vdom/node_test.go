package vdom

import (
	"testing"
)

func TestH(t *testing.T) {
	t.Run("element with props and children", func(t *testing.T) {
		n := Div(Class("card"), ID("main"), Key("k1"), "hello", Span("x"))
		if n.Kind != KindElement || n.Tag != "div" {
			t.Fatalf("got %v %q", n.Kind, n.Tag)
		}
		if n.Props["className"] != "card" || n.Props["id"] != "main" {
			t.Errorf("props = %v", n.Props)
		}
		if n.Key != "k1" {
			t.Errorf("Key = %v, want k1", n.Key)
		}
		if _, ok := n.Props["key"]; ok {
			t.Error("key should be stripped from props")
		}
		if len(n.Children) != 2 || n.Children[0] != "hello" {
			t.Errorf("children = %v", n.Children)
		}
	})

	t.Run("props map merges and later wins", func(t *testing.T) {
		n := H("input", Props{"type": "text", "value": "a"}, Value("b"))
		if n.Props["value"] != "b" || n.Props["type"] != "text" {
			t.Errorf("props = %v", n.Props)
		}
	})

	t.Run("component and fragment", func(t *testing.T) {
		c := Define("Widget", func(Props) any { return nil })
		if n := H(c, Props{"n": 1}); n.Kind != KindComponent || n.Comp != c {
			t.Errorf("component node = %+v", n)
		}
		if n := Fragment("a", "b"); n.Kind != KindFragment || len(n.Children) != 2 {
			t.Errorf("fragment node = %+v", n)
		}
	})

	t.Run("unsupported type panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		H(42)
	})
}

func TestNormalize(t *testing.T) {
	var nilNode *Node
	c := Define("C", func(Props) any { return nil })
	got := Normalize([]any{
		"a",
		nil,
		true,
		false,
		nilNode,
		[]any{"b", []any{"c", 7}},
		[]*Node{Span()},
		[]string{"d", "e"},
		c,
	})

	want := []string{"a", "", "", "", "", "b", "c", "7", "<span>", "d", "e", "<C>"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d (%v)", len(got), len(want), got)
	}
	for i, w := range want {
		var s string
		switch v := got[i].(type) {
		case *Node:
			if v.Kind == KindComponent {
				s = "<" + v.Comp.Name() + ">"
			} else {
				s = "<" + v.Tag + ">"
			}
		default:
			s = ToText(v)
		}
		if s != w {
			t.Errorf("child %d = %q, want %q", i, s, w)
		}
	}
}

func TestToText(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{3, "3"},
		{int64(-4), "-4"},
		{1.5, "1.5"},
		{true, "true"},
		{KindPortal, "Portal"},
	}
	for _, tt := range tests {
		if got := ToText(tt.in); got != tt.want {
			t.Errorf("ToText(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPropsHelpers(t *testing.T) {
	p := Props{
		"label":    "hi",
		"n":        3,
		"f":        2.0,
		"children": []any{"x"},
	}
	if p.String("label") != "hi" || p.String("missing") != "" {
		t.Error("String helper")
	}
	if p.Int("n") != 3 || p.Int("f") != 2 || p.Int("label") != 0 {
		t.Error("Int helper")
	}
	if c := p.Children(); len(c) != 1 || c[0] != "x" {
		t.Errorf("Children = %v", c)
	}
	if Prop[string](p, "label") != "hi" || Prop[int](p, "label") != 0 {
		t.Error("Prop helper")
	}
}

func TestConditionalHelpers(t *testing.T) {
	if If(false, "x") != nil || If(true, "x") != "x" {
		t.Error("If")
	}
	if IfElse(false, "a", "b") != "b" {
		t.Error("IfElse")
	}
	items := Map([]int{1, 2}, func(i int) any { return Li(i) })
	if len(items) != 2 || items[1].(*Node).Children[0] != 2 {
		t.Errorf("Map = %v", items)
	}
}
