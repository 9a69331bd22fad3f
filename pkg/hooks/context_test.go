package hooks

import "testing"

type testKey struct {
	id  string
	def any
}

func (k testKey) ContextID() string  { return k.id }
func (k testKey) ContextDefault() any { return k.def }

type testScope struct {
	parent *testScope
	values map[string]any
}

func (s *testScope) ParentScope() Scope {
	if s.parent == nil {
		return nil
	}
	return s.parent
}

func (s *testScope) ContextValue(id string) (any, bool) {
	v, ok := s.values[id]
	return v, ok
}

func TestUseContext(t *testing.T) {
	theme := testKey{id: "theme", def: "light"}
	root := &testScope{values: map[string]any{"theme": "dark"}}
	child := &testScope{parent: root}
	other := &testScope{}

	tests := []struct {
		name  string
		scope Scope
		want  any
	}{
		{"provided by ancestor", child, "dark"},
		{"no provider", other, "light"},
		{"nil scope", nil, "light"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInstance("Consumer")
			var got any
			_, err := in.Render(tt.scope, func() any {
				got = UseContext(theme)
				return nil
			})
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("UseContext = %v, want %v", got, tt.want)
			}
			if in.SlotCount() != 0 {
				t.Error("UseContext should not allocate a slot")
			}
		})
	}
}

func TestLookupDepthBound(t *testing.T) {
	key := testKey{id: "k", def: "default"}
	top := &testScope{values: map[string]any{"k": "found"}}
	s := top
	for i := 0; i < MaxContextDepth+5; i++ {
		s = &testScope{parent: s}
	}
	if got := Lookup(s, key); got != "default" {
		t.Errorf("Lookup beyond depth bound = %v, want default", got)
	}
}
