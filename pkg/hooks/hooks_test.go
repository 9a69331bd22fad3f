package hooks

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

// render runs fn as a component body of in.
func render(t *testing.T, in *Instance, fn func()) error {
	t.Helper()
	_, err := in.Render(nil, func() any {
		fn()
		return nil
	})
	return err
}

func mustRender(t *testing.T, in *Instance, fn func()) {
	t.Helper()
	if err := render(t, in, fn); err != nil {
		t.Fatalf("Render: %v", err)
	}
}

func TestHookOutsideRender(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrInvalidHookContext) {
			t.Fatalf("recovered %v, want ErrInvalidHookContext", r)
		}
	}()
	UseState(0)
}

func TestRenderingFlag(t *testing.T) {
	in := NewInstance("Flag")
	if Rendering() {
		t.Fatal("Rendering() true outside render")
	}
	var inside bool
	mustRender(t, in, func() { inside = Rendering() })
	if !inside {
		t.Error("Rendering() false inside render")
	}
	if Rendering() {
		t.Error("frame leaked after render")
	}
}

func TestUseStatePersistsAndSchedules(t *testing.T) {
	in := NewInstance("Counter")
	scheduled := 0
	in.BindUpdate(func() { scheduled++ })

	var count int
	var set Setter[int]
	body := func() { count, set = UseState(0) }

	mustRender(t, in, body)
	if count != 0 {
		t.Fatalf("initial count = %d", count)
	}
	first := set

	set.Set(1)
	if scheduled != 1 {
		t.Fatalf("scheduled = %d, want 1", scheduled)
	}
	mustRender(t, in, body)
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if set != first {
		t.Error("setter identity changed across renders")
	}

	set.Update(func(n int) int { return n + 10 })
	if set.Get() != 11 || scheduled != 2 {
		t.Errorf("after Update: value %d scheduled %d", set.Get(), scheduled)
	}
}

func TestSetterSameValueIsNoop(t *testing.T) {
	in := NewInstance("Noop")
	scheduled := 0
	in.BindUpdate(func() { scheduled++ })

	var set Setter[string]
	mustRender(t, in, func() { _, set = UseState("x") })
	for i := 0; i < 3; i++ {
		set.Set("x")
	}
	if scheduled != 0 {
		t.Errorf("scheduled = %d, want 0", scheduled)
	}
}

func TestSetterSameStructIsNoop(t *testing.T) {
	type reading struct {
		Value  float64
		OnTick func()
	}
	in := NewInstance("Reading")
	scheduled := 0
	in.BindUpdate(func() { scheduled++ })

	tick := func() {}
	current := reading{Value: math.NaN(), OnTick: tick}
	var set Setter[reading]
	mustRender(t, in, func() { _, set = UseState(current) })
	set.Set(current)
	set.Set(reading{Value: math.NaN(), OnTick: tick})
	if scheduled != 0 {
		t.Errorf("scheduled = %d, want 0", scheduled)
	}

	set.Set(reading{Value: 1, OnTick: tick})
	if scheduled != 1 {
		t.Errorf("scheduled = %d, want 1 after a real change", scheduled)
	}
}

func TestSetterAfterUnmountDoesNotSchedule(t *testing.T) {
	in := NewInstance("Gone")
	scheduled := 0
	in.BindUpdate(func() { scheduled++ })

	var set Setter[int]
	mustRender(t, in, func() { _, set = UseState(0) })
	in.MarkUnmounted()
	set.Set(5)
	if scheduled != 0 {
		t.Errorf("scheduled = %d after unmount", scheduled)
	}
}

func TestUseLazyStateRunsInitializerOnce(t *testing.T) {
	in := NewInstance("Lazy")
	calls := 0
	body := func() {
		UseLazyState(func() int { calls++; return 42 })
	}
	mustRender(t, in, body)
	mustRender(t, in, body)
	if calls != 1 {
		t.Errorf("initializer ran %d times, want 1", calls)
	}
}

func TestHookOrderViolation(t *testing.T) {
	tests := []struct {
		name   string
		first  func()
		second func()
	}{
		{
			name:   "kind changed",
			first:  func() { UseState(0) },
			second: func() { UseRef(0) },
		},
		{
			name:   "type changed",
			first:  func() { UseState(0) },
			second: func() { UseState("") },
		},
		{
			name:   "fewer hooks",
			first:  func() { UseState(0); UseRef(0) },
			second: func() { UseState(0) },
		},
		{
			name:   "extra hook",
			first:  func() { UseState(0) },
			second: func() { UseState(0); UseMemo(func() int { return 1 }, nil) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInstance("Conditional")
			mustRender(t, in, tt.first)
			err := render(t, in, tt.second)
			if !errors.Is(err, ErrHookOrder) {
				t.Fatalf("err = %v, want ErrHookOrder", err)
			}
			if !in.Unmounted() {
				t.Error("instance should be unmounted after a hook-order violation")
			}
		})
	}
}

func TestRenderRepanicsNonErrors(t *testing.T) {
	in := NewInstance("Boom")
	defer func() {
		if r := recover(); r != "boom" {
			t.Fatalf("recovered %v, want boom", r)
		}
		if Rendering() {
			t.Error("frame leaked after panic")
		}
	}()
	_, _ = in.Render(nil, func() any { panic("boom") })
}

func TestRenderReturnsErrorPanics(t *testing.T) {
	in := NewInstance("Fails")
	sentinel := errors.New("bad input")
	_, err := in.Render(nil, func() any { panic(sentinel) })
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v", err)
	}
	if in.Unmounted() {
		t.Error("ordinary errors should not unmount the instance")
	}
}

func TestUseEffectDependencyPolicy(t *testing.T) {
	in := NewInstance("Effects")
	var log []string
	dep := 1

	body := func() {
		UseEffect(func() Cleanup {
			log = append(log, "every")
			return func() { log = append(log, "cleanup every") }
		}, nil)
		UseEffect(func() Cleanup {
			log = append(log, "once")
			return nil
		}, On())
		UseEffect(func() Cleanup {
			log = append(log, "dep")
			return func() { log = append(log, "cleanup dep") }
		}, On(dep))
	}

	mustRender(t, in, body)
	if !in.HasPendingEffects() {
		t.Fatal("expected pending effects after first render")
	}
	if err := in.RunEffects(); err != nil {
		t.Fatal(err)
	}
	assertLog(t, log, "every", "once", "dep")
	if in.HasPendingEffects() {
		t.Error("effects still pending after RunEffects")
	}

	log = nil
	mustRender(t, in, body)
	if err := in.RunEffects(); err != nil {
		t.Fatal(err)
	}
	assertLog(t, log, "cleanup every", "every")

	log = nil
	dep = 2
	mustRender(t, in, body)
	if err := in.RunEffects(); err != nil {
		t.Fatal(err)
	}
	assertLog(t, log, "cleanup every", "every", "cleanup dep", "dep")

	log = nil
	in.Dispose()
	assertLog(t, log, "cleanup every", "cleanup dep")
	if !in.Unmounted() {
		t.Error("Dispose should unmount")
	}
}

func TestEffectPanicUnmountsAndReturnsError(t *testing.T) {
	in := NewInstance("BadEffect")
	ranSecond := false
	mustRender(t, in, func() {
		UseEffect(func() Cleanup { panic("effect exploded") }, nil)
		UseEffect(func() Cleanup { ranSecond = true; return nil }, nil)
	})
	in.MarkMounted()

	err := in.RunEffects()
	if !errors.Is(err, ErrEffectFailed) {
		t.Fatalf("err = %v, want ErrEffectFailed", err)
	}
	if ranSecond {
		t.Error("effects after a failure should not run")
	}
	if in.Mounted() || !in.Unmounted() {
		t.Error("instance should be unmounted after effect failure")
	}
}

func TestUseEffectComparesWithLastRun(t *testing.T) {
	in := NewInstance("Staged")
	var ran []int
	dep := 0
	body := func() {
		d := dep
		UseEffect(func() Cleanup { ran = append(ran, d); return nil }, On(d))
	}

	mustRender(t, in, body)
	if err := in.RunEffects(); err != nil {
		t.Fatal(err)
	}

	// A render whose effects never run, then the same deps again.
	dep = 1
	mustRender(t, in, body)
	mustRender(t, in, body)
	if !in.HasPendingEffects() {
		t.Fatal("effect for dep 1 should still be due")
	}
	if err := in.RunEffects(); err != nil {
		t.Fatal(err)
	}
	mustRender(t, in, body)
	if in.HasPendingEffects() {
		t.Error("effect should not rerun with unchanged deps")
	}
	if !reflect.DeepEqual(ran, []int{0, 1}) {
		t.Errorf("ran = %v, want [0 1]", ran)
	}
}

func TestUseMemoAndCallback(t *testing.T) {
	in := NewInstance("Memo")
	computed := 0
	dep := "a"
	var value int
	var cb func() string

	body := func() {
		value = UseMemo(func() int { computed++; return len(dep) }, On(dep))
		cb = UseCallback(func() string { return dep }, On(dep))
	}

	mustRender(t, in, body)
	firstCB := cb
	mustRender(t, in, body)
	if computed != 1 {
		t.Errorf("computed = %d, want 1", computed)
	}
	if !Same(cb, firstCB) {
		t.Error("callback identity changed with unchanged deps")
	}

	dep = "abc"
	mustRender(t, in, body)
	if computed != 2 || value != 3 {
		t.Errorf("after dep change: computed %d value %d", computed, value)
	}
	if Same(cb, firstCB) || cb() != "abc" {
		t.Error("callback should be replaced when deps change")
	}
}

func TestUseRefIsStable(t *testing.T) {
	in := NewInstance("Ref")
	scheduled := 0
	in.BindUpdate(func() { scheduled++ })

	var ref *Ref[int]
	mustRender(t, in, func() { ref = UseRef(7) })
	first := ref
	ref.Current = 99
	mustRender(t, in, func() { ref = UseRef(7) })

	if ref != first || ref.Current != 99 {
		t.Errorf("ref = %p (%d), want %p (99)", ref, ref.Current, first)
	}
	if scheduled != 0 {
		t.Error("writing a ref must not schedule updates")
	}
}

func assertLog(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("log = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("log = %q, want %q", got, want)
		}
	}
}
