package hooks

import (
	"math"
	"reflect"
	"unsafe"
)

// Deps is a dependency list for UseEffect, UseMemo and UseCallback.
//
// A nil Deps means "no dependency list": the hook reruns on every render.
// A non-nil empty Deps (On()) runs once.
type Deps []any

// On builds a dependency list from values. On() with no arguments returns an
// empty, non-nil list.
func On(values ...any) Deps {
	if values == nil {
		return Deps{}
	}
	return Deps(values)
}

// DepsEqual reports whether two dependency lists are element-wise Same.
// Two nil lists are equal; a nil list never equals a non-nil one.
func DepsEqual(a, b Deps) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Same(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Same reports identity equality in the sense used for dependency lists and
// state updates:
//
//   - NaN is Same as NaN, and +0 is not Same as -0.
//   - Pointers, maps, channels and funcs compare by identity.
//   - Slices compare by backing array and length.
//   - Structs and arrays compare field by field (element by element) with
//     these same rules, so a struct holding NaN is Same as itself.
//   - Interface values compare by their dynamic values.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return sameValue(addressable(a), addressable(b))
}

func sameValue(va, vb reflect.Value) bool {
	switch va.Kind() {
	case reflect.Float32, reflect.Float64:
		return sameFloat(va.Float(), vb.Float())
	case reflect.Complex64, reflect.Complex128:
		ca, cb := va.Complex(), vb.Complex()
		return sameFloat(real(ca), real(cb)) && sameFloat(imag(ca), imag(cb))
	case reflect.Func:
		return funcData(open(va).Interface()) == funcData(open(vb).Interface())
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Interface:
		return Same(open(va).Interface(), open(vb).Interface())
	case reflect.Struct:
		for i := 0; i < va.NumField(); i++ {
			if !sameValue(va.Field(i), vb.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := 0; i < va.Len(); i++ {
			if !sameValue(va.Index(i), vb.Index(i)) {
				return false
			}
		}
		return true
	case reflect.String:
		return va.String() == vb.String()
	case reflect.Bool:
		return va.Bool() == vb.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return va.Int() == vb.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return va.Uint() == vb.Uint()
	}
	return false
}

// addressable copies v into a new variable so that nested fields have
// addresses.
func addressable(v any) reflect.Value {
	c := reflect.New(reflect.TypeOf(v)).Elem()
	c.Set(reflect.ValueOf(v))
	return c
}

// open returns an unrestricted view of the addressable value v, including
// one reached through unexported fields.
func open(v reflect.Value) reflect.Value {
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}

func sameFloat(x, y float64) bool {
	if math.IsNaN(x) && math.IsNaN(y) {
		return true
	}
	if x == 0 && y == 0 {
		return math.Signbit(x) == math.Signbit(y)
	}
	return x == y
}

// funcData returns the data word of an interface holding a func value. For
// funcs this is the closure object, so two closures created by separate
// evaluations of the same literal are distinct.
func funcData(v any) unsafe.Pointer {
	return (*[2]unsafe.Pointer)(unsafe.Pointer(&v))[1]
}
