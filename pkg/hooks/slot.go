package hooks

// SlotKind identifies the hook that owns a slot.
type SlotKind uint8

const (
	KindState SlotKind = iota + 1
	KindEffect
	KindMemo
	KindRef
)

// String returns a human-readable name for the slot kind.
func (k SlotKind) String() string {
	switch k {
	case KindState:
		return "State"
	case KindEffect:
		return "Effect"
	case KindMemo:
		return "Memo"
	case KindRef:
		return "Ref"
	default:
		return "Unknown"
	}
}

// slot is one entry of an Instance's ordered hook storage.
type slot interface {
	kind() SlotKind
}

type stateCell[T any] struct {
	value  T
	setter Setter[T]
}

func (*stateCell[T]) kind() SlotKind { return KindState }

// effectCell stages the latest render's body and deps in next/nextDeps;
// deps holds the list the effect last ran with.
type effectCell struct {
	next      func() Cleanup
	nextDeps  Deps
	deps      Deps
	ran       bool
	cleanup   Cleanup
	shouldRun bool
}

func (*effectCell) kind() SlotKind { return KindEffect }

type memoCell[T any] struct {
	value T
	deps  Deps
}

func (*memoCell[T]) kind() SlotKind { return KindMemo }

type refCell[T any] struct {
	ref *Ref[T]
}

func (*refCell[T]) kind() SlotKind { return KindRef }

// claim returns the slot at the frame's next index, creating it with create
// on the first render. The bool result reports whether the slot is new.
func claim[S slot](f *frame, want SlotKind, create func() S) (S, bool) {
	in := f.inst
	i := f.index
	f.index++

	if i < len(in.slots) {
		s, ok := in.slots[i].(S)
		if !ok {
			got := in.slots[i].kind()
			if got == want {
				panic(ErrHookOrder.WithDetailf("%s: %s hook at slot %d changed its value type", in.label(), want, i))
			}
			panic(ErrHookOrder.WithDetailf("%s: slot %d expected %s, got %s", in.label(), i, got, want))
		}
		return s, false
	}
	if in.renders > 0 {
		panic(ErrHookOrder.WithDetailf("%s: extra %s hook at slot %d (previous render used %d)", in.label(), want, i, len(in.slots)))
	}

	s := create()
	in.slots = append(in.slots, s)
	return s, true
}
