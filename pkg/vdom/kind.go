package vdom

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement   Kind = iota // <div>, <button>, etc.
	KindText                  // primitive leaf
	KindFragment              // grouping without wrapper
	KindComponent             // function component occurrence
	KindPortal                // children placed under a foreign target
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindPortal:
		return "Portal"
	default:
		return "Unknown"
	}
}
