package reconcile

import "github.com/vango-dev/weft/pkg/hooks"

// Stats counts the mutations applied by one Sync or Teardown.
type Stats struct {
	Created     int // elements and text nodes created
	Removed     int // subtrees detached or portal targets cleared
	Replaced    int // positions whose type changed
	TextUpdates int // text nodes rewritten in place
	PropOps     int // attribute, class, style and listener changes

	// Disposed holds hook instances that left the tree. Their cleanups
	// have already run.
	Disposed []*hooks.Instance
}

// Ops returns the total number of output mutations.
func (s Stats) Ops() int {
	return s.Created + s.Removed + s.Replaced + s.TextUpdates + s.PropOps
}
