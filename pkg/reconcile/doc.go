// Package reconcile turns declared nodes into render trees and keeps a dom
// container in step with them.
//
// Build walks a declared node, invokes components through their hook
// instances and pairs every node with its predecessor at the same position.
// A predecessor is reused only when kind, tag or component, and key match;
// in that case its output element and hook instance carry forward.
//
// Sync applies the difference between two render trees to a container.
// Children are compared by position; there is no keyed reordering.
package reconcile
