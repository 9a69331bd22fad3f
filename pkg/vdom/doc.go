// Package vdom defines the node model shared by the builder and the patcher.
//
// # Declared nodes
//
// A Node is what component code authors: an element, a component occurrence,
// a fragment or a portal, with props and normalized children. Children are
// *Node values or primitives; nested slices are flattened and nil or bool
// children collapse to "".
//
//	H("div", Class("card"),
//	    H("h1", "Title"),
//	    H(Counter, Props{"start": 3}),
//	)
//
// Element helpers (Div, Span, Button, ...) wrap H for common tags.
//
// # Live trees
//
// A build pass pairs every declared node with a Live record holding the
// runtime bindings (output element, parent, provided context, hook instance,
// materialized children). Tree is either a leaf holding a primitive or an
// interior node holding a Live.
//
// # Props
//
// ApplyProps and UpdateProps reflect props onto dom nodes. Listener props use
// the names in the event alias table (onClick, onInput, ...).
package vdom
