// Package dom is the mutable output tree weft renders into.
//
// It wraps golang.org/x/net/html nodes with the primitives a reconciler
// needs: element and text creation, attributes, class and style, event
// listeners with bubbling dispatch, child-list mutation, a small CSS
// selector engine and HTML serialization.
//
// A Document owns every node it creates. Nodes are not safe for concurrent
// use; a document is driven from a single goroutine.
package dom
