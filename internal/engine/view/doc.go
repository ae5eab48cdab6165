// Package view keeps a rendered document in sync with its host and maps
// between host selection anchors and document positions.
//
// A View owns the last render tree of a document. Render rebuilds the tree
// from the document and reconciles it into the host, then indexes the host
// handles of the new tree.
//
// # Coordinates
//
// Binding turns a host anchor into a position: the anchor's node is found in
// the render tree and its offset is resolved against the node's span in the
// enclosing fragment. Applying goes the other way and picks a canonical
// anchor. Inside text the canonical anchor of a position on a leaf boundary is
// the end of the preceding text leaf; next to components it is an element
// offset in the host parent.
//
// Parse reads a host subtree back into a fragment through each formatter's
// Match.
package view
