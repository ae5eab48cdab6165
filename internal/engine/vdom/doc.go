// Package vdom builds virtual render trees from fragments.
//
// A tree has two node kinds. Container nodes carry the format ranges that
// apply to their span and the host elements those formats render to. Leaf
// nodes hold a literal text run or an embedded component; a component leaf
// lists the render trees of its slots as children.
//
// # Build Order
//
// Structural and BlockStyle ranges wrap the whole fragment once, on the root
// container. Inline ranges partition the fragment into minimal intervals at
// every range boundary and every embedded component. Each interval gets the
// stack of inline wrappers covering it, outermost first, with inline
// properties attached to the innermost level. Consecutive intervals sharing a
// level are grouped under one container, and adjacent text leaves with the same
// stack are coalesced.
//
// An Exclude range suppresses itself and every lower-priority range for the
// interval it covers. Those ranges stay in the tree on one container level
// that renders no elements, so ReadBack still recovers them.
//
// The builder trusts its input: ranges must already be disjoint per key.
package vdom
