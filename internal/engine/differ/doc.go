// Package differ reconciles virtual render trees against a host tree.
//
// The reconciler pairs the children of an old and a new node by index. A
// pair with the same shape keeps its host node and recurses; any other new
// node gets a fresh host subtree while the old one is destroyed. Shape is
// node kind, text for text leaves, tag and attributes for component leaves,
// and the format range list for containers.
//
// # Positions
//
// Host children are addressed by index, so the reconciler tracks the host
// position of every node itself:
//
//   - a node with a host element occupies one position
//   - a container or component leaf that renders no element occupies as many
//     positions as its children, which are placed directly in the parent
//
// Old nodes that are not reused are destroyed before new nodes are inserted.
// Reused nodes keep their relative order, so they never move.
package differ
