// Package doc provides the document model: fragments, components and the
// document arena that navigates between them.
//
// # Ownership
//
// Ownership flows one way: a Component owns its slot fragments, a Fragment
// owns its content buffer and format table, and the content buffer owns the
// components embedded in it. Neither fragments nor components hold references
// to their parents.
//
// # Navigation
//
// Parent lookups go through a Document, which indexes the ownership tree by
// FragmentID and ComponentID. The index is a non-owning view and must be
// rebuilt with Reindex after any structural mutation (adding or removing
// components or slots). Content and format edits inside a fragment do not
// invalidate the index.
//
// # Components
//
// Component is a closed sum type discriminated by Kind:
//
//   - Leaf: no slots, length one, carries opaque attributes (media, breaks)
//   - Division: exactly one slot
//   - Branch: an ordered, editable list of slots
//   - Backbone: an indexable sequence of slots with structural meaning (rows)
//
// # Cloning
//
// Document.Clone and Fragment.Clone perform deep copies that preserve ids, so a
// Position taken against the original resolves against the clone.
package doc
