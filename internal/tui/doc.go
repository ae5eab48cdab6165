// Package tui is a small terminal editor for inkwell documents.
//
// The UI paints the memory host's laid-out glyphs onto a tcell screen,
// derives cell styles from the rendered element tree and maps keys onto
// editor operations through a Keymap. The last row shows the caret
// position, the formats active at the selection and the undo depth.
package tui
