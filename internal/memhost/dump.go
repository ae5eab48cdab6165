package memhost

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/inkwell/internal/port"
)

// Dump prints the tree under the root, one node per line, children indented
// by two spaces. Attributes and styles are sorted by name.
func (h *Host) Dump() string {
	return h.DumpNode(h.Root())
}

// DumpNode prints the subtree of handle.
func (h *Host) DumpNode(handle port.Handle) string {
	var sb strings.Builder
	if n := h.nodes[handle]; n != nil {
		dump(&sb, n, 0)
	}
	return sb.String()
}

func dump(sb *strings.Builder, n *node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	if n.text {
		fmt.Fprintf(sb, "%q\n", n.value)
		return
	}
	sb.WriteString("<" + n.tag)
	for _, k := range sortedKeys(n.attrs) {
		fmt.Fprintf(sb, " %s=%q", k, n.attrs[k])
	}
	if len(n.styles) > 0 {
		parts := make([]string, 0, len(n.styles))
		for _, k := range sortedKeys(n.styles) {
			parts = append(parts, k+":"+n.styles[k])
		}
		fmt.Fprintf(sb, " style=%q", strings.Join(parts, ";"))
	}
	sb.WriteString(">\n")
	for _, c := range n.children {
		dump(sb, c, depth+1)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
