package analyzer

import (
	"fmt"
	"io"
	"strings"
)

// dotNodeAttrs maps node kinds to Graphviz attributes so the rendered graph
// distinguishes statement classes at a glance.
var dotNodeAttrs = map[PDGNodeKind]string{
	PDGNodeDecl:     `shape=box`,
	PDGNodeAssign:   `shape=box, style=filled, fillcolor="#e6f2ff"`,
	PDGNodeFuncCall: `shape=ellipse, style=filled, fillcolor="#fff2cc"`,
	PDGNodeIf:       `shape=diamond`,
	PDGNodeReturn:   `shape=box, style=rounded`,
	PDGNodeUse:      `shape=plaintext`,
}

// ToDOT returns a Graphviz DOT representation of the graph. Data edges are
// rendered dashed to set them apart from the control skeleton.
func (g *PDG) ToDOT() string {
	var b strings.Builder
	b.WriteString("digraph pdg {\n")
	b.WriteString("  rankdir=TB;\n")

	for _, n := range g.Nodes() {
		attrs := dotNodeAttrs[n.Kind]
		if attrs == "" {
			attrs = "shape=box"
		}
		fmt.Fprintf(&b, "  %q [label=%q, %s];\n", n.ID, n.Label, attrs)
	}
	for _, e := range g.Edges() {
		style := ""
		if e.Kind == PDGEdgeData {
			style = ", style=dashed"
		}
		fmt.Fprintf(&b, "  %q -> %q [label=%q%s];\n", e.From, e.To, string(e.Kind), style)
	}

	b.WriteString("}\n")
	return b.String()
}

// WriteDOT writes the DOT representation to the given writer
func (g *PDG) WriteDOT(w io.Writer) error {
	_, err := io.WriteString(w, g.ToDOT())
	return err
}
