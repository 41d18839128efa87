package analyzer

import "fmt"

// PDGNodeKind classifies the construct a PDG node was created for
type PDGNodeKind string

const (
	PDGNodeDecl     PDGNodeKind = "decl"
	PDGNodeAssign   PDGNodeKind = "assign"
	PDGNodeFuncCall PDGNodeKind = "func_call"
	PDGNodeIf       PDGNodeKind = "if"
	PDGNodeReturn   PDGNodeKind = "return"
	PDGNodeUse      PDGNodeKind = "use"
)

// PDGEdgeKind classifies the dependence an edge models
type PDGEdgeKind string

const (
	// PDGEdgeControl connects sequentially executed nodes
	PDGEdgeControl PDGEdgeKind = "control"
	// PDGEdgeData connects a definition to a later use of the same variable
	PDGEdgeData PDGEdgeKind = "data"
)

// PDGNode is a single statement-level node in a program dependence graph
type PDGNode struct {
	// ID is the unique identifier, assigned in creation order (n0, n1, ...)
	ID string

	// Label is a human-readable description, e.g. "Decl x" or "If (n <= 1)?"
	Label string

	// Kind is the structural classification used as the initial WL label
	Kind PDGNodeKind

	// WLLabel is the evolving label used during kernel scoring. It is
	// re-initialized from Kind at the start of every scoring call.
	WLLabel string
}

// PDGEdge is a directed, kind-labeled edge between two PDG nodes
type PDGEdge struct {
	From string
	To   string
	Kind PDGEdgeKind
}

// PDG is a directed graph of statement nodes with control and data edges.
//
// A graph starts empty, grows monotonically during a single builder run, and
// is handed to the caller complete. Nodes and edges are never removed. The
// graph is not safe for concurrent mutation.
type PDG struct {
	nodes    []*PDGNode
	nodeByID map[string]*PDGNode
	edges    []*PDGEdge
	outgoing map[string][]*PDGEdge
	nextID   int
}

// NewPDG creates an empty program dependence graph
func NewPDG() *PDG {
	return &PDG{
		nodeByID: make(map[string]*PDGNode),
		outgoing: make(map[string][]*PDGEdge),
	}
}

// AddNode creates a node with the next sequential ID and returns it
func (g *PDG) AddNode(label string, kind PDGNodeKind) *PDGNode {
	node := &PDGNode{
		ID:      fmt.Sprintf("n%d", g.nextID),
		Label:   label,
		Kind:    kind,
		WLLabel: string(kind),
	}
	g.nextID++
	g.nodes = append(g.nodes, node)
	g.nodeByID[node.ID] = node
	return node
}

// AddEdge adds a directed edge between two existing nodes. Duplicate edges
// are harmless and are not deduplicated.
func (g *PDG) AddEdge(from, to string, kind PDGEdgeKind) *PDGEdge {
	edge := &PDGEdge{From: from, To: to, Kind: kind}
	g.edges = append(g.edges, edge)
	g.outgoing[from] = append(g.outgoing[from], edge)
	return edge
}

// Node returns the node with the given ID, or nil
func (g *PDG) Node(id string) *PDGNode {
	return g.nodeByID[id]
}

// Nodes returns all nodes in creation order
func (g *PDG) Nodes() []*PDGNode {
	return g.nodes
}

// Edges returns all edges in insertion order
func (g *PDG) Edges() []*PDGEdge {
	return g.edges
}

// Outgoing returns the outgoing edges of the given node
func (g *PDG) Outgoing(id string) []*PDGEdge {
	return g.outgoing[id]
}

// Size returns the number of nodes
func (g *PDG) Size() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges
func (g *PDG) EdgeCount() int {
	return len(g.edges)
}

// CountEdges returns the number of edges of the given kind
func (g *PDG) CountEdges(kind PDGEdgeKind) int {
	count := 0
	for _, e := range g.edges {
		if e.Kind == kind {
			count++
		}
	}
	return count
}

// Validate checks that every edge endpoint references a known node
func (g *PDG) Validate() error {
	for _, e := range g.edges {
		if g.nodeByID[e.From] == nil {
			return fmt.Errorf("edge %s -> %s references unknown source node", e.From, e.To)
		}
		if g.nodeByID[e.To] == nil {
			return fmt.Errorf("edge %s -> %s references unknown target node", e.From, e.To)
		}
	}
	return nil
}
