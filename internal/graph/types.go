package graph

// Triple is one record from the memory-store traversal. Any field may be
// absent: a node without outgoing relationships yields a record with only
// the source present, and nodes missing a name property yield absent fields.
type Triple struct {
	Source  string
	RelType string
	Target  string

	HasSource  bool
	HasRelType bool
	HasTarget  bool
}

// Edge is a directed connection between two named nodes. HasSource is false
// for edges built from triples whose source name was absent; such edges are
// retained in the model so missing upstream data stays visible rather than
// being silently dropped.
type Edge struct {
	Source    string
	Target    string
	RelType   string
	HasSource bool
}

// Graph is a deduplicated node set plus the edge list in input order.
// It is built once per display cycle and not mutated afterwards.
type Graph struct {
	Nodes []string
	Edges []Edge

	nodeSet map[string]struct{}
}

// NodeCount returns the number of distinct named nodes.
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the number of edges, including ones with an absent source.
func (g *Graph) EdgeCount() int {
	return len(g.Edges)
}

// Empty reports whether the graph has no nodes.
func (g *Graph) Empty() bool {
	return len(g.Nodes) == 0
}

// HasNode reports whether a node with the given name is in the node set.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.nodeSet[name]
	return ok
}
