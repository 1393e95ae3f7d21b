package graph

// Build assembles a Graph from a traversal's triples.
//
// Nodes are deduplicated by name. An edge is appended for every triple with a
// present target, in input order, even when the source name is absent — only
// target presence gates edge creation. Triples with neither name present
// contribute nothing. Malformed input is never an error here: absent fields
// are skipped, not rejected.
func Build(triples []Triple) *Graph {
	g := &Graph{
		nodeSet: make(map[string]struct{}),
	}

	for _, t := range triples {
		if t.HasSource {
			g.addNode(t.Source)
		}
		if t.HasTarget {
			g.addNode(t.Target)
			g.Edges = append(g.Edges, Edge{
				Source:    t.Source,
				Target:    t.Target,
				RelType:   t.RelType,
				HasSource: t.HasSource,
			})
		}
	}

	return g
}

func (g *Graph) addNode(name string) {
	if _, ok := g.nodeSet[name]; ok {
		return
	}
	g.nodeSet[name] = struct{}{}
	g.Nodes = append(g.Nodes, name)
}
