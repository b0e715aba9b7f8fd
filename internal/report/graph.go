package report

import (
	"cmp"
	"slices"
)

// Edge joins two clients who bought a common product. From never appears
// after To in Graph.Nodes; From == To when one client placed two orders
// sharing a product.
type Edge struct {
	From string
	To   string
}

// Graph is an undirected simple graph of clients.
type Graph struct {
	Nodes []string
	Edges []Edge
}

// ClientGraph links the clients of every two orders whose product sets
// intersect. Nodes are client names in first-seen order; edges are sorted by
// the positions of their ends.
//
// Orders are indexed by product, so each order is only compared with the
// earlier orders that share one of its products.
func ClientGraph(ps []Projection) Graph {
	b := newGraphBuilder(ps)
	byProduct := make(map[int64][]int)
	for i, p := range ps {
		for _, id := range p.ProductIDs {
			seen := byProduct[id]
			if len(seen) > 0 && seen[len(seen)-1] == i {
				continue
			}
			for _, j := range seen {
				b.link(j, i)
			}
			byProduct[id] = append(seen, i)
		}
	}
	return b.graph()
}

type graphBuilder struct {
	ps    []Projection
	nodes []string
	pos   map[string]int
	edges map[[2]int]struct{}
}

func newGraphBuilder(ps []Projection) *graphBuilder {
	b := &graphBuilder{
		ps:    ps,
		pos:   make(map[string]int),
		edges: make(map[[2]int]struct{}),
	}
	for _, p := range ps {
		if _, ok := b.pos[p.ClientName]; !ok {
			b.pos[p.ClientName] = len(b.nodes)
			b.nodes = append(b.nodes, p.ClientName)
		}
	}
	return b
}

// link records an edge between the clients of orders i and j.
func (b *graphBuilder) link(i, j int) {
	a, c := b.pos[b.ps[i].ClientName], b.pos[b.ps[j].ClientName]
	if a > c {
		a, c = c, a
	}
	b.edges[[2]int{a, c}] = struct{}{}
}

func (b *graphBuilder) graph() Graph {
	keys := make([][2]int, 0, len(b.edges))
	for k := range b.edges {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(x, y [2]int) int {
		if c := cmp.Compare(x[0], y[0]); c != 0 {
			return c
		}
		return cmp.Compare(x[1], y[1])
	})

	g := Graph{Nodes: b.nodes, Edges: make([]Edge, 0, len(keys))}
	for _, k := range keys {
		g.Edges = append(g.Edges, Edge{From: b.nodes[k[0]], To: b.nodes[k[1]]})
	}
	return g
}
