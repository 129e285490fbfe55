// Package graph builds and analyzes the author interaction graph: directed
// commenter -> original-poster edges, community partitions, and centrality
// rankings.
package graph

import "sort"

// Graph is a directed interaction graph over author identifiers.
// Multi-edges collapse to one; self-loops are rejected.
type Graph struct {
	nodes map[string]struct{}
	out   map[string]map[string]struct{}
	in    map[string]map[string]struct{}
	edges int
}

// Edge is a directed commenter -> original-poster link.
type Edge struct {
	From string
	To   string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]struct{}),
		out:   make(map[string]map[string]struct{}),
		in:    make(map[string]map[string]struct{}),
	}
}

// AddNode inserts a node if absent.
func (g *Graph) AddNode(id string) {
	if id == "" {
		return
	}
	g.nodes[id] = struct{}{}
}

// AddEdge inserts a directed edge, adding endpoints as needed. Duplicate
// edges and self-loops are ignored.
func (g *Graph) AddEdge(from, to string) {
	if from == "" || to == "" || from == to {
		return
	}
	g.AddNode(from)
	g.AddNode(to)
	if g.out[from] == nil {
		g.out[from] = make(map[string]struct{})
	}
	if _, ok := g.out[from][to]; ok {
		return
	}
	g.out[from][to] = struct{}{}
	if g.in[to] == nil {
		g.in[to] = make(map[string]struct{})
	}
	g.in[to][from] = struct{}{}
	g.edges++
}

// HasEdge reports whether the directed edge from -> to exists.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.out[from][to]
	return ok
}

// NumNodes returns the node count.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumEdges returns the directed edge count.
func (g *Graph) NumEdges() int { return g.edges }

// Nodes returns all node ids in sorted order.
func (g *Graph) Nodes() []string {
	nodes := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		nodes = append(nodes, id)
	}
	sort.Strings(nodes)
	return nodes
}

// Edges returns all directed edges sorted by (From, To).
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.edges)
	for from, tos := range g.out {
		for to := range tos {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From == edges[j].From {
			return edges[i].To < edges[j].To
		}
		return edges[i].From < edges[j].From
	})
	return edges
}

// OutDegree returns the number of outgoing edges of id.
func (g *Graph) OutDegree(id string) int { return len(g.out[id]) }

// InDegree returns the number of incoming edges of id.
func (g *Graph) InDegree(id string) int { return len(g.in[id]) }

// Successors returns the sorted targets of id's outgoing edges.
func (g *Graph) Successors(id string) []string {
	return sortedKeys(g.out[id])
}

// Neighbors returns the sorted union of in- and out-neighbors, i.e. the
// adjacency of the undirected projection.
func (g *Graph) Neighbors(id string) []string {
	merged := make(map[string]struct{}, len(g.out[id])+len(g.in[id]))
	for n := range g.out[id] {
		merged[n] = struct{}{}
	}
	for n := range g.in[id] {
		merged[n] = struct{}{}
	}
	return sortedKeys(merged)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
