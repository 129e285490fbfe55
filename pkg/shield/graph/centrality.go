package graph

// Score holds the two centrality measures for a node. Degree centrality is
// (in+out degree)/(N-1); betweenness is shortest-path betweenness on the
// directed graph normalized by (N-1)(N-2). Both are 0 for graphs too small
// to normalize.
type Score struct {
	Degree      float64
	Betweenness float64
}

// Scores maps node id to its centrality scores.
type Scores map[string]Score

// Centrality computes degree and betweenness centrality for every node.
// A graph with no edges yields zero scores for all nodes.
func Centrality(g *Graph) Scores {
	nodes := g.Nodes()
	n := len(nodes)
	scores := make(Scores, n)

	degreeNorm := 0.0
	if n > 1 {
		degreeNorm = 1 / float64(n-1)
	}
	for _, id := range nodes {
		scores[id] = Score{
			Degree: float64(g.InDegree(id)+g.OutDegree(id)) * degreeNorm,
		}
	}

	betweenness := brandes(g, nodes)
	norm := 0.0
	if n > 2 {
		norm = 1 / (float64(n-1) * float64(n-2))
	}
	for _, id := range nodes {
		s := scores[id]
		s.Betweenness = betweenness[id] * norm
		scores[id] = s
	}
	return scores
}

// brandes computes unnormalized betweenness via Brandes' algorithm with BFS
// (all edges unit weight) over the directed graph.
func brandes(g *Graph, nodes []string) map[string]float64 {
	cb := make(map[string]float64, len(nodes))
	for _, v := range nodes {
		cb[v] = 0
	}

	for _, s := range nodes {
		var stack []string
		pred := make(map[string][]string, len(nodes))
		sigma := map[string]float64{s: 1}
		dist := map[string]int{s: 0}

		queue := []string{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for _, w := range g.Successors(v) {
				if _, seen := dist[w]; !seen {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					pred[w] = append(pred[w], v)
				}
			}
		}

		delta := make(map[string]float64, len(stack))
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range pred[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != s {
				cb[w] += delta[w]
			}
		}
	}
	return cb
}
