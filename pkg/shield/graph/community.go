package graph

import (
	"math/rand"
	"sort"
)

// Partition maps every node to an integer community id. Ids are dense,
// starting at 0, numbered by first appearance over the sorted node order.
type Partition map[string]int

// NumCommunities returns the number of distinct community ids.
func (p Partition) NumCommunities() int {
	seen := make(map[int]struct{}, len(p))
	for _, c := range p {
		seen[c] = struct{}{}
	}
	return len(seen)
}

// Louvain partitions the undirected projection of g into communities by
// greedy modularity maximization. Node visit order inside each pass is
// shuffled from seed, so a fixed seed gives a reproducible partition. A
// graph with no edges yields a singleton community per node.
func Louvain(g *Graph, seed int64) Partition {
	nodes := g.Nodes()
	part := make(Partition, len(nodes))

	if g.NumEdges() == 0 {
		for i, id := range nodes {
			part[id] = i
		}
		return part
	}

	idx := make(map[string]int, len(nodes))
	for i, id := range nodes {
		idx[id] = i
	}

	// Undirected projection with unit edge weights; reciprocal directed
	// edges collapse to a single undirected edge.
	adj := make([]map[int]float64, len(nodes))
	for i := range adj {
		adj[i] = make(map[int]float64)
	}
	for _, e := range g.Edges() {
		u, v := idx[e.From], idx[e.To]
		if _, ok := adj[u][v]; ok {
			continue
		}
		adj[u][v] = 1
		adj[v][u] = 1
	}

	rng := rand.New(rand.NewSource(seed))

	// membership[i] is node i's community in the current level; mapping
	// tracks each original node's community through aggregation levels.
	mapping := make([]int, len(nodes))
	for i := range mapping {
		mapping[i] = i
	}

	for {
		membership, improved := oneLevel(adj, rng)
		for i := range mapping {
			mapping[i] = membership[mapping[i]]
		}
		if !improved {
			break
		}
		adj = aggregate(adj, membership)
	}

	// Relabel community ids densely in sorted node order.
	relabel := make(map[int]int)
	for i, id := range nodes {
		c := mapping[i]
		if _, ok := relabel[c]; !ok {
			relabel[c] = len(relabel)
		}
		part[id] = relabel[c]
	}
	return part
}

// oneLevel runs the local moving phase: each node is greedily reassigned to
// the neighboring community with the best modularity gain until a full pass
// makes no move. Returns a dense membership and whether anything moved.
func oneLevel(adj []map[int]float64, rng *rand.Rand) ([]int, bool) {
	n := len(adj)
	degree := make([]float64, n) // weighted degree incl. double-counted self-loops
	var m2 float64               // total weight * 2
	for i, nbrs := range adj {
		for j, w := range nbrs {
			degree[i] += w
			if i == j {
				degree[i] += w
			}
		}
		m2 += degree[i]
	}

	community := make([]int, n)
	sumTot := make([]float64, n) // total degree per community
	for i := range community {
		community[i] = i
		sumTot[i] = degree[i]
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	improved := false
	for moved := true; moved; {
		moved = false
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		for _, node := range order {
			current := community[node]

			// Edge weight from node into each neighboring community.
			links := make(map[int]float64)
			for nbr, w := range adj[node] {
				if nbr == node {
					continue
				}
				links[community[nbr]] += w
			}

			sumTot[current] -= degree[node]
			community[node] = -1

			best := current
			bestGain := links[current] - sumTot[current]*degree[node]/m2
			for cand, weight := range links {
				if cand == current {
					continue
				}
				gain := weight - sumTot[cand]*degree[node]/m2
				if gain > bestGain {
					bestGain = gain
					best = cand
				}
			}

			community[node] = best
			sumTot[best] += degree[node]
			if best != current {
				moved = true
				improved = true
			}
		}
	}

	// Compact community ids to a dense range.
	compact := make(map[int]int)
	for _, c := range community {
		if _, ok := compact[c]; !ok {
			compact[c] = len(compact)
		}
	}
	membership := make([]int, n)
	for i, c := range community {
		membership[i] = compact[c]
	}
	return membership, improved
}

// aggregate collapses each community into a single meta-node, summing edge
// weights; intra-community weight becomes a self-loop.
func aggregate(adj []map[int]float64, membership []int) []map[int]float64 {
	size := 0
	for _, c := range membership {
		if c+1 > size {
			size = c + 1
		}
	}
	out := make([]map[int]float64, size)
	for i := range out {
		out[i] = make(map[int]float64)
	}
	for i, nbrs := range adj {
		ci := membership[i]
		for j, w := range nbrs {
			cj := membership[j]
			if i > j {
				continue // undirected: count each pair once
			}
			out[ci][cj] += w
			if ci != cj {
				out[cj][ci] += w
			}
		}
	}
	return out
}

// CommunitySizes returns (community id, member count) pairs sorted by
// descending size, ties by id.
func (p Partition) CommunitySizes() [][2]int {
	counts := make(map[int]int)
	for _, c := range p {
		counts[c]++
	}
	sizes := make([][2]int, 0, len(counts))
	for c, n := range counts {
		sizes = append(sizes, [2]int{c, n})
	}
	sort.Slice(sizes, func(i, j int) bool {
		if sizes[i][1] == sizes[j][1] {
			return sizes[i][0] < sizes[j][0]
		}
		return sizes[i][1] > sizes[j][1]
	})
	return sizes
}
