package graph

import (
	"sort"

	"github.com/shieldsna/shield/pkg/shield/post"
)

// Stage sorts posts by timestamp and splits them into k contiguous
// near-equal groups (the last group absorbs the remainder), building one
// independent interaction graph per group. Community ids are not tracked
// across stages; each window is analyzed as a fresh snapshot.
func Stage(posts []post.Post, k int) []*Graph {
	if k <= 0 {
		return nil
	}

	ordered := make([]post.Post, len(posts))
	copy(ordered, posts)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].CreatedUTC == ordered[j].CreatedUTC {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].CreatedUTC < ordered[j].CreatedUTC
	})

	if k > len(ordered) && len(ordered) > 0 {
		k = len(ordered)
	}

	graphs := make([]*Graph, 0, k)
	size := len(ordered) / k
	for i := 0; i < k; i++ {
		start := i * size
		end := start + size
		if i == k-1 {
			end = len(ordered)
		}
		graphs = append(graphs, Build(ordered[start:end]))
	}
	return graphs
}
