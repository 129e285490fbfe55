package graph

import "github.com/shieldsna/shield/pkg/shield/post"

// Build derives the interaction graph from a post batch. Posts missing an
// author or id are dropped. For each post that replies to a submission, a
// directed edge is added from the commenter to the original poster, resolved
// through an id -> author lookup over the same batch. Replies whose linked
// submission is outside the batch are skipped silently. Building is
// idempotent and independent of input row order.
func Build(posts []post.Post) *Graph {
	authorByID := make(map[string]string, len(posts))
	for _, p := range posts {
		if !p.Valid() {
			continue
		}
		authorByID[p.ID] = p.Author
	}

	g := New()
	for _, p := range posts {
		if !p.Valid() || p.LinkedID == "" {
			continue
		}
		original, ok := authorByID[p.LinkedID]
		if !ok || original == p.Author {
			continue
		}
		g.AddEdge(p.Author, original)
	}
	return g
}
