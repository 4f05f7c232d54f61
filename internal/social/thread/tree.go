// Package thread turns the flat comment list a post query returns into the
// nested reply tree the feed renders. It is pure: no I/O, no store access.
package thread

import "github.com/example/social-platform/internal/social/store"

// Node is one comment with its replies. Trees are rebuilt from a fresh flat
// list on every read and never mutated in place.
type Node struct {
	Comment  store.Comment `json:"comment"`
	Children []*Node       `json:"children"`
}

// Build assembles a forest of reply trees from a flat comment list.
//
// Two passes over the input: the first indexes every comment by id, the
// second links each comment under its parent, preserving input order at
// every level. A comment whose parent is absent from the input (deleted, or
// never fetched) is promoted to a root rather than dropped. A comment that
// appears in its own ancestor chain is likewise promoted, so a corrupt
// parent cycle can never swallow part of the forest.
//
// Same input order in, same tree shape out.
func Build(comments []store.Comment) []*Node {
	nodes := make(map[int64]*Node, len(comments))
	parents := make(map[int64]int64, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &Node{Comment: c, Children: []*Node{}}
		if c.ParentID != nil {
			parents[c.ID] = *c.ParentID
		}
	}

	roots := make([]*Node, 0, len(comments))
	for _, c := range comments {
		if c.ParentID != nil {
			parent, ok := nodes[*c.ParentID]
			if ok && !inAncestry(parents, c.ID) {
				parent.Children = append(parent.Children, nodes[c.ID])
				continue
			}
		}
		roots = append(roots, nodes[c.ID])
	}
	return roots
}

// inAncestry reports whether id occurs in its own parent chain. The walk is
// capped at the chain length, so a cycle that does not include id still
// terminates.
func inAncestry(parents map[int64]int64, id int64) bool {
	cur, ok := parents[id]
	for steps := 0; ok && steps <= len(parents); steps++ {
		if cur == id {
			return true
		}
		cur, ok = parents[cur]
	}
	return false
}

// Count returns the total number of nodes in the forest.
func Count(roots []*Node) int {
	n := 0
	for _, r := range roots {
		n += 1 + Count(r.Children)
	}
	return n
}
