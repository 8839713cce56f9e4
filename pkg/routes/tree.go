package routes

import (
	"sort"
	"strings"
)

// TreeOptions are the nesting policies of BuildTree.
type TreeOptions struct {
	// StripParentPattern makes a child's pattern relative to its parent's
	// ("/posts/:id" under "/posts" becomes "/:id").
	StripParentPattern bool
	// PruneEmptyLeaves drops payload-less entries that end up without
	// children; they only exist to establish hierarchy.
	PruneEmptyLeaves bool
}

// DefaultTreeOptions enables both policies.
var DefaultTreeOptions = TreeOptions{
	StripParentPattern: true,
	PruneEmptyLeaves:   true,
}

// arenaNode is a forest node addressed by index. Children hold indexes, so
// no slice of nodes is shared between levels while the forest grows.
type arenaNode struct {
	entry    Entry
	children []int
}

// BuildTree nests entries into a forest using id prefixes: an entry becomes
// a child of the first node at a level whose id followed by "/" prefixes the
// entry's id.
//
// Entries are processed shortest id first, which places ancestors before
// descendants for well-formed trees. Ids of unequal depth but inverted
// length are not guarded against.
func BuildTree(entries []Entry, opts TreeOptions) []*Node {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].ID) < len(sorted[j].ID)
	})

	arena := make([]arenaNode, 0, len(sorted))
	var roots []int

	for _, e := range sorted {
		idx := len(arena)
		arena = append(arena, arenaNode{entry: e})

		parent := -1
		level := roots
		for {
			next := -1
			for _, candidate := range level {
				if strings.HasPrefix(e.ID, arena[candidate].entry.ID+"/") {
					next = candidate
					break
				}
			}
			if next == -1 {
				break
			}
			parent = next
			level = arena[next].children
		}

		if parent == -1 {
			roots = append(roots, idx)
		} else {
			arena[parent].children = append(arena[parent].children, idx)
		}
	}

	return materialize(arena, roots, "", opts)
}

func materialize(arena []arenaNode, level []int, parentPattern string, opts TreeOptions) []*Node {
	nodes := make([]*Node, 0, len(level))
	for _, idx := range level {
		e := arena[idx].entry
		node := &Node{
			Pattern: e.Pattern,
			ID:      e.ID,
			Payload: e.Payload,
		}
		if opts.StripParentPattern && parentPattern != "" {
			node.Pattern = relativePattern(e.Pattern, parentPattern)
		}
		node.Children = materialize(arena, arena[idx].children, e.Pattern, opts)
		if len(node.Children) == 0 {
			node.Children = nil
		}

		if opts.PruneEmptyLeaves && node.Payload == "" && len(node.Children) == 0 {
			continue
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// relativePattern strips the parent's pattern from the child's pattern.
// The result keeps its leading "/"; a child equal to its parent becomes "/".
func relativePattern(pattern, parent string) string {
	if parent == "/" {
		return pattern
	}
	if pattern == parent {
		return "/"
	}
	if strings.HasPrefix(pattern, parent+"/") {
		return pattern[len(parent):]
	}
	return pattern
}

// Walk visits every node depth-first, parents before children.
func Walk(forest []*Node, fn func(node *Node, depth int)) {
	type frame struct {
		node  *Node
		depth int
	}
	stack := make([]frame, 0, len(forest))
	for i := len(forest) - 1; i >= 0; i-- {
		stack = append(stack, frame{forest[i], 0})
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(top.node, top.depth)
		for i := len(top.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{top.node.Children[i], top.depth + 1})
		}
	}
}
