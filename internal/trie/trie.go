// Package trie implements a path-segment trie backed by an index arena.
// Nodes live in a single contiguous slice and reference their children
// by index rather than by pointer, so a whole trie is one allocation
// pool with good locality during traversal.
package trie

import (
	"sort"
	"strings"
)

// NodeIndex identifies a node inside an Arena.
type NodeIndex int

// Arena owns every node of a trie. Index 0 is the root.
type Arena struct {
	nodes []arenaNode
}

type arenaNode struct {
	// children maps a path segment to the index of the child node.
	children map[string]NodeIndex
	// isEnd marks the last segment of an inserted sequence.
	isEnd bool
}

// NewArena returns an arena holding only the root node.
func NewArena() *Arena {
	arena := &Arena{
		nodes: make([]arenaNode, 0, 1024),
	}
	arena.nodes = append(arena.nodes, arenaNode{
		children: make(map[string]NodeIndex),
	})
	return arena
}

// newNode appends a fresh node to the arena and returns its index.
func (a *Arena) newNode() NodeIndex {
	idx := NodeIndex(len(a.nodes))
	a.nodes = append(a.nodes, arenaNode{
		children: make(map[string]NodeIndex),
	})
	return idx
}

// Insert records a sequence of path segments in the trie.
func (a *Arena) Insert(sequence []string) {
	current := NodeIndex(0)

	for _, part := range sequence {
		// fetch the map by value: newNode below may grow the node
		// slice, invalidating any pointer into it
		children := a.nodes[current].children
		childIdx, exists := children[part]

		if !exists {
			childIdx = a.newNode()
			children[part] = childIdx
		}

		current = childIdx
	}

	a.nodes[current].isEnd = true
}

// ContainsPrefixOf reports whether any inserted sequence is a leading
// prefix of the given one. An exact match counts as a prefix.
func (a *Arena) ContainsPrefixOf(sequence []string) bool {
	current := NodeIndex(0)
	if a.nodes[current].isEnd {
		return true
	}

	for _, part := range sequence {
		childIdx, exists := a.nodes[current].children[part]
		if !exists {
			return false
		}

		current = childIdx
		if a.nodes[current].isEnd {
			return true
		}
	}

	return false
}

// Equal checks whether two tries are identical in structure and content.
func (a *Arena) Equal(b *Arena) bool {
	if len(a.nodes) != len(b.nodes) {
		return false
	}

	return a.equalNodes(NodeIndex(0), b, NodeIndex(0))
}

func (a *Arena) equalNodes(aIdx NodeIndex, b *Arena, bIdx NodeIndex) bool {
	nodeA := a.nodes[aIdx]
	nodeB := b.nodes[bIdx]

	if nodeA.isEnd != nodeB.isEnd || len(nodeA.children) != len(nodeB.children) {
		return false
	}

	keys := make([]string, 0, len(nodeA.children))
	for key := range nodeA.children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		childA := nodeA.children[key]
		childB, exists := nodeB.children[key]
		if !exists || !a.equalNodes(childA, b, childB) {
			return false
		}
	}

	return true
}

// DebugString renders the trie as a nested segment list for debugging.
func (a *Arena) DebugString() string {
	return a.debugStringNode(NodeIndex(0))
}

func (a *Arena) debugStringNode(idx NodeIndex) string {
	node := a.nodes[idx]
	var sb strings.Builder

	if node.isEnd {
		sb.WriteString("*")
	}

	keys := make([]string, 0, len(node.children))
	for key := range node.children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		sb.WriteString(key)
		sb.WriteString("(")
		sb.WriteString(a.debugStringNode(node.children[key]))
		sb.WriteString(")")
	}

	return sb.String()
}

// Trie stores path prefixes split into segments. The engine uses it to
// answer "is this path under any ignored directory" in a single walk.
type Trie struct {
	arena *Arena
}

// New returns an empty Trie.
func New() *Trie {
	return &Trie{
		arena: NewArena(),
	}
}

// Insert records a sequence of path segments in the trie.
func (t *Trie) Insert(sequence []string) {
	t.arena.Insert(sequence)
}

// ContainsPrefixOf reports whether any inserted sequence is a leading
// prefix of the given one.
func (t *Trie) ContainsPrefixOf(sequence []string) bool {
	return t.arena.ContainsPrefixOf(sequence)
}

// Equal checks whether two tries are identical in structure and content.
func (t *Trie) Equal(other *Trie) bool {
	return t.arena.Equal(other.arena)
}

// DebugString renders the trie as a nested segment list for debugging.
func (t *Trie) DebugString() string {
	return t.arena.DebugString()
}
