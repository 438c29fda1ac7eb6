// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve reconstructs a linear conversation from an exported
// message graph. Exports store conversations as a tree of nodes; branches
// appear where an answer was regenerated. The resolver follows the branch
// the user settled on and flattens it into an ordered turn sequence.
package resolve

import (
	"sort"
	"strings"

	"github.com/pdiddy/transcript-export/pkg/types"
)

// Resolve walks the conversation's mapping from its root and returns the
// turns along the selected path, oldest first. At each branching point the
// child with the greatest message create_time wins; ties keep the first
// child in declaration order. The walk tracks visited ids, so cyclic or
// dangling references in malformed exports terminate instead of looping.
// An empty result is valid: the conversation has no renderable content.
func Resolve(c types.Conversation) []types.Turn {
	children := childIndex(c.Mapping)
	roots := findRoots(c.Mapping)

	// Several roots can appear in malformed exports. Walk each candidate
	// and keep the path with the most turns; ties prefer the most recent
	// final turn, then the lexicographically smallest root id.
	var best []types.Turn
	for _, root := range roots {
		turns := walk(c.Mapping, children, root)
		if better(turns, best) {
			best = turns
		}
	}
	return best
}

// childIndex builds the child adjacency for every node. Declared children
// come first in declaration order; edges present only as a child's parent
// reference are derived afterward, in sorted id order, since some exports
// link nodes one way only.
func childIndex(mapping map[string]types.Node) map[string][]string {
	children := make(map[string][]string, len(mapping))
	for id, node := range mapping {
		children[id] = append([]string(nil), node.Children...)
	}

	ids := make([]string, 0, len(mapping))
	for id := range mapping {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		parent := mapping[id].Parent
		if parent == "" {
			continue
		}
		if _, ok := mapping[parent]; !ok {
			continue
		}
		if !containsID(children[parent], id) {
			children[parent] = append(children[parent], id)
		}
	}
	return children
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// findRoots returns ids of nodes with no parent, or whose parent is absent
// from the mapping, sorted for deterministic iteration.
func findRoots(mapping map[string]types.Node) []string {
	var roots []string
	for id, node := range mapping {
		if node.Parent == "" {
			roots = append(roots, id)
			continue
		}
		if _, ok := mapping[node.Parent]; !ok {
			roots = append(roots, id)
		}
	}
	sort.Strings(roots)
	return roots
}

// walk follows the selected path from root until a node has no eligible
// children, collecting turns along the way.
func walk(mapping map[string]types.Node, children map[string][]string, root string) []types.Turn {
	var turns []types.Turn
	visited := make(map[string]bool)

	current := root
	for current != "" && !visited[current] {
		visited[current] = true
		node, ok := mapping[current]
		if !ok {
			break
		}
		if turn, ok := turnFrom(node); ok {
			turns = append(turns, turn)
		}
		current = selectChild(mapping, children[current], visited)
	}
	return turns
}

// selectChild picks the child representing the final branch: the one with
// the greatest message create_time. Children missing from the mapping or
// already visited are skipped; a child without a message counts as time
// zero but is still traversable.
func selectChild(mapping map[string]types.Node, children []string, visited map[string]bool) string {
	selected := ""
	var selectedTime float64
	for _, id := range children {
		node, ok := mapping[id]
		if !ok || visited[id] {
			continue
		}
		var ct float64
		if node.Message != nil {
			ct = node.Message.CreateTime
		}
		if selected == "" || ct > selectedTime {
			selected = id
			selectedTime = ct
		}
	}
	return selected
}

// turnFrom extracts a renderable turn from a node. Nodes without a message,
// system messages, and messages whose text is blank after trimming produce
// no turn.
func turnFrom(node types.Node) (types.Turn, bool) {
	if node.Message == nil {
		return types.Turn{}, false
	}
	if node.Message.Author.Role == "system" {
		return types.Turn{}, false
	}
	text := node.Message.Text()
	if strings.TrimSpace(text) == "" {
		return types.Turn{}, false
	}
	return types.Turn{
		Role:       node.Message.Author.Role,
		Text:       text,
		CreateTime: node.Message.CreateTime,
	}, true
}

// better reports whether candidate should replace current as the selected
// path. Longer wins; equal lengths prefer the later final turn. Equal on
// both keeps current, so the smallest root id wins among sorted roots.
func better(candidate, current []types.Turn) bool {
	if len(candidate) != len(current) {
		return len(candidate) > len(current)
	}
	if len(candidate) == 0 {
		return false
	}
	return candidate[len(candidate)-1].CreateTime > current[len(current)-1].CreateTime
}
