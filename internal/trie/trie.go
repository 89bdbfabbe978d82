// Package trie implements the phrase index: a frozen prefix trie over the
// vocabulary strings supporting longest-match queries from an arbitrary
// codepoint offset.
//
// The structure is a flat arena: nodes live in one slice and are referenced
// by integer index, transitions live in one label-sorted slice shared by all
// nodes. Matching walks whole runes, so a multi-byte codepoint is never
// split, and comparison is byte-exact (no normalization).
package trie

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrTooLarge is returned when the phrase set exceeds what the 32-bit node
// arena can represent.
var ErrTooLarge = errors.New("phrase set too large for trie index")

const noID = -1

// Match is one in-vocabulary prefix match at a query offset.
type Match struct {
	Length int // match length in codepoints
	ID     int // vocabulary id
}

type edge struct {
	label  rune
	target int32
}

type node struct {
	lo, hi int32 // edge range in Trie.edges
	id     int32 // terminal vocab id, noID if not terminal
}

// Trie is the frozen phrase index. Immutable after Build.
type Trie struct {
	nodes []node
	edges []edge
}

// buildNode is the mutable construction-time shape, frozen into the arena
// by Build before returning.
type buildNode struct {
	children map[rune]*buildNode
	id       int32
}

// Build constructs the index from the ordered vocabulary phrase list in one
// pass. Empty phrases are skipped (a zero-length match can never advance the
// scan). When the same phrase occurs more than once, the terminal keeps the
// lowest id, so equal-length matches resolve deterministically.
func Build(phrases []string) (*Trie, error) {
	var total int
	for _, p := range phrases {
		total += len(p)
	}
	if total > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d bytes of phrase data", ErrTooLarge, total)
	}

	root := &buildNode{children: map[rune]*buildNode{}, id: noID}
	nodeCount := 1

	for i, p := range phrases {
		if p == "" {
			continue
		}

		cur := root
		for _, r := range p {
			next := cur.children[r]
			if next == nil {
				next = &buildNode{children: map[rune]*buildNode{}, id: noID}
				cur.children[r] = next
				nodeCount++
			}
			cur = next
		}

		if cur.id == noID {
			cur.id = int32(i)
		}
	}

	return freeze(root, nodeCount), nil
}

// freeze lays the construction trie out as a flat arena in BFS order, with
// each node's outgoing edges sorted by label for binary search.
func freeze(root *buildNode, nodeCount int) *Trie {
	t := &Trie{nodes: make([]node, 0, nodeCount)}

	t.nodes = append(t.nodes, node{id: root.id})
	queue := []*buildNode{root}
	next := int32(1)

	for at := 0; at < len(queue); at++ {
		bn := queue[at]

		labels := make([]rune, 0, len(bn.children))
		for r := range bn.children {
			labels = append(labels, r)
		}
		sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

		t.nodes[at].lo = int32(len(t.edges))
		for _, r := range labels {
			child := bn.children[r]
			t.edges = append(t.edges, edge{label: r, target: next})
			t.nodes = append(t.nodes, node{id: child.id})
			queue = append(queue, child)
			next++
		}
		t.nodes[at].hi = int32(len(t.edges))
	}

	return t
}

// step follows the transition labeled r from state s, returning the next
// state and whether the transition exists.
func (t *Trie) step(s int32, r rune) (int32, bool) {
	n := t.nodes[s]
	es := t.edges[n.lo:n.hi]

	i := sort.Search(len(es), func(i int) bool { return es[i].label >= r })
	if i < len(es) && es[i].label == r {
		return es[i].target, true
	}
	return 0, false
}

// LongestMatch returns the longest vocabulary phrase that prefixes
// runes[start:], as a codepoint length and vocabulary id. ok is false when
// no phrase matches at start.
func (t *Trie) LongestMatch(runes []rune, start int) (length, id int, ok bool) {
	state := int32(0)
	for i := start; i < len(runes); i++ {
		next, found := t.step(state, runes[i])
		if !found {
			break
		}
		state = next

		if t.nodes[state].id != noID {
			length = i - start + 1
			id = int(t.nodes[state].id)
			ok = true
		}
	}
	return length, id, ok
}

// Matches returns every vocabulary phrase that prefixes runes[start:], in
// ascending length order. Time is proportional to the longest match, not to
// the vocabulary size.
func (t *Trie) Matches(runes []rune, start int) []Match {
	var out []Match

	state := int32(0)
	for i := start; i < len(runes); i++ {
		next, found := t.step(state, runes[i])
		if !found {
			break
		}
		state = next

		if t.nodes[state].id != noID {
			out = append(out, Match{Length: i - start + 1, ID: int(t.nodes[state].id)})
		}
	}
	return out
}

// Contains reports whether phrase is an exact vocabulary entry in the index.
func (t *Trie) Contains(phrase string) bool {
	if phrase == "" {
		return false
	}

	state := int32(0)
	for _, r := range phrase {
		next, found := t.step(state, r)
		if !found {
			return false
		}
		state = next
	}
	return t.nodes[state].id != noID
}
