package genedist

import "math"

// PrimitiveTrie indexes a set of (string, cost) rules and answers, for any
// position in a rune slice, every prefix starting there that matches a rule
// together with its cost. It is the Go counterpart of the original C
// ARTrie: the same struct served as both the "add" trie (insertions, rules
// keyed by the text being inserted) and the "remove" trie (deletions, rules
// keyed by the search-string substring being deleted) because the two only
// differ in which string they are built from, never in shape. DeleteTrie
// and InsertTrie are both a *PrimitiveTrie for the same reason.
type PrimitiveTrie struct {
	a *arena
}

func newPrimitiveTrie() *PrimitiveTrie {
	return &PrimitiveTrie{a: newArena()}
}

// Insert records that the rule of label costs cost, keeping the cheaper of
// the two when a rule is inserted twice (the catalogue loader relies on
// this to implement "first occurrence wins is not required — lowest cost
// wins" from spec.md §4.2).
func (t *PrimitiveTrie) Insert(label []rune, cost float64) {
	idx := t.a.descend(0, label)
	n := &t.a.nodes[idx]
	if math.IsNaN(n.cost) || cost < n.cost {
		n.cost = cost
	}
}

// Empty reports whether the trie holds no rules at all, letting callers
// skip launching a walk from every DP cell when a rule class is unused.
func (t *PrimitiveTrie) Empty() bool {
	return t.a.nodes[0].next == noNode
}

// Walk follows s starting at offset start and calls onMatch once for every
// prefix of s[start:] that is an accepting node, in order of increasing
// length, passing the number of runes consumed and the rule's cost.
func (t *PrimitiveTrie) Walk(s []rune, start int, onMatch func(consumed int, cost float64)) {
	if t.Empty() || start >= len(s) {
		return
	}
	t.a.walk(0, s[start:], func(idx int32, consumed int) bool {
		n := t.a.nodes[idx]
		if !math.IsNaN(n.cost) {
			onMatch(consumed, n.cost)
		}
		return true
	})
}
