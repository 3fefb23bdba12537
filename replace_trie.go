package genedist

// ending is one (right-hand side, cost) pair attached to the accepting
// node of a ReplaceTrie left-hand path, mirroring the original C EndNode
// list: several replacement rules can share the same left-hand string, so
// each accepting node keeps a small list instead of a single cost.
type ending struct {
	right []rune
	cost  float64
}

// ReplaceTrie indexes multi-character replacement rules (left:right:cost)
// by their left-hand string. Reaching an accepting node while walking the
// search string means the left side matched; the endings list attached to
// that node is then matched, in turn, against the text to find which
// right-hand side (if any) is actually present there.
type ReplaceTrie struct {
	a *arena
}

func newReplaceTrie() *ReplaceTrie {
	return &ReplaceTrie{a: newArena()}
}

// Insert records that left rewrites to right at cost, keeping the cheaper
// of the two costs when the same (left, right) pair is inserted twice.
func (t *ReplaceTrie) Insert(left, right []rune, cost float64) {
	idx := t.a.descend(0, left)
	n := &t.a.nodes[idx]
	for i := range n.ends {
		if string(n.ends[i].right) == string(right) {
			if cost < n.ends[i].cost {
				n.ends[i].cost = cost
			}
			return
		}
	}
	n.ends = append(n.ends, ending{right: right, cost: cost})
}

func (t *ReplaceTrie) Empty() bool {
	return t.a.nodes[0].next == noNode
}

// Walk follows s starting at offset start and calls onMatch once for every
// prefix of s[start:] that is an accepting left-hand node, passing the
// number of runes consumed and that node's endings list.
func (t *ReplaceTrie) Walk(s []rune, start int, onMatch func(consumed int, ends []ending)) {
	if t.Empty() || start >= len(s) {
		return
	}
	t.a.walk(0, s[start:], func(idx int32, consumed int) bool {
		n := t.a.nodes[idx]
		if n.ends != nil {
			onMatch(consumed, n.ends)
		}
		return true
	})
}

// matchPrefix reports whether prefix occurs at the start of s, returning
// its length when it does.
func matchPrefix(prefix, s []rune) (int, bool) {
	if len(prefix) > len(s) {
		return 0, false
	}
	for i, r := range prefix {
		if s[i] != r {
			return 0, false
		}
	}
	return len(prefix), true
}
