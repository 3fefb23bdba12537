package genedist

import "testing"

func TestPrimitiveTrieKeepsLowestCost(t *testing.T) {
	tr := newPrimitiveTrie()
	tr.Insert([]rune("abc"), 2.0)
	tr.Insert([]rune("abc"), 0.5)
	tr.Insert([]rune("abc"), 5.0)

	var got float64
	var hits int
	tr.Walk([]rune("abcxyz"), 0, func(consumed int, cost float64) {
		hits++
		got = cost
	})
	if hits != 1 {
		t.Fatalf("expected exactly one match, got %d", hits)
	}
	if got != 0.5 {
		t.Errorf("expected lowest-cost insert (0.5) to win, got %v", got)
	}
}

func TestPrimitiveTrieWalkFindsEveryPrefix(t *testing.T) {
	tr := newPrimitiveTrie()
	tr.Insert([]rune("a"), 1)
	tr.Insert([]rune("ab"), 2)
	tr.Insert([]rune("abc"), 3)

	var consumedLengths []int
	tr.Walk([]rune("abcd"), 0, func(consumed int, cost float64) {
		consumedLengths = append(consumedLengths, consumed)
	})
	if len(consumedLengths) != 3 {
		t.Fatalf("expected 3 matches (a, ab, abc), got %d: %v", len(consumedLengths), consumedLengths)
	}
	for i, want := range []int{1, 2, 3} {
		if consumedLengths[i] != want {
			t.Errorf("match %d: got consumed=%d, want %d", i, consumedLengths[i], want)
		}
	}
}

func TestPrimitiveTrieEmpty(t *testing.T) {
	tr := newPrimitiveTrie()
	if !tr.Empty() {
		t.Error("fresh trie should be Empty")
	}
	tr.Insert([]rune("x"), 1)
	if tr.Empty() {
		t.Error("trie with a rule should not be Empty")
	}
}

func TestReplaceTrieEndings(t *testing.T) {
	tr := newReplaceTrie()
	tr.Insert([]rune("ph"), []rune("f"), 0.5)
	tr.Insert([]rune("ph"), []rune("ff"), 1.5)
	tr.Insert([]rune("ph"), []rune("f"), 0.1) // cheaper duplicate, should win

	var ends []ending
	tr.Walk([]rune("phone"), 0, func(consumed int, e []ending) {
		ends = e
	})
	if len(ends) != 2 {
		t.Fatalf("expected 2 distinct endings for 'ph', got %d", len(ends))
	}
	for _, e := range ends {
		if string(e.right) == "f" && e.cost != 0.1 {
			t.Errorf("expected duplicate (ph,f) insert to keep lowest cost 0.1, got %v", e.cost)
		}
	}
}

func TestMatchPrefix(t *testing.T) {
	if n, ok := matchPrefix([]rune("ab"), []rune("abcdef")); !ok || n != 2 {
		t.Errorf("expected ab to prefix-match abcdef with n=2, got n=%d ok=%v", n, ok)
	}
	if _, ok := matchPrefix([]rune("xy"), []rune("abcdef")); ok {
		t.Error("expected xy not to prefix-match abcdef")
	}
	if _, ok := matchPrefix([]rune("abcdefg"), []rune("abc")); ok {
		t.Error("expected a longer prefix than the remaining text to fail")
	}
}
