package genedist

import "testing"

func emptyCatalogue() *Catalogue {
	return &Catalogue{
		Insert:  newPrimitiveTrie(),
		Delete:  newPrimitiveTrie(),
		Replace: newReplaceTrie(),
		AddCost: 1, RepCost: 1, RemCost: 1,
	}
}

func TestDistanceFullClassicLevenshtein(t *testing.T) {
	eng := NewEngine(emptyCatalogue(), nil)
	d, err := eng.DistanceFull("kitten", "sitting")
	if err != nil {
		t.Fatalf("DistanceFull: %v", err)
	}
	if d != 3 {
		t.Errorf("expected kitten/sitting distance 3, got %v", d)
	}
}

func TestDistanceFullIdentical(t *testing.T) {
	eng := NewEngine(emptyCatalogue(), nil)
	d, err := eng.DistanceFull("abcdef", "abcdef")
	if err != nil {
		t.Fatalf("DistanceFull: %v", err)
	}
	if d != 0 {
		t.Errorf("expected identical strings to have distance 0, got %v", d)
	}
}

func TestDistanceFullSymmetricWithEqualCosts(t *testing.T) {
	eng := NewEngine(emptyCatalogue(), nil)
	ab, err := eng.DistanceFull("flaw", "lawn")
	if err != nil {
		t.Fatal(err)
	}
	ba, err := eng.DistanceFull("lawn", "flaw")
	if err != nil {
		t.Fatal(err)
	}
	if ab != ba {
		t.Errorf("expected symmetric distance with equal add/rem costs, got %v vs %v", ab, ba)
	}
}

func TestDistanceFullUsesCheaperRewriteRule(t *testing.T) {
	cat := emptyCatalogue()
	cat.Insert.Insert([]rune("abc"), 0.5)
	eng := NewEngine(cat, nil)

	d, err := eng.DistanceFull("", "abc")
	if err != nil {
		t.Fatal(err)
	}
	if d != 0.5 {
		t.Errorf("expected the 0.5 rewrite rule to beat 3 primitive inserts, got %v", d)
	}
}

func TestDistancePrefixFreesTheSuffix(t *testing.T) {
	cat := emptyCatalogue()
	cat.Insert.Insert([]rune("abc"), 0.5)
	eng := NewEngine(cat, nil)

	d, err := eng.DistancePrefix("", "abcxyz")
	if err != nil {
		t.Fatal(err)
	}
	if d != 0.5 {
		t.Errorf("expected prefix match to ignore the xyz suffix, got %v", d)
	}
}

func TestDistanceSuffixFreesThePrefix(t *testing.T) {
	cat := emptyCatalogue()
	cat.Insert.Insert([]rune("abc"), 0.5)
	eng := NewEngine(cat, nil)

	// Row 0 is seeded with zeros, so an empty search can start (and end)
	// after the whole text: the entire text is a free prefix.
	d, err := eng.DistanceSuffix("", "xyzabc")
	if err != nil {
		t.Fatal(err)
	}
	if d != 0 {
		t.Errorf("expected suffix match to treat the whole text as a free prefix, got %v", d)
	}
}

func TestDistanceInfixFreesBothEnds(t *testing.T) {
	cat := emptyCatalogue()
	cat.Insert.Insert([]rune("abc"), 0.5)
	eng := NewEngine(cat, nil)

	// With both ends free, an empty search matches anywhere at no cost.
	d, err := eng.DistanceInfix("", "xxabcyy")
	if err != nil {
		t.Fatal(err)
	}
	if d != 0 {
		t.Errorf("expected infix match to leave both ends of the text free, got %v", d)
	}
}

func TestDistanceFullCaseInsensitive(t *testing.T) {
	fold := NewCaseMap(map[rune]rune{
		'K': 'k', 'I': 'i', 'T': 't', 'E': 'e', 'N': 'n',
	})
	eng := NewEngine(emptyCatalogue(), fold)
	d, err := eng.DistanceFull("KITTEN", "kitten")
	if err != nil {
		t.Fatal(err)
	}
	if d != 0 {
		t.Errorf("expected case-insensitive equivalence, got distance %v", d)
	}
}

func TestDistanceFullBlockedRegionCostsAtLeastBlock(t *testing.T) {
	eng := NewEngine(emptyCatalogue(), nil)
	stripped, edMask, genedMask := ExtractMasks("(a)")
	d, err := eng.Distance(Full, stripped, "b", edMask, genedMask)
	if err != nil {
		t.Fatal(err)
	}
	if d < Block {
		t.Errorf("expected any alignment touching the blocked position to cost >= Block, got %v", d)
	}
	if d != 1+Block {
		t.Errorf("expected the cheapest blocked alignment (a blocked substitution) to cost 1+Block, got %v", d)
	}
}

func TestDistanceRejectsMismatchedMaskLength(t *testing.T) {
	eng := NewEngine(emptyCatalogue(), nil)
	_, err := eng.Distance(Full, "abc", "abc", []float64{0, 0}, nil)
	if err == nil {
		t.Error("expected an error for an edMask of the wrong length")
	}
}

func TestDistanceFullWithReplaceTrie(t *testing.T) {
	cat := emptyCatalogue()
	cat.Replace.Insert([]rune("ph"), []rune("f"), 0.3)
	eng := NewEngine(cat, nil)

	d, err := eng.DistanceFull("phone", "fone")
	if err != nil {
		t.Fatal(err)
	}
	if d != 0.3 {
		t.Errorf("expected the ph->f rewrite (0.3) to beat the primitive edits, got %v", d)
	}
}
