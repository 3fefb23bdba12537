package genedist

// CaseMap folds runes to a canonical case before they reach any trie or the
// cost table, implementing spec.md §4.3's case-insensitive mode. It
// replaces the original C code's locale-dependent wchar_t upper/lower
// conversion (wcharToLocale/localeToWchar in FileToTrie.c) with a portable
// rune table holding the overrides read from a case-map file (one fold
// pair per line).
//
// Folding is entirely user-table-driven: a rune with no registered override
// is returned unchanged, per spec.md §4.3 and §9 ("no built-in Unicode
// casing is implied"), matching makeToIgnoreCase's behavior in
// FileToTrie.c, which returns the input character unchanged when it finds
// no mapping.
type CaseMap struct {
	fold map[rune]rune
}

// NewCaseMap builds a CaseMap from overrides, a map from a rune to the rune
// it should fold to. overrides is copied, so later mutation of the caller's
// map has no effect. overrides holds one mapping per rune; LoadCaseMap is
// what keeps the first line given for a rune, matching makeToIgnoreCase's
// "first match wins" behavior in FileToTrie.c.
func NewCaseMap(overrides map[rune]rune) *CaseMap {
	fold := make(map[rune]rune, len(overrides))
	for k, v := range overrides {
		fold[k] = v
	}
	return &CaseMap{fold: fold}
}

// Fold returns r's canonical form: its override if one was registered,
// otherwise r unchanged.
func (c *CaseMap) Fold(r rune) rune {
	if c != nil {
		if v, ok := c.fold[r]; ok {
			return v
		}
	}
	return r
}

// FoldString folds every rune of s.
func (c *CaseMap) FoldString(s []rune) []rune {
	out := make([]rune, len(s))
	for i, r := range s {
		out[i] = c.Fold(r)
	}
	return out
}
