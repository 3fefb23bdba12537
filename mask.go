package genedist

// Block is the cost added at a position the search string has marked as
// forbidden to edit. It is large enough that any alignment which must
// touch a blocked position loses to an alignment that does not, without
// being so large it risks overflowing a sum of otherwise-small rule costs.
// spec.md §9 suggests this exact value.
const Block = 3000.0

func isOpenMarker(r rune) bool  { return r == '(' || r == '<' }
func isCloseMarker(r rune) bool { return r == ')' || r == '>' }

// ExtractMasks scans search for the region markers `(...)` and `<...>`
// described in spec.md §4.4, strips them out, and builds the two penalty
// masks they describe: edMask blocks regular (primitive) edits, genedMask
// blocks rewrite-trie-driven edits. `(...)` marks a region where only
// regular edits are forbidden; `<...>` marks a region where both regular
// and rewrite edits are forbidden. Both masks are indexed 0..len(stripped)+1
// following the pen(k) = mask[k+1] convention used throughout engine.go,
// so mask[0] is "before position 0" and mask[len+1] is "after the last
// position".
//
// When search carries no markers at all, or is made up entirely of
// markers, both masks come back nil (meaning "no penalty anywhere") and
// stripped is search unchanged — mirroring the original C
// extractBlockedRegions, which only allocates penalty arrays when there is
// at least one true character and at least one marker to extract.
//
// The doubled-marker edge cases at the very start and very end of search
// (e.g. "((word" or "word))") are handled exactly as GenEditDist.c's
// extractBlockedRegions handles them: a second open marker immediately
// after the first blocks insertion before position 0 instead of opening a
// nested region, and symmetrically at the end.
func ExtractMasks(search string) (stripped string, edMask, genedMask []float64) {
	runes := []rune(search)
	n := len(runes)

	trueLen := 0
	for _, r := range runes {
		if !isOpenMarker(r) && !isCloseMarker(r) {
			trueLen++
		}
	}
	if trueLen == 0 || trueLen == n {
		return search, nil, nil
	}

	edMask = make([]float64, trueLen+2)
	genedMask = make([]float64, trueLen+2)
	out := make([]rune, 0, trueLen)

	inEd, inGen := false, false
	pos := 1
	for i, r := range runes {
		switch {
		case isOpenMarker(r):
			if i == 1 && (inEd || inGen) {
				edMask[0] = Block
				if r == '<' {
					genedMask[0] = Block
				}
			} else if r == '(' {
				inEd = true
			} else {
				inGen = true
			}
		case isCloseMarker(r):
			if i == n-1 && i > 0 && isCloseMarker(runes[i-1]) {
				edMask[trueLen+1] = Block
				if r == '>' {
					genedMask[trueLen+1] = Block
				}
			} else if r == ')' {
				inEd = false
			} else {
				inGen = false
			}
		default:
			if inEd || inGen {
				edMask[pos] = Block
			}
			if inGen {
				genedMask[pos] = Block
			}
			out = append(out, r)
			pos++
		}
	}
	return string(out), edMask, genedMask
}
