package genedist

import (
	"fmt"
	"math"

	"github.com/pbnjay/memory"
)

// Shape selects which end of the text are required to coincide with the
// ends of the search string, per spec.md §4.5.
type Shape int

const (
	// Full requires the search string to match the entire text.
	Full Shape = iota
	// Prefix requires the match to start at the beginning of the text;
	// any suffix of the text after the match is free.
	Prefix
	// Suffix requires the match to end at the end of the text; any
	// prefix of the text before the match is free.
	Suffix
	// Infix allows the match to start and end anywhere within the text.
	Infix
)

func (s Shape) String() string {
	switch s {
	case Full:
		return "full"
	case Prefix:
		return "prefix"
	case Suffix:
		return "suffix"
	case Infix:
		return "infix"
	default:
		return "unknown"
	}
}

// Engine is an immutable, read-only-after-construction holder of a
// catalogue's three rewrite tries (forward, for filling the cost table)
// and their reversed counterparts (for backtracing), plus the base costs
// and case map queries are run against. Build one with NewEngine and reuse
// it across every query.
type Engine struct {
	insert  *PrimitiveTrie
	delete  *PrimitiveTrie
	replace *ReplaceTrie

	traceInsert  *PrimitiveTrie
	traceDelete  *PrimitiveTrie
	traceReplace *ReplaceTrie

	addCost, repCost, remCost float64

	fold *CaseMap
}

// NewEngine builds an Engine from a parsed Catalogue. fold may be nil for
// case-sensitive matching; when non-nil, every query string is folded
// before it reaches the cost table, and the catalogue is expected to have
// been loaded with the same fold (LoadCatalogue's fold parameter).
//
// The reversed "trace" tries used for backtracing (spec.md §4.6) are built
// here, once, from the same rules: each left-hand (or insertion/deletion)
// string is reversed before insertion, so that walking backwards over
// already-matched text during backtrace becomes a forward trie walk. The
// original C sources declare traceT/traceAddT/traceRemT for exactly this
// purpose but the code that populates them was not present in the
// retrieved sources — they are built here directly from that documented
// intent.
func NewEngine(cat *Catalogue, fold *CaseMap) *Engine {
	e := &Engine{
		insert:  cat.Insert,
		delete:  cat.Delete,
		replace: cat.Replace,
		addCost: cat.AddCost,
		repCost: cat.RepCost,
		remCost: cat.RemCost,
		fold:    fold,
	}
	e.traceInsert = reversedPrimitive(cat.Insert)
	e.traceDelete = reversedPrimitive(cat.Delete)
	e.traceReplace = reversedReplace(cat.Replace)
	return e
}

func reversedPrimitive(t *PrimitiveTrie) *PrimitiveTrie {
	out := newPrimitiveTrie()
	walkPrimitiveRules(t, func(label []rune, cost float64) {
		out.Insert(reversedRunes(label), cost)
	})
	return out
}

func reversedReplace(t *ReplaceTrie) *ReplaceTrie {
	out := newReplaceTrie()
	walkReplaceRules(t, func(left, right []rune, cost float64) {
		out.Insert(reversedRunes(left), right, cost)
	})
	return out
}

func reversedRunes(s []rune) []rune {
	out := make([]rune, len(s))
	for i, r := range s {
		out[len(s)-1-i] = r
	}
	return out
}

// walkPrimitiveRules and walkReplaceRules recover every (label, cost) or
// (left, right, cost) rule stored in a trie by a depth-first traversal of
// its arena, accumulating the label string along the path. They exist
// purely to let NewEngine rebuild a reversed copy of a trie already built
// by the catalogue loader, without the loader having to build both copies
// itself.
func walkPrimitiveRules(t *PrimitiveTrie, visit func(label []rune, cost float64)) {
	var rec func(idx int32, prefix []rune)
	rec = func(idx int32, prefix []rune) {
		n := t.a.nodes[idx]
		if !math.IsNaN(n.cost) {
			visit(append([]rune(nil), prefix...), n.cost)
		}
		for c := n.next; c != noNode; c = t.a.nodes[c].right {
			rec(c, append(prefix, t.a.nodes[c].label))
		}
	}
	rec(0, nil)
}

func walkReplaceRules(t *ReplaceTrie, visit func(left, right []rune, cost float64)) {
	var rec func(idx int32, prefix []rune)
	rec = func(idx int32, prefix []rune) {
		n := t.a.nodes[idx]
		for _, e := range n.ends {
			visit(append([]rune(nil), prefix...), e.right, e.cost)
		}
		for c := n.next; c != noNode; c = t.a.nodes[c].right {
			rec(c, append(prefix, t.a.nodes[c].label))
		}
	}
	rec(0, nil)
}

const inf = math.MaxFloat64

// Query is the working state of one distance computation: the folded
// search string and text, the optional penalty masks, and the cost table
// being filled. A Query is built fresh for every call — spec.md explicitly
// scopes it that way so a shape's differing row-0 initialization (fixed
// growth for Full/Prefix vs. a free zero vector for Suffix/Infix) never
// has to be undone between calls.
type Query struct {
	eng  *Engine
	search, text []rune

	edMask, genedMask []float64

	table [][]float64
}

// NewQuery builds a Query for search against text, case-folding both
// through the Engine's case map if it has one. edMask and genedMask, if
// non-nil, must have been produced by ExtractMasks against the same
// (already-folded) search string; pass nil, nil to run without blocked
// regions.
func (e *Engine) NewQuery(search, text string, edMask, genedMask []float64) (*Query, error) {
	sr, tr := []rune(search), []rune(text)
	if e.fold != nil {
		sr, tr = e.fold.FoldString(sr), e.fold.FoldString(tr)
	}
	if edMask != nil && len(edMask) != len(sr)+2 {
		return nil, fmt.Errorf("%w: edMask has length %d, want %d", ErrInvalidArguments, len(edMask), len(sr)+2)
	}
	if genedMask != nil && len(genedMask) != len(sr)+2 {
		return nil, fmt.Errorf("%w: genedMask has length %d, want %d", ErrInvalidArguments, len(genedMask), len(sr)+2)
	}

	rows, cols := len(sr)+1, len(tr)+1
	if err := ensureTableFits(rows, cols); err != nil {
		return nil, err
	}
	table := make([][]float64, rows)
	for i := range table {
		table[i] = make([]float64, cols)
		for j := range table[i] {
			table[i][j] = inf
		}
	}
	return &Query{eng: e, search: sr, text: tr, edMask: edMask, genedMask: genedMask, table: table}, nil
}

// ensureTableFits returns ErrOutOfMemory rather than letting an
// allocation of the dense rows x cols cost table run the process out of
// memory, per spec.md §7's OutOfMemory error kind and §9's note that the
// table "can be large".
func ensureTableFits(rows, cols int) error {
	want := uint64(rows) * uint64(cols) * 8
	avail := memory.TotalMemory()
	if avail > 0 && want > avail/2 {
		return fmt.Errorf("%w: cost table would need %d bytes, %d available", ErrOutOfMemory, want, avail)
	}
	return nil
}

func (q *Query) edPen(k int) float64 {
	if q.edMask == nil {
		return 0
	}
	return q.edMask[k+1]
}

func (q *Query) genPen(k int) float64 {
	if q.genedMask == nil {
		return 0
	}
	return q.genedMask[k+1]
}

func (q *Query) relax(i, j int, v float64) {
	if v < q.table[i][j] {
		q.table[i][j] = v
	}
}

// fill computes the full cost table in row-major order. startVec, when
// non-nil, seeds row 0 directly (a free prefix of text: any starting
// column costs startVec[j-1]); when nil, row 0 grows by the ordinary
// insertion recurrence (a fixed prefix: the match must begin at column 0).
// Column 0 always grows by the ordinary deletion recurrence — only the
// text side of a match can be partial, never the search string.
//
// At every cell visited, after its own value is finalized via the
// primitive recurrence, the three rewrite tries are walked outward from
// it: DeleteTrie along the remaining search string, InsertTrie along the
// remaining text, ReplaceTrie along the remaining search string matched
// against the remaining text. Because these walks only ever write into
// cells with a strictly larger row or column index, every predecessor a
// cell reads from — whether written by the primitive recurrence or by an
// earlier cell's outward walk — is already final by the time it is read.
func (q *Query) fill(startVec []float64) {
	e := q.eng
	t := q.table
	rows, cols := len(q.search)+1, len(q.text)+1
	t[0][0] = 0

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			switch {
			case i == 0 && j == 0:
				// already seeded
			case i == 0:
				if startVec != nil {
					q.relax(0, j, startVec[j-1])
				} else {
					q.relax(0, j, t[0][j-1]+e.addCost+q.edPen(-1))
				}
			case j == 0:
				q.relax(i, 0, t[i-1][0]+e.remCost+q.edPen(i-1))
			default:
				if q.search[i-1] == q.text[j-1] {
					q.relax(i, j, t[i-1][j-1])
				} else {
					q.relax(i, j, t[i-1][j-1]+e.repCost+q.edPen(i-1))
				}
				q.relax(i, j, t[i][j-1]+e.addCost+q.edPen(i))
				q.relax(i, j, t[i-1][j]+e.remCost+q.edPen(i-1))
			}
			q.launchDeleteWalk(i, j)
			q.launchInsertWalk(i, j)
			q.launchReplaceWalk(i, j)
		}
	}
}

func (q *Query) launchDeleteWalk(i, j int) {
	if q.eng.delete.Empty() || i >= len(q.search) {
		return
	}
	base := q.table[i][j]
	if base >= inf {
		return
	}
	base += q.genPen(i)
	q.eng.delete.Walk(q.search, i, func(consumed int, cost float64) {
		q.relax(i+consumed, j, base+cost)
	})
}

func (q *Query) launchInsertWalk(i, j int) {
	if q.eng.insert.Empty() || j >= len(q.text) {
		return
	}
	base := q.table[i][j]
	if base >= inf {
		return
	}
	base += q.genPen(i)
	q.eng.insert.Walk(q.text, j, func(consumed int, cost float64) {
		q.relax(i, j+consumed, base+cost)
	})
}

func (q *Query) launchReplaceWalk(i, j int) {
	if q.eng.replace.Empty() || i >= len(q.search) {
		return
	}
	base := q.table[i][j]
	if base >= inf {
		return
	}
	base += q.genPen(i)
	q.eng.replace.Walk(q.search, i, func(consumed int, ends []ending) {
		for _, e := range ends {
			c, ok := matchPrefix(e.right, q.text[j:])
			if !ok {
				continue
			}
			q.relax(i+consumed, j+c, base+e.cost)
		}
	})
}

// score reads off the final distance for the shape fill was run with.
// endVec nil means a fixed end (the whole text must be consumed: read the
// bottom-right corner); otherwise the best cost over every column,
// weighted by endVec, is returned.
func (q *Query) score(endVec []float64) float64 {
	last := q.table[len(q.search)]
	if endVec == nil {
		return last[len(q.text)]
	}
	best := inf
	for j := 0; j < len(q.text); j++ {
		if v := last[j+1] + endVec[j]; v < best {
			best = v
		}
	}
	return best
}

func zeroVector(n int) []float64 { return make([]float64, n) }

// Distance computes the generalized edit distance between search and text
// under shape, with optional blocked-region masks (nil, nil to ignore
// them). It is the single entry point behind the four convenience methods
// below and behind DistanceWithTrace.
func (e *Engine) Distance(shape Shape, search, text string, edMask, genedMask []float64) (float64, error) {
	q, err := e.NewQuery(search, text, edMask, genedMask)
	if err != nil {
		return 0, err
	}
	startVec, endVec := vectorsFor(shape, len(q.text))
	q.fill(startVec)
	return q.score(endVec), nil
}

// DistanceWithTrace behaves like Distance but also builds the backtrace
// tree of every minimum-cost alignment, per spec.md §4.6. For a shape with
// a free end, only alignments ending at the leftmost best column are
// included (see Backtrace).
func (e *Engine) DistanceWithTrace(shape Shape, search, text string, edMask, genedMask []float64) (float64, *Transformation, error) {
	q, err := e.NewQuery(search, text, edMask, genedMask)
	if err != nil {
		return 0, nil, err
	}
	startVec, endVec := vectorsFor(shape, len(q.text))
	q.fill(startVec)
	dist := q.score(endVec)
	root := q.Backtrace(endVec)
	return dist, root, nil
}

func vectorsFor(shape Shape, textLen int) (startVec, endVec []float64) {
	switch shape {
	case Full:
		return nil, nil
	case Prefix:
		return nil, zeroVector(textLen)
	case Suffix:
		return zeroVector(textLen), nil
	case Infix:
		return zeroVector(textLen), zeroVector(textLen)
	default:
		return nil, nil
	}
}

// DistanceFull, DistancePrefix, DistanceSuffix and DistanceInfix are the
// four named shortcuts of spec.md §4.5, equivalent to Distance with no
// blocked regions.
func (e *Engine) DistanceFull(search, text string) (float64, error) {
	return e.Distance(Full, search, text, nil, nil)
}

func (e *Engine) DistancePrefix(search, text string) (float64, error) {
	return e.Distance(Prefix, search, text, nil, nil)
}

func (e *Engine) DistanceSuffix(search, text string) (float64, error) {
	return e.Distance(Suffix, search, text, nil, nil)
}

func (e *Engine) DistanceInfix(search, text string) (float64, error) {
	return e.Distance(Infix, search, text, nil, nil)
}

// DebugTable renders the filled cost table with row and column headers,
// in the spirit of GenEditDist.c's printTableWithChangingPenalties — a
// debugging aid, not part of the tested core.
func (q *Query) DebugTable() string {
	s := "    "
	for _, r := range q.text {
		s += fmt.Sprintf("%5c", r)
	}
	s += "\n"
	for i, row := range q.table {
		if i == 0 {
			s += "   "
		} else {
			s += fmt.Sprintf("%3c", q.search[i-1])
		}
		for _, v := range row {
			if v >= inf {
				s += "   inf"
			} else {
				s += fmt.Sprintf("%6.2f", v)
			}
		}
		s += "\n"
	}
	return s
}
