package genedist

// tolerance is the absolute floating-point tolerance used throughout
// backtracing to decide whether a candidate predecessor cost equals the
// cell's minimum. It matches the original ShowTransformations.c's
// equalWeights, which compares with min_weight/10.0 where
// min_weight == 0.000001.
const tolerance = 1e-7

func approxEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < tolerance
}

// TransformKind distinguishes a primitive single-character edit from a
// rewrite-trie-driven one in a Transformation node.
type TransformKind int

const (
	// Primitive is an identity, replace, insert or delete of a single
	// character.
	Primitive TransformKind = iota
	// Rewrite is a multi-character insertion, deletion or replacement
	// drawn from the catalogue.
	Rewrite
)

// Transformation is one edge of a minimum-cost alignment between the
// search string and a span of text: a move from (StartRow, StartCol) to
// (EndRow, EndCol) in the cost table, consuming From (a substring of the
// search string, empty for a pure insertion) and producing To (a
// substring of text, empty for a pure deletion), at cost Weight.
//
// Next chains towards the table's origin (0,0): following Next from the
// root eventually reaches a node whose Next is nil, meaning that path has
// been fully traced back to the start of the match. Right holds an
// alternative, equally-optimal edit from the same cell — the tree of
// every minimum-cost alignment is the set of paths obtained by choosing,
// at each node, either to follow Next or to try Right instead. Prev and
// Left are the corresponding reverse links, kept for symmetry with
// spec.md's four-pointer data model even though the depth-first traversal
// in AllPaths only ever needs Next and Right.
type Transformation struct {
	StartRow, StartCol int
	EndRow, EndCol     int
	From, To           string
	Weight             float64
	Kind               TransformKind

	Next  *Transformation
	Prev  *Transformation
	Right *Transformation
	Left  *Transformation
}

// Backtrace reconstructs the tree of every alignment of Query's cost table
// that achieves the score reported for endVec (the same vector passed to
// Engine.Distance/DistanceWithTrace for this shape). Pass nil for a fixed
// end (Full or Suffix). With a non-nil endVec, only the leftmost column
// achieving the best score is traced; alignments ending at another column
// with an equal score are not included.
func (q *Query) Backtrace(endVec []float64) *Transformation {
	if endVec == nil {
		return q.backtraceCell(len(q.search), len(q.text), q.table[len(q.search)][len(q.text)])
	}
	best, bestJ := inf, len(q.text)
	last := q.table[len(q.search)]
	for j := 0; j < len(q.text); j++ {
		if v := last[j+1] + endVec[j]; v < best {
			best, bestJ = v, j+1
		}
	}
	return q.backtraceCell(len(q.search), bestJ, q.table[len(q.search)][bestJ])
}

// backtraceCell returns the linked (via Right) list of every Transformation
// that can lead into (i,j) at cost target, each already chained (via Next)
// back to (0,0), or, when row 0 was seeded by a start vector, back to the
// row-0 cell where the match starts.
func (q *Query) backtraceCell(i, j int, target float64) *Transformation {
	if i == 0 && j == 0 {
		return nil
	}

	var head, tail *Transformation
	add := func(tr *Transformation) {
		tr.Next = q.backtraceCell(tr.StartRow, tr.StartCol, q.table[tr.StartRow][tr.StartCol])
		if tr.Next != nil {
			tr.Next.Prev = tr
		}
		if head == nil {
			head = tr
		} else {
			tail.Right = tr
			tr.Left = tail
		}
		tail = tr
	}

	if i > 0 && j > 0 {
		var cost float64
		if q.search[i-1] == q.text[j-1] {
			cost = 0
		} else {
			cost = q.eng.repCost + q.edPen(i-1)
		}
		if approxEqual(q.table[i-1][j-1]+cost, target) {
			add(&Transformation{
				StartRow: i - 1, StartCol: j - 1, EndRow: i, EndCol: j,
				From: string(q.search[i-1]), To: string(q.text[j-1]),
				Weight: cost, Kind: Primitive,
			})
		}
	}
	if i > 0 {
		cost := q.eng.remCost + q.edPen(i-1)
		if approxEqual(q.table[i-1][j]+cost, target) {
			add(&Transformation{
				StartRow: i - 1, StartCol: j, EndRow: i, EndCol: j,
				From: string(q.search[i-1]), To: "",
				Weight: cost, Kind: Primitive,
			})
		}
	}
	if j > 0 {
		cost := q.eng.addCost + q.edPen(i)
		if approxEqual(q.table[i][j-1]+cost, target) {
			add(&Transformation{
				StartRow: i, StartCol: j - 1, EndRow: i, EndCol: j,
				From: "", To: string(q.text[j-1]),
				Weight: cost, Kind: Primitive,
			})
		}
	}

	// Rewrite-trie edits are matched by walking backwards from (i,j)
	// using the reversed trace tries built by NewEngine: reversing the
	// already-consumed portion of the search string (or text) turns the
	// backward walk the original string would need into a forward trie
	// walk, exactly as traceT/traceAddT/traceRemT were intended to in
	// GenEditDist.c.
	if !q.eng.traceDelete.Empty() && i > 0 {
		reversed := reversedRunes(q.search[:i])
		q.eng.traceDelete.Walk(reversed, 0, func(r int, cost float64) {
			from := i - r
			base := q.table[from][j] + q.genPen(from)
			if approxEqual(base+cost, target) {
				add(&Transformation{
					StartRow: from, StartCol: j, EndRow: i, EndCol: j,
					From: string(q.search[from:i]), To: "",
					Weight: cost, Kind: Rewrite,
				})
			}
		})
	}
	if !q.eng.traceInsert.Empty() && j > 0 {
		reversed := reversedRunes(q.text[:j])
		q.eng.traceInsert.Walk(reversed, 0, func(c int, cost float64) {
			from := j - c
			base := q.table[i][from] + q.genPen(i)
			if approxEqual(base+cost, target) {
				add(&Transformation{
					StartRow: i, StartCol: from, EndRow: i, EndCol: j,
					From: "", To: string(q.text[from:j]),
					Weight: cost, Kind: Rewrite,
				})
			}
		})
	}
	if !q.eng.traceReplace.Empty() && i > 0 {
		reversed := reversedRunes(q.search[:i])
		q.eng.traceReplace.Walk(reversed, 0, func(r int, ends []ending) {
			from := i - r
			pen := q.genPen(from)
			for _, e := range ends {
				c := len(e.right)
				start := j - c
				if start < 0 {
					continue
				}
				rightRunes := q.text[start:j]
				match := true
				for k, rr := range e.right {
					if rightRunes[k] != rr {
						match = false
						break
					}
				}
				if !match {
					continue
				}
				base := q.table[from][start]
				if approxEqual(base+pen+e.cost, target) {
					add(&Transformation{
						StartRow: from, StartCol: start, EndRow: i, EndCol: j,
						From: string(q.search[from:i]), To: string(e.right),
						Weight: e.cost, Kind: Rewrite,
					})
				}
			}
		})
	}

	return head
}

// AllPaths enumerates every root-to-origin alignment in the tree rooted at
// root, ordered from the match's start to its end — the depth-first
// traversal of spec.md §4.6: expand each node's Next until (0,0) is
// reached, then backtrack to the nearest Right alternative.
func AllPaths(root *Transformation) [][]*Transformation {
	var out [][]*Transformation
	var walk func(node *Transformation, path []*Transformation)
	walk = func(node *Transformation, path []*Transformation) {
		for alt := node; alt != nil; alt = alt.Right {
			next := append(append([]*Transformation{}, path...), alt)
			if alt.Next == nil {
				reversed := make([]*Transformation, len(next))
				for i, tr := range next {
					reversed[len(next)-1-i] = tr
				}
				out = append(out, reversed)
			} else {
				walk(alt.Next, next)
			}
		}
	}
	if root != nil {
		walk(root, nil)
	}
	return out
}

// PathWeight sums the weights along an alignment path, for verifying it
// reconstructs the distance it was traced from.
func PathWeight(path []*Transformation) float64 {
	var sum float64
	for _, tr := range path {
		sum += tr.Weight
	}
	return sum
}
