package genedist

import (
	"bufio"
	"io"

	"golang.org/x/exp/slices"
)

// DictMatch is one dictionary entry that passed threshold-mode filtering
// (spec.md §4.7): the line it came from, its text, and the score computed
// for every shape the caller asked for.
type DictMatch struct {
	Line   int
	Text   string
	Scores map[Shape]float64

	// Paths holds every minimum-cost alignment, populated only when the
	// caller asked for alignments and exactly one shape was requested
	// with no blocked regions — spec.md §6's "-a" flag is only valid
	// together with "-m" (threshold mode) and a single match type.
	Paths [][]*Transformation
}

// ScanThreshold reads one dictionary entry per line from r and returns
// every entry whose best score across shapes is at most threshold. When
// withAlignment is set and exactly one shape was requested with no
// blocked-region masks, every matching entry's full set of minimum-cost
// alignments is also computed and attached.
func (e *Engine) ScanThreshold(r io.Reader, search string, threshold float64, shapes []Shape, edMask, genedMask []float64, withAlignment bool) ([]DictMatch, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	canAlign := withAlignment && len(shapes) == 1 && edMask == nil && genedMask == nil

	var out []DictMatch
	line := 0
	for scanner.Scan() {
		text := scanner.Text()
		scores := make(map[Shape]float64, len(shapes))
		best := inf
		for _, sh := range shapes {
			d, err := e.Distance(sh, search, text, edMask, genedMask)
			if err != nil {
				return nil, err
			}
			scores[sh] = d
			if d < best {
				best = d
			}
		}
		if best <= threshold {
			match := DictMatch{Line: line, Text: text, Scores: scores}
			if canAlign {
				_, root, err := e.DistanceWithTrace(shapes[0], search, text, nil, nil)
				if err != nil {
					return nil, err
				}
				match.Paths = AllPaths(root)
			}
			out = append(out, match)
		}
		line++
	}
	return out, scanner.Err()
}

// topEntry is one candidate kept by a TopN list.
type topEntry struct {
	Line  int
	Text  string
	Score float64
}

// TopN keeps the N dictionary entries with the lowest score seen so far,
// per spec.md §4.7: once full, a tie with the current worst kept score
// is kept too, so the final list can hold more than N entries when there
// is a tie at the boundary (spec.md §8 scenario 6).
type TopN struct {
	n       int
	entries []topEntry
}

func NewTopN(n int) *TopN {
	return &TopN{n: n}
}

// Consider offers one (line, text, score) candidate to the list.
func (t *TopN) Consider(line int, text string, score float64) {
	if len(t.entries) >= t.n {
		worst := t.entries[len(t.entries)-1].Score
		if score > worst && !approxEqual(score, worst) {
			return
		}
	}
	t.entries = append(t.entries, topEntry{Line: line, Text: text, Score: score})
	slices.SortFunc(t.entries, func(a, b topEntry) int {
		switch {
		case a.Score < b.Score:
			return -1
		case a.Score > b.Score:
			return 1
		default:
			return 0
		}
	})

	if len(t.entries) <= t.n {
		return
	}
	boundary := t.entries[t.n-1].Score
	cut := len(t.entries)
	for cut > t.n && !approxEqual(t.entries[cut-1].Score, boundary) {
		cut--
	}
	t.entries = t.entries[:cut]
}

// Entries returns the kept candidates in ascending score order.
func (t *TopN) Entries() []topEntry {
	return t.entries
}

// ScanTopN reads one dictionary entry per line from r and returns the N
// best-scoring entries (or more, on a boundary tie) for a single shape.
func (e *Engine) ScanTopN(r io.Reader, search string, n int, shape Shape, edMask, genedMask []float64) ([]topEntry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	top := NewTopN(n)
	line := 0
	for scanner.Scan() {
		text := scanner.Text()
		d, err := e.Distance(shape, search, text, edMask, genedMask)
		if err != nil {
			return nil, err
		}
		top.Consider(line, text, d)
		line++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return top.Entries(), nil
}
