package genedist

import (
	"strconv"
	"strings"
)

// RenderAlignment formats one alignment path (already in match order, as
// returned by AllPaths) as the three colon-separated lines of spec.md §6:
// the left-hand side of every edit, optionally its weight, then the
// right-hand side, each line terminated with ";". When pretty is set, each
// column is padded to the width of its widest cell across the three lines,
// the "-y" flag's column-alignment behaviour.
func RenderAlignment(path []*Transformation, withWeights, pretty bool) string {
	lefts := make([]string, len(path))
	rights := make([]string, len(path))
	weights := make([]string, len(path))
	for i, tr := range path {
		lefts[i] = tr.From
		rights[i] = tr.To
		weights[i] = strconv.FormatFloat(tr.Weight, 'f', -1, 64)
	}

	if pretty {
		for i := range lefts {
			w := len(lefts[i])
			if len(rights[i]) > w {
				w = len(rights[i])
			}
			if withWeights && len(weights[i]) > w {
				w = len(weights[i])
			}
			lefts[i] = padLeft(lefts[i], w)
			rights[i] = padLeft(rights[i], w)
			weights[i] = padLeft(weights[i], w)
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(lefts, ":"))
	b.WriteString(";\n")
	if withWeights {
		b.WriteString(strings.Join(weights, ":"))
		b.WriteString(";\n")
	}
	b.WriteString(strings.Join(rights, ":"))
	b.WriteString(";\n")
	return b.String()
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
