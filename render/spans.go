package render

import (
	"slices"
	"sort"
)

// Span is an inclusive range of screen columns.
type Span struct {
	X1, X2 int
}

// SpanList holds the columns already covered by solid walls as sorted, disjoint,
// non-adjacent spans.
type SpanList struct {
	spans []Span
}

func (s *SpanList) Reset() {
	s.spans = s.spans[:0]
}

// Spans returns the covered spans in column order. The slice is reused by Add.
func (s *SpanList) Spans() []Span {
	return s.spans
}

// Clip appends the pieces of [x1, x2] not yet covered to out.
func (s *SpanList) Clip(x1, x2 int, out []Span) []Span {
	cur := x1
	for _, sp := range s.spans {
		if sp.X2 < cur {
			continue
		}
		if sp.X1 > x2 {
			break
		}
		if sp.X1 > cur {
			out = append(out, Span{cur, sp.X1 - 1})
		}
		cur = sp.X2 + 1
		if cur > x2 {
			return out
		}
	}
	if cur <= x2 {
		out = append(out, Span{cur, x2})
	}
	return out
}

// Add marks [x1, x2] covered, coalescing it with any overlapping or adjacent spans.
func (s *SpanList) Add(x1, x2 int) {
	if x1 > x2 {
		return
	}
	i := sort.Search(len(s.spans), func(i int) bool { return s.spans[i].X2+1 >= x1 })
	j := i
	for j < len(s.spans) && s.spans[j].X1 <= x2+1 {
		x1 = min(x1, s.spans[j].X1)
		x2 = max(x2, s.spans[j].X2)
		j++
	}
	s.spans = slices.Replace(s.spans, i, j, Span{x1, x2})
}

// Covers reports whether every column of [x1, x2] is covered.
func (s *SpanList) Covers(x1, x2 int) bool {
	i := sort.Search(len(s.spans), func(i int) bool { return s.spans[i].X2 >= x1 })
	return i < len(s.spans) && s.spans[i].X1 <= x1 && s.spans[i].X2 >= x2
}
