package render

import (
	"iter"

	"github.com/stuarthighley/doomview/wad"
)

// Traverse yields every subsector of l exactly once, nearest to the viewpoint (x, y) first.
// At each node the child on the viewpoint's side is walked before the other.
func Traverse(l *wad.Level, x, y float64) iter.Seq[*wad.SubSector] {
	return func(yield func(*wad.SubSector) bool) {
		walk(l.Root, x, y, yield)
	}
}

func walk(member wad.BSPMember, x, y float64, yield func(*wad.SubSector) bool) bool {
	switch v := member.(type) {
	case *wad.SubSector:
		return yield(v)
	case *wad.Node:
		side := v.Side(x, y)
		return walk(v.Child(side), x, y, yield) && walk(v.Child(side^1), x, y, yield)
	}
	return true
}
