package wad

import (
	"fmt"
	"io"
	"strings"
)

type BoundBox struct {
	Top, Bottom, Left, Right float64
}

type binBBox struct {
	Top    int16
	Bottom int16
	Left   int16
	Right  int16
}

type binNode struct {
	X, Y                 int16
	DX, DY               int16
	BBoxR, BBoxL         binBBox
	ChildNumR, ChildNumL int16
}

// Node is an interior BSP node. Its partition line runs from (X, Y) along (DX, DY); the
// right child holds the space on the right of that direction.
type Node struct {
	X, Y                 float64
	DX, DY               float64
	BBoxR, BBoxL         BoundBox
	ChildNumR, ChildNumL int // Raw references as stored in NODES
	ChildR, ChildL       BSPMember
}

// Child returns the child for side 0 (right) or 1 (left).
func (n *Node) Child(side int) BSPMember {
	if side == 0 {
		return n.ChildR
	}
	return n.ChildL
}

// BoundBox returns the bound box for side
func (n *Node) BoundBox(side int) *BoundBox {
	if side == 0 {
		return &n.BBoxR
	}
	return &n.BBoxL
}

// Side returns 0 when (x, y) is on the right of, or on, the partition line and 1 when on the left.
func (n *Node) Side(x, y float64) int {
	det := (x-n.X)*n.DY - n.DX*(y-n.Y)
	if det < 0 {
		return 1
	}
	return 0
}

type BSPType int

const (
	BSPNode BSPType = iota
	BSPSubSector
)

// BSPMember is either a *Node or a *SubSector, resolved once at load.
type BSPMember interface {
	BSPType() BSPType
}

func (s *SubSector) BSPType() BSPType {
	return BSPSubSector
}

func (s *Node) BSPType() BSPType {
	return BSPNode
}

// subSectorFlag tags a child reference as a subsector.
const subSectorFlag = 0x8000

// decodeChild splits a raw child reference. A value of -1 (all bits set) maps to
// subsector 0, as the engine does.
func decodeChild(raw int) (num int, isSubSector bool) {
	if raw&subSectorFlag == 0 {
		return raw, false
	}
	if raw == -1 {
		return 0, true
	}
	return raw & 0x7FFF, true
}

func readNodes(lump []byte) ([]Node, error) {
	logger.Println("Reading Nodes ...")
	binNodes, err := readRecords[binNode](lump)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, len(binNodes))
	for i, n := range binNodes {
		nodes[i] = Node{
			X:         float64(n.X),
			Y:         float64(n.Y),
			DX:        float64(n.DX),
			DY:        float64(n.DY),
			BBoxR:     bBoxFromBin(n.BBoxR),
			BBoxL:     bBoxFromBin(n.BBoxL),
			ChildNumR: int(n.ChildNumR),
			ChildNumL: int(n.ChildNumL),
		}
	}
	logger.Printf("Read %v nodes", len(nodes))
	return nodes, nil
}

func bBoxFromBin(b binBBox) BoundBox {
	return BoundBox{
		Top:    float64(b.Top),
		Bottom: float64(b.Bottom),
		Left:   float64(b.Left),
		Right:  float64(b.Right),
	}
}

// PointSubSector walks the tree to the leaf containing (x, y).
func (l *Level) PointSubSector(x, y float64) *SubSector {
	member := l.Root
	for {
		switch v := member.(type) {
		case *SubSector:
			return v
		case *Node:
			member = v.Child(v.Side(x, y))
		}
	}
}

// FloorHeight returns the floor height of the sector under (x, y).
func (l *Level) FloorHeight(x, y float64) float64 {
	return l.PointSubSector(x, y).Sector.FloorHeight
}

// PlayerStart returns the start thing for player n (1 to 4).
func (l *Level) PlayerStart(n int) (Thing, bool) {
	for _, t := range l.Things {
		if t.Type == n {
			return t, true
		}
	}
	return Thing{}, false
}

// PrintTree writes the level's BSP tree, one member per line, right child first.
func PrintTree(w io.Writer, l *Level) error {
	var printRecursive func(BSPMember, string) error
	printRecursive = func(member BSPMember, prefix string) error {
		switch v := member.(type) {
		case *SubSector:
			_, err := fmt.Fprintf(w, "%s- subsector %d: sector %d, segs %d..%d\n", prefix, v.Index,
				v.Sector.Index, v.StartLineSegment, v.StartLineSegment+v.NumLineSegments-1)
			return err
		case *Node:
			if _, err := fmt.Fprintf(w, "%s- node (%v,%v) d(%v,%v)\n", prefix, v.X, v.Y, v.DX, v.DY); err != nil {
				return err
			}
			for side := range 2 {
				if err := printRecursive(v.Child(side), prefix+strings.Repeat(" ", 3)); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return printRecursive(l.Root, "")
}
