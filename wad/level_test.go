package wad

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stuarthighley/doomview/internal/wadtest"
)

func stepLevel(t *testing.T) *Level {
	t.Helper()
	l, err := decode(t, wadtest.Archive(wadtest.StepRooms(24, "FLOOR1"))).Level("E1M1")
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestLevelRecords(t *testing.T) {
	l := stepLevel(t)

	if len(l.Vertexes) != 6 || len(l.Lines) != 7 || len(l.Sides) != 8 || len(l.LineSegments) != 8 ||
		len(l.SubSectors) != 2 || len(l.Nodes) != 1 || len(l.Sectors) != 2 || len(l.Things) != 1 {
		t.Fatalf("unexpected record counts")
	}

	portal := &l.Lines[2]
	if portal.IsSingleSided() || !portal.TwoSided {
		t.Errorf("expected line 2 to be two-sided")
	}
	if !l.Lines[0].IsSingleSided() {
		t.Errorf("expected line 0 to be single-sided")
	}
	if portal.SideR.LowerTexture == nil || portal.SideR.LowerTexture.Name != "STEP" {
		t.Errorf("expected portal lower texture STEP")
	}
	if portal.SideR.UpperTexture != nil || portal.SideR.HasMiddle() {
		t.Errorf("expected '-' textures to stay unresolved")
	}

	if s := l.Sectors[1]; s.FloorHeight != 24 || s.FloorTexture == nil || s.FloorTexture.Name != "FLOOR1" {
		t.Errorf("expected sector 1 floor 24 with FLOOR1, got %v %v", s.FloorHeight, s.FloorTextureName)
	}
}

func TestSegSectors(t *testing.T) {
	l := stepLevel(t)

	front := &l.LineSegments[2]
	if front.FrontSector != &l.Sectors[0] || front.BackSector != &l.Sectors[1] {
		t.Errorf("seg 2: expected sector 0 in front of sector 1")
	}
	back := &l.LineSegments[7]
	if !back.IsSideL || back.FrontSector != &l.Sectors[1] || back.BackSector != &l.Sectors[0] {
		t.Errorf("seg 7: expected sector 1 in front of sector 0")
	}
	if back.Side != l.Lines[2].SideL || back.OtherSide() != l.Lines[2].SideR {
		t.Errorf("seg 7: expected the line's left side")
	}
	if l.LineSegments[0].BackSector != nil {
		t.Errorf("seg 0: expected no back sector")
	}

	for i, ss := range l.SubSectors {
		if ss.Sector != &l.Sectors[i] {
			t.Errorf("subsector %d: expected sector %d", i, i)
		}
		if len(ss.LineSegments) != 4 || &ss.LineSegments[0] != &l.LineSegments[4*i] {
			t.Errorf("subsector %d: expected segs %d..%d", i, 4*i, 4*i+3)
		}
	}

	if a := l.LineSegments[1].Angle; a != 0 {
		t.Errorf("seg 1: expected angle 0, got %v", a)
	}
	if a := l.LineSegments[2].Angle; math.Abs(a-3*math.Pi/2) > 1e-9 {
		t.Errorf("seg 2: expected angle 3π/2, got %v", a)
	}
}

func TestBSPChildren(t *testing.T) {
	l := stepLevel(t)
	root, ok := l.Root.(*Node)
	if !ok || root != &l.Nodes[0] {
		t.Fatalf("expected the last node as root")
	}
	if root.ChildR != &l.SubSectors[1] || root.ChildL != &l.SubSectors[0] {
		t.Errorf("expected children resolved to subsectors 1 and 0")
	}
	if root.Child(0).BSPType() != BSPSubSector {
		t.Errorf("expected a subsector child")
	}

	// A parent node may refer to any earlier node
	m := wadtest.StepRooms(24, "FLOOR1")
	m.Nodes = append(m.Nodes, wadtest.Node{X: 0, Y: 0, DX: -1, DY: 0, Right: 0, Left: wadtest.SubSectorRef(0)})
	nested, err := decode(t, wadtest.Archive(m)).Level("E1M1")
	if err != nil {
		t.Fatal(err)
	}
	if nested.Root != &nested.Nodes[1] || nested.Nodes[1].ChildR != &nested.Nodes[0] {
		t.Errorf("expected node 1 as root with node 0 as its right child")
	}
	if s := nested.PointSubSector(200, 64); s != &nested.SubSectors[1] {
		t.Errorf("PointSubSector(200, 64): expected subsector 1, got %p", s)
	}

	tests := []struct {
		raw  int
		num  int
		leaf bool
	}{
		{0, 0, false},
		{5, 5, false},
		{wadtest.SubSectorRef(3), 3, true},
		{-1, 0, true},
	}
	for _, test := range tests {
		num, leaf := decodeChild(test.raw)
		if num != test.num || leaf != test.leaf {
			t.Errorf("decodeChild(%d): expected (%d, %v), got (%d, %v)", test.raw, test.num, test.leaf, num, leaf)
		}
	}
}

func TestNodeSide(t *testing.T) {
	n := Node{X: 128, Y: 0, DX: 0, DY: 128}
	if side := n.Side(200, 64); side != 0 {
		t.Errorf("east of a northward line: expected right (0), got %d", side)
	}
	if side := n.Side(32, 64); side != 1 {
		t.Errorf("west of a northward line: expected left (1), got %d", side)
	}
	if side := n.Side(128, 500); side != 0 {
		t.Errorf("on the line: expected right (0), got %d", side)
	}
}

func TestPointQueries(t *testing.T) {
	l := stepLevel(t)
	if ss := l.PointSubSector(32, 64); ss.Index != 0 {
		t.Errorf("expected subsector 0, got %d", ss.Index)
	}
	if h := l.FloorHeight(200, 64); h != 24 {
		t.Errorf("expected floor 24, got %v", h)
	}

	start, ok := l.PlayerStart(1)
	if !ok || start.X != 32 || start.Y != 64 || start.Angle != 0 {
		t.Errorf("expected player 1 at (32, 64) facing east, got %+v", start)
	}
	if _, ok := l.PlayerStart(2); ok {
		t.Errorf("expected no player 2 start")
	}
}

func TestPrintTree(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintTree(&buf, stepLevel(t)); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		"- node (128,0) d(0,128)",
		"   - subsector 1: sector 1, segs 4..7",
		"   - subsector 0: sector 0, segs 0..3",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %q", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}
