package wad

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// levelLumps lists the level lumps that must follow the marker, in order. REJECT and
// BLOCKMAP trail them and are not decoded.
var (
	levelLumps    = [...]string{"THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES", "SEGS", "SSECTORS", "NODES", "SECTORS"}
	trailingLumps = [...]string{"REJECT", "BLOCKMAP"}
)

type Level struct {
	Name         string
	Things       []Thing
	Lines        []Line
	Sides        []Side
	Vertexes     []Vertex
	LineSegments []LineSegment
	SubSectors   []SubSector
	Nodes        []Node
	Sectors      []Sector
	Root         BSPMember // Last node, or the only subsector of a node-less level
}

type binThing struct {
	X       int16
	Y       int16
	Angle   int16
	Type    int16
	Options int16
}

type Thing struct {
	X, Y            float64
	Angle           float64 // Radians
	Type            int
	Skill1and2      bool
	Skill3          bool
	Skill4and5      bool
	Ambush          bool
	MultiplayerOnly bool
}

type binVertex struct {
	X, Y int16
}

type Vertex struct {
	X, Y float64
}

type binSide struct {
	XOffset       int16
	YOffset       int16
	UpperTexture  String8
	LowerTexture  String8
	MiddleTexture String8
	SectorNum     int16
}

type Side struct {
	XOffset           float64
	YOffset           float64
	UpperTextureName  string
	LowerTextureName  string
	MiddleTextureName string
	SectorNum         int
	UpperTexture      *Texture // nil when absent or unresolved
	LowerTexture      *Texture
	MiddleTexture     *Texture
	Sector            *Sector
}

// NoTexture is the sidedef texture name meaning "nothing here".
const NoTexture = "-"

// HasMiddle reports whether the side names a middle texture.
func (s *Side) HasMiddle() bool {
	return s.MiddleTextureName != NoTexture && s.MiddleTextureName != ""
}

type binLineSegment struct {
	V1        int16
	V2        int16
	Angle     uint16 // Full circle is 0 to 65535
	LineNum   int16
	Direction int16 // 0 - same as linedef, 1 - opposite to linedef
	Offset    int16 // Distance along line to start of segment
}

type LineSegment struct {
	V1Num   int
	V2Num   int
	Angle   float64 // Radians
	LineNum int
	IsSideL bool    // false - same as linedef, true - opposite to linedef
	Offset  float64 // Distance along line to start of segment

	V1          Vertex
	V2          Vertex
	Line        *Line
	Side        *Side   // The side facing the viewer of this segment
	FrontSector *Sector // Owning sector
	BackSector  *Sector // nil for single-sided lines
}

// OtherSide returns the line's side facing away from this segment, nil if none.
func (s *LineSegment) OtherSide() *Side {
	if s.IsSideL {
		return s.Line.SideR
	}
	return s.Line.SideL
}

type binSubSector struct {
	NumSegments      int16
	StartLineSegment int16
}

type SubSector struct {
	Index            int
	NumLineSegments  int
	StartLineSegment int

	LineSegments []LineSegment // Sub-slice of Level.LineSegments
	Sector       *Sector
}

type binSector struct {
	FloorHeight    int16
	CeilingHeight  int16
	FloorTexture   String8
	CeilingTexture String8
	LightLevel     int16
	Type           int16
	TagNum         int16
}

type Sector struct {
	Index              int
	FloorHeight        float64
	CeilingHeight      float64
	FloorTextureName   string
	CeilingTextureName string
	LightLevel         int
	Type               int
	TagNum             int

	FloorTexture   *Flat // nil when unresolved
	CeilingTexture *Flat
}

// readLevel decodes the lumps following the marker at markerIdx and links them.
// levelEnd returns the index of the last lump belonging to the level at markerIdx.
// Trailing lumps are only skipped when present, so a level cut short after SECTORS
// does not swallow the lumps after it.
func (w *Archive) levelEnd(markerIdx int) int {
	end := markerIdx + len(levelLumps)
	for _, name := range trailingLumps {
		if end+1 >= len(w.lumpInfos) || w.lumpInfos[end+1].Name != name {
			logger.Printf("Warn: map %v has no %v lump", w.lumpInfos[markerIdx].Name, name)
			break
		}
		end++
	}
	return end
}

func (w *Archive) readLevel(markerIdx int) (*Level, error) {
	name := w.lumpInfos[markerIdx].Name
	logger.Printf("Reading Level %v ...", name)

	lumps := make([][]byte, len(levelLumps))
	for i, expected := range levelLumps {
		idx := markerIdx + 1 + i
		if idx >= len(w.lumpInfos) {
			return nil, fmt.Errorf("%w: map %v: expected %v, found end of directory", ErrLumpOrder, name, expected)
		}
		lumpInfo := &w.lumpInfos[idx]
		if lumpInfo.Name != expected {
			return nil, fmt.Errorf("%w: map %v: expected %v, found %v", ErrLumpOrder, name, expected, lumpInfo.Name)
		}
		lumps[i] = w.lump(lumpInfo)
	}

	level := &Level{Name: name}
	var err error
	if level.Things, err = readThings(lumps[0]); err != nil {
		return nil, fmt.Errorf("map %v: %w", name, err)
	}
	if level.Lines, err = readLines(lumps[1]); err != nil {
		return nil, fmt.Errorf("map %v: %w", name, err)
	}
	if level.Sides, err = readSides(lumps[2]); err != nil {
		return nil, fmt.Errorf("map %v: %w", name, err)
	}
	if level.Vertexes, err = readVertexes(lumps[3]); err != nil {
		return nil, fmt.Errorf("map %v: %w", name, err)
	}
	if level.LineSegments, err = readLineSegments(lumps[4]); err != nil {
		return nil, fmt.Errorf("map %v: %w", name, err)
	}
	if level.SubSectors, err = readSubSectors(lumps[5]); err != nil {
		return nil, fmt.Errorf("map %v: %w", name, err)
	}
	if level.Nodes, err = readNodes(lumps[6]); err != nil {
		return nil, fmt.Errorf("map %v: %w", name, err)
	}
	if level.Sectors, err = readSectors(lumps[7]); err != nil {
		return nil, fmt.Errorf("map %v: %w", name, err)
	}

	// Set references
	if err := level.setReferences(); err != nil {
		return nil, fmt.Errorf("map %v: %w", name, err)
	}
	return level, nil
}

// readRecords decodes as many fixed-size records as the lump holds.
func readRecords[T any](lump []byte) ([]T, error) {
	var zero T
	count := len(lump) / binary.Size(zero)
	records := make([]T, count)
	if err := binary.Read(bytes.NewReader(lump), binary.LittleEndian, records); err != nil {
		return nil, err
	}
	return records, nil
}

func readThings(lump []byte) ([]Thing, error) {
	logger.Println("Reading Things ...")
	binThings, err := readRecords[binThing](lump)
	if err != nil {
		return nil, err
	}

	// Translate to canonical
	things := make([]Thing, len(binThings))
	for i, t := range binThings {
		things[i] = Thing{
			X:               float64(t.X),
			Y:               float64(t.Y),
			Angle:           DegreesToRadians(t.Angle),
			Type:            int(t.Type),
			Skill1and2:      t.Options&1 != 0,
			Skill3:          t.Options&2 != 0,
			Skill4and5:      t.Options&4 != 0,
			Ambush:          t.Options&8 != 0,
			MultiplayerOnly: t.Options&0x10 != 0,
		}
	}
	logger.Printf("Read %v things", len(things))
	return things, nil
}

func readLines(lump []byte) ([]Line, error) {
	logger.Println("Reading Lines ...")
	binLines, err := readRecords[binLine](lump)
	if err != nil {
		return nil, err
	}
	lines := make([]Line, len(binLines))
	for i, line := range binLines {
		lines[i] = newLine(line)
	}
	logger.Printf("Read %v lines", len(lines))
	return lines, nil
}

func readSides(lump []byte) ([]Side, error) {
	logger.Println("Reading Sides ...")
	binSides, err := readRecords[binSide](lump)
	if err != nil {
		return nil, err
	}
	sides := make([]Side, len(binSides))
	for i, s := range binSides {
		sides[i] = Side{
			XOffset:           float64(s.XOffset),
			YOffset:           float64(s.YOffset),
			UpperTextureName:  s.UpperTexture.String(),
			MiddleTextureName: s.MiddleTexture.String(),
			LowerTextureName:  s.LowerTexture.String(),
			SectorNum:         int(s.SectorNum),
		}
	}
	logger.Printf("Read %v sides", len(sides))
	return sides, nil
}

func readVertexes(lump []byte) ([]Vertex, error) {
	logger.Println("Reading Vertexes ...")
	binVertexes, err := readRecords[binVertex](lump)
	if err != nil {
		return nil, err
	}
	vertexes := make([]Vertex, len(binVertexes))
	for i, v := range binVertexes {
		vertexes[i] = Vertex{X: float64(v.X), Y: float64(v.Y)}
	}
	logger.Printf("Read %v vertexes", len(vertexes))
	return vertexes, nil
}

func readLineSegments(lump []byte) ([]LineSegment, error) {
	logger.Println("Reading Line Segments ...")
	binSegments, err := readRecords[binLineSegment](lump)
	if err != nil {
		return nil, err
	}
	segments := make([]LineSegment, len(binSegments))
	for i, s := range binSegments {
		segments[i] = LineSegment{
			V1Num:   int(s.V1),
			V2Num:   int(s.V2),
			Angle:   bamToRadians(s.Angle),
			LineNum: int(s.LineNum),
			IsSideL: s.Direction == 1,
			Offset:  float64(s.Offset),
		}
	}
	logger.Printf("Read %v line segments", len(segments))
	return segments, nil
}

func readSubSectors(lump []byte) ([]SubSector, error) {
	logger.Println("Reading Sub Sectors ...")
	binSubSectors, err := readRecords[binSubSector](lump)
	if err != nil {
		return nil, err
	}
	subSectors := make([]SubSector, len(binSubSectors))
	for i, s := range binSubSectors {
		subSectors[i] = SubSector{
			Index:            i,
			NumLineSegments:  int(s.NumSegments),
			StartLineSegment: int(s.StartLineSegment),
		}
	}
	logger.Printf("Read %v sub sectors", len(subSectors))
	return subSectors, nil
}

func readSectors(lump []byte) ([]Sector, error) {
	logger.Println("Reading Sectors ...")
	binSectors, err := readRecords[binSector](lump)
	if err != nil {
		return nil, err
	}
	sectors := make([]Sector, len(binSectors))
	for i, s := range binSectors {
		sectors[i] = Sector{
			Index:              i,
			FloorHeight:        float64(s.FloorHeight),
			CeilingHeight:      float64(s.CeilingHeight),
			FloorTextureName:   s.FloorTexture.String(),
			CeilingTextureName: s.CeilingTexture.String(),
			LightLevel:         int(s.LightLevel),
			Type:               int(s.Type),
			TagNum:             int(s.TagNum),
		}
	}
	logger.Printf("Read %v Sectors", len(sectors))
	return sectors, nil
}

func badRef(what string, i, n int) error {
	return fmt.Errorf("%w: %v %v of %v", ErrBadReference, what, i, n)
}

// setReferences adds pointers between level records and assigns each segment its sector.
func (l *Level) setReferences() error {
	logger.Println("Setting references ...")

	// Sides
	for i := range l.Sides {
		s := &l.Sides[i]
		if s.SectorNum < 0 || s.SectorNum >= len(l.Sectors) {
			return badRef("sidedef sector", s.SectorNum, len(l.Sectors))
		}
		s.Sector = &l.Sectors[s.SectorNum]
	}

	// Lines - dependent on Sides
	for i := range l.Lines {
		li := &l.Lines[i] // Point to element
		if li.V1Num < 0 || li.V1Num >= len(l.Vertexes) || li.V2Num < 0 || li.V2Num >= len(l.Vertexes) {
			return badRef("linedef vertex", max(li.V1Num, li.V2Num), len(l.Vertexes))
		}
		li.V1 = l.Vertexes[li.V1Num]
		li.V2 = l.Vertexes[li.V2Num]
		li.DX = li.V2.X - li.V1.X
		li.DY = li.V2.Y - li.V1.Y
		if li.SideRNum >= len(l.Sides) || li.SideLNum >= len(l.Sides) {
			return badRef("linedef sidedef", max(li.SideRNum, li.SideLNum), len(l.Sides))
		}
		if li.SideRNum >= 0 { // -1 means no Side
			li.SideR = &l.Sides[li.SideRNum]
			li.FrontSector = li.SideR.Sector
		}
		if li.SideLNum >= 0 {
			li.SideL = &l.Sides[li.SideLNum]
			li.BackSector = li.SideL.Sector
		}
	}

	// Line Segments
	for i := range l.LineSegments {
		s := &l.LineSegments[i] // Point to element
		if s.V1Num < 0 || s.V1Num >= len(l.Vertexes) || s.V2Num < 0 || s.V2Num >= len(l.Vertexes) {
			return badRef("seg vertex", max(s.V1Num, s.V2Num), len(l.Vertexes))
		}
		if s.LineNum < 0 || s.LineNum >= len(l.Lines) {
			return badRef("seg linedef", s.LineNum, len(l.Lines))
		}
		s.V1 = l.Vertexes[s.V1Num]
		s.V2 = l.Vertexes[s.V2Num]
		s.Line = &l.Lines[s.LineNum]
		if s.IsSideL {
			s.Side = s.Line.SideL
		} else {
			s.Side = s.Line.SideR
		}
		if s.Side == nil {
			return fmt.Errorf("%w: seg %v uses a missing side of linedef %v", ErrBadReference, i, s.LineNum)
		}
		s.FrontSector = s.Side.Sector
		if other := s.OtherSide(); other != nil {
			s.BackSector = other.Sector
		}
	}

	// SubSectors
	next := 0
	for i := range l.SubSectors {
		s := &l.SubSectors[i] // Point to element
		start, end := s.StartLineSegment, s.StartLineSegment+s.NumLineSegments
		if s.NumLineSegments <= 0 || start < 0 || end > len(l.LineSegments) {
			return badRef("subsector seg range end", end, len(l.LineSegments))
		}
		if start != next {
			logger.Printf("Warn: subsector %v starts at seg %v, expected %v", i, start, next)
		}
		next = end
		s.LineSegments = l.LineSegments[start:end:end]
		s.Sector = s.LineSegments[0].FrontSector
	}

	// Nodes
	for i := range l.Nodes {
		n := &l.Nodes[i] // Point to element
		var err error
		if n.ChildR, err = l.child(i, n.ChildNumR); err != nil {
			return err
		}
		if n.ChildL, err = l.child(i, n.ChildNumL); err != nil {
			return err
		}
	}

	// Root is always the last node
	switch {
	case len(l.Nodes) > 0:
		l.Root = &l.Nodes[len(l.Nodes)-1]
	case len(l.SubSectors) > 0:
		l.Root = &l.SubSectors[0]
	default:
		return fmt.Errorf("%w: level has no subsectors", ErrBadReference)
	}
	return nil
}

// child resolves a NODES child reference of node parent to a node or subsector. Child
// nodes always precede their parent, so the tree has no cycles.
func (l *Level) child(parent, raw int) (BSPMember, error) {
	num, isSubSector := decodeChild(raw)
	if isSubSector {
		if num >= len(l.SubSectors) {
			return nil, badRef("node subsector", num, len(l.SubSectors))
		}
		return &l.SubSectors[num], nil
	}
	if num >= parent {
		return nil, fmt.Errorf("%w: node %v child %v is not an earlier node", ErrBadReference, parent, num)
	}
	return &l.Nodes[num], nil
}

// bindLevelAssets points sides at stitched textures and sectors at flats.
func (w *Archive) bindLevelAssets(l *Level) {
	texture := func(name string) *Texture {
		if name == NoTexture || name == "" {
			return nil
		}
		t, ok := w.Texture(name)
		if !ok {
			logger.Printf("Warn: %v references missing texture %v", l.Name, name)
		}
		return t
	}
	for i := range l.Sides {
		s := &l.Sides[i]
		s.UpperTexture = texture(s.UpperTextureName)
		s.MiddleTexture = texture(s.MiddleTextureName)
		s.LowerTexture = texture(s.LowerTextureName)
	}
	for i := range l.Sectors {
		s := &l.Sectors[i]
		s.FloorTexture = w.Flats[strings.ToUpper(s.FloorTextureName)]
		s.CeilingTexture = w.Flats[strings.ToUpper(s.CeilingTextureName)]
	}
}
