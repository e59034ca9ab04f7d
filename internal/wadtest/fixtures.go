package wadtest

// Flat and texture palette indices used by the fixtures.
const (
	Floor0Index  = 100
	Floor1Index  = 110
	CeilingIndex = 120
	StepIndex    = 200
)

// WallPixel is the WALL texture's pixel at (x, y).
func WallPixel(x, y int) byte {
	return byte(16 + (x+y)%64)
}

// AddAssets appends a palette, patches, textures and flats:
// textures WALL (64x64), STEP (32x16) and HOLE (16x16, made of a patch that is not in
// the archive); flats FLOOR0, FLOOR1 and CEIL.
func AddAssets(b *Builder) *Builder {
	b.Add("PLAYPAL", GrayPalette())
	b.Add("TEXTURE1", Textures(
		TextureDef{Name: "WALL", Width: 64, Height: 64, Patches: []TexturePatch{{Patch: 0}}},
		TextureDef{Name: "STEP", Width: 32, Height: 16, Patches: []TexturePatch{{Patch: 1}}},
		TextureDef{Name: "HOLE", Width: 16, Height: 16, Patches: []TexturePatch{{Patch: 2}}},
	))
	b.Add("PNAMES", PNames("WALLP", "STEPP", "MISSING"))
	b.Add("P_START", nil)
	b.Add("P1_START", nil)
	b.Add("WALLP", Picture(64, 64, WallPixel))
	b.Add("STEPP", Picture(32, 16, func(x, y int) byte { return StepIndex }))
	b.Add("P1_END", nil)
	b.Add("P_END", nil)
	b.Add("F_START", nil)
	b.Add("FLOOR0", Flat(Floor0Index))
	b.Add("FLOOR1", Flat(Floor1Index))
	b.Add("CEIL", Flat(CeilingIndex))
	b.Add("F_END", nil)
	return b
}

// SquareRoom is one 128x128 sector, floor 0 and ceiling 128, enclosed by four
// single-sided WALL lines, with no nodes. Player 1 starts in the centre facing north.
func SquareRoom() *Map {
	return &Map{
		Things:   []Thing{{X: 64, Y: 64, Angle: 90, Type: 1}},
		Vertexes: []Vertex{{0, 0}, {0, 128}, {128, 128}, {128, 0}},
		Lines: []Line{
			{V1: 0, V2: 1, Front: 0, Back: -1},
			{V1: 1, V2: 2, Front: 1, Back: -1},
			{V1: 2, V2: 3, Front: 2, Back: -1},
			{V1: 3, V2: 0, Front: 3, Back: -1},
		},
		Sides: []Side{
			{Upper: "-", Lower: "-", Middle: "WALL"},
			{Upper: "-", Lower: "-", Middle: "WALL"},
			{Upper: "-", Lower: "-", Middle: "WALL"},
			{Upper: "-", Lower: "-", Middle: "WALL"},
		},
		Segs: []Seg{
			{V1: 0, V2: 1, Line: 0},
			{V1: 1, V2: 2, Line: 1},
			{V1: 2, V2: 3, Line: 2},
			{V1: 3, V2: 0, Line: 3},
		},
		SubSectors: []SubSector{{Count: 4, First: 0}},
		Sectors:    []Sector{{Floor: 0, Ceiling: 128, FloorTex: "FLOOR0", CeilingTex: "CEIL"}},
	}
}

// StepRooms is two 128x128 sectors side by side, joined at x=128 by a two-sided line.
// Sector 0 (west) has floor 0; sector 1 (east) has floor backFloor; both have ceiling 128.
// One node splits them along x=128: its right child is sector 1's subsector.
func StepRooms(backFloor int, backFloorTex string) *Map {
	return &Map{
		Things:   []Thing{{X: 32, Y: 64, Angle: 0, Type: 1}},
		Vertexes: []Vertex{{0, 0}, {0, 128}, {128, 128}, {128, 0}, {256, 128}, {256, 0}},
		Lines: []Line{
			{V1: 0, V2: 1, Front: 0, Back: -1},
			{V1: 1, V2: 2, Front: 1, Back: -1},
			{V1: 2, V2: 3, Flags: 0x0004, Front: 2, Back: 3},
			{V1: 3, V2: 0, Front: 4, Back: -1},
			{V1: 2, V2: 4, Front: 5, Back: -1},
			{V1: 4, V2: 5, Front: 6, Back: -1},
			{V1: 5, V2: 3, Front: 7, Back: -1},
		},
		Sides: []Side{
			{Upper: "-", Lower: "-", Middle: "WALL", Sector: 0},
			{Upper: "-", Lower: "-", Middle: "WALL", Sector: 0},
			{Upper: "-", Lower: "STEP", Middle: "-", Sector: 0},
			{Upper: "-", Lower: "-", Middle: "-", Sector: 1},
			{Upper: "-", Lower: "-", Middle: "WALL", Sector: 0},
			{Upper: "-", Lower: "-", Middle: "WALL", Sector: 1},
			{Upper: "-", Lower: "-", Middle: "WALL", Sector: 1},
			{Upper: "-", Lower: "-", Middle: "WALL", Sector: 1},
		},
		Segs: []Seg{
			{V1: 0, V2: 1, Line: 0},
			{V1: 1, V2: 2, Line: 1},
			{V1: 2, V2: 3, Line: 2},
			{V1: 3, V2: 0, Line: 3},
			{V1: 2, V2: 4, Line: 4},
			{V1: 4, V2: 5, Line: 5},
			{V1: 5, V2: 3, Line: 6},
			{V1: 3, V2: 2, Line: 2, Side: 1},
		},
		SubSectors: []SubSector{{Count: 4, First: 0}, {Count: 4, First: 4}},
		Nodes: []Node{
			{X: 128, Y: 0, DX: 0, DY: 128, Right: SubSectorRef(1), Left: SubSectorRef(0)},
		},
		Sectors: []Sector{
			{Floor: 0, Ceiling: 128, FloorTex: "FLOOR0", CeilingTex: "CEIL"},
			{Floor: backFloor, Ceiling: 128, FloorTex: backFloorTex, CeilingTex: "CEIL"},
		},
	}
}

// Archive returns a complete archive holding the assets and the given maps, named E1M1, E1M2, ...
func Archive(maps ...*Map) []byte {
	b := New()
	AddAssets(b)
	for i, m := range maps {
		m.AddTo(b, "E1M"+string(rune('1'+i)))
	}
	return b.Bytes()
}
