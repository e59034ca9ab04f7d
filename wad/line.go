package wad

type binLine struct {
	VertexStart, VertexEnd int16
	Flags                  int16
	Type                   int16
	SectorTag              int16
	SideR, SideL           int16
}

// Linedef flag bits
const (
	LineBlocking      = 0x0001
	LineBlockMonsters = 0x0002
	LineTwoSided      = 0x0004
	LineUpperUnpegged = 0x0008
	LineLowerUnpegged = 0x0010
	LineSecret        = 0x0020
	LineBlockSound    = 0x0040
	LineNeverMap      = 0x0080
	LineAlwaysMap     = 0x0100
)

type Line struct {
	V1Num                  int
	V2Num                  int
	BlockPlayerAndMonsters bool
	BlockMonsters          bool
	TwoSided               bool
	UpperTextureUnpegged   bool
	LowerTextureUnpegged   bool
	Secret                 bool
	BlocksSound            bool
	NeverMap               bool
	AlwaysMap              bool
	Special                int
	SectorTagNum           int
	SideRNum, SideLNum     int // -1 means no Side

	// References
	V1, V2                  Vertex
	DX, DY                  float64 // Precalculated V2-V1
	SideR, SideL            *Side   // SideL is nil for single-sided lines
	FrontSector, BackSector *Sector
}

// IsSingleSided reports whether the line has no back side and so blocks all sight.
func (l *Line) IsSingleSided() bool {
	return l.SideL == nil
}

func newLine(b binLine) Line {
	flags := int(b.Flags)
	return Line{
		V1Num:                  int(b.VertexStart),
		V2Num:                  int(b.VertexEnd),
		BlockPlayerAndMonsters: flags&LineBlocking != 0,
		BlockMonsters:          flags&LineBlockMonsters != 0,
		TwoSided:               flags&LineTwoSided != 0,
		UpperTextureUnpegged:   flags&LineUpperUnpegged != 0,
		LowerTextureUnpegged:   flags&LineLowerUnpegged != 0,
		Secret:                 flags&LineSecret != 0,
		BlocksSound:            flags&LineBlockSound != 0,
		NeverMap:               flags&LineNeverMap != 0,
		AlwaysMap:              flags&LineAlwaysMap != 0,
		Special:                int(b.Type),
		SectorTagNum:           int(b.SectorTag),
		SideRNum:               int(b.SideR),
		SideLNum:               int(b.SideL),
	}
}
