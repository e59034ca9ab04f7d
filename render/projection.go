package render

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/stuarthighley/doomview/wad"
)

// Projection maps view-relative angles to screen columns and world heights to rows.
// Angles are radians, positive to the left of the view direction.
type Projection struct {
	Width, Height    int
	halfFOV          float64
	tanHalf          float64
	projX, projY     float64 // pixels per unit of tangent
	centerX, centerY float64
}

func NewProjection(cfg Config) Projection {
	half := wad.DegreesToRadians(cfg.HFOV) / 2
	p := Projection{
		Width:   cfg.Width,
		Height:  cfg.Height,
		halfFOV: half,
		tanHalf: math.Tan(half),
		centerX: float64(cfg.Width) / 2,
		centerY: float64(cfg.Height) / 2,
	}
	p.projX = p.centerX / p.tanHalf
	p.projY = p.centerY / math.Tan(wad.DegreesToRadians(cfg.VFOV)/2)
	return p
}

// pixel returns the continuous screen position of angle a, in [0, Width].
func (p *Projection) pixel(a float64) float64 {
	a = clamp(a, -p.halfFOV, p.halfFOV)
	return (-math.Tan(a)/p.tanHalf/2 + 0.5) * float64(p.Width)
}

// AngleToColumn returns the column containing the ray at angle a. Angles outside the
// field of view clamp to the edge columns.
func (p *Projection) AngleToColumn(a float64) int {
	return clamp(int(math.Floor(p.pixel(a))), 0, p.Width-1)
}

// ColumnToAngle returns the angle of the ray through the centre of column x.
func (p *Projection) ColumnToAngle(x int) float64 {
	x = clamp(x, 0, p.Width-1)
	return math.Atan(-(float64(x) + 0.5 - p.centerX) / p.projX)
}

// row converts a continuous screen y to the first row at or below it, clamped to [-1, Height].
func (p *Projection) row(y float64) int {
	return int(math.Ceil(clamp(y, -1, float64(p.Height))))
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// normalize wraps an angle into (-π, π].
func normalize(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// unwrap wraps an angle into [0, 2π).
func unwrap(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
