package render

import (
	"image"
	"math"

	"github.com/stuarthighley/doomview/wad"
)

const (
	minScale = 1.0 / 65536
	maxScale = 64
	minDist  = 1.0 / 256
	minCos   = 1e-6
)

// wall holds what stays constant along one seg during a frame. Heights are relative
// to the eye.
type wall struct {
	seg    *wad.LineSegment
	solid  bool
	normal float64 // Seg angle plus 90 degrees, pointing away from the viewer
	dist   float64 // Perpendicular distance from the eye to the seg's line
	uBase  float64 // Texture u of the eye's projection onto the seg's line

	frontCeil, frontFloor float64
	backCeil, backFloor   float64
	ceilingPlane          bool
	floorPlane            bool

	mid, upper, lower          *wad.Texture
	midTop, upperTop, lowerTop float64 // Texture row 0, relative to the eye
	hasUpper, hasLower         bool
}

// drawSeg projects a seg to screen columns, clips it against the solid spans and draws
// the uncovered pieces. Solid segs add their whole column range to the span list.
func (r *Renderer) drawSeg(f *Frame, v *view, seg *wad.LineSegment, dst *image.RGBA) {
	f.stats.SegsConsidered++

	a1 := normalize(math.Atan2(seg.V1.Y-v.y, seg.V1.X-v.x) - v.yaw)
	a2 := normalize(math.Atan2(seg.V2.Y-v.y, seg.V2.X-v.x) - v.yaw)

	// The start vertex must appear left of the end vertex
	span := unwrap(a1 - a2)
	if span == 0 || span >= math.Pi {
		return
	}

	// Clip to the field of view
	half := r.proj.halfFOV
	if t := unwrap(a1 + half); t > 2*half {
		if t-2*half >= span {
			return
		}
		a1 = half
	}
	if t := unwrap(half - a2); t > 2*half {
		if t-2*half >= span {
			return
		}
		a2 = -half
	}

	// A column is drawn when its centre falls inside the projected range
	x1 := int(math.Ceil(r.proj.pixel(a1) - 0.5))
	x2 := int(math.Ceil(r.proj.pixel(a2)-0.5)) - 1
	if x1 > x2 || f.spans.Covers(x1, x2) {
		return
	}

	front, back := seg.FrontSector, seg.BackSector
	solid := back == nil ||
		back.CeilingHeight <= front.FloorHeight ||
		back.FloorHeight >= front.CeilingHeight ||
		seg.Side.HasMiddle()
	if !solid && sameSurfaces(front, back) {
		return
	}

	f.pieces = f.spans.Clip(x1, x2, f.pieces[:0])
	if solid {
		f.spans.Add(x1, x2)
	}
	f.stats.SegsDrawn++

	w := newWall(v, seg, solid)
	for _, p := range f.pieces {
		r.drawWall(f, v, &w, p.X1, p.X2, dst)
	}
}

// sameSurfaces reports whether a portal between two sectors changes nothing on screen.
func sameSurfaces(a, b *wad.Sector) bool {
	return a.FloorHeight == b.FloorHeight &&
		a.CeilingHeight == b.CeilingHeight &&
		a.FloorTextureName == b.FloorTextureName &&
		a.CeilingTextureName == b.CeilingTextureName
}

func newWall(v *view, seg *wad.LineSegment, solid bool) wall {
	w := wall{
		seg:    seg,
		solid:  solid,
		normal: seg.Angle + math.Pi/2,
	}
	dx, dy := seg.V1.X-v.x, seg.V1.Y-v.y
	w.dist = max(math.Hypot(dx, dy)*math.Cos(math.Atan2(dy, dx)-w.normal), minDist)
	sin, cos := math.Sincos(seg.Angle)
	w.uBase = seg.Offset + seg.Side.XOffset - (dx*cos + dy*sin)

	front, side, line := seg.FrontSector, seg.Side, seg.Line
	w.frontCeil = front.CeilingHeight - v.z
	w.frontFloor = front.FloorHeight - v.z
	// Each plane is recorded only while it faces the eye; inside the sector both are
	w.ceilingPlane = w.frontCeil > 0
	w.floorPlane = w.frontFloor < 0

	if solid {
		w.mid = side.MiddleTexture
		w.midTop = w.frontCeil
		if line.LowerTextureUnpegged && w.mid != nil {
			w.midTop = w.frontFloor + float64(w.mid.Height)
		}
		w.midTop += side.YOffset
		return w
	}

	back := seg.BackSector
	w.backCeil = back.CeilingHeight - v.z
	w.backFloor = back.FloorHeight - v.z
	w.hasUpper = w.backCeil < w.frontCeil
	w.hasLower = w.backFloor > w.frontFloor
	if w.hasUpper {
		w.upper = side.UpperTexture
		w.upperTop = w.frontCeil
		if !line.UpperTextureUnpegged && w.upper != nil {
			w.upperTop = w.backCeil + float64(w.upper.Height)
		}
		w.upperTop += side.YOffset
	}
	if w.hasLower {
		w.lower = side.LowerTexture
		w.lowerTop = w.backFloor
		if line.LowerTextureUnpegged {
			w.lowerTop = w.frontCeil
		}
		w.lowerTop += side.YOffset
	}
	return w
}

// scaleAt returns the wall's scale, the inverse of its depth, and its texture u at
// the centre of column x.
func (r *Renderer) scaleAt(v *view, w *wall, x int) (scale, u float64) {
	psi := r.proj.ColumnToAngle(x)
	phi := v.yaw + psi
	dist := w.dist / max(math.Cos(phi-w.normal), minCos) // Along the ray
	scale = clamp(1/(dist*math.Cos(psi)), minScale, maxScale)
	u = w.uBase + dist*math.Cos(phi-w.seg.Angle)
	return scale, u
}

// drawWall rasterizes columns [x1, x2] of a wall. Scale and u times scale are both
// linear in screen x, so they are interpolated from the end columns.
func (r *Renderer) drawWall(f *Frame, v *view, w *wall, x1, x2 int, dst *image.RGBA) {
	s1, u1 := r.scaleAt(v, w, x1)
	s2, u2 := r.scaleAt(v, w, x2)
	var ds, dus float64
	if x2 > x1 {
		ds = (s2 - s1) / float64(x2-x1)
		dus = (u2*s2 - u1*s1) / float64(x2-x1)
	}

	switch {
	case w.solid:
		f.stats.MiddleBands++
	default:
		if w.hasUpper {
			f.stats.UpperBands++
		}
		if w.hasLower {
			f.stats.LowerBands++
		}
	}

	front := w.seg.FrontSector
	cy := r.proj.centerY
	var ceiling, floor *Visplane
	s, us := s1, u1*s1
	for x := x1; x <= x2; x, s, us = x+1, s+ds, us+dus {
		top, bottom := f.top[x], f.bottom[x]
		if top > bottom {
			continue
		}
		u := us / s
		ps := s * r.proj.projY // Pixels per world unit
		cFirst := r.proj.row(cy - w.frontCeil*ps)
		fLast := r.proj.row(cy-w.frontFloor*ps) - 1

		// Open regions above and below the wall
		if ct, cb := top, min(cFirst-1, bottom); w.ceilingPlane && ct <= cb {
			if ceiling == nil {
				ceiling = f.AddRegion(front.CeilingHeight, front.CeilingTextureName, front.CeilingTexture, x, x2)
			}
			ceiling.Top[x], ceiling.Bottom[x] = ct, cb
		}
		if ft, fb := max(fLast+1, top), bottom; w.floorPlane && ft <= fb {
			if floor == nil {
				floor = f.AddRegion(front.FloorHeight, front.FloorTextureName, front.FloorTexture, x, x2)
			}
			floor.Top[x], floor.Bottom[x] = ft, fb
		}

		if w.solid {
			r.drawColumn(dst, x, max(cFirst, top), min(fLast, bottom), w.mid, u, w.midTop, ps)
			f.close(x)
			continue
		}

		newTop := max(top, cFirst)
		if w.hasUpper {
			bcFirst := r.proj.row(cy - w.backCeil*ps)
			r.drawColumn(dst, x, newTop, min(bcFirst-1, bottom), w.upper, u, w.upperTop, ps)
			newTop = max(newTop, bcFirst)
		}
		newBottom := min(bottom, fLast)
		if w.hasLower {
			bfLast := r.proj.row(cy-w.backFloor*ps) - 1
			r.drawColumn(dst, x, max(bfLast+1, newTop), newBottom, w.lower, u, w.lowerTop, ps)
			newBottom = min(newBottom, bfLast)
		}
		f.top[x], f.bottom[x] = newTop, newBottom
	}
}

// drawColumn draws rows [y1, y2] of column x from texture column u. texTop is the
// eye-relative height of texture row 0 and ps the wall's pixels per world unit.
func (r *Renderer) drawColumn(dst *image.RGBA, x, y1, y2 int, tex *wad.Texture, u, texTop, ps float64) {
	if tex == nil || tex.Picture == nil || y1 > y2 {
		return
	}
	col := int(math.Floor(u))
	step := 1 / ps
	t := texTop + (float64(y1)+0.5-r.proj.centerY)*step
	for y := y1; y <= y2; y, t = y+1, t+step {
		r.plot(dst, x, y, tex.At(col, int(math.Floor(t))))
	}
}
