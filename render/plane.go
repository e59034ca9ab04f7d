package render

import (
	"image"
	"math"
)

// drawPlane fills a visplane row by row. Along a row the plane's depth is constant, so
// the world position advances by a fixed step per column.
func (r *Renderer) drawPlane(p *Visplane, v *view, dst *image.RGBA) {
	if p.Flat == nil {
		return
	}
	minRow, maxRow, ok := p.Rows()
	if !ok {
		return
	}

	dz := v.z - p.Height
	px := (float64(p.XStart) + 0.5 - r.proj.centerX) / r.proj.projX
	for y := minRow; y <= maxRow; y++ {
		dy := float64(y) + 0.5 - r.proj.centerY
		if dy == 0 {
			continue
		}
		z := dz * r.proj.projY / dy // Depth along the view direction
		if z <= 0 {
			continue
		}

		wx := v.x + z*(v.fwdX+v.rightX*px)
		wy := v.y + z*(v.fwdY+v.rightY*px)
		stepX := z / r.proj.projX * v.rightX
		stepY := z / r.proj.projX * v.rightY
		for x := p.XStart; x <= p.XEnd; x, wx, wy = x+1, wx+stepX, wy+stepY {
			if y < p.Top[x] || y > p.Bottom[x] {
				continue
			}
			r.plot(dst, x, y, p.Flat.At(int(math.Floor(wx)), int(math.Floor(wy))))
		}
	}
}
