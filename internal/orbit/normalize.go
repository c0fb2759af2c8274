package orbit

import "github.com/chewxy/math32"

// Normalize maps every raw point into [-scale, scale] on both axes and, when inner > 0,
// pushes points closer to the center than inner*scale outward.
//
// Degenerate extents or outer == 0 produce Inf/NaN coordinates; they are left in place.
func Normalize(buffers [][]float32, ext Extents, scale, inner, outer float32) {
	scaleX := 2 * scale / (ext.XMax - ext.XMin)
	scaleY := 2 * scale / (ext.YMax - ext.YMin)
	for _, buf := range buffers {
		for i := 0; i+1 < len(buf); i += 2 {
			x := float32(scaleX*(buf[i]-ext.XMin)) - scale
			y := float32(scaleY*(buf[i+1]-ext.YMin)) - scale
			if inner > 0 {
				x, y = Warp(x, y, scale, inner, outer)
			}
			buf[i], buf[i+1] = x, y
		}
	}
}

// Warp applies the tunnel-mouth displacement to one normalized point.
// Points at or beyond inner*scale from the origin are returned unchanged.
func Warp(x, y, scale, inner, outer float32) (float32, float32) {
	dist := math32.Hypot(x, y) / scale
	if !(dist < inner) {
		return x, y
	}
	scaling := dist / inner
	o := scaling / outer
	return x/scaling + float32(x*o), y/scaling + float32(y*o)
}
