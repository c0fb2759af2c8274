package tunnel

import (
	"image"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
)

// Channel indices for readability.
const (
	ChR = 0
	ChG = 1
	ChB = 2
)

// Raster accumulates point hits into a flat RGB buffer before tone mapping.
type Raster struct {
	W, H int
	Buf  []float64 // flat: (y*W + x)*3 + c
}

func NewRaster(w, h int) *Raster {
	if w <= 0 || h <= 0 {
		panic("raster size must be positive")
	}
	return &Raster{W: w, H: h, Buf: make([]float64, w*h*3)}
}

func (r *Raster) idx(x, y, c int) int { return (y*r.W+x)*3 + c }

// Reset clears the accumulation buffer in place.
func (r *Raster) Reset() {
	for i := range r.Buf {
		r.Buf[i] = 0
	}
}

// Palette returns one evenly spaced hue per subset.
func Palette(n int) []colorful.Color {
	out := make([]colorful.Color, n)
	for i := range out {
		out[i] = colorful.Hsv(360*float64(i)/float64(max(n, 1)), Saturation, Value)
	}
	return out
}

// Plot deposits every finite point of the level. Coordinates in [-scale/zoom, scale/zoom]
// cover the raster; anything outside is dropped. Y grows upward.
func (r *Raster) Plot(buffers [][]float32, scale, zoom float32, pal []colorful.Color) int {
	half := float64(scale / zoom)
	sx := float64(r.W) / (2 * half)
	sy := float64(r.H) / (2 * half)
	plotted := 0
	for s, buf := range buffers {
		c := pal[s%len(pal)]
		for i := 0; i+1 < len(buf); i += 2 {
			if !isFinite(buf[i]) || !isFinite(buf[i+1]) {
				continue
			}
			px := int(math.Floor((float64(buf[i]) + half) * sx))
			py := r.H - 1 - int(math.Floor((float64(buf[i+1])+half)*sy))
			if px < 0 || px >= r.W || py < 0 || py >= r.H {
				continue
			}
			base := r.idx(px, py, ChR)
			r.Buf[base+ChR] += c.R
			r.Buf[base+ChG] += c.G
			r.Buf[base+ChB] += c.B
			plotted++
		}
	}
	return plotted
}

func (r *Raster) maxChannel() float64 {
	maxv := 0.0
	for _, v := range r.Buf {
		if v > maxv {
			maxv = v
		}
	}
	if maxv == 0 {
		maxv = 1 // avoid div-by-zero, will be black anyway
	}
	return maxv
}

// Image tone-maps the buffer into a 16-bit image: peak normalization and gamma.
func (r *Raster) Image(gamma float64) *image.NRGBA64 {
	scale := 1.0 / r.maxChannel()
	toU16 := func(v float64) uint16 {
		if v <= 0 {
			return 0
		}
		n := v * scale
		if n > 1 {
			n = 1
		}
		if gamma != 1 {
			n = math.Pow(n, 1.0/gamma)
		}
		return uint16(math.Round(n * 65535))
	}
	img := image.NewNRGBA64(image.Rect(0, 0, r.W, r.H))
	const pxBytes = 8
	for y := 0; y < r.H; y++ {
		rowOff := y * img.Stride
		for x := 0; x < r.W; x++ {
			base := r.idx(x, y, ChR)
			p := rowOff + x*pxBytes
			for c := 0; c < 3; c++ {
				v := toU16(r.Buf[base+c])
				img.Pix[p+2*c] = uint8(v >> 8)
				img.Pix[p+2*c+1] = uint8(v)
			}
			img.Pix[p+6] = 0xFF
			img.Pix[p+7] = 0xFF
		}
	}
	return img
}

// Downsample scales a supersampled frame to w×h.
func Downsample(src image.Image, w, h int) *image.NRGBA64 {
	dst := image.NewNRGBA64(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// RenderLevel rasterizes one level at cfg size, supersampled by cfg.Supersample.
func RenderLevel(cfg *Config, lvl Level) *image.NRGBA64 {
	ss := max(cfg.Supersample, 1)
	r := NewRaster(cfg.Width*ss, cfg.Height*ss)
	n := r.Plot(lvl.Buffers, cfg.Level.Scale, cfg.Zoom, Palette(max(len(lvl.Buffers), 1)))
	DebugLog("Level %d: plotted %d points, branch=%s", lvl.ID, n, lvl.Stats.Coefficients.Branch)
	img := r.Image(cfg.Gamma)
	if ss == 1 {
		return img
	}
	return Downsample(img, cfg.Width, cfg.Height)
}
