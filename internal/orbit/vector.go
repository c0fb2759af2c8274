package orbit

import (
	"math"

	"github.com/chewxy/math32"
)

// Vector is the flat configuration block shared with the host.
// See the Slot* constants for the meaning of each entry.
type Vector [VectorLen]float32

// Range is a closed interval a coefficient is drawn from.
type Range struct {
	Min float32 `json:"min" yaml:"min" toml:"min"`
	Max float32 `json:"max" yaml:"max" toml:"max"`
}

// Draw returns Min + u*(Max-Min). Inverted ranges are not rejected.
func (r Range) Draw(u float32) float32 {
	span := r.Max - r.Min
	return r.Min + float32(u*span)
}

// Params is the typed view of a Vector.
type Params struct {
	SubsetCount        int
	PointsPerSubset    int
	Scale              float32
	Tunnel             bool
	InnerRadiusPercent float32
	OuterRadiusPercent float32
	A, B, C, D, E      Range
}

// ParamsFromVector decodes v. Counts are truncated; negative or NaN counts become 0.
func ParamsFromVector(v Vector) Params {
	return Params{
		SubsetCount:        count(v[SlotSubsets]),
		PointsPerSubset:    count(v[SlotPoints]),
		Scale:              v[SlotScale],
		Tunnel:             v[SlotTunnel] != 0,
		InnerRadiusPercent: v[SlotInnerRadius],
		OuterRadiusPercent: v[SlotOuterRadius],
		A:                  Range{v[SlotAMin], v[SlotAMax]},
		B:                  Range{v[SlotBMin], v[SlotBMax]},
		C:                  Range{v[SlotCMin], v[SlotCMax]},
		D:                  Range{v[SlotDMin], v[SlotDMax]},
		E:                  Range{v[SlotEMin], v[SlotEMax]},
	}
}

// Vector encodes p. The reserved slot mirrors the subset count.
func (p Params) Vector() Vector {
	var v Vector
	v[SlotReserved] = float32(max(p.SubsetCount, 0))
	v[SlotSubsets] = float32(max(p.SubsetCount, 0))
	v[SlotPoints] = float32(max(p.PointsPerSubset, 0))
	v[SlotScale] = p.Scale
	if p.Tunnel {
		v[SlotTunnel] = 1
	}
	v[SlotInnerRadius] = p.InnerRadiusPercent
	v[SlotOuterRadius] = p.OuterRadiusPercent
	v[SlotAMin], v[SlotAMax] = p.A.Min, p.A.Max
	v[SlotBMin], v[SlotBMax] = p.B.Min, p.B.Max
	v[SlotCMin], v[SlotCMax] = p.C.Min, p.C.Max
	v[SlotDMin], v[SlotDMax] = p.D.Min, p.D.Max
	v[SlotEMin], v[SlotEMax] = p.E.Min, p.E.Max
	return v
}

// InnerFraction is the inner radius as a fraction of the scale factor.
func (p Params) InnerFraction() float32 { return p.InnerRadiusPercent / 100 }

// OuterFraction is the warp intensity divisor as a fraction.
func (p Params) OuterFraction() float32 { return p.OuterRadiusPercent / 100 }

func count(f float32) int {
	if math32.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}
