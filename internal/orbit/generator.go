package orbit

import "github.com/chewxy/math32"

// Branch is the iteration formula picked once per generation.
type Branch uint8

const (
	BranchSqrt    Branch = iota // z = d + sqrt(|b·x − c|)
	BranchQuartic               // z = d + sqrt(sqrt(|b·x − c|))
	BranchLog                   // z = d + log(2 + sqrt(|b·x − c|))
)

func (b Branch) String() string {
	switch b {
	case BranchSqrt:
		return "sqrt"
	case BranchQuartic:
		return "quartic"
	case BranchLog:
		return "log"
	}
	return "unknown"
}

// BranchOf maps a choice draw in [0,1) to its formula.
func BranchOf(choice float32) Branch {
	switch {
	case choice < branchSqrtBelow:
		return BranchSqrt
	case choice < branchQuarticBelow:
		return BranchQuartic
	default:
		return BranchLog
	}
}

// Coefficients of one generation.
type Coefficients struct {
	A, B, C, D, E float32
	Branch        Branch
}

// DrawCoefficients draws a, b, c, d, e and then the branch choice, in that order.
func DrawCoefficients(p Params, rng Rand) Coefficients {
	k := Coefficients{
		A: p.A.Draw(rng.Float32()),
		B: p.B.Draw(rng.Float32()),
		C: p.C.Draw(rng.Float32()),
		D: p.D.Draw(rng.Float32()),
		E: p.E.Draw(rng.Float32()),
	}
	k.Branch = BranchOf(rng.Float32())
	return k
}

// Extents are the running bounds of the raw orbit.
type Extents struct {
	XMin, XMax, YMin, YMax float32
}

// EmptyExtents is the identity for Extents.Add.
func EmptyExtents() Extents {
	return Extents{XMin: math32.Inf(1), XMax: math32.Inf(-1), YMin: math32.Inf(1), YMax: math32.Inf(-1)}
}

// Add widens e to include (x,y).
func (e *Extents) Add(x, y float32) {
	if x < e.XMin {
		e.XMin = x
	}
	if x > e.XMax {
		e.XMax = x
	}
	if y < e.YMin {
		e.YMin = y
	}
	if y > e.YMax {
		e.YMax = y
	}
}

// Degenerate reports whether normalizing against e divides by zero (or by an empty span).
func (e Extents) Degenerate() bool {
	return !(e.XMax > e.XMin) || !(e.YMax > e.YMin)
}

// z evaluates the selected formula. b·x is rounded before the subtraction so no
// fused multiply-add changes the orbit on any architecture.
func (k Coefficients) z(x float32) float32 {
	r := math32.Sqrt(math32.Abs(float32(k.B*x) - k.C))
	switch k.Branch {
	case BranchSqrt:
		return k.D + r
	case BranchQuartic:
		return k.D + math32.Sqrt(r)
	default:
		return k.D + math32.Log(logBias+r)
	}
}

// Generate draws the coefficients and fills buffers with the raw orbit of every subset.
// buffers[s] must hold 2*p.PointsPerSubset values; only len(buffers) subsets are generated.
// Extents cover the state each step starts from: a subset's seed point is included,
// its last written point is not.
func Generate(p Params, buffers [][]float32, rng Rand) (Coefficients, Extents) {
	k := DrawCoefficients(p, rng)
	ext := EmptyExtents()
	for s, buf := range buffers {
		seed := float32(s) / SeedSpread
		x := float32(seed * (0.5 - rng.Float32()))
		y := float32(seed * (0.5 - rng.Float32()))
		n := len(buf) / 2
		for i := 0; i < n; i++ {
			z := k.z(x)
			var x1 float32
			switch {
			case x > 0:
				x1 = y - z
			case x == 0:
				x1 = y
			default:
				x1 = y + z
			}
			ext.Add(x, y)
			y = k.A - x
			buf[2*i+1] = y
			x = x1 + k.E
			buf[2*i] = x
		}
	}
	return k, ext
}
