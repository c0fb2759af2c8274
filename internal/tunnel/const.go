package tunnel

// Defaults applied by loadConfig when a field is left at zero.
const (
	Levels      = 7
	Subsets     = 7
	Points      = 32_000
	Scale       = 1500
	OuterRadius = 100 // percent
	Width       = 512
	Height      = 512
	Supersample = 2
	Zoom        = 1.0
	Gamma       = 0.75
	GIFOut      = "tunnel.gif"
	GIFDelay    = 10 // 100ths of a second per frame
	FPS         = 30
	LevelTicks  = 45 // viewer frames between two builds
	Saturation  = 0.65
	Value       = 1.0
	// debounce for bursts of write events from editors
	watchSettleMillis = 150
)

// Default coefficient ranges.
var (
	RangeA = rng(-30, 30)
	RangeB = rng(0.2, 1.8)
	RangeC = rng(5, 17)
	RangeD = rng(0, 10)
	RangeE = rng(0, 12)
)
