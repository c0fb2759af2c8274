// Package orbit generates the point geometry of one tunnel level: a chaotic orbit map
// evaluated in float32, normalized into a square and warped around the center.
package orbit

// Slots of the flat configuration vector.
const (
	SlotReserved      = 0
	SlotSubsets       = 1
	SlotPoints        = 2
	SlotScale         = 3
	SlotTunnel        = 4
	SlotInnerRadius   = 5
	SlotOuterRadius   = 6
	SlotAMin          = 7
	SlotAMax          = 8
	SlotBMin          = 9
	SlotBMax          = 10
	SlotCMin          = 11
	SlotCMax          = 12
	SlotDMin          = 13
	SlotDMax          = 14
	SlotEMin          = 15
	SlotEMax          = 16
	VectorLen         = 17
	Sentinel  float32 = 1000 // fill for fresh buffers, never a plausible normalized coordinate
	SeedSpread        = 100  // subset index divisor for initial orbit offsets
	// branch thresholds on the per-call choice draw
	branchSqrtBelow    = 0.5
	branchQuarticBelow = 0.75
	logBias            = 2
	dumpLimit          = 16
)
