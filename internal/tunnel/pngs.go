package tunnel

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
)

// SavePNGSequence16 writes one lossless 16-bit PNG per level as prefix_NN.png
// and returns the file names.
func SavePNGSequence16(frames []*image.NRGBA64, prefix string) ([]string, error) {
	// Zero-padding width based on number of levels.
	width := 1
	if len(frames) > 1 {
		width = int(math.Log10(float64(len(frames)-1))) + 1
	}
	if err := os.MkdirAll(filepath.Dir(prefix), 0o755); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(frames))
	for k, img := range frames {
		full := fmt.Sprintf("%s_%0*d.png", prefix, width, k)
		f, err := os.Create(full)
		if err != nil {
			return names, err
		}
		enc := png.Encoder{CompressionLevel: png.BestCompression} // still lossless
		if err := enc.Encode(f, img); err != nil {
			f.Close()
			return names, err
		}
		if err := f.Close(); err != nil {
			return names, err
		}
		names = append(names, full)
		DebugLog("[PNG] %s", full)
	}
	return names, nil
}
