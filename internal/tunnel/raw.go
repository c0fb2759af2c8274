package tunnel

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const rawHeaderBytes = 12

// SaveRawLevels writes levels as little-endian: int32 levels, int32 subsets, int32 points,
// then levels*subsets*points*2 float32 coordinates, (x,y) interleaved.
func SaveRawLevels(path string, levels []Level) error {
	subsets, points := 0, 0
	if len(levels) > 0 {
		subsets = len(levels[0].Buffers)
		if subsets > 0 {
			points = len(levels[0].Buffers[0]) / 2
		}
	}
	for _, l := range levels {
		if len(l.Buffers) != subsets {
			return fmt.Errorf("level %d has %d subsets, expected %d", l.ID, len(l.Buffers), subsets)
		}
		for s, b := range l.Buffers {
			if len(b) != 2*points {
				return fmt.Errorf("level %d subset %d has %d values, expected %d", l.ID, s, len(b), 2*points)
			}
		}
	}

	// Make sure parent directory exists.
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, v := range []int32{int32(len(levels)), int32(subsets), int32(points)} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	for _, l := range levels {
		for _, b := range l.Buffers {
			if err := binary.Write(w, binary.LittleEndian, b); err != nil {
				return err
			}
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// rawSizeMatches reports whether body bytes hold exactly n*subsets*points (x,y) float32 pairs.
// The product of three int32 counts overflows int64, so the check divides instead.
func rawSizeMatches(body, n, subsets, points int64) bool {
	cells := n * subsets
	if cells == 0 || points == 0 {
		return body == 0
	}
	if body%8 != 0 {
		return false
	}
	pairs := body / 8
	return pairs%cells == 0 && pairs/cells == points
}

// LoadRawLevels reads a file written by SaveRawLevels. Stats are not stored.
func LoadRawLevels(path string) ([]Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var hdr [3]int32
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("raw header: %w", err)
	}
	n, subsets, points := int64(hdr[0]), int64(hdr[1]), int64(hdr[2])
	if n < 0 || subsets < 0 || points < 0 {
		return nil, fmt.Errorf("raw header is corrupt: %v", hdr)
	}
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !rawSizeMatches(st.Size()-rawHeaderBytes, n, subsets, points) {
		return nil, fmt.Errorf("raw header %v does not match file size %d", hdr, st.Size())
	}
	levels := make([]Level, n)
	for i := range levels {
		levels[i].ID = i
		levels[i].Buffers = make([][]float32, subsets)
		for s := range levels[i].Buffers {
			b := make([]float32, 2*points)
			if err := binary.Read(r, binary.LittleEndian, b); err != nil {
				if err == io.EOF {
					err = io.ErrUnexpectedEOF
				}
				return nil, fmt.Errorf("level %d subset %d: %w", i, s, err)
			}
			levels[i].Buffers[s] = b
		}
	}
	return levels, nil
}
