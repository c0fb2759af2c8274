package orbit

// scripted replays vals in order and then returns rest forever.
type scripted struct {
	vals []float32
	rest float32
	n    int
}

func (s *scripted) Float32() float32 {
	if s.n < len(s.vals) {
		v := s.vals[s.n]
		s.n++
		return v
	}
	s.n++
	return s.rest
}

func script(rest float32, vals ...float32) *scripted {
	return &scripted{vals: vals, rest: rest}
}

// point-range params with every coefficient pinned to one value
func pinned(subsets, points int, a, b, c, d, e float32) Params {
	return Params{
		SubsetCount:     subsets,
		PointsPerSubset: points,
		Scale:           100,
		A:               Range{a, a},
		B:               Range{b, b},
		C:               Range{c, c},
		D:               Range{d, d},
		E:               Range{e, e},
	}
}

func hopalong(subsets, points int) Params {
	return Params{
		SubsetCount:        subsets,
		PointsPerSubset:    points,
		Scale:              1500,
		Tunnel:             true,
		InnerRadiusPercent: 0,
		OuterRadiusPercent: 50,
		A:                  Range{-30, 30},
		B:                  Range{0.2, 1.8},
		C:                  Range{5, 17},
		D:                  Range{0, 10},
		E:                  Range{0, 12},
	}
}
