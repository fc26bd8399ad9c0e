package analysis

import "gapscan/internal/series"

// CrossSignal is the result of a moving-average cross check.
type CrossSignal int

const (
	NoCross CrossSignal = iota
	GoldenCross
	DeathCross
)

func (c CrossSignal) String() string {
	switch c {
	case GoldenCross:
		return "golden cross"
	case DeathCross:
		return "death cross"
	default:
		return "no cross"
	}
}

// Cross compares the fast and slow SMA on the last two completed bars
// (the final bar is treated as still forming). Any absent value yields NoCross.
func Cross(s *series.Series, fast, slow int) CrossSignal {
	n := s.Len()
	after, before := n-2, n-3
	if before < 0 {
		return NoCross
	}
	fastAfter, ok1 := s.SMA(fast, after)
	slowAfter, ok2 := s.SMA(slow, after)
	fastBefore, ok3 := s.SMA(fast, before)
	slowBefore, ok4 := s.SMA(slow, before)
	if !(ok1 && ok2 && ok3 && ok4) {
		return NoCross
	}
	switch {
	case fastAfter > slowAfter && fastBefore < slowBefore:
		return GoldenCross
	case slowAfter > fastAfter && slowBefore < fastBefore:
		return DeathCross
	}
	return NoCross
}
