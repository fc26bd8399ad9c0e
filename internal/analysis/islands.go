package analysis

import (
	"gapscan/internal/model"
	"gapscan/internal/series"
)

// MaxIslandSpan is the largest bar distance between the two gaps of an island.
const MaxIslandSpan = 13

// DetectIslands pairs each gap with the one right before it and emits an
// island when they point in opposite directions within MaxIslandSpan bars.
// High and Low cover [prev.Index, cur.Index); the bar that opened the closing
// gap is not part of the island.
func DetectIslands(s *series.Series, gaps []model.Gap) []model.Island {
	var islands []model.Island
	for i := 1; i < len(gaps); i++ {
		prev, cur := gaps[i-1], gaps[i]
		if cur.Index-prev.Index > MaxIslandSpan {
			continue
		}
		if prev.Type == cur.Type {
			continue
		}
		high, _ := s.HighestHigh(prev.Index, cur.Index)
		low, _ := s.LowestLow(prev.Index, cur.Index)
		islands = append(islands, model.Island{
			High:       high,
			Low:        low,
			StartIndex: prev.Index,
			EndIndex:   cur.Index,
		})
	}
	return islands
}
