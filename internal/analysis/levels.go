package analysis

import (
	"math"
	"sort"

	"gapscan/internal/model"
	"gapscan/internal/series"
)

// PriceTolerance is the max distance between neighbouring gap prices in one cluster.
func PriceTolerance(s *series.Series) float64 {
	return priceToleranceRatio * s.MeanClose()
}

type gapPoint struct {
	price float64
	index int
}

// KeyLevels clusters gaps with the series-wide tolerance.
// No gaps yields no levels and the tolerance is never computed.
func KeyLevels(s *series.Series, gaps []model.Gap) []model.KeyLevel {
	if len(gaps) == 0 {
		return nil
	}
	return ClusterKeyLevels(gaps, PriceTolerance(s))
}

// ClusterKeyLevels sorts gap price levels and groups neighbours whose distance
// to the last point added to the cluster is within tolerance. Clusters of one
// gap are dropped.
//
// The tolerance chains from point to point, so a slowly drifting cluster can
// span more than tolerance.
func ClusterKeyLevels(gaps []model.Gap, tolerance float64) []model.KeyLevel {
	if len(gaps) == 0 {
		return nil
	}
	points := make([]gapPoint, len(gaps))
	for i, g := range gaps {
		points[i] = gapPoint{price: g.PriceLevel, index: g.Index}
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].price < points[j].price })

	var levels []model.KeyLevel
	cluster := []gapPoint{points[0]}
	for _, p := range points[1:] {
		if math.Abs(p.price-cluster[len(cluster)-1].price) <= tolerance {
			cluster = append(cluster, p)
			continue
		}
		levels = appendLevel(levels, cluster)
		cluster = []gapPoint{p}
	}
	return appendLevel(levels, cluster)
}

func appendLevel(levels []model.KeyLevel, cluster []gapPoint) []model.KeyLevel {
	if len(cluster) < 2 {
		return levels
	}
	var sum float64
	start := cluster[0].index
	for _, p := range cluster {
		sum += p.price
		if p.index < start {
			start = p.index
		}
	}
	return append(levels, model.KeyLevel{
		Price:      sum / float64(len(cluster)),
		StartIndex: start,
		GapCount:   len(cluster),
	})
}
