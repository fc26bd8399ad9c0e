package analysis

import (
	"sort"
	"testing"

	"gapscan/internal/model"
)

func upGap(index int, level float64) model.Gap {
	return model.Gap{Index: index, Type: model.GapUp, From: level, PriceLevel: level}
}

func TestClusterKeyLevels(t *testing.T) {
	gaps := []model.Gap{upGap(3, 100.00), upGap(8, 100.005), upGap(12, 105)}
	levels := ClusterKeyLevels(gaps, 1.0)
	if len(levels) != 1 {
		t.Fatalf("want 1 level, got %+v", levels)
	}
	kl := levels[0]
	if !approx(kl.Price, 100.0025) || kl.GapCount != 2 || kl.StartIndex != 3 {
		t.Fatalf("level = %+v, want price 100.0025 count 2 start 3", kl)
	}
}

func TestClusterKeyLevelsChainsFromLastPoint(t *testing.T) {
	gaps := []model.Gap{upGap(1, 100), upGap(2, 100.8), upGap(3, 101.6)}
	levels := ClusterKeyLevels(gaps, 1.0)
	if len(levels) != 1 || levels[0].GapCount != 3 {
		t.Fatalf("chained points should form one cluster, got %+v", levels)
	}
	if !approx(levels[0].Price, 100.8) {
		t.Fatalf("price = %v want 100.8", levels[0].Price)
	}
}

func TestClusterKeyLevelsStartIndexIsMinimum(t *testing.T) {
	gaps := []model.Gap{upGap(2, 50.4), upGap(7, 50), upGap(9, 50)}
	levels := ClusterKeyLevels(gaps, 0.5)
	if len(levels) != 1 || levels[0].StartIndex != 2 || levels[0].GapCount != 3 {
		t.Fatalf("got %+v", levels)
	}
}

func TestClusterKeyLevelsDropsSingletons(t *testing.T) {
	gaps := []model.Gap{upGap(1, 10), upGap(2, 20), upGap(3, 30), upGap(4, 30.5), upGap(5, 40)}
	levels := ClusterKeyLevels(gaps, 1)
	if len(levels) != 1 || levels[0].GapCount != 2 || !approx(levels[0].Price, 30.25) {
		t.Fatalf("got %+v", levels)
	}
}

func TestKeyLevelsEmpty(t *testing.T) {
	s := mustSeries(t, flats(100, 100))
	if levels := KeyLevels(s, nil); len(levels) != 0 {
		t.Fatalf("want no levels, got %+v", levels)
	}
	if levels := ClusterKeyLevels(nil, 1); len(levels) != 0 {
		t.Fatalf("want no levels, got %+v", levels)
	}
}

func TestKeyLevelsUsesSeriesTolerance(t *testing.T) {
	s := mustSeries(t, islandFixture())
	if got, want := PriceTolerance(s), 0.01*99.85; !approx(got, want) {
		t.Fatalf("PriceTolerance = %v want %v", got, want)
	}
	gaps := DetectGaps(s, MinGapSize(s))
	levels := KeyLevels(s, gaps)
	if len(levels) != 1 {
		t.Fatalf("want 1 level, got %+v", levels)
	}
	if kl := levels[0]; !approx(kl.Price, 100) || kl.StartIndex != 5 || kl.GapCount != 2 {
		t.Fatalf("level = %+v", kl)
	}
}

// Splitting the sorted prices wherever neighbours are more than the tolerance
// apart must give exactly the emitted levels, singletons aside.
func TestKeyLevelsPartitionGaps(t *testing.T) {
	var total int
	for seed := int64(1); seed <= 20; seed++ {
		s := mustSeries(t, randomWalk(seed, 300))
		res, err := Analyze(s)
		if err != nil {
			t.Fatal(err)
		}
		gaps := res.Gaps()
		if len(gaps) == 0 {
			continue
		}
		prices := make([]float64, len(gaps))
		for i, g := range gaps {
			prices[i] = g.PriceLevel
		}
		sort.Float64s(prices)
		tol := PriceTolerance(s)

		var groups [][]float64
		cur := []float64{prices[0]}
		for _, p := range prices[1:] {
			if p-cur[len(cur)-1] > tol {
				groups = append(groups, cur)
				cur = nil
			}
			cur = append(cur, p)
		}
		groups = append(groups, cur)

		var members int
		var want []model.KeyLevel
		for _, g := range groups {
			members += len(g)
			if len(g) < 2 {
				continue
			}
			var sum float64
			for _, p := range g {
				sum += p
			}
			want = append(want, model.KeyLevel{Price: sum / float64(len(g)), GapCount: len(g)})
		}
		if members != len(gaps) {
			t.Fatalf("seed %d: groups hold %d of %d gaps", seed, members, len(gaps))
		}

		got := res.KeyLevels()
		if len(got) != len(want) {
			t.Fatalf("seed %d: %d levels want %d", seed, len(got), len(want))
		}
		for i := range want {
			if got[i].GapCount != want[i].GapCount || !approx(got[i].Price, want[i].Price) {
				t.Fatalf("seed %d level %d: got %+v want count %d price %v", seed, i, got[i], want[i].GapCount, want[i].Price)
			}
		}
		total += len(got)
	}
	if total == 0 {
		t.Fatal("no seed produced a key level")
	}
}
