package roc

import (
	"sort"

	"github.com/carbocation/peakroc/bed"
	"github.com/montanaflynn/stats"
)

// RankedScores returns the display scores of every test entry, smallest first.
// These are the y values of a ranked-score distribution plot.
func RankedScores(test IntervalStore, dialect bed.Dialect) []float64 {
	out := make([]float64, 0, test.Len())
	for _, entry := range test.Regions() {
		out = append(out, dialect.DisplayScore(entry.Score))
	}
	sort.Float64s(out)

	return out
}

type ScoreSummary struct {
	N      int
	Min    float64
	Median float64
	P99    float64
	Max    float64
}

// Summarize describes a set of scores for logging.
func Summarize(scores []float64) (ScoreSummary, error) {
	out := ScoreSummary{N: len(scores)}
	data := stats.Float64Data(scores)

	var err error
	if out.Min, err = stats.Min(data); err != nil {
		return out, err
	}
	if out.Median, err = stats.Median(data); err != nil {
		return out, err
	}
	if out.Max, err = stats.Max(data); err != nil {
		return out, err
	}

	// Percentile needs enough points to place the 99th; tiny sets report
	// their maximum instead.
	if out.P99, err = stats.Percentile(data, 99); err != nil {
		out.P99 = out.Max
	}

	return out, nil
}
