package roc

import (
	"testing"

	"github.com/carbocation/peakroc/bed"
	"github.com/stretchr/testify/require"
)

// r is shorthand for a scored region on chr1.
func r(start, end int, score float64) bed.Region {
	return bed.Region{Interval: bed.Interval{Chrom: "chr1", Start: start, End: end}, Score: score}
}

func store(t *testing.T, regions ...bed.Region) *bed.Store {
	t.Helper()
	s, err := bed.NewStore(regions)
	require.NoError(t, err)
	return s
}

func requireMonotone(t *testing.T, xs, ys []float64) {
	t.Helper()
	require.Equal(t, len(xs), len(ys))
	for i := range xs {
		require.True(t, xs[i] >= 0 && xs[i] <= 1+1e-12, "x[%d]=%f out of range", i, xs[i])
		require.True(t, ys[i] >= 0 && ys[i] <= 1+1e-12, "y[%d]=%f out of range", i, ys[i])
		if i > 0 {
			require.GreaterOrEqual(t, xs[i], xs[i-1], "x decreased at %d", i)
			require.GreaterOrEqual(t, ys[i], ys[i-1], "y decreased at %d", i)
		}
	}
}
