package ribbon

import (
	"math/rand"
	"testing"

	"github.com/carbocation/peakroc/coords"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var xs = []float64{0, 0.25, 0.5, 0.75, 1}

func seq(ys ...float64) coords.Sequence {
	return coords.Sequence{X: append([]float64(nil), xs...), Y: ys}
}

func TestAggregate(t *testing.T) {
	band, err := Aggregate([]coords.Sequence{
		seq(0.1, 0.2, 0.3, 0.4, 0.5),
		seq(0.2, 0.2, 0.2, 0.2, 0.2),
		seq(0.3, 0.1, 0.5, 0.4, 0.9),
	})
	require.NoError(t, err)
	require.Equal(t, 5, band.Len())

	assert.Equal(t, xs, band.X)
	assert.InDeltaSlice(t, []float64{0.2, 0.16667, 0.33333, 0.33333, 0.53333}, band.Mean, 1e-4)
	assert.Equal(t, []float64{0.3, 0.2, 0.5, 0.4, 0.9}, band.Max)
	assert.Equal(t, []float64{0.1, 0.1, 0.2, 0.2, 0.2}, band.Min)
}

func TestAggregateSingle(t *testing.T) {
	s := seq(0, 0.5, 0.5, 1, 1)
	band, err := Aggregate([]coords.Sequence{s})
	require.NoError(t, err)

	assert.Equal(t, s.Y, band.Mean)
	assert.Equal(t, s.Y, band.Max)
	assert.Equal(t, s.Y, band.Min)
}

func TestAggregateOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	seqs := make([]coords.Sequence, 6)
	for i := range seqs {
		ys := make([]float64, len(xs))
		for j := range ys {
			ys[j] = rng.Float64()
		}
		seqs[i] = seq(ys...)
	}

	want, err := Aggregate(seqs)
	require.NoError(t, err)

	for trial := 0; trial < 5; trial++ {
		shuffled := append([]coords.Sequence(nil), seqs...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got, err := Aggregate(shuffled)
		require.NoError(t, err)
		assert.InDeltaSlice(t, want.Mean, got.Mean, 1e-12)
		assert.Equal(t, want.Max, got.Max)
		assert.Equal(t, want.Min, got.Min)
	}
}

func TestAggregateErrors(t *testing.T) {
	_, err := Aggregate(nil)
	assert.ErrorIs(t, err, ErrNoReplicates)

	_, err = Aggregate([]coords.Sequence{seq(0, 0, 0, 0, 0), {X: []float64{0}, Y: []float64{0}}})
	var mismatch *LengthMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 1, mismatch.Replicate)
	assert.Equal(t, 1, mismatch.Got)
	assert.Equal(t, 5, mismatch.Want)

	_, err = Aggregate([]coords.Sequence{{X: []float64{0, 1}, Y: []float64{0}}})
	assert.Error(t, err)
}

func TestBandDecimate(t *testing.T) {
	band, err := Aggregate([]coords.Sequence{
		seq(0.1, 0.2, 0.3, 0.4, 0.5),
		seq(0.3, 0.4, 0.5, 0.6, 0.7),
	})
	require.NoError(t, err)

	got := band.Decimate(2)
	assert.Equal(t, []float64{0.25, 0.75}, got.X)
	assert.InDeltaSlice(t, []float64{0.3, 0.5}, got.Mean, 1e-12)
	assert.Equal(t, []float64{0.4, 0.6}, got.Max)
	assert.Equal(t, []float64{0.2, 0.4}, got.Min)

	assert.Equal(t, band, band.Decimate(1))
	assert.Zero(t, band.Decimate(10).Len())
}

// Decimating before aggregating would hide replicates of different lengths.
func TestAggregateBeforeDecimating(t *testing.T) {
	long := coords.NewSequence(109)
	short := coords.NewSequence(105)
	for i := 0; i < 109; i++ {
		long.Append(float64(i)/108, float64(i)/108)
		if i < 105 {
			short.Append(float64(i)/104, float64(i)/104)
		}
	}

	_, err := Aggregate([]coords.Sequence{short, long})
	var mismatch *LengthMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 1, mismatch.Replicate)
	assert.Equal(t, 109, mismatch.Got)
	assert.Equal(t, 105, mismatch.Want)
}
