// Package ribbon summarizes the replicate ROC sequences of one condition as a
// mean curve inside a min/max band.
package ribbon

import (
	"errors"
	"fmt"

	"github.com/carbocation/peakroc/coords"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrNoReplicates = errors.New("ribbon: no replicate sequences to aggregate")

// LengthMismatchError is returned when a replicate's sequence does not have
// as many points as replicate 0. Replicates are numbered from 0, as their
// files are.
type LengthMismatchError struct {
	Replicate int
	Got, Want int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("ribbon: replicate %d has %d points, expected %d", e.Replicate, e.Got, e.Want)
}

// Band is the per-index summary of several replicate sequences.
type Band struct {
	X    []float64
	Mean []float64
	Max  []float64
	Min  []float64
}

// Len is the number of points in the band.
func (b Band) Len() int {
	return len(b.X)
}

// Aggregate reduces equal-length replicate sequences to a Band. X values are
// taken from the first replicate. Replicates are summarized index by index, so
// the result does not depend on replicate order.
func Aggregate(seqs []coords.Sequence) (Band, error) {
	if len(seqs) == 0 {
		return Band{}, ErrNoReplicates
	}

	n := seqs[0].Len()
	for i, s := range seqs {
		if err := s.Validate(); err != nil {
			return Band{}, fmt.Errorf("ribbon: replicate %d: %w", i, err)
		}
		if s.Len() != n {
			return Band{}, &LengthMismatchError{Replicate: i, Got: s.Len(), Want: n}
		}
	}

	out := Band{
		X:    append([]float64(nil), seqs[0].X...),
		Mean: make([]float64, n),
		Max:  make([]float64, n),
		Min:  make([]float64, n),
	}

	column := make([]float64, len(seqs))
	for i := 0; i < n; i++ {
		for j, s := range seqs {
			column[j] = s.Y[i]
		}

		out.Mean[i] = stat.Mean(column, nil)
		out.Max[i] = floats.Max(column)
		out.Min[i] = floats.Min(column)
	}

	return out, nil
}

// Decimate keeps the rows of b that coords.Decimate keeps of a sequence. It is
// for display only: aggregate first, then decimate the band.
func (b Band) Decimate(stride int) Band {
	if stride <= 1 {
		return b
	}

	mean := coords.Decimate(coords.Sequence{X: b.X, Y: b.Mean}, stride)
	max := coords.Decimate(coords.Sequence{X: b.X, Y: b.Max}, stride)
	min := coords.Decimate(coords.Sequence{X: b.X, Y: b.Min}, stride)

	return Band{X: mean.X, Mean: mean.Y, Max: max.Y, Min: min.Y}
}
