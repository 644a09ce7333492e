// Package coords holds ROC coordinate sequences and their on-disk form: one
// headerless x,y row per point.
package coords

import "fmt"

// Sequence is an ordered run of (x, y) points, x being the false positive rate
// and y the true positive rate.
type Sequence struct {
	X []float64
	Y []float64
}

// NewSequence allocates a sequence with room for n points.
func NewSequence(n int) Sequence {
	return Sequence{
		X: make([]float64, 0, n),
		Y: make([]float64, 0, n),
	}
}

func (s *Sequence) Append(x, y float64) {
	s.X = append(s.X, x)
	s.Y = append(s.Y, y)
}

// Len is the number of points. Validate should be called first on sequences
// that were not built with Append.
func (s Sequence) Len() int {
	return len(s.X)
}

func (s Sequence) Validate() error {
	if len(s.X) != len(s.Y) {
		return fmt.Errorf("sequence has %d x values but %d y values", len(s.X), len(s.Y))
	}
	return nil
}

// Granularity is the unit that one ROC step counts.
type Granularity int

const (
	Peaks Granularity = iota
	Bases
)

// Display decimation strides. Base-level sequences can hold one row per base.
const (
	PeakStride = 10
	BaseStride = 100000
)

func (g Granularity) String() string {
	if g == Bases {
		return "Bases"
	}
	return "Peaks"
}

// Stride is the default display decimation for sequences of this granularity.
func (g Granularity) Stride() int {
	if g == Bases {
		return BaseStride
	}
	return PeakStride
}

// Decimate keeps every stride-th point (the stride-th, the 2*stride-th, and
// so on, counting from 1). It is meant only for display; a stride of 1 or less
// returns s unchanged.
func Decimate(s Sequence, stride int) Sequence {
	if stride <= 1 {
		return s
	}

	out := NewSequence(s.Len()/stride + 1)
	for i := stride - 1; i < s.Len(); i += stride {
		out.Append(s.X[i], s.Y[i])
	}

	return out
}
