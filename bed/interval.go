package bed

import "fmt"

// Interval is a half-open range [Start, End) on a named sequence.
type Interval struct {
	Chrom      string
	Start, End int
}

// Len is the number of bases covered by the interval.
func (i Interval) Len() int {
	if i.End < i.Start {
		return 0
	}
	return i.End - i.Start
}

// Overlaps reports whether i and o share at least one base. Intervals that
// merely touch (i.End == o.Start) do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	// Half-open interval indexing.
	return i.Chrom == o.Chrom && i.End > o.Start && i.Start < o.End
}

// Intersect returns the bases shared by i and o. The boolean is false when
// they do not overlap.
func (i Interval) Intersect(o Interval) (Interval, bool) {
	if !i.Overlaps(o) {
		return Interval{}, false
	}

	return Interval{Chrom: i.Chrom, Start: max(i.Start, o.Start), End: min(i.End, o.End)}, true
}

// Span returns the smallest interval covering both i and o. Both must be on
// the same sequence.
func (i Interval) Span(o Interval) Interval {
	return Interval{Chrom: i.Chrom, Start: min(i.Start, o.Start), End: max(i.End, o.End)}
}

func (i Interval) String() string {
	return fmt.Sprintf("%s:%d-%d", i.Chrom, i.Start, i.End)
}

// Region is a scored interval loaded from an interval file.
type Region struct {
	Interval
	Name  string
	Score float64
}

// Overlap pairs a stored region with the sub-interval it shares with a query.
type Overlap struct {
	Region   Region
	Interval Interval
}

func min(a, b int) int {
	if a > b {
		return b
	}
	return a
}

func max(a, b int) int {
	if a < b {
		return b
	}
	return a
}
