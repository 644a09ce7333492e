package roc

import "github.com/carbocation/peakroc/bed"

// IntervalStore is the read-only view of a loaded interval file that point
// generation needs. *bed.Store satisfies it.
type IntervalStore interface {
	Regions() []bed.Region
	Len() int
	TotalBases() int
	Overlaps(bed.Interval) bool
	Overlapping(bed.Interval) []bed.Overlap
}

// Partition is the four labeled stores of one replicate. Together they should
// cover the reference set exactly once.
type Partition struct {
	TP, TN, FP, FN IntervalStore
}

func (p Partition) check() error {
	for i, s := range []IntervalStore{p.TP, p.TN, p.FP, p.FN} {
		if s == nil {
			return &MissingStoreError{Label: [...]string{"TP", "TN", "FP", "FN"}[i]}
		}
	}
	return nil
}
