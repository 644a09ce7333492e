package roc

import (
	"sort"

	"github.com/carbocation/peakroc/bed"
)

// RepairOverlaps merges units whose regions share bases, so that no base is
// counted twice. This happens when several test peaks overlap the same TP or
// FP region. Units of different labels are never merged.
//
// Each cluster of same-label units whose regions transitively overlap becomes
// one unit spanning the cluster, carrying the score and label of the cluster's
// earliest unit. The result keeps the earliest-unit order, and repairing a
// repaired set returns it unchanged.
func RepairOverlaps(units []Unit) []Unit {
	if len(units) < 2 {
		return append([]Unit(nil), units...)
	}

	// Work over indices into units rather than removing while scanning.
	order := make([]int, len(units))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ua, ub := units[order[a]], units[order[b]]
		if ua.TruePositive != ub.TruePositive {
			return !ua.TruePositive
		}
		if ua.Region.Chrom != ub.Region.Chrom {
			return ua.Region.Chrom < ub.Region.Chrom
		}
		if ua.Region.Start != ub.Region.Start {
			return ua.Region.Start < ub.Region.Start
		}
		return ua.Region.End < ub.Region.End
	})

	leader := make([]bool, len(units))
	spans := make([]bed.Interval, len(units))

	for i := 0; i < len(order); {
		first := units[order[i]]
		span := first.Region
		earliest := order[i]

		j := i + 1
		for ; j < len(order); j++ {
			next := units[order[j]]
			if next.TruePositive != first.TruePositive || !span.Overlaps(next.Region) {
				break
			}
			span = span.Span(next.Region)
			if order[j] < earliest {
				earliest = order[j]
			}
		}

		leader[earliest] = true
		spans[earliest] = span
		i = j
	}

	out := make([]Unit, 0, len(units))
	for i, u := range units {
		if !leader[i] {
			continue
		}
		out = append(out, Unit{Region: spans[i], Score: u.Score, TruePositive: u.TruePositive})
	}

	return out
}
