// Package roc turns labeled interval stores into ROC coordinate sequences,
// counting either whole peaks or individual bases.
package roc

import (
	"sort"

	"github.com/carbocation/peakroc/bed"
	"github.com/carbocation/peakroc/coords"
)

// Options selects how GeneratePoints ranks and counts.
type Options struct {
	Convention Convention

	// ByBase counts bases rather than peaks.
	ByBase bool

	// Precise, at base level, emits one point per base instead of one per
	// ranked region.
	Precise bool
}

// Unit is one ranked item: a test peak at peak level, or the part of a test
// peak that falls within one TP or FP region at base level.
type Unit struct {
	Region       bed.Interval
	Score        float64
	TruePositive bool
}

// Denominator holds the fixed totals that the running sums are divided by.
type Denominator struct {
	// X counts condition-negative units (the FPR denominator), Y
	// condition-positive units (the TPR denominator).
	X, Y int

	// DoubleLabeled counts reference entries that overlapped both TP and FN
	// at peak level. They are counted as positives.
	DoubleLabeled int
}

// Denominators computes the X and Y totals for a partition. At base level they
// are base counts; at peak level they count reference entries.
func Denominators(p Partition, reference IntervalStore, byBase bool) (Denominator, error) {
	d := Denominator{}

	if err := p.check(); err != nil {
		return d, err
	}

	if byBase {
		d.Y = p.TP.TotalBases() + p.FN.TotalBases()
		d.X = p.TN.TotalBases() + p.FP.TotalBases()
	} else {
		// An empty FN store means the reference was not fully labeled, so
		// only TP membership can make an entry positive.
		fullyLabeled := p.FN.TotalBases() != 0

		for _, entry := range reference.Regions() {
			inTP := p.TP.Overlaps(entry.Interval)
			inFN := fullyLabeled && p.FN.Overlaps(entry.Interval)

			switch {
			case inTP && inFN:
				d.DoubleLabeled++
				d.Y++
			case inTP, inFN:
				d.Y++
			default:
				d.X++
			}
		}
	}

	if d.Y == 0 {
		return d, ErrNoConditionPositives
	}
	if d.X == 0 {
		return d, ErrNoConditionNegatives
	}

	return d, nil
}

// RankingUnits builds the units to rank, in test order. At base level each
// test entry contributes one unit per TP or FP region it overlaps.
func RankingUnits(p Partition, test IntervalStore, byBase bool) []Unit {
	units := make([]Unit, 0, test.Len())

	for _, entry := range test.Regions() {
		if !byBase {
			units = append(units, Unit{Region: entry.Interval, Score: entry.Score})
			continue
		}

		for _, ol := range p.TP.Overlapping(entry.Interval) {
			units = append(units, Unit{Region: ol.Interval, Score: entry.Score, TruePositive: true})
		}
		for _, ol := range p.FP.Overlapping(entry.Interval) {
			units = append(units, Unit{Region: ol.Interval, Score: entry.Score, TruePositive: false})
		}
	}

	return units
}

// Rank sorts units best-first under the convention. Ties keep their input
// order.
func Rank(units []Unit, c Convention) {
	if c == Descending {
		sort.SliceStable(units, func(i, j int) bool { return units[i].Score > units[j].Score })
		return
	}

	sort.SliceStable(units, func(i, j int) bool { return units[i].Score < units[j].Score })
}

// GeneratePoints computes the ROC sequence (x = FPR, y = TPR) of the test
// calls against the labeled partition of reference.
func GeneratePoints(p Partition, test, reference IntervalStore, opts Options) (coords.Sequence, error) {
	den, err := Denominators(p, reference, opts.ByBase)
	if err != nil {
		return coords.Sequence{}, err
	}

	units := RankingUnits(p, test, opts.ByBase)
	if opts.ByBase {
		units = RepairOverlaps(units)
	}
	Rank(units, opts.Convention)

	switch {
	case !opts.ByBase:
		return accumulatePeaks(p.TP, units, den), nil
	case opts.Precise:
		return accumulateEachBase(units, den), nil
	}

	return accumulateRuns(units, den), nil
}

func accumulatePeaks(tp IntervalStore, units []Unit, den Denominator) coords.Sequence {
	out := coords.NewSequence(len(units))
	xden, yden := float64(den.X), float64(den.Y)

	var xsum, ysum int
	for _, u := range units {
		if tp.Overlaps(u.Region) {
			ysum++
		} else {
			xsum++
		}
		out.Append(float64(xsum)/xden, float64(ysum)/yden)
	}

	return out
}

// accumulateRuns emits one length-weighted step per unit.
func accumulateRuns(units []Unit, den Denominator) coords.Sequence {
	out := coords.NewSequence(len(units))
	xden, yden := float64(den.X), float64(den.Y)

	var xsum, ysum int
	for _, u := range units {
		if u.TruePositive {
			ysum += u.Region.Len()
		} else {
			xsum += u.Region.Len()
		}
		out.Append(float64(xsum)/xden, float64(ysum)/yden)
	}

	return out
}

// accumulateEachBase emits one step per base of every unit.
func accumulateEachBase(units []Unit, den Denominator) coords.Sequence {
	n := 0
	for _, u := range units {
		n += u.Region.Len()
	}

	out := coords.NewSequence(n)
	xden, yden := float64(den.X), float64(den.Y)

	var xsum, ysum int
	for _, u := range units {
		for b := 0; b < u.Region.Len(); b++ {
			if u.TruePositive {
				ysum++
			} else {
				xsum++
			}
			out.Append(float64(xsum)/xden, float64(ysum)/yden)
		}
	}

	return out
}
