package bed

import (
	"math"
	"sort"
	"strings"
)

// Dialect describes the column layout of an interval file. Column indices are
// 0-based; a negative index means the dialect has no such column.
type Dialect struct {
	Name      string
	MinFields int
	ColName   int
	ColScore  int

	// Display converts a stored score into the value shown on score
	// distribution plots. Nil means the stored score is shown as is.
	Display func(float64) float64
}

// DisplayScore applies the dialect's display transform to a stored score.
func (d Dialect) DisplayScore(v float64) float64 {
	if d.Display == nil {
		return v
	}
	return d.Display(v)
}

// HasScore reports whether regions in this dialect carry a score.
func (d Dialect) HasScore() bool {
	return d.ColScore >= 0
}

func (d Dialect) String() string {
	return d.Name
}

var (
	// Simple is chrom, start, end and optionally further columns that are
	// ignored. bedtools writes the True/False Negative files this way.
	Simple = Dialect{
		Name:      "simple",
		MinFields: 3,
		ColName:   -1,
		ColScore:  -1,
	}

	// Peaks is ENCODE narrowPeak, as written by ChIP-R. The score is the
	// p-value column.
	Peaks = Dialect{
		Name:      "peaks",
		MinFields: 10,
		ColName:   3,
		ColScore:  7,
	}

	// IDR is the output of the IDR caller. Its p-value column holds
	// -log10(p), so it is transformed back before display.
	IDR = Dialect{
		Name:      "idr",
		MinFields: 12,
		ColName:   3,
		ColScore:  7,
		Display:   func(v float64) float64 { return math.Pow(10, -v) },
	}
)

var Dialects = map[string]Dialect{
	Simple.Name: Simple,
	Peaks.Name:  Peaks,
	IDR.Name:    IDR,
}

// DialectNames lists the valid dialect names, sorted.
func DialectNames() string {
	names := make([]string, 0, len(Dialects))
	for m := range Dialects {
		names = append(names, m)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}

// DialectByName looks up a dialect by its (case-insensitive) name.
func DialectByName(name string) (Dialect, bool) {
	d, exists := Dialects[strings.ToLower(name)]
	return d, exists
}
