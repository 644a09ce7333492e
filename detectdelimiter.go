package peakroc

import (
	"strings"

	"github.com/csimplestring/go-csv/detector"
)

// Field separators that interval and coordinate files are written with. The
// detector also reports characters like '.' or '_' that recur inside fields,
// so its candidates are filtered against this list, in order of preference.
var knownDelimiters = []rune{'\t', ',', ' ', ';'}

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in sample, assuming a CSV-like or BED-like file. Tab is returned when
// nothing can be detected, since interval files are tab-delimited by
// convention.
func DetermineDelimiter(sample string) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(strings.NewReader(sample), '"')

	found := make(map[rune]bool, len(delimiters))
	for _, v := range delimiters {
		if len(v) > 0 {
			found[rune(v[0])] = true
		}
	}

	for _, r := range knownDelimiters {
		if found[r] {
			return r
		}
	}

	return '\t'
}
