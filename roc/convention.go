package roc

import (
	"fmt"
	"strings"
)

// Convention is the ranking direction of a caller's scores. It is set per
// experimental condition when the configuration is built. The zero value is
// ConventionUnset, which configuration rejects and Rank treats as Ascending.
type Convention int

const (
	ConventionUnset Convention = iota

	// Ascending ranks the smallest score first, as for p-values (ChIP-R).
	Ascending

	// Descending ranks the largest score first, as for IDR's -log10 scores.
	Descending
)

func (c Convention) String() string {
	switch c {
	case ConventionUnset:
		return "unset"
	case Ascending:
		return "pvalue"
	case Descending:
		return "idr"
	}
	return fmt.Sprintf("Convention(%d)", int(c))
}

func (c Convention) MarshalText() ([]byte, error) {
	if c != Ascending && c != Descending {
		return nil, fmt.Errorf("unknown convention %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Convention) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "pvalue", "ascending", "chipr":
		*c = Ascending
	case "idr", "descending":
		*c = Descending
	default:
		return fmt.Errorf("unknown convention %q: expected pvalue or idr", text)
	}
	return nil
}
