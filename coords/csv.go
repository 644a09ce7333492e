package coords

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/carbocation/peakroc"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// row is the on-disk form of one point. gocsv maps fields by position when
// there is no header.
type row struct {
	X float64 `csv:"x"`
	Y float64 `csv:"y"`
}

// FileName is the conventional name of a persisted replicate sequence, e.g.
// chipr_0Peaks.csv.
func FileName(condition string, replicate int, g Granularity) string {
	return fmt.Sprintf("%s_%d%s.csv", condition, replicate, g)
}

// Save writes s to path as headerless x,y rows.
func Save(path string, s Sequence) error {
	if err := s.Validate(); err != nil {
		return pfx.Err(err)
	}

	rows := make([]row, s.Len())
	for i := range rows {
		rows[i] = row{X: s.X[i], Y: s.Y[i]}
	}

	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	w := bufio.NewWriter(f)
	if err := gocsv.MarshalWithoutHeaders(&rows, w); err != nil {
		f.Close()
		return pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return pfx.Err(f.Close())
}

// Load reads every row of a persisted sequence.
func Load(path string) (Sequence, error) {
	return LoadDecimated(path, 1)
}

// LoadDecimated reads a persisted sequence, keeping every stride-th row for
// display. Aggregation and re-analysis should use Load.
func LoadDecimated(path string, stride int) (Sequence, error) {
	f, err := peakroc.Open(path, nil)
	if err != nil {
		return Sequence{}, err
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return Sequence{}, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	// gocsv refuses empty input, but an empty test set legitimately
	// produces an empty sequence.
	if len(bytes.TrimSpace(raw)) == 0 {
		return Sequence{}, nil
	}

	var rows []row
	if err := gocsv.UnmarshalWithoutHeaders(bytes.NewReader(raw), &rows); err != nil {
		return Sequence{}, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	s := NewSequence(len(rows))
	for _, r := range rows {
		s.Append(r.X, r.Y)
	}

	return Decimate(s, stride), nil
}

// LoadReplicates reads the sequences of one condition, replicate 0, 1, 2, ...
// stopping at the first replicate whose file does not exist.
func LoadReplicates(dir, condition string, g Granularity, stride int) ([]Sequence, error) {
	var out []Sequence

	for i := 0; ; i++ {
		path := filepath.Join(dir, FileName(condition, i, g))

		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		} else if err != nil {
			return nil, pfx.Err(err)
		}

		s, err := LoadDecimated(path, stride)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, nil
}

// Exists reports whether replicate 0 of a condition has been persisted.
func Exists(dir, condition string, g Granularity) bool {
	_, err := os.Stat(filepath.Join(dir, FileName(condition, 0, g)))
	return err == nil
}
