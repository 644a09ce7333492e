package bed

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"cloud.google.com/go/storage"
	"github.com/carbocation/peakroc"
	"github.com/carbocation/pfx"
)

// Lines longer than this are rejected.
const maxLineBytes = 4 * 1024 * 1024

// Loader reads interval files. Storage, if set, allows gs:// paths.
type Loader struct {
	Storage *storage.Client
}

// Load reads a local interval file, sniffing its dialect.
func Load(path string) (*Store, error) {
	return Loader{}.Load(path)
}

// LoadAs reads a local interval file in the given dialect.
func LoadAs(path string, dialect Dialect) (*Store, error) {
	return Loader{}.LoadAs(path, dialect)
}

// Load reads an interval file, sniffing its dialect from the first data line.
func (l Loader) Load(path string) (*Store, error) {
	return l.load(path, nil)
}

// LoadAs reads an interval file in the given dialect.
func (l Loader) LoadAs(path string, dialect Dialect) (*Store, error) {
	return l.load(path, &dialect)
}

func (l Loader) load(path string, dialect *Dialect) (*Store, error) {
	f, err := peakroc.Open(path, l.Storage)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Read(f, dialect)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	s.Path = path

	return s, nil
}

// Read parses interval lines from r. When dialect is nil it is sniffed from
// the first data line; every later line must then satisfy the same dialect.
func Read(r io.Reader, dialect *Dialect) (*Store, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		d       Dialect
		delim   rune
		sniffed bool
		regions []Region
	)

	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if isHeader(line) {
			continue
		}

		if !sniffed {
			sd, sdelim, err := SniffLine(line)
			if err != nil && dialect == nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			d, delim = sd, sdelim
			if dialect != nil {
				d = *dialect
			}
			sniffed = true
		}

		region, err := parseRegion(splitFields(line, delim), d)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		regions = append(regions, region)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if !sniffed && dialect != nil {
		d = *dialect
	} else if !sniffed {
		// An empty file is a valid, empty set of regions.
		d = Simple
	}

	s, err := NewStore(regions)
	if err != nil {
		return nil, err
	}
	s.Dialect = d

	return s, nil
}

func parseRegion(fields []string, d Dialect) (Region, error) {
	r := Region{}

	if len(fields) < d.MinFields {
		return r, fmt.Errorf("%d fields, but the %s dialect needs at least %d", len(fields), d.Name, d.MinFields)
	}

	r.Chrom = fields[0]

	if start, err := strconv.Atoi(fields[1]); err != nil {
		return r, err
	} else {
		r.Start = start
	}

	if end, err := strconv.Atoi(fields[2]); err != nil {
		return r, err
	} else {
		r.End = end
	}

	if r.Start > r.End {
		return r, fmt.Errorf("start %d is after end %d", r.Start, r.End)
	}

	if d.ColName >= 0 {
		r.Name = fields[d.ColName]
	}

	if d.HasScore() {
		score, err := strconv.ParseFloat(fields[d.ColScore], 64)
		if err != nil {
			return r, fmt.Errorf("score column %d: %w", d.ColScore+1, err)
		}
		r.Score = score
	}

	return r, nil
}
