package bed

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/peakroc"
)

// ErrUnrecognizedDialect is returned when a line cannot be matched to any
// known interval file dialect.
var ErrUnrecognizedDialect = errors.New("unrecognized interval file dialect")

// ErrNoData is returned when a file holds no data lines at all.
var ErrNoData = errors.New("no data lines found")

// isHeader reports whether a line carries no interval: blank lines, comments,
// and UCSC track or browser lines.
func isHeader(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" ||
		strings.HasPrefix(trimmed, "#") ||
		strings.HasPrefix(trimmed, "track") ||
		strings.HasPrefix(trimmed, "browser")
}

// splitFields splits a data line on delim. Space-delimited files may pad
// columns with runs of spaces, so those are split with strings.Fields.
func splitFields(line string, delim rune) []string {
	if delim == ' ' {
		return strings.Fields(line)
	}
	return strings.Split(strings.TrimRight(line, "\r"), string(delim))
}

// SniffLine determines the delimiter and dialect of a single data line. The
// dialect is chosen by field count, and the coordinate columns must be
// integers.
func SniffLine(line string) (Dialect, rune, error) {
	delim := peakroc.DetermineDelimiter(line)
	if !strings.ContainsRune(line, delim) && strings.ContainsRune(line, ' ') {
		// The detector never proposes spaces.
		delim = ' '
	}
	fields := splitFields(line, delim)

	if len(fields) < Simple.MinFields {
		return Dialect{}, delim, fmt.Errorf("%w: %d fields", ErrUnrecognizedDialect, len(fields))
	}

	for _, col := range fields[1:3] {
		if _, err := strconv.Atoi(col); err != nil {
			return Dialect{}, delim, fmt.Errorf("%w: coordinate %q is not an integer", ErrUnrecognizedDialect, col)
		}
	}

	switch n := len(fields); {
	case n >= IDR.MinFields:
		return IDR, delim, nil
	case n >= Peaks.MinFields:
		return Peaks, delim, nil
	}

	return Simple, delim, nil
}

// Sniff reads up to the first data line of r and reports its dialect.
func Sniff(r io.Reader) (Dialect, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		if isHeader(scanner.Text()) {
			continue
		}

		d, _, err := SniffLine(scanner.Text())
		return d, err
	}

	if err := scanner.Err(); err != nil {
		return Dialect{}, err
	}

	return Dialect{}, ErrNoData
}
