package render

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/pfx"
	"github.com/wcharczuk/go-chart/v2"
)

// Save renders graph to path, as SVG if the extension is .svg and as PNG
// otherwise.
func Save(path string, graph *chart.Chart) error {
	provider := chart.PNG
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		provider = chart.SVG
	}

	// Render to a byte buffer
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(provider, buffer); err != nil {
		return pfx.Err(err)
	}

	outFile, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer outFile.Close()

	if _, err := buffer.WriteTo(outFile); err != nil {
		return pfx.Err(err)
	}

	return pfx.Err(outFile.Close())
}

// Histogram prints a terminal histogram of scores to w. The number of buckets
// is arbitrary.
func Histogram(w io.Writer, scores []float64) error {
	if len(scores) == 0 {
		return errors.New("no scores for a histogram")
	}

	hist := histogram.Hist(25, scores)
	return histogram.Fprint(w, hist, histogram.Linear(5))
}
