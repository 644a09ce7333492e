package render

import (
	"errors"
	"fmt"

	"github.com/carbocation/peakroc/coords"
	"github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/floats"
)

// Curves overlays individual ROC sequences, one legend entry each. names must
// line up with seqs.
func Curves(title string, seqs []coords.Sequence, names []string) (*chart.Chart, error) {
	if len(seqs) == 0 {
		return nil, errors.New("no curves to draw")
	}
	if len(names) != len(seqs) {
		return nil, fmt.Errorf("%d curves but %d names", len(seqs), len(names))
	}

	xaxis, yaxis := rocAxes()
	graph := &chart.Chart{
		Title:  title,
		Width:  Width,
		Height: Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: xaxis,
		YAxis: yaxis,
	}

	for i, s := range seqs {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", names[i], err)
		}
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    names[i],
			XValues: s.X,
			YValues: s.Y,
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(i),
				StrokeWidth: 2,
			},
		})
	}
	graph.Elements = []chart.Renderable{chart.Legend(graph)}

	return graph, nil
}

// ScoreDistribution plots ranked scores as dots, rank on x. An unlabelled
// chart hides both axes; a labelled one names them and fixes y to [0, 1].
func ScoreDistribution(title string, scores []float64, labelled bool) (*chart.Chart, error) {
	if len(scores) == 0 {
		return nil, errors.New("no scores to draw")
	}

	ranks := make([]float64, len(scores))
	for i := range ranks {
		ranks[i] = float64(i + 1)
	}

	graph := &chart.Chart{
		Width:  Width,
		Height: Height,
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: ranks,
				YValues: scores,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    2,
					DotColor:    chart.GetDefaultColor(0),
				},
			},
		},
	}

	// Fixed ranges keep a single score, or identical ones, drawable.
	xrange := &chart.ContinuousRange{Min: 0, Max: float64(len(scores) + 1)}

	if !labelled {
		lo, hi := floats.Min(scores), floats.Max(scores)
		if lo == hi {
			lo, hi = lo-0.5, hi+0.5
		}

		graph.XAxis = chart.XAxis{Style: chart.Hidden(), Range: xrange}
		graph.YAxis = chart.YAxis{Style: chart.Hidden(), Range: &chart.ContinuousRange{Min: lo, Max: hi}}
		return graph, nil
	}

	graph.Title = title
	graph.Background = chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}}
	graph.XAxis = chart.XAxis{Name: "Rank", Range: xrange}
	graph.YAxis = chart.YAxis{
		Name:  "Score",
		Range: &chart.ContinuousRange{Min: 0, Max: 1},
	}

	return graph, nil
}
