// Package render draws ROC ribbons, per-replicate curves and score
// distributions with go-chart.
package render

import (
	"fmt"

	"github.com/carbocation/peakroc/coords"
	"github.com/carbocation/peakroc/ribbon"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	XLabel = "False Positive Rate (1 - Specificity)"
	YLabel = "True Positive Rate (Sensitivity)"

	Width  = 1024
	Height = 768
)

// bandAlpha is the opacity of the min/max band behind each mean line.
const bandAlpha = 64

// Group is one condition's band, drawn as one legend entry.
type Group struct {
	Name string
	Band ribbon.Band
}

// ribbonSeries draws a translucent polygon between the band's Min and Max and
// its Mean as a line over it.
type ribbonSeries struct {
	Name  string
	Style chart.Style
	Band  ribbon.Band
}

func (rs ribbonSeries) GetName() string           { return rs.Name }
func (rs ribbonSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (rs ribbonSeries) GetStyle() chart.Style     { return rs.Style }

func (rs ribbonSeries) Validate() error {
	n := len(rs.Band.X)
	if len(rs.Band.Mean) != n || len(rs.Band.Min) != n || len(rs.Band.Max) != n {
		return fmt.Errorf("ribbon %q: band columns differ in length", rs.Name)
	}
	return nil
}

func (rs ribbonSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	b := rs.Band
	n := len(b.X)
	if n == 0 {
		return
	}

	style := rs.Style.InheritFrom(defaults)

	px := func(i int) int { return canvasBox.Left + xrange.Translate(b.X[i]) }
	py := func(v float64) int { return canvasBox.Bottom - yrange.Translate(v) }

	// Band: along the maximum, then back along the minimum.
	r.SetFillColor(style.FillColor)
	r.SetStrokeColor(drawing.ColorTransparent)
	r.SetStrokeWidth(0)
	r.MoveTo(px(0), py(b.Max[0]))
	for i := 1; i < n; i++ {
		r.LineTo(px(i), py(b.Max[i]))
	}
	for i := n - 1; i >= 0; i-- {
		r.LineTo(px(i), py(b.Min[i]))
	}
	r.Close()
	r.Fill()

	r.SetStrokeColor(style.StrokeColor)
	r.SetStrokeWidth(style.StrokeWidth)
	r.MoveTo(px(0), py(b.Mean[0]))
	for i := 1; i < n; i++ {
		r.LineTo(px(i), py(b.Mean[i]))
	}
	r.Stroke()
}

// rocAxes returns x and y axes fixed to [0, 1] with the rate labels.
func rocAxes() (chart.XAxis, chart.YAxis) {
	return chart.XAxis{
			Name:  XLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		}, chart.YAxis{
			Name:  YLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		}
}

// Ribbon builds the chart of every condition's band at one granularity.
func Ribbon(title string, g coords.Granularity, groups []Group) (*chart.Chart, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("no conditions to draw on the %s ribbon", g)
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

	for i, grp := range groups {
		color := chart.GetDefaultColor(i)
		graph.Series = append(graph.Series, ribbonSeries{
			Name: grp.Name,
			Band: grp.Band,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				FillColor:   color.WithAlpha(bandAlpha),
			},
		})
	}
	graph.Elements = []chart.Renderable{chart.Legend(graph)}

	return graph, nil
}
