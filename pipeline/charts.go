package pipeline

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/carbocation/peakroc/coords"
	"github.com/carbocation/peakroc/render"
	"github.com/carbocation/peakroc/ribbon"
	"github.com/carbocation/peakroc/roc"
	"github.com/wcharczuk/go-chart/v2"
)

// RibbonFile is the name of the combined chart at one granularity.
func RibbonFile(g coords.Granularity) string {
	return fmt.Sprintf("ROC_%s.png", g)
}

func (r *runner) save(report *Report, name string, graph *chart.Chart) error {
	path := filepath.Join(r.cfg.OutputDir, name)
	if err := render.Save(path, graph); err != nil {
		return err
	}

	log.Printf("wrote %s", path)
	report.Charts = append(report.Charts, path)

	return nil
}

// renderRibbons aggregates each condition's saved replicates and draws one
// ribbon chart per granularity, plus each condition's replicate curves.
func (r *runner) renderRibbons(report *Report) error {
	for _, g := range []coords.Granularity{coords.Peaks, coords.Bases} {
		stride, title := r.cfg.PeakStride, r.cfg.PeakTitle
		if g == coords.Bases {
			stride, title = r.cfg.BaseStride, r.cfg.BaseTitle
		}

		var groups []render.Group
		for i, cond := range r.cfg.Conditions {
			// Aggregate at full resolution; decimation is for drawing only.
			seqs, err := coords.LoadReplicates(r.cfg.OutputDir, cond.Name, g, 1)
			if err != nil {
				report.Results[i].Aggregation = append(report.Results[i].Aggregation, fmt.Errorf("%s: %w", g, err))
				continue
			}
			if len(seqs) == 0 {
				continue
			}

			band, err := ribbon.Aggregate(seqs)
			if err != nil {
				log.Printf("%s: leaving it off the %s ribbon: %v", cond.Name, g, err)
				report.Results[i].Aggregation = append(report.Results[i].Aggregation, fmt.Errorf("%s: %w", g, err))
				continue
			}

			band = band.Decimate(stride)
			if band.Len() == 0 {
				log.Printf("%s: no %s points remain at stride %d", cond.Name, g, stride)
				continue
			}

			groups = append(groups, render.Group{Name: cond.Label, Band: band})

			names := make([]string, len(seqs))
			for j := range names {
				names[j] = fmt.Sprintf("Replicate %d", j)
				seqs[j] = coords.Decimate(seqs[j], stride)
			}
			graph, err := render.Curves(fmt.Sprintf("%s (%s)", cond.Label, g), seqs, names)
			if err != nil {
				return err
			}
			if err := r.save(report, fmt.Sprintf("%s_%s_replicates.png", cond.Name, g), graph); err != nil {
				return err
			}
		}

		if len(groups) == 0 {
			log.Printf("no conditions have %s coordinates to draw", g)
			continue
		}

		graph, err := render.Ribbon(title, g, groups)
		if err != nil {
			return err
		}
		if err := r.save(report, RibbonFile(g), graph); err != nil {
			return err
		}
	}

	return nil
}

// renderDistributions draws each condition's ranked test scores, with and
// without axes.
func (r *runner) renderDistributions(report *Report) error {
	for _, cond := range r.cfg.Conditions {
		test, err := r.stores.get(cond.Test, cond.Dialect())
		if err != nil {
			log.Printf("%s: no score distribution: %v", cond.Name, err)
			continue
		}

		scores := roc.RankedScores(test, test.Dialect)
		if len(scores) == 0 || !test.Dialect.HasScore() {
			continue
		}

		if sum, err := roc.Summarize(scores); err == nil {
			log.Printf("%s: %d scores, min %g, median %g, 99th percentile %g, max %g", cond.Name, sum.N, sum.Min, sum.Median, sum.P99, sum.Max)
		}

		if r.opts.Histogram != nil {
			fmt.Fprintf(r.opts.Histogram, "%s\n", cond.Label)
			if err := render.Histogram(r.opts.Histogram, scores); err != nil {
				return err
			}
		}

		for _, labelled := range []bool{true, false} {
			name := cond.Name + "_distribution.png"
			if !labelled {
				name = cond.Name + "_distribution_unlabelled.png"
			}

			graph, err := render.ScoreDistribution(cond.Label, scores, labelled)
			if err != nil {
				return err
			}
			if err := r.save(report, name, graph); err != nil {
				return err
			}
		}
	}

	return nil
}
