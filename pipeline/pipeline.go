// Package pipeline runs every configured condition: it scores each replicate,
// saves the coordinates, and draws the ribbons and score distributions.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/peakroc/bed"
	"github.com/carbocation/peakroc/config"
	"github.com/carbocation/pfx"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	// Recompute scores conditions even when their coordinates are saved.
	Recompute bool

	// Histogram, if set, receives a terminal histogram of each condition's
	// test scores.
	Histogram io.Writer

	// Storage allows gs:// inputs.
	Storage *storage.Client
}

// Result is the outcome for one condition.
type Result struct {
	Condition string

	// Replicates counts the replicates with coordinates saved at one
	// granularity or more.
	Replicates int

	// Reused is set when saved coordinates were found and scoring skipped.
	Reused bool

	// Skipped holds replicates that could not be scored.
	Skipped []error

	// Generation holds the granularities of scored replicates whose points
	// are undefined, such as a peak level with no condition negatives.
	Generation []error

	// Aggregation holds granularities whose replicates could not be
	// combined into a ribbon.
	Aggregation []error

	// Err is set when the condition produced nothing.
	Err error
}

func (r Result) Failed() bool {
	return r.Err != nil
}

type Report struct {
	Results []Result

	// Charts lists every chart written, in order.
	Charts []string
}

// Failed returns the conditions that produced nothing.
func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Failed() {
			out = append(out, res)
		}
	}
	return out
}

type runner struct {
	cfg    config.Config
	opts   Options
	stores *storeCache
}

// Run scores every condition in cfg, up to cfg.Workers at once, and then draws
// the charts. A failing condition is recorded in the Report and does not stop
// the others. The returned error is reserved for failures that stop the whole
// run.
func Run(ctx context.Context, cfg config.Config, opts Options) (Report, error) {
	report := Report{Results: make([]Result, len(cfg.Conditions))}

	if err := cfg.Validate(); err != nil {
		return report, pfx.Err(err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return report, pfx.Err(err)
	}

	r := &runner{
		cfg:    cfg,
		opts:   opts,
		stores: newStoreCache(bed.Loader{Storage: opts.Storage}),
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, cond := range cfg.Conditions {
		i, cond := i, cond
		g.Go(func() error {
			report.Results[i] = r.condition(gctx, cond)

			// Only cancellation stops the other conditions.
			if err := report.Results[i].Err; errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}

	for _, res := range report.Results {
		if res.Failed() {
			log.Printf("%s: %v", res.Condition, res.Err)
		}
	}

	if err := r.renderRibbons(&report); err != nil {
		return report, err
	}

	if cfg.Distribution {
		if err := r.renderDistributions(&report); err != nil {
			return report, err
		}
	}

	return report, nil
}

// Err summarizes the failed conditions of a report as one error, or nil.
func (r Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}

	return fmt.Errorf("%d of %d conditions failed, first %s: %w", len(failed), len(r.Results), failed[0].Condition, failed[0].Err)
}
