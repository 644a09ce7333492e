package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/carbocation/peakroc/bed"
	"github.com/carbocation/peakroc/config"
	"github.com/carbocation/peakroc/coords"
	"github.com/carbocation/peakroc/roc"
)

// condition scores every replicate of cond and saves their coordinates.
func (r *runner) condition(ctx context.Context, cond config.Condition) Result {
	res := Result{Condition: cond.Name}

	if !r.opts.Recompute && (coords.Exists(r.cfg.OutputDir, cond.Name, coords.Peaks) || coords.Exists(r.cfg.OutputDir, cond.Name, coords.Bases)) {
		log.Printf("%s: reusing saved coordinates in %s", cond.Name, r.cfg.OutputDir)
		res.Reused = true
		return res
	}

	log.Printf("%s: loading test calls from %s", cond.Name, cond.Test)
	test, err := r.stores.get(cond.Test, cond.Dialect())
	if err != nil {
		res.Err = err
		return res
	}
	if !test.Dialect.HasScore() {
		res.Err = fmt.Errorf("test file %s has no score column (dialect %s)", cond.Test, test.Dialect)
		return res
	}

	candidates := r.referenceCandidates(cond)

	// Saved files are numbered without gaps at each granularity, so a
	// replicate that fails does not hide later ones from aggregation.
	slots := make(map[coords.Granularity]int)

	for i, rep := range cond.Replicates {
		if err := ctx.Err(); err != nil {
			res.Err = err
			return res
		}

		saved, generation, err := r.replicate(cond, i, slots, rep, test, candidates)
		res.Generation = append(res.Generation, generation...)
		if err != nil {
			log.Printf("%s replicate %d: %v", cond.Name, i, err)
			res.Skipped = append(res.Skipped, fmt.Errorf("replicate %d: %w", i, err))
			continue
		}
		if saved > 0 {
			res.Replicates++
		}
	}

	if res.Replicates == 0 {
		res.Err = fmt.Errorf("none of %d replicates could be scored", len(cond.Replicates))
	}

	return res
}

// referenceCandidates lists the files that may serve as cond's reference set.
// Without an explicit reference, every condition's test file is tried, the
// condition's own first.
func (r *runner) referenceCandidates(cond config.Condition) []string {
	if cond.Reference != "" {
		return []string{cond.Reference}
	}

	out := []string{cond.Test}
	for _, other := range r.cfg.Conditions {
		if other.Test != cond.Test {
			out = append(out, other.Test)
		}
	}
	return out
}

func (r *runner) partition(rep config.Replicate) (roc.Partition, error) {
	var stores [4]*bed.Store
	for i, path := range rep.Paths() {
		s, err := r.stores.loader.Load(path)
		if err != nil {
			return roc.Partition{}, err
		}
		stores[i] = s
	}

	return roc.Partition{TP: stores[0], FP: stores[1], TN: stores[2], FN: stores[3]}, nil
}

// reference returns the first candidate that p partitions exactly.
func (r *runner) reference(cond string, replicate int, p roc.Partition, candidates []string) (*bed.Store, error) {
	var last error
	for _, path := range candidates {
		ref, err := r.stores.get(path, nil)
		if err != nil {
			log.Printf("%s replicate %d: skipping reference candidate %s: %v", cond, replicate, path, err)
			last = err
			continue
		}

		if err := roc.CheckPartition(p, ref); err != nil {
			log.Printf("%s replicate %d: %s is not the reference: %v", cond, replicate, path, err)
			last = err
			continue
		}

		return ref, nil
	}

	if last == nil {
		last = errors.New("no reference candidates")
	}

	return nil, fmt.Errorf("labeled files partition none of %d reference candidates: %w", len(candidates), last)
}

// replicate scores one replicate at each granularity and saves the points
// in the next free slot. A granularity whose points are undefined is reported
// in generation and does not stop the other. saved counts the granularities
// written.
func (r *runner) replicate(cond config.Condition, i int, slots map[coords.Granularity]int, rep config.Replicate, test *bed.Store, candidates []string) (saved int, generation []error, err error) {
	log.Printf("%s replicate %d: loading labeled files", cond.Name, i)
	p, err := r.partition(rep)
	if err != nil {
		return 0, nil, err
	}

	ref, err := r.reference(cond.Name, i, p, candidates)
	if err != nil {
		return 0, nil, err
	}

	if den, err := roc.Denominators(p, ref, false); err == nil && den.DoubleLabeled > 0 {
		log.Printf("%s replicate %d: %d reference peaks overlap both TP and FN and were counted as positive", cond.Name, i, den.DoubleLabeled)
	}

	levels := []struct {
		g    coords.Granularity
		opts roc.Options
	}{
		{coords.Peaks, roc.Options{Convention: cond.Convention}},
		{coords.Bases, roc.Options{Convention: cond.Convention, ByBase: true, Precise: !r.cfg.CollapseBases}},
	}

	for _, level := range levels {
		log.Printf("%s replicate %d: calculating %s points", cond.Name, i, level.g)
		points, err := roc.GeneratePoints(p, test, ref, level.opts)
		if err != nil {
			log.Printf("%s replicate %d: no %s points: %v", cond.Name, i, level.g, err)
			generation = append(generation, fmt.Errorf("replicate %d %s: %w", i, level.g, err))
			continue
		}

		path := filepath.Join(r.cfg.OutputDir, coords.FileName(cond.Name, slots[level.g], level.g))
		if err := coords.Save(path, points); err != nil {
			return saved, generation, err
		}
		slots[level.g]++
		saved++
	}

	return saved, generation, nil
}
