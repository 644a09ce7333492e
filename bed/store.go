package bed

import (
	"fmt"
	"sort"

	"github.com/biogo/store/interval"
)

// Integer-specific intervals, as stored in the per-chromosome trees. index
// points back into Store.regions.
type treeEntry struct {
	Start, End int
	UID        uintptr
	index      int
}

func (e treeEntry) Overlap(b interval.IntRange) bool {
	// Half-open interval indexing.
	return e.End > b.Start && e.Start < b.End
}
func (e treeEntry) ID() uintptr              { return e.UID }
func (e treeEntry) Range() interval.IntRange { return interval.IntRange{Start: e.Start, End: e.End} }

// query is a search range handed to the trees.
type query struct {
	Start, End int
}

func (q query) Overlap(b interval.IntRange) bool {
	return q.End > b.Start && q.Start < b.End
}

// Store holds the regions of one interval file, indexed for overlap queries.
// A Store is not modified after it is built.
type Store struct {
	Path    string
	Dialect Dialect

	regions []Region
	trees   map[string]*interval.IntTree
	bases   int
}

// NewStore indexes regions, which are kept in the given order.
func NewStore(regions []Region) (*Store, error) {
	s := &Store{
		Dialect: Simple,
		regions: regions,
		trees:   make(map[string]*interval.IntTree),
	}

	for i, r := range regions {
		if r.Start > r.End {
			return nil, fmt.Errorf("region %d (%s) has start after end", i, r.Interval)
		}

		// Empty regions can never overlap a query
		if r.Len() == 0 {
			continue
		}

		// New tree for unseen chromosome
		if _, ok := s.trees[r.Chrom]; !ok {
			s.trees[r.Chrom] = &interval.IntTree{}
		}

		if err := s.trees[r.Chrom].Insert(treeEntry{Start: r.Start, End: r.End, UID: uintptr(i), index: i}, true); err != nil {
			return nil, fmt.Errorf("region %d (%s): %w", i, r.Interval, err)
		}

		s.bases += r.Len()
	}

	for k := range s.trees {
		s.trees[k].AdjustRanges()
	}

	return s, nil
}

// Regions returns the stored regions in load order. The slice must not be
// modified.
func (s *Store) Regions() []Region {
	return s.regions
}

// Len is the number of stored regions.
func (s *Store) Len() int {
	return len(s.regions)
}

// TotalBases is the summed length of all stored regions. Regions that overlap
// one another are counted once each.
func (s *Store) TotalBases() int {
	return s.bases
}

// Overlaps checks for overlaps without pulling intervals from the tree.
func (s *Store) Overlaps(iv Interval) bool {
	tree, ok := s.trees[iv.Chrom]
	if !ok || iv.Len() == 0 {
		return false
	}

	overlaps := false
	tree.DoMatching(func(interval.IntInterface) bool {
		overlaps = true
		return true
	}, query{Start: iv.Start, End: iv.End})

	return overlaps
}

// Overlapping returns every stored region that shares a base with iv, each
// paired with the shared sub-interval, ordered by start and then load order.
func (s *Store) Overlapping(iv Interval) []Overlap {
	tree, ok := s.trees[iv.Chrom]
	if !ok || iv.Len() == 0 {
		return nil
	}

	hits := tree.Get(query{Start: iv.Start, End: iv.End})
	if len(hits) == 0 {
		return nil
	}

	out := make([]Overlap, 0, len(hits))
	for _, hit := range hits {
		region := s.regions[hit.(treeEntry).index]
		shared, ok := region.Intersect(iv)
		if !ok {
			continue
		}
		out = append(out, Overlap{Region: region, Interval: shared})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Interval.Start != out[j].Interval.Start {
			return out[i].Interval.Start < out[j].Interval.Start
		}
		return out[i].Region.End < out[j].Region.End
	})

	return out
}
