// Package config describes which interval files make up each experimental
// condition, either from a JSON file or by discovering the conventional
// directory layout.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/carbocation/peakroc"
	"github.com/carbocation/peakroc/bed"
	"github.com/carbocation/peakroc/coords"
	"github.com/carbocation/peakroc/roc"
	"github.com/carbocation/pfx"
	"gopkg.in/fatih/set.v0"
)

const (
	DefaultPeakTitle = "Peak-level ROC"
	DefaultBaseTitle = "Base-level ROC"
)

// Replicate names the four labeled interval files of one replicate.
type Replicate struct {
	TruePositives  string `json:"true_positives"`
	FalsePositives string `json:"false_positives"`
	TrueNegatives  string `json:"true_negatives"`
	FalseNegatives string `json:"false_negatives"`
}

// Paths lists the replicate's files in LabelDirs order.
func (r Replicate) Paths() [4]string {
	return [4]string{r.TruePositives, r.FalsePositives, r.TrueNegatives, r.FalseNegatives}
}

// Condition is one caller's run: its test calls, how to rank them, and the
// labeled replicates they are scored against.
type Condition struct {
	// Name prefixes the condition's coordinate files.
	Name string `json:"name"`

	// Label is shown in chart legends. Defaults to Name.
	Label string `json:"label"`

	// Convention is required: pvalue (ascending) or idr (descending).
	Convention roc.Convention `json:"convention"`

	Test string `json:"test"`

	// TestDialect forces the test file's dialect. Empty means sniff it.
	TestDialect string `json:"test_dialect"`

	// Reference is the full set that the replicates partition. If empty,
	// each condition's test file is tried in turn.
	Reference string `json:"reference"`

	Replicates []Replicate `json:"replicates"`
}

type Config struct {
	ConfigPath string `json:"-"`

	OutputDir string `json:"output_dir"`
	Workers   int    `json:"workers"`

	// CollapseBases emits one base-level point per ranked region rather
	// than one per base.
	CollapseBases bool `json:"collapse_bases"`

	PeakStride int    `json:"peak_stride"`
	BaseStride int    `json:"base_stride"`
	PeakTitle  string `json:"peak_title"`
	BaseTitle  string `json:"base_title"`

	// Distribution also draws each condition's ranked score distribution.
	Distribution bool `json:"distribution"`

	Conditions []Condition `json:"conditions"`
}

func ParseJSONConfigFromPath(path string) (Config, error) {
	out := Config{ConfigPath: path}

	f, err := os.Open(peakroc.ExpandHome(path))
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	err = json.NewDecoder(f).Decode(&out)
	if err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
			return out, pfx.Err(err)
		}

		return out, pfx.Err(err)
	}

	out.ApplyDefaults()

	return out, pfx.Err(out.Validate())
}

// ApplyDefaults fills unset fields and interprets ~ in every path.
func (c *Config) ApplyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.PeakStride == 0 {
		c.PeakStride = coords.Peaks.Stride()
	}
	if c.BaseStride == 0 {
		c.BaseStride = coords.Bases.Stride()
	}
	if c.PeakTitle == "" {
		c.PeakTitle = DefaultPeakTitle
	}
	if c.BaseTitle == "" {
		c.BaseTitle = DefaultBaseTitle
	}

	// Interpret ~ if present
	c.ConfigPath = peakroc.ExpandHome(c.ConfigPath)
	c.OutputDir = peakroc.ExpandHome(c.OutputDir)

	for i := range c.Conditions {
		cond := &c.Conditions[i]
		if cond.Label == "" {
			cond.Label = cond.Name
		}
		cond.Test = peakroc.ExpandHome(cond.Test)
		cond.Reference = peakroc.ExpandHome(cond.Reference)

		for j := range cond.Replicates {
			rep := &cond.Replicates[j]
			rep.TruePositives = peakroc.ExpandHome(rep.TruePositives)
			rep.FalsePositives = peakroc.ExpandHome(rep.FalsePositives)
			rep.TrueNegatives = peakroc.ExpandHome(rep.TrueNegatives)
			rep.FalseNegatives = peakroc.ExpandHome(rep.FalseNegatives)
		}
	}
}

// Validate checks that the configuration names everything a run needs.
func (c Config) Validate() error {
	if len(c.Conditions) == 0 {
		return errors.New("no conditions configured")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.PeakStride < 0 || c.BaseStride < 0 {
		return fmt.Errorf("strides must not be negative, got peak %d and base %d", c.PeakStride, c.BaseStride)
	}

	seen := set.New(set.NonThreadSafe)
	for i, cond := range c.Conditions {
		if cond.Name == "" {
			return fmt.Errorf("condition %d has no name", i+1)
		}
		if seen.Has(cond.Name) {
			return fmt.Errorf("condition %q is configured more than once", cond.Name)
		}
		seen.Add(cond.Name)

		if err := cond.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func (c Condition) Validate() error {
	if c.Test == "" {
		return fmt.Errorf("condition %q: no test file", c.Name)
	}
	if c.TestDialect != "" {
		if _, ok := bed.DialectByName(c.TestDialect); !ok {
			return fmt.Errorf("condition %q: unknown test dialect %q, expected one of %s", c.Name, c.TestDialect, bed.DialectNames())
		}
	}
	switch c.Convention {
	case roc.Ascending, roc.Descending:
	case roc.ConventionUnset:
		return fmt.Errorf("condition %q: no convention, expected \"convention\": \"pvalue\" or \"idr\"", c.Name)
	default:
		return fmt.Errorf("condition %q: unknown convention %d", c.Name, int(c.Convention))
	}
	if len(c.Replicates) == 0 {
		return fmt.Errorf("condition %q: no replicates", c.Name)
	}

	for i, rep := range c.Replicates {
		for j, path := range rep.Paths() {
			if path == "" {
				return fmt.Errorf("condition %q replicate %d: no %s file", c.Name, i, LabelDirs[j])
			}
		}
	}

	return nil
}

// Dialect returns the forced test dialect, if any.
func (c Condition) Dialect() *bed.Dialect {
	if c.TestDialect == "" {
		return nil
	}
	d, ok := bed.DialectByName(c.TestDialect)
	if !ok {
		return nil
	}
	return &d
}
