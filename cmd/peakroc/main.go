// peakroc draws sensitivity/specificity (ROC) ribbons that compare peak
// callers against labeled replicate benchmarks, at peak and at base
// resolution.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/peakroc"
	"github.com/carbocation/peakroc/compileinfo"
	"github.com/carbocation/peakroc/config"
	"github.com/carbocation/peakroc/pipeline"
)

// Special value that is to be set using ldflags
// E.g.: go build -ldflags "-X main.builddate=`date -u +%Y-%m-%d:%H:%M:%S%Z`"
var builddate string

func main() {
	var (
		configPath   string
		discoverRoot string
		idr          string
		outputDir    string
		workers      int
		collapse     bool
		recompute    bool
		distribution bool
		histogram    bool
		version      bool
	)

	flag.StringVar(&configPath, "config", "", "Path to a JSON file naming each condition's test, reference and labeled replicate files.")
	flag.StringVar(&discoverRoot, "discover", "", "Instead of -config, find conditions under this folder: Test_data/{condition}.bed with replicates in True_Positives, False_Positives, True_Negatives and False_Negatives.")
	flag.StringVar(&idr, "idr", "", "With -discover, comma-separated conditions whose larger scores rank first, such as IDR calls. All others rank smaller scores first.")
	flag.StringVar(&outputDir, "out", "", "Folder for coordinate files and charts. Overrides the config's output_dir.")
	flag.IntVar(&workers, "workers", 0, "Number of conditions to score at once. Overrides the config's workers.")
	flag.BoolVar(&collapse, "collapse", false, "Emit one base-level point per ranked region instead of one per base.")
	flag.BoolVar(&recompute, "recompute", false, "Score every condition even if its coordinate files already exist.")
	flag.BoolVar(&distribution, "distribution", false, "Also draw each condition's ranked score distribution.")
	flag.BoolVar(&histogram, "histogram", false, "Print a histogram of each condition's test scores to stderr. Implies -distribution.")
	flag.BoolVar(&version, "version", false, "Print build information and exit.")
	flag.Parse()

	if version {
		compileinfo.Fprint(os.Stdout, builddate)
		return
	}
	compileinfo.Fprint(os.Stderr, builddate)

	if (configPath == "") == (discoverRoot == "") {
		fmt.Fprintln(os.Stderr, "Pass exactly one of -config or -discover")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := loadConfig(configPath, discoverRoot, idr)
	if err != nil {
		log.Fatalln(err)
	}

	if outputDir != "" {
		cfg.OutputDir = peakroc.ExpandHome(outputDir)
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if collapse {
		cfg.CollapseBases = true
	}
	if distribution || histogram {
		cfg.Distribution = true
	}

	opts := pipeline.Options{Recompute: recompute}
	if histogram {
		opts.Histogram = os.Stderr
	}

	// Initialize the Google Storage client, but only if some input points
	// to a Google Storage path.
	if usesGoogleStorage(cfg) {
		opts.Storage, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
		defer opts.Storage.Close()
	}

	log.Printf("Scoring %d conditions with %d workers, writing to %s\n", len(cfg.Conditions), cfg.Workers, cfg.OutputDir)

	report, err := pipeline.Run(context.Background(), cfg, opts)
	if err != nil {
		log.Fatalln(err)
	}

	for _, res := range report.Results {
		switch {
		case res.Failed():
			log.Printf("%s: failed: %v\n", res.Condition, res.Err)
		case res.Reused:
			log.Printf("%s: reused saved coordinates\n", res.Condition)
		default:
			log.Printf("%s: %d replicates scored, %d skipped\n", res.Condition, res.Replicates, len(res.Skipped))
		}
		for _, err := range append(res.Generation, res.Aggregation...) {
			log.Printf("%s: %v\n", res.Condition, err)
		}
	}
	log.Printf("Wrote %d charts\n", len(report.Charts))

	if err := report.Err(); err != nil {
		log.Fatalln(err)
	}
}

func loadConfig(configPath, discoverRoot, idr string) (config.Config, error) {
	if configPath != "" {
		return config.ParseJSONConfigFromPath(configPath)
	}

	var descending []string
	for _, name := range strings.Split(idr, ",") {
		if name = strings.TrimSpace(name); name != "" {
			descending = append(descending, name)
		}
	}

	return config.Discover(discoverRoot, descending)
}

func usesGoogleStorage(cfg config.Config) bool {
	for _, cond := range cfg.Conditions {
		paths := []string{cond.Test, cond.Reference}
		for _, rep := range cond.Replicates {
			p := rep.Paths()
			paths = append(paths, p[:]...)
		}

		for _, path := range paths {
			if peakroc.IsGSPath(path) {
				return true
			}
		}
	}

	return false
}
