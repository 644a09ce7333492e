package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/carbocation/peakroc"
	"github.com/carbocation/peakroc/roc"
	"github.com/carbocation/pfx"
)

// TestDir holds one called-peak file per condition, named {condition}.bed.
const TestDir = "Test_data"

// LabelDirs hold the labeled replicate files, named {condition}_{replicate}
// with any extension. A replicate's file has the same name in all four.
var LabelDirs = [4]string{"True_Positives", "False_Positives", "True_Negatives", "False_Negatives"}

// Discover builds a Config from the directory layout under root. Conditions
// listed in descending rank larger scores first; all others rank ascending.
// Naming a condition that does not exist is an error.
func Discover(root string, descending []string) (Config, error) {
	root = peakroc.ExpandHome(root)
	out := Config{}

	entries, err := os.ReadDir(filepath.Join(root, TestDir))
	if err != nil {
		return out, pfx.Err(err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".bed") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".bed"))
	}
	if len(names) == 0 {
		return out, pfx.Err(fmt.Errorf("no .bed files in %s", filepath.Join(root, TestDir)))
	}
	sort.Strings(names)

	replicates, err := discoverReplicates(root, names)
	if err != nil {
		return out, err
	}

	isDescending := make(map[string]bool, len(descending))
	for _, name := range descending {
		isDescending[name] = true
	}

	for _, name := range names {
		cond := Condition{
			Name:       name,
			Convention: roc.Ascending,
			Test:       filepath.Join(root, TestDir, name+".bed"),
			Replicates: replicates[name],
		}
		if isDescending[name] {
			cond.Convention = roc.Descending
			delete(isDescending, name)
		}
		out.Conditions = append(out.Conditions, cond)
	}

	if len(isDescending) > 0 {
		unknown := make([]string, 0, len(isDescending))
		for name := range isDescending {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		return out, pfx.Err(fmt.Errorf("no test file for descending conditions %s in %s", strings.Join(unknown, ", "), filepath.Join(root, TestDir)))
	}

	out.ApplyDefaults()

	return out, pfx.Err(out.Validate())
}

// discoverReplicates groups the files of the True_Positives directory by
// condition and pairs each with its namesakes in the other label directories.
func discoverReplicates(root string, names []string) (map[string][]Replicate, error) {
	entries, err := os.ReadDir(filepath.Join(root, LabelDirs[0]))
	if err != nil {
		return nil, pfx.Err(err)
	}

	out := make(map[string][]Replicate)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := owner(entry.Name(), names)
		if name == "" {
			continue
		}

		var paths [4]string
		for i, dir := range LabelDirs {
			paths[i] = filepath.Join(root, dir, entry.Name())
			if _, err := os.Stat(paths[i]); err != nil {
				return nil, pfx.Err(fmt.Errorf("condition %q: %w", name, err))
			}
		}

		out[name] = append(out[name], Replicate{
			TruePositives:  paths[0],
			FalsePositives: paths[1],
			TrueNegatives:  paths[2],
			FalseNegatives: paths[3],
		})
	}

	return out, nil
}

// owner returns the condition that file belongs to: the longest name that
// file starts with, followed by an underscore.
func owner(file string, names []string) string {
	best := ""
	for _, name := range names {
		if strings.HasPrefix(file, name+"_") && len(name) > len(best) {
			best = name
		}
	}
	return best
}
