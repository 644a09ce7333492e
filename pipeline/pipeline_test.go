package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbocation/peakroc/config"
	"github.com/carbocation/peakroc/coords"
	"github.com/carbocation/peakroc/ribbon"
	"github.com/carbocation/peakroc/roc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two called peaks in narrowPeak form, within a reference of four peaks
// tiling chr1:0-40.
const (
	narrowPeaks = "chr1\t0\t10\tp1\t0\t.\t5\t0.1\t1\t5\n" +
		"chr1\t10\t20\tp2\t0\t.\t5\t0.2\t1\t5\n"
	referencePeaks = "chr1\t0\t10\nchr1\t10\t20\nchr1\t20\t30\nchr1\t30\t40\n"
)

func write(t *testing.T, path, contents string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func replicate(t *testing.T, dir, name, tp, fp, tn, fn string) config.Replicate {
	return config.Replicate{
		TruePositives:  write(t, filepath.Join(dir, "True_Positives", name), tp),
		FalsePositives: write(t, filepath.Join(dir, "False_Positives", name), fp),
		TrueNegatives:  write(t, filepath.Join(dir, "True_Negatives", name), tn),
		FalseNegatives: write(t, filepath.Join(dir, "False_Negatives", name), fn),
	}
}

func fixture(t *testing.T) config.Config {
	dir := t.TempDir()
	test := write(t, filepath.Join(dir, "Test_data", "chipr.bed"), narrowPeaks)
	reference := write(t, filepath.Join(dir, "all.bed"), referencePeaks)

	cfg := config.Config{
		OutputDir:    filepath.Join(dir, "out"),
		Workers:      2,
		PeakStride:   1,
		BaseStride:   1,
		Distribution: true,
		Conditions: []config.Condition{{
			Name:       "chipr",
			Label:      "ChIP-R",
			Convention: roc.Ascending,
			Test:       test,
			Reference:  reference,
			Replicates: []config.Replicate{
				replicate(t, dir, "chipr_0.bed", "chr1\t0\t10\n", "chr1\t10\t20\n", "chr1\t30\t40\n", "chr1\t20\t30\n"),
				replicate(t, dir, "chipr_1.bed", "chr1\t0\t10\n", "chr1\t10\t20\n", "chr1\t20\t40\n", ""),
			},
		}},
	}
	cfg.ApplyDefaults()

	return cfg
}

func TestRun(t *testing.T) {
	cfg := fixture(t)
	hist := &bytes.Buffer{}

	report, err := Run(context.Background(), cfg, Options{Histogram: hist})
	require.NoError(t, err)
	require.NoError(t, report.Err())

	require.Len(t, report.Results, 1)
	res := report.Results[0]
	assert.Equal(t, 2, res.Replicates)
	assert.False(t, res.Reused)
	assert.Empty(t, res.Skipped)
	assert.Empty(t, res.Aggregation)

	peaks, err := coords.LoadReplicates(cfg.OutputDir, "chipr", coords.Peaks, 1)
	require.NoError(t, err)
	require.Len(t, peaks, 2)
	assert.Equal(t, []float64{0, 0.5}, peaks[0].X)
	assert.Equal(t, []float64{0.5, 0.5}, peaks[0].Y)

	// Without FN regions only TP makes a reference peak positive.
	assert.InDeltaSlice(t, []float64{0, 1.0 / 3}, peaks[1].X, 1e-9)
	assert.Equal(t, []float64{1, 1}, peaks[1].Y)

	bases, err := coords.LoadReplicates(cfg.OutputDir, "chipr", coords.Bases, 1)
	require.NoError(t, err)
	require.Len(t, bases, 2)
	assert.Equal(t, 20, bases[0].Len())
	assert.InDelta(t, 0.5, bases[0].Y[9], 1e-9)
	assert.InDelta(t, 0.5, bases[0].X[19], 1e-9)
	assert.InDelta(t, 1, bases[1].Y[9], 1e-9)

	_, err = ribbon.Aggregate(bases)
	require.NoError(t, err)

	for _, name := range []string{
		RibbonFile(coords.Peaks),
		RibbonFile(coords.Bases),
		"chipr_Peaks_replicates.png",
		"chipr_distribution.png",
		"chipr_distribution_unlabelled.png",
	} {
		assert.FileExists(t, filepath.Join(cfg.OutputDir, name))
	}
	assert.Len(t, report.Charts, 6)
	assert.True(t, strings.HasPrefix(hist.String(), "ChIP-R\n"))
}

func TestRunReusesSavedCoordinates(t *testing.T) {
	cfg := fixture(t)

	_, err := Run(context.Background(), cfg, Options{})
	require.NoError(t, err)

	// Break the inputs: a reused condition never reads them.
	require.NoError(t, os.Remove(cfg.Conditions[0].Replicates[0].TruePositives))

	report, err := Run(context.Background(), cfg, Options{})
	require.NoError(t, err)
	assert.True(t, report.Results[0].Reused)
	assert.NoError(t, report.Err())

	report, err = Run(context.Background(), cfg, Options{Recompute: true})
	require.NoError(t, err)
	assert.Len(t, report.Results[0].Skipped, 1)
	assert.Equal(t, 1, report.Results[0].Replicates)
}

func TestRunSkipsReplicatesThatDoNotPartition(t *testing.T) {
	cfg := fixture(t)
	dir := filepath.Dir(cfg.OutputDir)

	// Eight bases short of the reference.
	bad := replicate(t, dir, "chipr_2.bed", "chr1\t0\t10\n", "chr1\t10\t20\n", "chr1\t30\t32\n", "chr1\t20\t30\n")
	cfg.Conditions[0].Replicates = append([]config.Replicate{bad}, cfg.Conditions[0].Replicates...)

	report, err := Run(context.Background(), cfg, Options{})
	require.NoError(t, err)

	res := report.Results[0]
	require.Len(t, res.Skipped, 1)
	var perr *roc.PartitionError
	assert.ErrorAs(t, res.Skipped[0], &perr)
	assert.Equal(t, 2, res.Replicates)
	assert.True(t, coords.Exists(cfg.OutputDir, "chipr", coords.Peaks))
}

func TestRunReportsMismatchedReplicates(t *testing.T) {
	cfg := fixture(t)
	dir := filepath.Dir(cfg.OutputDir)

	// FP covers only 10-15, so this replicate ranks 15 bases, not 20.
	cfg.Conditions[0].Replicates[1] = replicate(t, dir, "chipr_3.bed", "chr1\t0\t10\n", "chr1\t10\t15\n", "chr1\t15\t40\n", "")

	report, err := Run(context.Background(), cfg, Options{})
	require.NoError(t, err)

	res := report.Results[0]
	assert.False(t, res.Failed())
	require.Len(t, res.Aggregation, 1)
	var mismatch *ribbon.LengthMismatchError
	assert.ErrorAs(t, res.Aggregation[0], &mismatch)

	assert.FileExists(t, filepath.Join(cfg.OutputDir, RibbonFile(coords.Peaks)))
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, RibbonFile(coords.Bases)))
}

func TestRunAggregatesBeforeDecimating(t *testing.T) {
	cfg := fixture(t)
	dir := filepath.Dir(cfg.OutputDir)
	cfg.PeakStride, cfg.BaseStride = coords.PeakStride, coords.BaseStride

	// 20 and 15 base-level points both decimate to nothing at the default
	// stride, which must not hide the mismatch.
	cfg.Conditions[0].Replicates[1] = replicate(t, dir, "chipr_3.bed", "chr1\t0\t10\n", "chr1\t10\t15\n", "chr1\t15\t40\n", "")

	report, err := Run(context.Background(), cfg, Options{})
	require.NoError(t, err)

	res := report.Results[0]
	require.Len(t, res.Aggregation, 1)
	var mismatch *ribbon.LengthMismatchError
	require.ErrorAs(t, res.Aggregation[0], &mismatch)
	assert.Equal(t, 1, mismatch.Replicate)
	assert.Equal(t, 15, mismatch.Got)
	assert.Equal(t, 20, mismatch.Want)

	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, RibbonFile(coords.Bases)))
}

func TestRunKeepsBaseLevelWhenPeakLevelIsUndefined(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{
		OutputDir:  filepath.Join(dir, "out"),
		PeakStride: 1,
		BaseStride: 1,
		Conditions: []config.Condition{{
			Name:       "chipr",
			Label:      "ChIP-R",
			Convention: roc.Ascending,
			Test:       write(t, filepath.Join(dir, "Test_data", "chipr.bed"), narrowPeaks),
			Reference:  write(t, filepath.Join(dir, "all.bed"), "chr1\t0\t20\n"),
			Replicates: []config.Replicate{
				// The single reference peak overlaps TP, leaving no
				// negatives at peak level.
				replicate(t, dir, "chipr_0.bed", "chr1\t0\t10\n", "chr1\t10\t20\n", "", ""),
			},
		}},
	}
	cfg.ApplyDefaults()

	report, err := Run(context.Background(), cfg, Options{})
	require.NoError(t, err)

	res := report.Results[0]
	assert.False(t, res.Failed())
	assert.Empty(t, res.Skipped)
	assert.Equal(t, 1, res.Replicates)
	require.Len(t, res.Generation, 1)
	assert.ErrorIs(t, res.Generation[0], roc.ErrNoConditionNegatives)

	assert.False(t, coords.Exists(cfg.OutputDir, "chipr", coords.Peaks))
	bases, err := coords.Load(filepath.Join(cfg.OutputDir, coords.FileName("chipr", 0, coords.Bases)))
	require.NoError(t, err)
	assert.Equal(t, 20, bases.Len())
	assert.InDelta(t, 1, bases.X[19], 1e-9)
	assert.InDelta(t, 1, bases.Y[19], 1e-9)

	assert.FileExists(t, filepath.Join(cfg.OutputDir, RibbonFile(coords.Bases)))
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, RibbonFile(coords.Peaks)))
}

func TestRunFailedConditionDoesNotStopOthers(t *testing.T) {
	cfg := fixture(t)
	cfg.Conditions = append(cfg.Conditions, config.Condition{
		Name:       "missing",
		Label:      "missing",
		Convention: roc.Ascending,
		Test:       filepath.Join(filepath.Dir(cfg.OutputDir), "nope.bed"),
		Replicates: cfg.Conditions[0].Replicates,
	})
	cfg.Distribution = false

	report, err := Run(context.Background(), cfg, Options{})
	require.NoError(t, err)

	require.Len(t, report.Failed(), 1)
	assert.Equal(t, "missing", report.Failed()[0].Condition)
	assert.Error(t, report.Err())
	assert.Equal(t, 2, report.Results[0].Replicates)
}

func TestRunCanceled(t *testing.T) {
	cfg := fixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, cfg, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunFindsReferenceAmongTestFiles(t *testing.T) {
	cfg := fixture(t)
	dir := filepath.Dir(cfg.OutputDir)

	// The reference is also the test file of a second condition.
	cfg.Conditions[0].Reference = ""
	cfg.Conditions = append(cfg.Conditions, config.Condition{
		Name:       "union",
		Label:      "union",
		Convention: roc.Ascending,
		Test:       write(t, filepath.Join(dir, "Test_data", "union.bed"), referencePeaks),
		Replicates: cfg.Conditions[0].Replicates,
	})
	cfg.Distribution = false

	report, err := Run(context.Background(), cfg, Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Results[0].Replicates)
	assert.Empty(t, report.Results[0].Skipped)

	// The union file has no scores to rank.
	assert.True(t, report.Results[1].Failed())
}

func TestReferenceCandidates(t *testing.T) {
	r := &runner{cfg: config.Config{Conditions: []config.Condition{
		{Name: "a", Test: "a.bed"},
		{Name: "b", Test: "b.bed", Reference: "all.bed"},
		{Name: "c", Test: "c.bed"},
	}}}

	assert.Equal(t, []string{"c.bed", "a.bed", "b.bed"}, r.referenceCandidates(r.cfg.Conditions[2]))
	assert.Equal(t, []string{"all.bed"}, r.referenceCandidates(r.cfg.Conditions[1]))
}
