package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"datascope/adapters/tabular"
	"datascope/domain/stats"
	"datascope/internal/analysis"
	"datascope/internal/power"
	"datascope/internal/profiling"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "datascope",
		Short: "Profile tabular datasets and size controlled experiments",
	}

	rootCmd.AddCommand(
		newProfileCmd(),
		newSampleSizeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// fileProfile pairs one input file with its pipeline output.
type fileProfile struct {
	File         string                   `json:"file"`
	Profile      *stats.Profile           `json:"profile"`
	Dependencies []stats.DependencyMetric `json:"dependencies"`
}

func newProfileCmd() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "profile [files...]",
		Short: "Profile one or more CSV/XLSX files and detect column dependencies",
		Long: `Profile datasets: per-column statistics, pairwise dependencies, and
auto-detected dependent metrics. Files are processed concurrently; each
file gets its own single-threaded pipeline run.

Example: datascope profile experiments.csv metrics.xlsx --target conversion_rate`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]fileProfile, len(args))

			g, _ := errgroup.WithContext(cmd.Context())
			for i, path := range args {
				i, path := i, path
				g.Go(func() error {
					result, err := profileFile(path, target)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					results[i] = result
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			return printJSON(cmd, results)
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "dependent metric column for a target-relative dependency scan")

	return cmd
}

func profileFile(path, target string) (fileProfile, error) {
	ds, err := tabular.NewReader(path).Read()
	if err != nil {
		return fileProfile{}, err
	}
	if err := ds.Validate(); err != nil {
		return fileProfile{}, err
	}

	profiler := profiling.NewProfiler()
	detector := analysis.NewDetector()

	profile := profiler.Profile(ds)
	dependencies := detector.DetectAll(ds, profile)
	if target != "" {
		dependencies = append(dependencies, detector.DetectForTarget(ds, profile, target)...)
	}

	return fileProfile{File: path, Profile: profile, Dependencies: dependencies}, nil
}

func newSampleSizeCmd() *cobra.Command {
	var (
		metricFile string
		metric     string
		mean       float64
		stdDev     float64
		alpha      float64
		powerTgt   float64
		mde        float64
		mdePercent bool
		oneTailed  bool
		arms       int
		alloc      []float64
	)

	cmd := &cobra.Command{
		Use:   "sample-size",
		Short: "Compute required sample sizes for an A/B/n experiment",
		Long: `Compute the Bonferroni-corrected per-arm base sample size and the
variance-adjusted total for every pairwise comparison.

The metric's mean and standard deviation can be given directly, or read
from a numeric column of a dataset via --file and --metric.

Example: datascope sample-size --mean 100 --stddev 20 --mde 5 --mde-percent --arms 2 --alloc 50,50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if metricFile != "" {
				m, sd, err := metricMoments(metricFile, metric)
				if err != nil {
					return err
				}
				mean, stdDev = m, sd
			}

			if len(alloc) == 0 {
				// Equal split by default.
				alloc = make([]float64, arms)
				for i := range alloc {
					alloc[i] = 100 / float64(arms)
				}
			}

			kind := stats.MDEAbsolute
			if mdePercent {
				kind = stats.MDEPercent
			}

			results, err := power.NewCalculator().Calculate(stats.PowerRequest{
				MetricName:    metric,
				Mean:          mean,
				StdDev:        stdDev,
				Alpha:         alpha,
				Power:         powerTgt,
				MDE:           mde,
				MDEKind:       kind,
				TwoTailed:     !oneTailed,
				Arms:          arms,
				AllocationPct: alloc,
			})
			if err != nil {
				return err
			}

			return printJSON(cmd, results)
		},
	}

	cmd.Flags().StringVar(&metricFile, "file", "", "dataset file to read the metric's mean/stddev from")
	cmd.Flags().StringVar(&metric, "metric", "", "metric column name (required with --file)")
	cmd.Flags().Float64Var(&mean, "mean", 0, "metric mean")
	cmd.Flags().Float64Var(&stdDev, "stddev", 0, "metric standard deviation")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "per-family significance level")
	cmd.Flags().Float64Var(&powerTgt, "power", 0.8, "statistical power target")
	cmd.Flags().Float64Var(&mde, "mde", 0, "minimum detectable effect")
	cmd.Flags().BoolVar(&mdePercent, "mde-percent", false, "interpret --mde as percentage of the mean")
	cmd.Flags().BoolVar(&oneTailed, "one-tailed", false, "use a one-tailed test")
	cmd.Flags().IntVar(&arms, "arms", 2, "number of experiment arms")
	cmd.Flags().Float64SliceVar(&alloc, "alloc", nil, "per-arm allocation percentages (must sum to 100)")

	return cmd
}

// metricMoments profiles the file and pulls the named numeric column's
// mean and standard deviation.
func metricMoments(path, metric string) (float64, float64, error) {
	if metric == "" {
		return 0, 0, fmt.Errorf("--metric is required with --file")
	}

	ds, err := tabular.NewReader(path).Read()
	if err != nil {
		return 0, 0, err
	}

	profile := profiling.NewProfiler().Profile(ds)
	st, ok := profile.Statistics(metric)
	if !ok {
		available := make([]string, 0, len(profile.Columns))
		for name := range profile.Columns {
			available = append(available, name)
		}
		sort.Strings(available)
		return 0, 0, fmt.Errorf("column %q not found; dataset has %v", metric, available)
	}
	if st.Type != stats.TypeNumeric {
		return 0, 0, fmt.Errorf("column %q is %s, sample-size planning needs a numeric metric", metric, st.Type)
	}

	return st.Mean, st.StandardDeviation, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
