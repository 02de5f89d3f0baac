package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/DjordjeVuckovic/tabular-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/tabular-bench/pkg/utils"
)

func WriteTable(r *Report, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	mode := "full"
	if r.Config.FastMode {
		mode = fmt.Sprintf("fast, subsample=%d", r.Config.SubsampleSize)
	}
	fmt.Fprintf(tw, "\n=== Tabular Benchmark (%s) ===\n", mode)
	fmt.Fprintf(tw, "Run %s", r.Meta.RunID)
	if r.Meta.Engine != "" {
		fmt.Fprintf(tw, " engine=%s", r.Meta.Engine)
	}
	fmt.Fprintf(tw, "\n\n")

	writeDatasetTable(tw, r)
	writeSummary(tw, r)
	writeTiming(tw, r)
	writeWarnings(tw, r)

	tw.Flush()
}

func writeDatasetTable(tw *tabwriter.Writer, r *Report) {
	header := []string{"Dataset", "Type", "Inferred", "Perf", "Previous", "Factor", "Fit", "Predict"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, e := range r.Datasets {
		inferred := string(e.InferredProblemType)
		if e.InferredProblemType != e.DeclaredProblemType {
			inferred += " (!)"
		}
		row := []string{
			e.Dataset,
			string(e.DeclaredProblemType),
			inferred,
			fmt.Sprintf("%.4f", e.PerformanceValue),
			fmt.Sprintf("%.4f", e.BaselinePerformance),
			fmtFactor(e.Factor),
			fmtDuration(e.FitDuration),
			fmtDuration(e.PredictDuration),
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writeSummary(tw *tabwriter.Writer, r *Report) {
	fmt.Fprintf(tw, "Average performance: %.4f\t(previous %.4f)\n", r.Summary.Mean, r.Previous.Mean)
	fmt.Fprintf(tw, "Median performance: %.4f\t(previous %.4f)\n", r.Summary.Median, r.Previous.Median)
	fmt.Fprintf(tw, "Worst performance: %.4f\t(previous %.4f)\n", r.Summary.Worst, r.Previous.Worst)

	if !r.Config.StrictRegressionChecks {
		fmt.Fprintf(tw, "Regression checks disabled in fast mode\n\n")
		return
	}
	fmt.Fprintf(tw, "Regression checks (threshold x%.2f)\n", r.Config.Threshold)
	for _, c := range r.Checks {
		status := "OK"
		if c.Regressed {
			status = "REGRESSED"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", c.Name, fmtFactor(c.Factor), status)
	}
	fmt.Fprintln(tw)
}

func writeTiming(tw *tabwriter.Writer, r *Report) {
	if r.Timing.Fit.IsZero() {
		return
	}
	fmt.Fprintln(tw, "Phase\tMin\tMedian\tMax\tMean\tTotal")
	fmt.Fprintln(tw, "---\t---\t---\t---\t---\t---")
	writeTimingRow(tw, "fit", r.Timing.Fit)
	writeTimingRow(tw, "predict", r.Timing.Predict)
	fmt.Fprintln(tw)
}

func writeTimingRow(tw *tabwriter.Writer, phase string, s runner.TimingStats) {
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", phase,
		fmtDuration(s.Min), fmtDuration(s.Median), fmtDuration(s.Max),
		fmtDuration(s.Mean), fmtDuration(s.Total))
}

func writeWarnings(tw *tabwriter.Writer, r *Report) {
	if len(r.Warnings) == 0 {
		fmt.Fprintln(tw, "No warnings")
		return
	}
	fmt.Fprintf(tw, "WARNINGS (%d):\n", len(r.Warnings))
	for i, w := range r.Warnings {
		fmt.Fprintf(tw, "  %d. [%s] %s\n", i+1, w.Kind, w.Message)
	}
}

func fmtFactor(f float64) string {
	return fmt.Sprintf("x%.3f", utils.RoundDecimal(f, 3))
}

func fmtDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
