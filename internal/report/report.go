package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/signalnine/olsbench/internal/result"
	"github.com/signalnine/olsbench/internal/stats"
)

type MethodReport struct {
	result.MethodSummary
	VsFastest float64     `json:"vs_fastest"`
	Histogram []stats.Bin `json:"histogram,omitempty"`
}

type Report struct {
	RunID       string             `json:"run_id"`
	Rows        int                `json:"rows"`
	Columns     int                `json:"columns"`
	Trials      int                `json:"trials"`
	ModelMode   string             `json:"model_mode"`
	Methods     []MethodReport     `json:"methods"`
	Comparisons []stats.Comparison `json:"comparisons"`
}

// Generate reads the run stored in runDir and writes a summary report.
// A positive histogramBins adds a histogram per method.
func Generate(runDir, format string, w io.Writer, histogramBins ...int) error {
	run, err := result.ReadRun(runDir)
	if err != nil {
		return err
	}
	bins := 0
	if len(histogramBins) > 0 {
		bins = histogramBins[0]
	}
	return Write(run, format, w, bins)
}

func Write(run *result.Run, format string, w io.Writer, histogramBins int) error {
	rep, err := Build(run, histogramBins)
	if err != nil {
		return err
	}
	switch format {
	case "markdown":
		return writeMarkdown(rep, w)
	case "json":
		return writeJSON(rep, w)
	default:
		return writeTable(rep, w)
	}
}

// Build assembles the report: summaries in run order, the ratio of each mean
// to the fastest mean, and a comparison for every pair of methods.
func Build(run *result.Run, histogramBins int) (*Report, error) {
	if len(run.Summaries) == 0 {
		return nil, fmt.Errorf("run %s has no results to report", run.ID)
	}

	rep := &Report{
		RunID:     run.ID,
		Rows:      run.Config.Rows,
		Columns:   run.Config.Columns,
		Trials:    run.Config.Trials,
		ModelMode: run.Config.ModelMode,
	}

	fastest := findFastest(run.Summaries)
	for _, s := range run.Summaries {
		mr := MethodReport{MethodSummary: s, VsFastest: 1}
		if fastest > 0 {
			mr.VsFastest = s.Mean / fastest
		}
		if histogramBins > 0 {
			buf, _ := run.Buffer(s.Method)
			h, err := stats.Histogram(buf, histogramBins)
			if err != nil {
				return nil, fmt.Errorf("histogram %s: %w", s.Method, err)
			}
			mr.Histogram = h
		}
		rep.Methods = append(rep.Methods, mr)
	}

	for i := 0; i < len(run.Buffers); i++ {
		for j := i + 1; j < len(run.Buffers); j++ {
			a, b := run.Buffers[i], run.Buffers[j]
			c, err := stats.Compare(a.Method, a.Elapsed, b.Method, b.Elapsed)
			if err != nil {
				return nil, err
			}
			rep.Comparisons = append(rep.Comparisons, c)
		}
	}
	return rep, nil
}

func findFastest(summaries []result.MethodSummary) float64 {
	fastest := math.Inf(1)
	for _, s := range summaries {
		if s.Mean > 0 && s.Mean < fastest {
			fastest = s.Mean
		}
	}
	if math.IsInf(fastest, 1) {
		return 0
	}
	return fastest
}

func writeTable(rep *Report, w io.Writer) error {
	fmt.Fprintf(w, "Run %s: n=%d p=%d trials=%d model_mode=%s\n\n",
		rep.RunID, rep.Rows, rep.Columns, rep.Trials, rep.ModelMode)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tTRIALS\tMEAN\tMEDIAN\tSTDDEV\tP95\tMIN\tMAX\tSKEW\tVS FASTEST")
	fmt.Fprintln(tw, strings.Repeat("-", 100))
	for _, m := range rep.Methods {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%.2f\t%.2fx\n",
			m.Method, m.N, formatSeconds(m.Mean), formatSeconds(m.Median), formatSeconds(m.StdDev),
			formatSeconds(m.P95), formatSeconds(m.Min), formatSeconds(m.Max), m.Skewness, m.VsFastest)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(rep.Comparisons) > 0 {
		fmt.Fprintln(w)
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "BASE\tOTHER\tDELTA (MEDIAN)\tP\tVERDICT")
		for _, c := range rep.Comparisons {
			fmt.Fprintf(tw, "%s\t%s\t%+.1f%%\t%.3g\t%s\n", c.Base, c.Other, c.Delta*100, c.P, verdict(c))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	for _, m := range rep.Methods {
		if len(m.Histogram) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", m.Method)
		WriteHistogram(w, m.Histogram)
	}
	return nil
}

func writeMarkdown(rep *Report, w io.Writer) error {
	fmt.Fprintf(w, "## OLS timing: n=%d, p=%d, %d trials\n\n", rep.Rows, rep.Columns, rep.Trials)
	fmt.Fprintln(w, "| Method | Trials | Mean | Median | StdDev | P95 | Skew | vs fastest |")
	fmt.Fprintln(w, "|---|---|---|---|---|---|---|---|")
	for _, m := range rep.Methods {
		fmt.Fprintf(w, "| %s | %d | %s | %s | %s | %s | %.2f | %.2fx |\n",
			m.Method, m.N, formatSeconds(m.Mean), formatSeconds(m.Median),
			formatSeconds(m.StdDev), formatSeconds(m.P95), m.Skewness, m.VsFastest)
	}
	if len(rep.Comparisons) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Base | Other | Delta | p | Verdict |")
		fmt.Fprintln(w, "|---|---|---|---|---|")
		for _, c := range rep.Comparisons {
			fmt.Fprintf(w, "| %s | %s | %+.1f%% | %.3g | %s |\n", c.Base, c.Other, c.Delta*100, c.P, verdict(c))
		}
	}
	return nil
}

func writeJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteHistogram draws bins as rows of '#' scaled to the largest count.
func WriteHistogram(w io.Writer, bins []stats.Bin) {
	const width = 40
	peak := 0
	for _, b := range bins {
		peak = max(peak, b.Count)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', tabwriter.AlignRight)
	for _, b := range bins {
		bar := 0
		if peak > 0 {
			bar = b.Count * width / peak
		}
		fmt.Fprintf(tw, "%s\t - %s\t %d\t %s\n", formatSeconds(b.Lo), formatSeconds(b.Hi), b.Count, strings.Repeat("#", bar))
	}
	tw.Flush()
}

func verdict(c stats.Comparison) string {
	if c.Differ {
		return "differ"
	}
	return "~"
}

func formatSeconds(s float64) string {
	return time.Duration(s * float64(time.Second)).Round(time.Nanosecond).String()
}
