// Package stats contains pick history calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/wordpick/internal/model"
)

const (
	sparkChars        = " .:-=+*#%@"
	histogramBuckets  = 10
	histogramLabelW   = 9
	minHistogramWidth = 10
	terminalFallbackW = 80
)

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = min(max(idx, 0), len(sparkChars)-1)
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// PoolDepth returns where in its pool a pick landed, from 0 (most common) to 1.
func PoolDepth(p model.Pick) float64 {
	if p.PoolSize <= 1 {
		return 0
	}
	return float64(p.Position) / float64(p.PoolSize-1)
}

// RenderSummary prints overall pick counts.
func RenderSummary(w io.Writer, report Report) error {
	if len(report.Picks) == 0 {
		_, err := fmt.Fprintln(w, "No picks found.")
		return err
	}
	distinct := map[string]struct{}{}
	depths := make([]float64, len(report.Picks))
	var depthSum float64
	for i, p := range report.Picks {
		distinct[p.Word] = struct{}{}
		depths[i] = PoolDepth(p)
		depthSum += depths[i]
	}
	first := report.Picks[0].PickedAt.Local().Format("2006-01-02")
	last := report.Picks[len(report.Picks)-1].PickedAt.Local().Format("2006-01-02")
	lines := []string{
		"Summary",
		fmt.Sprintf("Picks: %d", len(report.Picks)),
		fmt.Sprintf("Distinct words: %d", len(distinct)),
		fmt.Sprintf("Avg pool depth: %.1f%%", depthSum/float64(len(report.Picks))*100),
		fmt.Sprintf("Range: %s .. %s", first, last),
		fmt.Sprintf("Depth trend: %s", Sparkline(depths)),
		"",
	}
	return writeLines(w, lines)
}

// RenderLengthTable prints per-length aggregates.
func RenderLengthTable(w io.Writer, aggs []model.LengthAggregate) error {
	if len(aggs) == 0 {
		return nil
	}
	headers := []string{"Length", "Picks", "Distinct", "Avg position", "Pool", "Candidates"}
	rows := make([][]string, 0, len(aggs))
	for _, a := range aggs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", a.Length),
			fmt.Sprintf("%d", a.Picks),
			fmt.Sprintf("%d", a.Distinct),
			fmt.Sprintf("%.1f", a.AvgPosition),
			fmt.Sprintf("%d", a.MaxPoolSize),
			fmt.Sprintf("%d", a.MaxCandidate),
		})
	}
	lines := []string{"Per Length"}
	lines = append(lines, formatTable(headers, rows, map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true, 5: true})...)
	lines = append(lines, "")
	return writeLines(w, lines)
}

// RenderTopWords prints the most picked words.
func RenderTopWords(w io.Writer, counts []model.WordCount) error {
	if len(counts) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Word, fmt.Sprintf("%d", c.Count)})
	}
	lines := []string{"Top Words"}
	lines = append(lines, formatTable([]string{"Word", "Picks"}, rows, map[int]bool{1: true})...)
	lines = append(lines, "")
	return writeLines(w, lines)
}

// RenderPositionHistogram prints how picks spread across pool depth deciles.
// width <= 0 sizes the bars to the terminal.
func RenderPositionHistogram(w io.Writer, picks []model.Pick, width int) error {
	if len(picks) == 0 {
		return nil
	}
	if width <= 0 {
		width = terminalWidth(w)
	}
	barWidth := max(width-histogramLabelW-8, minHistogramWidth)

	buckets := make([]int, histogramBuckets)
	for _, p := range picks {
		idx := int(PoolDepth(p) * histogramBuckets)
		idx = min(max(idx, 0), histogramBuckets-1)
		buckets[idx]++
	}
	peak := 0
	for _, n := range buckets {
		peak = max(peak, n)
	}

	lines := []string{"Pool Depth"}
	for i, n := range buckets {
		label := fmt.Sprintf("%3d-%3d%%", i*10, (i+1)*10)
		bar := 0
		if peak > 0 {
			bar = int(math.Round(float64(n) / float64(peak) * float64(barWidth)))
		}
		lines = append(lines, fmt.Sprintf("%-*s %s %d", histogramLabelW, label, strings.Repeat("#", bar), n))
	}
	lines = append(lines, "")
	return writeLines(w, lines)
}

// RenderReport prints the full plain-text history report.
func RenderReport(w io.Writer, report Report, width int) error {
	if err := RenderSummary(w, report); err != nil {
		return err
	}
	if len(report.Picks) == 0 {
		return nil
	}
	if err := RenderLengthTable(w, report.Lengths); err != nil {
		return err
	}
	if err := RenderTopWords(w, report.TopWords); err != nil {
		return err
	}
	return RenderPositionHistogram(w, report.Picks, width)
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return terminalFallbackW
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return terminalFallbackW
	}
	return width
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
