package formatter

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/younsl/initcost/internal/models"
	"github.com/younsl/initcost/pkg/coldstart"
)

// PrintColdStartTable prints the per-function init cost table, already sorted by cost
func PrintColdStartTable(out io.Writer, result *coldstart.Result) {
	// Early return if no results
	if len(result.Records) == 0 {
		fmt.Fprintln(out, "No functions with cold starts found.")
		return
	}

	showRate := false
	for _, r := range result.Records {
		if r.Invocations >= 0 {
			showRate = true
			break
		}
	}

	// Use tabwriter for aligned columns with kubectl style spacing
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)

	header := "FUNCTION\tRUNTIME\tARCH\tMEMORY\tCOLD STARTS\tAVG INIT\tCOST"
	if showRate {
		header += "\tCOLD START %"
	}
	fmt.Fprintln(w, header)

	for _, r := range result.Records {
		row := fmt.Sprintf("%s\t%s\t%s\t%d MB\t%s\t%s ms\t$%s",
			truncateString(r.FunctionName, 50),
			valueOrDash(r.Runtime),
			valueOrDash(r.Architecture),
			r.MemoryMB,
			humanize.Comma(int64(r.ColdStartCount)),
			FormatMillis(r.AvgInitDurationMs),
			FormatUSD(r.MonthlyCostUSD),
		)
		if showRate {
			rate := "-"
			if pct, ok := r.ColdStartRate(); ok {
				rate = pct.StringFixed(2) + "%"
			}
			row += "\t" + rate
		}
		fmt.Fprintln(w, row)
	}

	printColdStartTotals(w, result)

	// Flush the tabwriter buffer
	w.Flush()
}

// printColdStartTotals prints the summary information at the bottom of the table
func printColdStartTotals(w *tabwriter.Writer, result *coldstart.Result) {
	var coldStarts int64
	for _, r := range result.Records {
		coldStarts += int64(r.ColdStartCount)
	}

	fmt.Fprintf(w, "Total: %d functions\t\t\t\t%s\t\t$%s\n",
		len(result.Records),
		humanize.Comma(coldStarts),
		FormatUSD(result.Total),
	)
}

// PrintSkippedSummary prints every skipped function with its reason, then a count per reason
func PrintSkippedSummary(out io.Writer, skipped []models.SkippedFunction) {
	if len(skipped) == 0 {
		return
	}

	reasonCounts := make(map[models.SkipReason]int)
	for _, s := range skipped {
		reasonCounts[s.Reason]++
	}

	var reasons []string
	for reason := range reasonCounts {
		reasons = append(reasons, string(reason))
	}
	sort.Strings(reasons)

	fmt.Fprintln(out, "\n## Skipped Functions")

	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "FUNCTION\tREASON\tDETAIL")
	for _, s := range skipped {
		fmt.Fprintf(w, "%s\t%s\t%s\n", truncateString(s.FunctionName, 50), s.Reason, valueOrDash(s.Detail))
	}
	w.Flush()

	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "REASON\tCOUNT")
	for _, reason := range reasons {
		fmt.Fprintf(w, "%s\t%d\n", reason, reasonCounts[models.SkipReason(reason)])
	}
	w.Flush()
}

// truncateString truncates a string to the given max length and adds "..." if necessary
func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength-3] + "..."
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
