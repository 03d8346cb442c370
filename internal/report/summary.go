package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
)

var summaryHeaders = []string{"Month", "Runs", "Avg density", "Avg clusters PF", "Avg yield"}

// SummaryRows formats months as table cells.
func SummaryRows(months []Month) [][]string {
	rows := make([][]string, 0, len(months))
	for _, m := range months {
		rows = append(rows, []string{
			m.Key,
			strconv.Itoa(m.Runs),
			humanize.CommafWithDigits(m.AvgClusterDensity, 2),
			humanize.CommafWithDigits(m.AvgClustersPassingFilter, 2),
			humanize.CommafWithDigits(m.AvgEstimatedYield, 2),
		})
	}
	return rows
}

// WriteSummary prints the per-month aggregates as a bordered table followed
// by a one-line total.
func WriteSummary(w io.Writer, months []Month, totalRuns int) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(summaryHeaders...).
		Rows(SummaryRows(months)...)
	aggregated := 0
	for _, m := range months {
		aggregated += m.Runs
	}
	_, err := fmt.Fprintf(w, "%s\n%s of %s runs aggregated over %d months\n",
		t.String(), humanize.Comma(int64(aggregated)), humanize.Comma(int64(totalRuns)), len(months))
	return err
}
