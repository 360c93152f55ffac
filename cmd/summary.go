package cmd

import (
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
)

// renderSummary renders the per-item result table. Rows follow the order the
// items were requested in, not the order work completed in.
func renderSummary(header string, order []string, results map[string]bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{header, "Result"})

	succeeded := 0
	for _, item := range order {
		ok, done := results[item]
		status := "FAILED"
		if ok {
			status = "OK"
			succeeded++
		} else if !done {
			status = "SKIPPED"
		}
		tw.AppendRow(table.Row{filepath.Base(item), status})
	}
	tw.AppendFooter(table.Row{"succeeded", succeeded})
	tw.AppendFooter(table.Row{"failed", len(order) - succeeded})
	return tw.Render()
}

func anyFailed(results map[string]bool) bool {
	for _, ok := range results {
		if !ok {
			return true
		}
	}
	return false
}
