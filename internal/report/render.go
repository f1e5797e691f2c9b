package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"scantidy/internal/plan"
)

// Render writes the human-readable review report.
func Render(w io.Writer, summary Summary) {
	fmt.Fprintf(w, "Subject %s, session %s (%s)\n", summary.Subject, summary.SessionLabel, summary.SessionDate)
	fmt.Fprintf(w, "Run %s\n\n", summary.RunID)

	fmt.Fprintln(w, renderScanTable(summary.Scans))

	if len(summary.Findings) == 0 {
		fmt.Fprintln(w, "\nNo findings; session metadata is consistent.")
	} else {
		fmt.Fprintln(w)
		fmt.Fprintln(w, renderFindingTable(summary.Findings))
	}

	fmt.Fprintln(w)
	renderPlan(w, summary.Plan)
}

// RenderExecution writes the per-item outcome report after an apply.
func RenderExecution(w io.Writer, execReport plan.Report) {
	tw := newTable()
	tw.AppendHeader(table.Row{"Scan", "Field", "New Value", "Outcome", "Reason"})
	for _, result := range execReport.Results {
		tw.AppendRow(table.Row{
			result.Item.ScanID,
			result.Item.Field,
			result.Item.NewValue,
			string(result.Outcome),
			result.Reason,
		})
	}
	fmt.Fprintln(w, tw.Render())
	fmt.Fprintf(w, "applied %d, skipped %d, failed %d\n",
		execReport.Count(plan.OutcomeSuccess),
		execReport.Count(plan.OutcomeSkipped),
		execReport.Count(plan.OutcomeFailed),
	)
}

func renderScanTable(scans []ScanSummary) string {
	tw := newTable()
	tw.AppendHeader(table.Row{"Scan", "Type", "Series Description", "Modality", "Quality", "Frames"})
	for _, scan := range scans {
		frames := ""
		if scan.Frames > 0 {
			frames = strconv.Itoa(scan.Frames)
		}
		tw.AppendRow(table.Row{scan.ID, scan.Type, scan.SeriesDescription, scan.Modality, scan.Quality, frames})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 6, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func renderFindingTable(findings []FindingSummary) string {
	tw := newTable()
	tw.AppendHeader(table.Row{"Scan", "Finding", "Detail"})
	for _, finding := range findings {
		scanID := finding.ScanID
		if scanID == "" {
			scanID = "(session)"
		}
		detail := finding.Detail
		if finding.NewType != "" {
			detail = fmt.Sprintf("%s -> %s", detail, finding.NewType)
		}
		tw.AppendRow(table.Row{scanID, finding.Kind, detail})
	}
	return tw.Render()
}

func renderPlan(w io.Writer, built plan.Plan) {
	if built.Empty() {
		fmt.Fprintln(w, "Plan: no changes proposed.")
		return
	}
	tw := newTable()
	tw.AppendHeader(table.Row{"Bucket", "Scan", "Field", "Current", "Proposed", "Reason"})
	for _, item := range built.Unusable {
		tw.AppendRow(table.Row{"unusable", item.ScanID, item.Field, item.CurrentValue, item.NewValue, item.Reason})
	}
	for _, item := range built.Rename {
		tw.AppendRow(table.Row{"rename", item.ScanID, item.Field, item.CurrentValue, item.NewValue, item.Reason})
	}
	fmt.Fprintln(w, tw.Render())
	fmt.Fprintf(w, "%d proposed change(s); run 'scantidy apply' to execute.\n", built.ItemCount())
}

func newTable() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	return tw
}
