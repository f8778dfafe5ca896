package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/text"

	"compendia/internal/enrich"
	"compendia/internal/matching"
)

var statusColors = map[matching.Status]text.Colors{
	matching.StatusAutoAccepted: {text.FgGreen},
	matching.StatusAskAccepted:  {text.FgCyan},
	matching.StatusRejected:     {text.FgYellow},
	matching.StatusSkipped:      {text.Faint},
}

func writeReport(w io.Writer, report *enrich.Report, colorize bool) {
	if report == nil {
		return
	}
	if len(report.Outcomes) == 0 {
		fmt.Fprintf(w, "No outcomes for %d entries\n", report.Entries)
		return
	}

	spec := tableSpec{
		headers: []string{"#", "Entry", "Kind", "Role", "Status", "Candidate", "Score", "Reference", "Reason"},
		aligns:  []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
	}
	for i, o := range report.Outcomes {
		score := ""
		if o.Candidate != "" {
			score = strconv.Itoa(o.Score)
		}
		spec.rows = append(spec.rows, []string{
			strconv.Itoa(i + 1),
			displayName(o.Entry),
			o.Kind,
			string(o.Role),
			string(o.Status),
			o.Candidate,
			score,
			o.Reference,
			o.Reason,
		})
		if colorize {
			spec.colors = append(spec.colors, statusColors[o.Status])
		}
	}
	s := report.Summary
	spec.footer = []string{"", "", "", "", "", "", "", fmt.Sprintf("bound %d", s.Bound()), ""}

	fmt.Fprintln(w, renderTable(spec))
	fmt.Fprintf(w, "Entries: %d  auto: %d  confirmed: %d  rejected: %d  skipped: %d\n",
		report.Entries, s.Auto, s.Confirmed, s.Rejected, s.Skipped)
	if report.AskDisabled {
		fmt.Fprintln(w, "Confirmation prompts were skipped for the rest of the run")
	}
}

// writeReportJSON prints the report for --json. Outcomes keep document order
// so the output can be diffed between runs.
func writeReportJSON(w io.Writer, report *enrich.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

func displayName(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}
