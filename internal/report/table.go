package report

import (
	"fmt"

	"github.com/ehusby/qreport/internal/pbs"
)

// statusOrder is the canonical column order of the cross-tab. Columns whose
// total count is zero are hidden.
var statusOrder = []string{
	pbs.StateHeld,
	pbs.StateQueued,
	pbs.StateRunning,
	pbs.StateExiting,
	pbs.StateCompleted,
	pbs.StateTerminated,
	pbs.StateWaiting,
	pbs.StateSuspended,
}

var statusNames = map[string]string{
	pbs.StateHeld:       "Held",
	pbs.StateQueued:     "Queued",
	pbs.StateRunning:    "Running",
	pbs.StateExiting:    "Exiting",
	pbs.StateCompleted:  "Completed",
	pbs.StateTerminated: "Terminated",
	pbs.StateWaiting:    "Waiting",
	pbs.StateSuspended:  "Suspended",
}

const (
	tableUserWidth = 20
	tableColWidth  = 12
)

// Table renders the user-by-status cross-tab: one row per username after the
// staff filter, one column per observed status in canonical order, a TOTAL
// row, and the grand total of all jobs.
func (r *Reporter) Table() {
	r.banner("Jobs by user and status")

	records := FilterStaff(r.jobs(), r.Opts)

	counts := map[string]map[string]int{}
	columnTotals := map[string]int{}
	var users []string

	for _, rec := range records {
		if counts[rec.User] == nil {
			counts[rec.User] = map[string]int{}
			users = append(users, rec.User)
		}
		counts[rec.User][rec.Status]++
		columnTotals[rec.Status]++
	}

	var columns []string
	grandTotal := 0
	for _, status := range statusOrder {
		if columnTotals[status] > 0 {
			columns = append(columns, status)
			grandTotal += columnTotals[status]
		}
	}

	fmt.Fprintf(r.Out, "%-*s", tableUserWidth, "USER")
	for _, status := range columns {
		fmt.Fprintf(r.Out, "%*s", tableColWidth, statusNames[status])
	}
	fmt.Fprintln(r.Out)

	for _, user := range users {
		fmt.Fprintf(r.Out, "%-*s", tableUserWidth, user)
		for _, status := range columns {
			fmt.Fprintf(r.Out, "%*d", tableColWidth, counts[user][status])
		}
		fmt.Fprintln(r.Out)
	}

	fmt.Fprintf(r.Out, "%-*s", tableUserWidth, "TOTAL")
	for _, status := range columns {
		fmt.Fprintf(r.Out, "%*d", tableColWidth, columnTotals[status])
	}
	fmt.Fprintln(r.Out)

	fmt.Fprintf(r.Out, "\nTotal jobs: %d\n\n", grandTotal)
}
