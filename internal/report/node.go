package report

import (
	"fmt"
	"strings"

	"github.com/ehusby/qreport/internal/pbs"
	"github.com/ehusby/qreport/internal/utils"
)

// Nodes renders the utilization report. The unfiltered cluster section comes
// first; when a high-memory property is configured, a second section covers
// that partition, where nodes hosting zero jobs are suppressed.
func (r *Reporter) Nodes() {
	r.nodeSection("Node utilization", "")
	if r.Opts.HighMemProperty != "" {
		r.nodeSection("High-memory nodes ("+r.Opts.HighMemProperty+")", r.Opts.HighMemProperty)
	}
}

// nodeSection prints one node table, optionally restricted to nodes carrying
// the given property. Property-class nodes are only interesting when
// occupied, so the filtered section drops idle ones.
func (r *Reporter) nodeSection(title, property string) {
	r.banner(title)

	listing, err := r.Source.NodeListing(property)
	if err != nil {
		utils.PrintWarning("Node listing unavailable: %v", err)
		fmt.Fprintln(r.Out)
		return
	}

	jobUsers := map[string]string{}
	for _, job := range r.jobs() {
		jobUsers[job.ID] = job.User
	}
	reservations := pbs.ReservationsFromJobs(r.jobs())

	for _, node := range pbs.ParseNodeXML(listing) {
		jobIDs := pbs.ActiveJobIDs(node.JobSlots)
		if property != "" && len(jobIDs) == 0 {
			continue
		}
		fmt.Fprintln(r.Out, r.nodeLine(node, jobIDs, jobUsers, reservations))
	}
	fmt.Fprintln(r.Out)
}

// nodeLine formats one node row: name, state label, memory, core usage, job
// count, per-user breakdown, and any reservation notes.
func (r *Reporter) nodeLine(node *pbs.NodeRecord, jobIDs []string, jobUsers map[string]string, reservations []pbs.Reservation) string {
	// Pad before styling: ANSI escapes must not count toward column width.
	name := utils.StyleName(fmt.Sprintf("%-16s", node.Name))
	state := utils.StyleState(fmt.Sprintf("%-12s", node.DerivedState()))

	line := fmt.Sprintf("%s %s %4d/%-4d GB %4d/%-4d procs %4d jobs   %s",
		name, state,
		node.AvailMemGB, node.TotalMemGB,
		node.UsedProcs(), node.TotalProcs,
		len(jobIDs),
		r.userBreakdown(jobIDs, jobUsers))

	for _, res := range reservations {
		if res.OnNode(node.Name) {
			note := fmt.Sprintf(" [reserved: %s, %d cores, %s remaining]",
				res.User, res.CoreCount(), res.Remaining())
			line += utils.StyleNote(note)
		}
	}
	return line
}

// userBreakdown counts the node's resident jobs per user, cross-referencing
// slot job ids against the live job listing. Staff users are dropped unless
// the report includes everyone; jobs the listing no longer knows are counted
// under "?".
func (r *Reporter) userBreakdown(jobIDs []string, jobUsers map[string]string) string {
	counts := map[string]int{}
	var order []string

	for _, id := range jobIDs {
		user, ok := jobUsers[id]
		if !ok {
			user = "?"
		}
		if user != "?" && !r.Opts.IncludeAll && r.Opts.IsStaff(user) {
			continue
		}
		if counts[user] == 0 {
			order = append(order, user)
		}
		counts[user]++
	}

	parts := make([]string, 0, len(order))
	for _, user := range order {
		parts = append(parts, fmt.Sprintf("%s:%d", user, counts[user]))
	}
	return strings.Join(parts, " ")
}
