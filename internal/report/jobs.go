package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ehusby/qreport/internal/config"
	"github.com/ehusby/qreport/internal/pbs"
	"github.com/ehusby/qreport/internal/utils"
)

const bannerWidth = 132

// metadataPlaceholder renders for any run-metadata column that could not be
// traced back to a job log.
const metadataPlaceholder = "--"

// Reporter renders report sections to Out from one scheduler snapshot. The
// job listing is fetched once on first use and shared by every section.
type Reporter struct {
	Source pbs.Source
	Opts   config.Options
	Out    io.Writer

	jobsFetched bool
	jobRecords  []*pbs.JobRecord
}

// NewReporter builds a reporter writing to out.
func NewReporter(src pbs.Source, opts config.Options, out io.Writer) *Reporter {
	return &Reporter{Source: src, Opts: opts, Out: out}
}

// jobs returns the job listing snapshot, fetching it on first call. A failed
// fetch warns and yields an empty snapshot so the section renders empty and
// later sections still run.
func (r *Reporter) jobs() []*pbs.JobRecord {
	if r.jobsFetched {
		return r.jobRecords
	}
	r.jobsFetched = true

	listing, err := r.Source.JobListing()
	if err != nil {
		utils.PrintWarning("Job listing unavailable: %v", err)
		return nil
	}
	r.jobRecords = pbs.ParseJobListing(listing)
	return r.jobRecords
}

// banner prints the fixed-width section header naming the grouping dimension
// and the host the report ran on.
func (r *Reporter) banner(title string) {
	host, err := os.Hostname()
	if err != nil {
		host = "localhost"
	}

	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(r.Out, rule)
	fmt.Fprintf(r.Out, " %s @ %s\n", utils.StyleTitle(title), utils.StyleHost(host))
	fmt.Fprintln(r.Out, rule)
}

// Jobs renders one grouped job table. The extended variant (all-mode) tags
// high-memory jobs and appends run metadata traced from each group's job log.
func (r *Reporter) Jobs(mode Mode, title string) {
	r.banner(title)

	records := FilterStaff(r.jobs(), r.Opts)
	for _, row := range Group(records, mode, r.Opts) {
		line := FormatRow(row.First.Raw, row.Count)
		if r.Opts.IncludeAll {
			line += r.extendedColumns(row.First)
		}
		fmt.Fprintln(r.Out, line)

		// Block boundary: print the run's last record under its first so
		// the reader sees where the run ends.
		if row.Last != nil {
			fmt.Fprintf(r.Out, "%s\n", row.Last.Raw)
		}
	}
	fmt.Fprintln(r.Out)
}

// extendedColumns builds the all-mode row suffix: a high-memory tag plus the
// program, resource, and region metadata recovered from the job's log file.
func (r *Reporter) extendedColumns(rec *pbs.JobRecord) string {
	detail := ""
	if blob, err := r.Source.JobDetail(rec.ID); err == nil {
		detail = blob
	}

	tag := "      "
	if r.isHighMem(rec, detail) {
		tag = fmt.Sprintf("%-6s", r.Opts.HighMemProperty)
	}

	prog, res, region := r.runMetadata(detail)
	return fmt.Sprintf("  %s %-12s %-8s %-8s", tag, prog, res, region)
}

// isHighMem reports whether any node assigned to the job carries the
// high-memory class suffix. The detail XML's <nodes> is authoritative; the
// listing's exec host column is the fallback.
func (r *Reporter) isHighMem(rec *pbs.JobRecord, detail string) bool {
	property := r.Opts.HighMemProperty
	if property == "" {
		return false
	}

	assigned := pbs.ExtractTag(detail, "nodes")
	if assigned == "" {
		assigned = rec.NodeName
	}

	for _, entry := range strings.Split(assigned, "+") {
		host, _, _ := strings.Cut(entry, "/")
		host, _, _ = strings.Cut(host, ":")
		if strings.Contains(host, property) {
			return true
		}
	}
	return false
}

// runMetadata traces a job's submit args back to its log file and pulls the
// structured "## prog=... res=... region=..." comment line out of it. Any
// missing link in the chain yields placeholders.
func (r *Reporter) runMetadata(detail string) (prog, res, region string) {
	prog, res, region = metadataPlaceholder, metadataPlaceholder, metadataPlaceholder

	logPath := logPathFromSubmitArgs(pbs.ExtractTag(detail, "submit_args"))
	if logPath == "" {
		return
	}
	if !strings.HasPrefix(logPath, "/") && r.Opts.LogDir != "" {
		logPath = r.Opts.LogDir + "/" + logPath
	}

	file, err := os.Open(logPath)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "## ") {
			continue
		}
		for _, field := range strings.Fields(line[3:]) {
			key, value, ok := strings.Cut(field, "=")
			if !ok || value == "" {
				continue
			}
			switch key {
			case "prog":
				prog = value
			case "res":
				res = value
			case "region":
				region = value
			}
		}
		return
	}
	return
}

// logPathFromSubmitArgs extracts the value of the -o option, which names the
// job's log file under the submission convention.
func logPathFromSubmitArgs(args string) string {
	fields := strings.Fields(args)
	for i, field := range fields {
		if field == "-o" && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	return ""
}

// Runs renders the active interactive reservations: who holds cores where,
// and how much walltime remains.
func (r *Reporter) Runs() {
	r.banner("Active reservations")

	reservations := pbs.ReservationsFromJobs(r.jobs())
	for _, res := range reservations {
		// Pad before styling so escape codes do not skew the columns.
		user := utils.StyleName(fmt.Sprintf("%-12s", res.User))
		fmt.Fprintf(r.Out, "%-24s %s %3d cores   elapsed %s / %s   remaining %s\n",
			res.JobID, user, res.CoreCount(),
			res.Runtime, res.Walltime, res.Remaining())
	}
	if len(reservations) == 0 {
		fmt.Fprintln(r.Out, "No active reservations.")
	}
	fmt.Fprintln(r.Out)
}
