package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ehusby/qreport/internal/config"
	"github.com/ehusby/qreport/internal/pbs"
)

// snapshotReporter builds a reporter with a pre-seeded job snapshot, skipping
// the source fetch.
func snapshotReporter(jobs []*pbs.JobRecord, opts config.Options, out *bytes.Buffer) *Reporter {
	r := NewReporter(nil, opts, out)
	r.jobsFetched = true
	r.jobRecords = jobs
	return r
}

func TestCrossTab(t *testing.T) {
	jobs := []*pbs.JobRecord{
		job("a1", "alice", "batch", "R", "n001"),
		job("a2", "alice", "batch", "Q", "--"),
		job("b1", "bob", "batch", "R", "n002"),
	}

	var buf bytes.Buffer
	r := snapshotReporter(jobs, config.Options{}, &buf)
	r.Table()

	lines := nonEmptyLines(buf.String())

	header := findLine(t, lines, "USER")
	if !strings.Contains(header, "Queued") || !strings.Contains(header, "Running") {
		t.Errorf("header missing observed columns: %q", header)
	}
	for _, hidden := range []string{"Held", "Exiting", "Completed", "Terminated", "Waiting", "Suspended"} {
		if strings.Contains(header, hidden) {
			t.Errorf("zero-count column %s should be hidden", hidden)
		}
	}
	if !(strings.Index(header, "Queued") < strings.Index(header, "Running")) {
		t.Errorf("columns out of canonical order: %q", header)
	}

	assertCells(t, findLine(t, lines, "alice"), "alice", "1", "1")
	assertCells(t, findLine(t, lines, "bob"), "bob", "0", "1")
	assertCells(t, findLine(t, lines, "TOTAL"), "TOTAL", "1", "2")

	if grand := findLine(t, lines, "Total jobs:"); !strings.HasSuffix(grand, "3") {
		t.Errorf("grand total line = %q, want total 3", grand)
	}
}

func TestCrossTabStaffFilter(t *testing.T) {
	jobs := []*pbs.JobRecord{
		job("a1", "husby", "batch", "R", "n001"),
		job("b1", "alice", "batch", "R", "n002"),
	}
	opts := config.Options{StaffUsers: []string{"husby", "cporter"}}

	var buf bytes.Buffer
	snapshotReporter(jobs, opts, &buf).Table()
	if strings.Contains(buf.String(), "husby") {
		t.Error("staff user should be excluded from the cross-tab")
	}

	buf.Reset()
	opts.IncludeAll = true
	snapshotReporter(jobs, opts, &buf).Table()
	if !strings.Contains(buf.String(), "husby") {
		t.Error("all-mode cross-tab should include staff users")
	}
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func findLine(t *testing.T, lines []string, prefix string) string {
	t.Helper()
	for _, line := range lines {
		if strings.HasPrefix(line, prefix) {
			return line
		}
	}
	t.Fatalf("no line starting with %q", prefix)
	return ""
}

func assertCells(t *testing.T, line string, want ...string) {
	t.Helper()
	fields := strings.Fields(line)
	if len(fields) != len(want) {
		t.Fatalf("line %q has %d fields, want %d", line, len(fields), len(want))
	}
	for i, cell := range want {
		if fields[i] != cell {
			t.Errorf("line %q field %d = %q, want %q", line, i, fields[i], cell)
		}
	}
}
