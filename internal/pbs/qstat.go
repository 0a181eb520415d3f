package pbs

import (
	"bufio"
	"strings"
)

// Job listing columns, per `qstat -n -1` header:
// Job ID | Username | Queue | Jobname | SessID | NDS | TSK | Memory | Time | S | Time | Node Name
const jobListingFields = 12

// Job states as printed in the listing's S column.
const (
	StateHeld       = "H"
	StateQueued     = "Q"
	StateRunning    = "R"
	StateExiting    = "E"
	StateCompleted  = "C"
	StateTerminated = "T"
	StateWaiting    = "W"
	StateSuspended  = "S"
)

// JobRecord is one row of the tabular job listing. Fields hold the column
// text verbatim; Raw keeps the original line so block boundaries can be
// detected by textual comparison.
type JobRecord struct {
	ID        string // job identifier, e.g. "12345.master"
	User      string
	Queue     string
	Name      string // jobname as submitted
	SessionID string
	Nodes     string // NDS column (nodes requested)
	Tasks     string // TSK column (tasks requested)
	Memory    string // memory requested
	TimeReq   string // requested walltime
	Status    string // single-letter state
	TimeElap  string // elapsed walltime
	NodeName  string // exec host string, or "--" while queued

	Raw string
}

// Abbrev returns the job name with trailing numeric suffixes stripped,
// folding parametrized instances ("proc_012", "proc_013") into one logical
// group.
func (r *JobRecord) Abbrev() string {
	return strings.TrimRight(r.Name, "0123456789")
}

// ParseJobLine parses one line of tabular job listing output. Lines with
// fewer columns than the listing defines fail with a MalformedRecordError;
// callers skip such lines rather than aborting the report.
func ParseJobLine(line string) (*JobRecord, error) {
	fields := strings.Fields(line)
	if len(fields) < jobListingFields {
		return nil, NewMalformedRecordError(line, len(fields), jobListingFields)
	}

	return &JobRecord{
		ID:        fields[0],
		User:      fields[1],
		Queue:     fields[2],
		Name:      fields[3],
		SessionID: fields[4],
		Nodes:     fields[5],
		Tasks:     fields[6],
		Memory:    fields[7],
		TimeReq:   fields[8],
		Status:    fields[9],
		TimeElap:  fields[10],
		NodeName:  strings.Join(fields[11:], " "),
		Raw:       line,
	}, nil
}

// ParseJobListing parses full `qstat -n -1` output into job records,
// preserving listing order. Header, separator, and malformed lines are
// skipped; completed ("C") jobs are excluded before any grouping sees them.
func ParseJobListing(text string) []*JobRecord {
	var records []*JobRecord

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := scanner.Text()
		if isListingChrome(line) {
			continue
		}
		rec, err := ParseJobLine(line)
		if err != nil {
			continue
		}
		if rec.Status == StateCompleted {
			continue
		}
		records = append(records, rec)
	}

	return records
}

// isListingChrome reports whether a line is part of the listing header or
// other non-record output qstat wraps around the table.
func isListingChrome(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	if strings.HasPrefix(trimmed, "-") {
		return true
	}
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "job id") || strings.HasPrefix(lower, "req'd") {
		return true
	}
	// The first line of qstat -n output names the server host.
	if !strings.ContainsAny(trimmed, " \t") {
		return true
	}
	return false
}
