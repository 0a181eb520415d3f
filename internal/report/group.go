// Package report turns parsed scheduler records into the formatted report
// sections: grouped job tables, per-node utilization, reservation summaries,
// and the user-by-status cross-tab.
package report

import (
	"fmt"

	"github.com/ehusby/qreport/internal/config"
	"github.com/ehusby/qreport/internal/pbs"
)

// Mode selects which record columns participate in the grouping key.
type Mode int

const (
	// ByStatus is the default grouping: abbreviation, user, queue, status.
	ByStatus Mode = iota
	// ByBatch groups on abbreviation, user, and queue.
	ByBatch
	// ByNode additionally distinguishes the assigned node.
	ByNode
	// ByUser folds everything a user runs into one row per abbreviation.
	ByUser
)

// GroupKey is the composite grouping key. Struct equality is the group
// identity; fields not selected by the mode stay zero so they cannot
// accidentally split a group.
type GroupKey struct {
	Abbrev string
	User   string
	Queue  string
	Node   string
	Status string
}

// KeyFor derives the grouping key for a record under the given mode. Pure:
// the same record and mode always produce the same key.
func KeyFor(rec *pbs.JobRecord, mode Mode) GroupKey {
	key := GroupKey{Abbrev: rec.Abbrev(), User: rec.User}
	switch mode {
	case ByBatch:
		key.Queue = rec.Queue
	case ByNode:
		key.Queue = rec.Queue
		key.Node = rec.NodeName
	case ByUser:
		// user and abbreviation only
	default:
		key.Queue = rec.Queue
		key.Status = rec.Status
	}
	return key
}

// GroupedRow is one output row of the grouping engine. Last is non-nil only
// in block mode, when the run's last record differs textually from its first;
// the reporter then prints both so the reader sees the run boundaries.
type GroupedRow struct {
	First *pbs.JobRecord
	Last  *pbs.JobRecord
	Count int
}

// CountAll groups records by key irrespective of adjacency: one row per
// distinct key, count = total occurrences, row order = first occurrence.
func CountAll(records []*pbs.JobRecord, mode Mode) []GroupedRow {
	index := map[GroupKey]int{}
	var rows []GroupedRow

	for _, rec := range records {
		key := KeyFor(rec, mode)
		if i, ok := index[key]; ok {
			rows[i].Count++
			continue
		}
		index[key] = len(rows)
		rows = append(rows, GroupedRow{First: rec, Count: 1})
	}

	return rows
}

// Blocks groups records into maximal contiguous runs of equal keys. Equal
// keys separated by a different key stay separate rows. Run tails come from
// the same forward scan applied to the reversed input; a tail whose raw line
// differs from the run's head is attached as Last.
func Blocks(records []*pbs.JobRecord, mode Mode) []GroupedRow {
	heads := runHeads(records, mode)
	tails := runHeads(reversed(records), mode)

	// tails is in reverse run order; flip it so indexes line up with heads.
	for i, j := 0, len(tails)-1; i < j; i, j = i+1, j-1 {
		tails[i], tails[j] = tails[j], tails[i]
	}

	for i := range heads {
		if tails[i].First.Raw != heads[i].First.Raw {
			heads[i].Last = tails[i].First
		}
	}

	return heads
}

// runHeads scans records in order and starts a new row whenever the key
// changes from the immediately preceding record.
func runHeads(records []*pbs.JobRecord, mode Mode) []GroupedRow {
	var rows []GroupedRow

	var prev GroupKey
	for i, rec := range records {
		key := KeyFor(rec, mode)
		if i == 0 || key != prev {
			rows = append(rows, GroupedRow{First: rec, Count: 1})
		} else {
			rows[len(rows)-1].Count++
		}
		prev = key
	}

	return rows
}

func reversed(records []*pbs.JobRecord) []*pbs.JobRecord {
	out := make([]*pbs.JobRecord, len(records))
	for i, rec := range records {
		out[len(records)-1-i] = rec
	}
	return out
}

// Group dispatches to block or count-all aggregation per the report options.
func Group(records []*pbs.JobRecord, mode Mode, opts config.Options) []GroupedRow {
	if opts.UseBlockMode {
		return Blocks(records, mode)
	}
	return CountAll(records, mode)
}

// FilterStaff drops records belonging to staff usernames unless the report
// was asked to include everyone. Input order is preserved.
func FilterStaff(records []*pbs.JobRecord, opts config.Options) []*pbs.JobRecord {
	if opts.IncludeAll {
		return records
	}

	var kept []*pbs.JobRecord
	for _, rec := range records {
		if opts.IsStaff(rec.User) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

// FormatRow renders one report row: a fixed 125-character primary field
// followed by a 7-character count, keeping columns aligned in monospace.
func FormatRow(primary string, count int) string {
	return fmt.Sprintf("%-125s%7d", primary, count)
}
