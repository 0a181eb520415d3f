package report

import (
	"fmt"
	"testing"

	"github.com/ehusby/qreport/internal/config"
	"github.com/ehusby/qreport/internal/pbs"
)

// job builds a listing record with a synthetic raw line so block boundaries
// are detectable.
func job(name, user, queue, status, node string) *pbs.JobRecord {
	return &pbs.JobRecord{
		Name:     name,
		User:     user,
		Queue:    queue,
		Status:   status,
		NodeName: node,
		Raw:      fmt.Sprintf("%s %s %s %s %s", name, user, queue, status, node),
	}
}

func TestKeyForModes(t *testing.T) {
	rec := job("proc_012", "alice", "batch", "R", "n001")

	key := KeyFor(rec, ByStatus)
	want := GroupKey{Abbrev: "proc_", User: "alice", Queue: "batch", Status: "R"}
	if key != want {
		t.Errorf("ByStatus key = %+v, want %+v", key, want)
	}

	key = KeyFor(rec, ByBatch)
	want = GroupKey{Abbrev: "proc_", User: "alice", Queue: "batch"}
	if key != want {
		t.Errorf("ByBatch key = %+v, want %+v", key, want)
	}

	key = KeyFor(rec, ByNode)
	want = GroupKey{Abbrev: "proc_", User: "alice", Queue: "batch", Node: "n001"}
	if key != want {
		t.Errorf("ByNode key = %+v, want %+v", key, want)
	}

	key = KeyFor(rec, ByUser)
	want = GroupKey{Abbrev: "proc_", User: "alice"}
	if key != want {
		t.Errorf("ByUser key = %+v, want %+v", key, want)
	}
}

func TestCountAllFirstSeenOrder(t *testing.T) {
	records := []*pbs.JobRecord{
		job("proc_01", "alice", "batch", "R", "n001"),
		job("sim_1", "bob", "batch", "R", "n002"),
		job("proc_02", "alice", "batch", "R", "n003"),
		job("proc_03", "alice", "batch", "Q", "--"),
	}

	rows := CountAll(records, ByBatch)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].First.User != "alice" || rows[0].Count != 3 {
		t.Errorf("row 0 = %s/%d, want alice/3", rows[0].First.User, rows[0].Count)
	}
	if rows[1].First.User != "bob" || rows[1].Count != 1 {
		t.Errorf("row 1 = %s/%d, want bob/1", rows[1].First.User, rows[1].Count)
	}
}

func TestBlocksNeverMergeNonAdjacent(t *testing.T) {
	// Key sequence A, A, B, A: the trailing A must not merge with the run
	// at the front.
	records := []*pbs.JobRecord{
		job("proc_01", "alice", "batch", "R", "n001"),
		job("proc_02", "alice", "batch", "R", "n002"),
		job("sim_1", "bob", "batch", "R", "n003"),
		job("proc_03", "alice", "batch", "R", "n004"),
	}

	rows := Blocks(records, ByBatch)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0].First.User != "alice" || rows[0].Count != 2 {
		t.Errorf("row 0 = %s/%d, want alice/2", rows[0].First.User, rows[0].Count)
	}
	if rows[1].First.User != "bob" || rows[1].Count != 1 {
		t.Errorf("row 1 = %s/%d, want bob/1", rows[1].First.User, rows[1].Count)
	}
	if rows[2].First.User != "alice" || rows[2].Count != 1 {
		t.Errorf("row 2 = %s/%d, want alice/1", rows[2].First.User, rows[2].Count)
	}
}

func TestBlocksRunBoundaries(t *testing.T) {
	records := []*pbs.JobRecord{
		job("proc_01", "alice", "batch", "R", "n001"),
		job("proc_02", "alice", "batch", "R", "n002"),
		job("sim_1", "bob", "batch", "R", "n003"),
	}

	rows := Blocks(records, ByBatch)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	// First run spans two distinct lines: the tail is exposed.
	if rows[0].Last == nil {
		t.Fatal("multi-line run should carry its last record")
	}
	if rows[0].Last.Name != "proc_02" {
		t.Errorf("run tail = %s, want proc_02", rows[0].Last.Name)
	}

	// Single-record run: first and last coincide, no extra row.
	if rows[1].Last != nil {
		t.Errorf("single-record run should not carry a last record, got %s", rows[1].Last.Name)
	}
}

func TestBlocksOnSortedInputMatchesCountAll(t *testing.T) {
	// Already sorted by key: one contiguous run per key, so both modes
	// agree on keys and counts.
	records := []*pbs.JobRecord{
		job("proc_01", "alice", "batch", "R", "n001"),
		job("proc_02", "alice", "batch", "R", "n002"),
		job("sim_1", "bob", "batch", "R", "n003"),
		job("sim_2", "bob", "batch", "R", "n004"),
		job("tile_1", "carol", "longq", "Q", "--"),
	}

	all := CountAll(records, ByBatch)
	blocks := Blocks(records, ByBatch)

	if len(all) != len(blocks) {
		t.Fatalf("row counts differ: count-all %d, blocks %d", len(all), len(blocks))
	}
	for i := range all {
		if KeyFor(all[i].First, ByBatch) != KeyFor(blocks[i].First, ByBatch) {
			t.Errorf("row %d keys differ", i)
		}
		if all[i].Count != blocks[i].Count {
			t.Errorf("row %d counts differ: %d vs %d", i, all[i].Count, blocks[i].Count)
		}
	}
}

func TestFilterStaff(t *testing.T) {
	records := []*pbs.JobRecord{
		job("a", "husby", "batch", "R", "n001"),
		job("b", "alice", "batch", "R", "n002"),
		job("c", "cporter", "batch", "R", "n003"),
		job("d", "bob", "batch", "R", "n004"),
	}
	opts := config.Options{StaffUsers: []string{"husby", "cporter"}}

	kept := FilterStaff(records, opts)
	if len(kept) != 2 {
		t.Fatalf("got %d records, want 2", len(kept))
	}
	if kept[0].User != "alice" || kept[1].User != "bob" {
		t.Errorf("kept = %s, %s; want alice, bob", kept[0].User, kept[1].User)
	}

	opts.IncludeAll = true
	if kept := FilterStaff(records, opts); len(kept) != 4 {
		t.Errorf("all-mode kept %d records, want 4", len(kept))
	}
}

func TestFormatRowWidth(t *testing.T) {
	row := FormatRow("short line", 42)
	if len(row) != 132 {
		t.Errorf("row width = %d, want 132", len(row))
	}
	if row[len(row)-2:] != "42" {
		t.Errorf("count field = %q, want right-aligned 42", row[125:])
	}
}
