package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ehusby/qreport/internal/config"
	"github.com/ehusby/qreport/internal/pbs"
)

func TestLogPathFromSubmitArgs(t *testing.T) {
	tests := []struct {
		args string
		want string
	}{
		{"-l nodes=1:ppn=4 -o /logs/run_012.log -q batch", "/logs/run_012.log"},
		{"-q batch", ""},
		{"-o", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := logPathFromSubmitArgs(tt.args); got != tt.want {
			t.Errorf("logPathFromSubmitArgs(%q) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestRunMetadata(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "run_012.log")
	content := "starting up\n## prog=setsm res=2m region=arctic\nmore output\n"
	if err := os.WriteFile(logPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewReporter(nil, config.Options{}, nil)
	detail := "<submit_args>-o " + logPath + "</submit_args>"

	prog, res, region := r.runMetadata(detail)
	if prog != "setsm" || res != "2m" || region != "arctic" {
		t.Errorf("metadata = %q/%q/%q, want setsm/2m/arctic", prog, res, region)
	}
}

func TestRunMetadataMissingLog(t *testing.T) {
	r := NewReporter(nil, config.Options{}, nil)
	detail := "<submit_args>-o /nonexistent/run.log</submit_args>"

	prog, res, region := r.runMetadata(detail)
	if prog != "--" || res != "--" || region != "--" {
		t.Errorf("metadata = %q/%q/%q, want placeholders", prog, res, region)
	}

	// No submit args at all degrades the same way.
	prog, res, region = r.runMetadata("")
	if prog != "--" || res != "--" || region != "--" {
		t.Errorf("metadata without submit_args = %q/%q/%q, want placeholders", prog, res, region)
	}
}

func TestRunMetadataRelativeLogPath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "run.log"), []byte("## prog=p res=r region=g\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewReporter(nil, config.Options{LogDir: dir}, nil)
	prog, res, region := r.runMetadata("<submit_args>-o run.log</submit_args>")
	if prog != "p" || res != "r" || region != "g" {
		t.Errorf("metadata = %q/%q/%q, want p/r/g", prog, res, region)
	}
}

func TestIsHighMem(t *testing.T) {
	opts := config.Options{HighMemProperty: "himem"}
	r := NewReporter(nil, opts, nil)

	rec := job("proc_01", "alice", "batch", "R", "n001/0")
	if r.isHighMem(rec, "<nodes>himem02:ppn=16</nodes>") != true {
		t.Error("detail nodes naming a himem host should tag the job")
	}
	if r.isHighMem(rec, "<nodes>n042:ppn=4</nodes>") != false {
		t.Error("plain host should not tag the job")
	}

	// No detail: fall back to the listing's exec host column.
	himemRec := job("proc_02", "alice", "batch", "R", "himem01/0+himem01/1")
	if r.isHighMem(himemRec, "") != true {
		t.Error("listing exec host naming a himem node should tag the job")
	}

	r.Opts.HighMemProperty = ""
	if r.isHighMem(himemRec, "") != false {
		t.Error("no configured property means no tag")
	}
}

func TestJobsBlockModePrintsRunTail(t *testing.T) {
	jobs := []*pbs.JobRecord{
		job("proc_01", "alice", "batch", "R", "n001"),
		job("proc_02", "alice", "batch", "R", "n002"),
		job("sim_1", "bob", "batch", "R", "n003"),
	}

	var buf bytes.Buffer
	r := snapshotReporter(jobs, config.Options{UseBlockMode: true}, &buf)
	r.Jobs(ByBatch, "Jobs by batch")

	out := buf.String()
	if !strings.Contains(out, jobs[0].Raw) {
		t.Error("run head missing from output")
	}
	if !strings.Contains(out, jobs[1].Raw) {
		t.Error("run tail missing from output")
	}
	if !strings.Contains(out, jobs[2].Raw) {
		t.Error("second run missing from output")
	}
}

func TestRunsSection(t *testing.T) {
	jobs := []*pbs.JobRecord{
		{ID: "102.m", User: "bob", Name: "STDIN", Status: "R",
			TimeReq: "02:00:00", TimeElap: "01:15:30", NodeName: "n001/0+n001/1"},
	}

	var buf bytes.Buffer
	snapshotReporter(jobs, config.Options{}, &buf).Runs()

	out := buf.String()
	if !strings.Contains(out, "bob") {
		t.Error("reservation holder missing")
	}
	if !strings.Contains(out, "00:44:30") {
		t.Errorf("remaining time missing from output:\n%s", out)
	}

	buf.Reset()
	snapshotReporter(nil, config.Options{}, &buf).Runs()
	if !strings.Contains(buf.String(), "No active reservations") {
		t.Error("empty reservation list should say so")
	}
}
