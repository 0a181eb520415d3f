// Package pbs queries and parses PBS/Torque scheduler state. The scheduler
// CLI is an external collaborator: everything here consumes the text and XML
// it prints, and Source implementations are swapped for canned text in tests.
package pbs

import (
	"os/exec"
	"strings"
	"sync"

	"github.com/ehusby/qreport/internal/config"
	"github.com/ehusby/qreport/internal/utils"
)

// Source supplies raw scheduler state. Each method is one blocking query;
// a failed query yields an error the reporters degrade on (empty section)
// rather than abort.
type Source interface {
	// JobListing returns the tabular job listing (qstat -n -1).
	JobListing() (string, error)

	// JobDetail returns the XML detail blob for one job (qstat -x <id>).
	JobDetail(jobID string) (string, error)

	// NodeListing returns node XML (pbsnodes -x), optionally filtered to
	// nodes carrying the given property.
	NodeListing(property string) (string, error)
}

// CommandSource shells out to the scheduler binaries.
type CommandSource struct {
	QstatBin    string
	PbsnodesBin string
}

// NewCommandSource builds a CommandSource from the loaded configuration.
func NewCommandSource() *CommandSource {
	return &CommandSource{
		QstatBin:    config.Global.QstatBin,
		PbsnodesBin: config.Global.PbsnodesBin,
	}
}

// JobListing runs `qstat -n -1` and returns its output.
func (s *CommandSource) JobListing() (string, error) {
	return s.run(s.QstatBin, "-n", "-1")
}

// JobDetail runs `qstat -x <id>` and returns the job's XML blob.
func (s *CommandSource) JobDetail(jobID string) (string, error) {
	return s.run(s.QstatBin, "-x", jobID)
}

// NodeListing runs `pbsnodes -x`, with an optional :property node filter.
func (s *CommandSource) NodeListing(property string) (string, error) {
	if property != "" {
		return s.run(s.PbsnodesBin, "-x", ":"+property)
	}
	return s.run(s.PbsnodesBin, "-x")
}

func (s *CommandSource) run(bin string, args ...string) (string, error) {
	if bin == "" {
		return "", ErrSchedulerNotFound
	}

	cmdline := bin + " " + strings.Join(args, " ")
	utils.PrintDebug("Executing: %s", cmdline)

	output, err := exec.Command(bin, args...).Output()
	if err != nil {
		return "", NewSourceError(cmdline, string(output), err)
	}
	return string(output), nil
}

var (
	activeSource Source
	sourceMu     sync.RWMutex
)

// SetActiveSource configures the source instance the application should use.
// Passing nil clears any previously configured source.
func SetActiveSource(s Source) {
	sourceMu.Lock()
	defer sourceMu.Unlock()
	activeSource = s
}

// ActiveSource returns the currently configured source, falling back to a
// CommandSource built from the loaded configuration.
func ActiveSource() Source {
	sourceMu.RLock()
	defer sourceMu.RUnlock()
	if activeSource != nil {
		return activeSource
	}
	return NewCommandSource()
}
