package report

import (
	"io"

	"github.com/ehusby/qreport/internal/config"
	"github.com/ehusby/qreport/internal/pbs"
)

// Report mode tokens as accepted on the command line.
const (
	ModeNone        = "none"
	ModeRuns        = "runs"
	ModeTable       = "table"
	ModeNodes       = "nodes"
	ModeJobs        = "jobs"
	ModeJobsByBatch = "jobs-by-batch"
	ModeJobsByNode  = "jobs-by-node"
	ModeJobsByUser  = "jobs-by-user"
)

// ModeTokens lists every accepted token, for command-line validation and
// completion.
var ModeTokens = []string{
	ModeNone,
	ModeRuns,
	ModeTable,
	ModeNodes,
	ModeJobs,
	ModeJobsByBatch,
	ModeJobsByNode,
	ModeJobsByUser,
}

// Run sequences the requested report sections in the order their tokens were
// given. No tokens means the default status-grouped summary. Token validity
// is the caller's problem; unknown tokens are skipped here so a validated
// command line can never half-render.
func Run(out io.Writer, src pbs.Source, tokens []string, opts config.Options) {
	if len(tokens) == 0 {
		tokens = []string{ModeNone}
	}

	r := NewReporter(src, opts, out)
	for _, token := range tokens {
		switch token {
		case ModeNone, ModeJobs:
			r.Jobs(ByStatus, "Jobs by status")
		case ModeRuns:
			r.Runs()
		case ModeTable:
			r.Table()
		case ModeNodes:
			r.Nodes()
		case ModeJobsByBatch:
			r.Jobs(ByBatch, "Jobs by batch")
		case ModeJobsByNode:
			r.Jobs(ByNode, "Jobs by node")
		case ModeJobsByUser:
			r.Jobs(ByUser, "Jobs by user")
		}
	}
}
