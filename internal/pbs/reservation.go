package pbs

import (
	"strings"

	"github.com/ehusby/qreport/internal/utils"
)

// reservationJobName is the jobname qsub assigns to interactive sessions.
const reservationJobName = "STDIN"

// Reservation is an active interactive session holding cores on a node.
type Reservation struct {
	JobID    string
	User     string
	Walltime string // requested, HH:MM:SS
	Runtime  string // elapsed, HH:MM:SS
	ExecHost string // exec host string from the listing
}

// ReservationsFromJobs selects the running interactive (STDIN) jobs out of a
// job listing. Queued sessions hold nothing yet and are not overlaid.
func ReservationsFromJobs(jobs []*JobRecord) []Reservation {
	var reservations []Reservation

	for _, job := range jobs {
		if job.Name != reservationJobName || job.Status != StateRunning {
			continue
		}
		reservations = append(reservations, Reservation{
			JobID:    job.ID,
			User:     job.User,
			Walltime: job.TimeReq,
			Runtime:  job.TimeElap,
			ExecHost: job.NodeName,
		})
	}

	return reservations
}

// OnNode reports whether the reservation holds slots on the named node.
func (r Reservation) OnNode(node string) bool {
	for _, host := range execHosts(r.ExecHost) {
		if host == node {
			return true
		}
	}
	return false
}

// CoreCount returns the number of slots the reservation holds.
func (r Reservation) CoreCount() int {
	hosts := strings.TrimSpace(r.ExecHost)
	if hosts == "" || hosts == "--" {
		return 0
	}
	return len(strings.Split(hosts, "+"))
}

// Remaining returns the wall-clock time left on the reservation, formatted
// HH:MM:SS. Unparseable walltime or runtime yields "--".
func (r Reservation) Remaining() string {
	wall, err := utils.ParseHMS(r.Walltime)
	if err != nil {
		return "--"
	}
	run, err := utils.ParseHMS(r.Runtime)
	if err != nil {
		return "--"
	}
	return utils.FormatHMS(wall - run)
}

// execHosts splits an exec host string ("n001/0+n001/1+n002/0") into its
// node names.
func execHosts(execHost string) []string {
	execHost = strings.TrimSpace(execHost)
	if execHost == "" || execHost == "--" {
		return nil
	}

	var hosts []string
	for _, entry := range strings.Split(execHost, "+") {
		host, _, _ := strings.Cut(entry, "/")
		if host != "" {
			hosts = append(hosts, host)
		}
	}
	return hosts
}
