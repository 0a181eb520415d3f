package config

import (
	"os/exec"
)

const VERSION = "1.2.0"

// MinSchedulerVersion is the oldest Torque release the report formats are
// known to parse correctly.
const MinSchedulerVersion = "4.0.0"

// Config holds global application settings
type Config struct {
	Debug   bool
	Quiet   bool
	Version string

	QstatBin    string
	PbsnodesBin string

	StaffUsers      []string
	HighMemProperty string
	LogDir          string
}

// Global holds the singleton configuration instance
var Global Config

// Options carries the per-report settings each reporter receives. Reporters
// never consult mutable globals; the command layer builds one Options value
// per invocation and hands it down.
type Options struct {
	IncludeAll      bool     // include staff users and extended job info
	UseBlockMode    bool     // contiguous-run aggregation instead of count-all-unique
	StaffUsers      []string // administrative usernames excluded from per-user aggregates
	HighMemProperty string   // node property naming the large-memory partition
	LogDir          string   // directory searched for job log files (run metadata)
}

// IsStaff reports whether user is on the administrative allow-list.
func (o Options) IsStaff(user string) bool {
	for _, staff := range o.StaffUsers {
		if user == staff {
			return true
		}
	}
	return false
}

// OptionsFromGlobal builds an Options snapshot from the loaded configuration.
func OptionsFromGlobal(includeAll, useBlockMode bool) Options {
	return Options{
		IncludeAll:      includeAll,
		UseBlockMode:    useBlockMode,
		StaffUsers:      Global.StaffUsers,
		HighMemProperty: Global.HighMemProperty,
		LogDir:          Global.LogDir,
	}
}

// LoadDefaults resets Global to built-in values. Viper overrides are layered
// on afterwards by LoadFromViper.
func LoadDefaults() {
	Global = Config{
		Debug:           false,
		Quiet:           false,
		Version:         VERSION,
		QstatBin:        "qstat",
		PbsnodesBin:     "pbsnodes",
		StaffUsers:      []string{"husby", "cporter"},
		HighMemProperty: "himem",
		LogDir:          "",
	}
}

// ValidateBinary checks if a binary exists and is executable
func ValidateBinary(binPath string) bool {
	if binPath == "" {
		return false
	}
	if _, err := exec.LookPath(binPath); err != nil {
		return false
	}
	return true
}
