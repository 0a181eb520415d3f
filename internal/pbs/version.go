package pbs

import (
	"os/exec"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

var versionNumberRe = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// SchedulerVersion probes `qstat --version` and extracts the release number.
func (s *CommandSource) SchedulerVersion() (string, error) {
	if s.QstatBin == "" {
		return "", ErrSchedulerNotFound
	}

	output, err := exec.Command(s.QstatBin, "--version").CombinedOutput()
	if err != nil {
		return "", NewSourceError(s.QstatBin+" --version", string(output), err)
	}

	version := versionNumberRe.FindString(string(output))
	if version == "" {
		return "", ErrVersionUnknown
	}
	return version, nil
}

// VersionSupported reports whether a scheduler release meets the minimum the
// report formats are known to parse. Unparseable versions count as
// unsupported so the caller can flag them.
func VersionSupported(version, minimum string) bool {
	v := canonicalVersion(version)
	min := canonicalVersion(minimum)
	if v == "" || min == "" {
		return false
	}
	return semver.Compare(v, min) >= 0
}

// canonicalVersion normalizes a bare release number ("6.1.2") into canonical
// semver form. Returns empty string on failure.
func canonicalVersion(version string) string {
	version = strings.TrimSpace(version)
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return semver.Canonical(version)
}
