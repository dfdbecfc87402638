// Package version provides information about the build version of the service.
package version

import "runtime/debug"

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service   string `json:"service" yaml:"service"`
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// Info returns the build information. version, commit and date are set with
//
//	-ldflags "-X 'startupsignal/internal/core/version.version=v0.1.0'
//	          -X 'startupsignal/internal/core/version.commit=abcd'
//	          -X 'startupsignal/internal/core/version.date=2026-01-02'"
//
// Without ldflags the VCS stamp from the go toolchain is used when present.
func Info() BuildInfo {
	bi := BuildInfo{Service: Service, Version: version, Commit: commit, Date: date}
	if info, ok := debug.ReadBuildInfo(); ok {
		bi.GoVersion = info.GoVersion
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && bi.Commit == "none":
				bi.Commit = s.Value
			case s.Key == "vcs.time" && bi.Date == "unknown":
				bi.Date = s.Value
			}
		}
	}
	return bi
}

// Service is the name reported by meta endpoints and the CLI
const Service = "startupsignal"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
