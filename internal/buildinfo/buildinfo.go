// Package buildinfo holds values stamped at build time with
// -ldflags "-X github.com/killallgit/voicenotes-api/internal/buildinfo.Version=..."
package buildinfo

import "runtime"

// Name is the service name reported by the API and CLI
const Name = "Voice Notes API"

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// Info is the build description returned by the version endpoint
type Info struct {
	Name      string `json:"name" example:"Voice Notes API"`
	Version   string `json:"version" example:"1.0.0"`
	GitCommit string `json:"commit" example:"a1b2c3d"`
	BuildTime string `json:"buildTime" example:"2026-01-01T00:00:00Z"`
	GoVersion string `json:"goVersion" example:"go1.24.0"`
	Platform  string `json:"platform" example:"linux/amd64"`
}

// Get returns the current build info
func Get() Info {
	return Info{
		Name:      Name,
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}
