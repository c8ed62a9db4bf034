package handler

import (
	"net/http"
	"runtime"
)

// VersionInfo contains version and build information
type VersionInfo struct {
	Service     string `json:"service"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	GoVersion   string `json:"go_version"`
	BuildTime   string `json:"build_time,omitempty"`
	GitCommit   string `json:"git_commit,omitempty"`
}

// Build-time variables (injected via ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unset"
)

// HandleVersion returns version information about the application.
// A version injected at build time wins over the configured one.
// @Summary Build information
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion(service, configuredVersion, environment string) http.HandlerFunc {
	version := Version
	if version == "dev" && configuredVersion != "" {
		version = configuredVersion
	}
	info := VersionInfo{
		Service:     service,
		Version:     version,
		Environment: environment,
		GoVersion:   runtime.Version(),
		BuildTime:   BuildTime,
		GitCommit:   GitCommit,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, info)
	}
}
