package handlers

import (
	"net/http"
	"os"
	"strings"
	"sync"
)

// BuildVersion is set with -ldflags "-X cinecontext/handlers.BuildVersion=...".
var BuildVersion string

var (
	version     string
	versionOnce sync.Once
)

type VersionResponse struct {
	Version string `json:"version"`
}

// AppVersion returns the linked build version, falling back to version.txt.
func AppVersion() string {
	versionOnce.Do(func() {
		if BuildVersion != "" {
			version = BuildVersion
			return
		}
		for _, p := range []string{"version.txt", "/app/version.txt"} {
			if data, err := os.ReadFile(p); err == nil {
				version = strings.TrimSpace(string(data))
				return
			}
		}
		version = "dev"
	})
	return version
}

func (h *Handlers) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: AppVersion()})
}
