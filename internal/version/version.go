package version

import "nextseqstats/pkg/api"

// Version is overridden at build time with -ldflags "-X nextseqstats/internal/version.Version=...".
var Version = ""

func Current() string {
	if Version != "" {
		return Version
	}
	return api.Version()
}
