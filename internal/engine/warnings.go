package engine

import "github.com/blackwell-systems/codewatch/internal/discover"

// Warning kinds. Only configuration problems abort a scan; everything
// here is recovered and reported alongside the result.
const (
	WarnPathNotFound  = "path_not_found"
	WarnPermission    = "permission"
	WarnParseRecovery = "parse_recovery"
	WarnTimeout       = "timeout"

	// WarnInternal marks a condition the pipeline is supposed to make
	// impossible, kept as a warning so one bad record cannot sink a scan.
	WarnInternal = "internal"
)

// Warning records a recovered condition encountered during a scan.
type Warning struct {
	Kind   string `json:"kind"`
	Path   string `json:"path"`
	Detail string `json:"detail,omitempty"`
}

// fromDiscovery lifts discovery warnings into the scan warning list.
func fromDiscovery(ws []discover.Warning) []Warning {
	out := make([]Warning, 0, len(ws))
	for _, w := range ws {
		out = append(out, Warning{Kind: w.Kind, Path: w.Path, Detail: w.Detail})
	}
	return out
}
