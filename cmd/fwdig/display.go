// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/siemens/fwdig/types"

	"github.com/muesli/termenv"
)

// renderer renders the report, based on the host version information passed
// to its Render method.
type renderer struct {
	w       io.Writer
	profile termenv.Profile
	quiet   bool     // skip hosts that failed for whatever reason
	spinner *spinner // only while rendering live progress
}

// newRenderer returns a renderer rendering to the specified io.Writer. Colors
// are used only when w is a terminal supporting them.
func newRenderer(w io.Writer, quiet bool) *renderer {
	return &renderer{
		w:       w,
		profile: termenv.NewOutput(w).EnvColorProfile(),
		quiet:   quiet,
	}
}

// Render the given host versions, one line per host.
func (r *renderer) Render(hvs []types.HostVersion) {
	for _, hv := range hvs {
		line := r.hostLine(hv)
		if line == "" {
			continue
		}
		fmt.Fprintln(r.w, line)
	}
}

// hostLine returns the report line for the specified host, or "" if the host
// is to be skipped.
func (r *renderer) hostLine(hv types.HostVersion) string {
	switch {
	case hv.Quality == types.Found:
		return styled(r.profile, foundColor, fmt.Sprintf("IP: %s   |    ILO_Version: %s%s",
			hv.Address, hv.Version, names(hv.Names)))
	case r.quiet && (hv.Quality.IsFailure() || (hv.Quality.IsPending() && r.spinner == nil)):
		return ""
	}
	switch hv.Quality {
	case types.Invalid:
		return styled(r.profile, failedColor, "Invalid IP/CIDR format: "+hv.Text)
	case types.Unreachable:
		return styled(r.profile, failedColor, fmt.Sprintf("IP: %s   |    unreachable%s",
			hv.Address, names(hv.Names)))
	case types.NotFound:
		return styled(r.profile, failedColor, fmt.Sprintf("IP: %s   |    ILO_Version not found%s",
			hv.Address, names(hv.Names)))
	}
	if r.spinner != nil {
		return styled(r.profile, resolvingColor, fmt.Sprintf("IP: %s   |    %squerying...",
			hv.Address, r.spinner.Spinner()))
	}
	return styled(r.profile, resolvingColor, fmt.Sprintf("IP: %s   |    not resolved", hv.Address))
}

// names returns the trailing reverse DNS names column, if there are any names.
func names(n []string) string {
	if len(n) == 0 {
		return ""
	}
	return "   |    DNS: " + strings.Join(n, ", ")
}
