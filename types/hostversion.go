// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

// HostVersion represents a single line of input together with the host
// address it names, and the quality and outcome of the firmware version query
// for this host.
type HostVersion struct {
	Line    int      `json:"line"`            // 1-based input line number
	Text    string   `json:"text"`            // the input line as read (trimmed)
	Address string   `json:"address"`         // bare address, without any CIDR suffix
	Family  Family   `json:"family"`          // address family, if valid
	Prefix  int      `json:"prefix"`          // CIDR prefix length, or -1
	Quality Quality  `json:"quality"`         // query state or final verdict
	Version string   `json:"version"`         // firmware version, if Found
	Scheme  string   `json:"scheme"`          // scheme of the (last) attempt
	Names   []string `json:"names,omitempty"` // optional reverse DNS names
	err     error    // optional error details for failed queries
}

// Err returns an optional error that occurred while trying to validate the
// input line or to query the host.
func (hv HostVersion) Err() error { return hv.err }

// HasPrefix returns true if the input line carried a CIDR suffix.
func (hv HostVersion) HasPrefix() bool { return hv.Prefix >= 0 }

// WithQuality returns an updated copy of the host version information.
func (hv HostVersion) WithQuality(q Quality, version string, scheme string, err error) HostVersion {
	hv.Quality = q
	hv.Version = version
	hv.Scheme = scheme
	hv.err = err
	return hv
}

// WithNames returns a copy with the specified reverse DNS names.
func (hv HostVersion) WithNames(names []string) HostVersion {
	hv.Names = append([]string(nil), names...)
	return hv
}
