// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import "fmt"

// Family is the IP address family of a host address.
type Family int

// The supported address families.
const (
	IPv4 Family = 4
	IPv6 Family = 6
)

// String returns "IPv4" or "IPv6".
func (f Family) String() string {
	switch f {
	case IPv4:
		return "IPv4"
	case IPv6:
		return "IPv6"
	}
	return fmt.Sprintf("Family(%d)", int(f))
}
